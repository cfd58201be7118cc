package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/tmarek/nutrilog/backend/config"
	"github.com/tmarek/nutrilog/backend/internal/api"
	"github.com/tmarek/nutrilog/backend/internal/middleware"
	"github.com/tmarek/nutrilog/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router  *gin.Engine
	http    *http.Server
	entries *service.EntryService
	cancel  context.CancelFunc
}

// New assembles services, the notification relay, and routes.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	entries := service.NewEntryService(db, nil)
	profiles := service.NewProfileService(db)
	auth := service.NewAuthService(db, cfg.JWTSecret)

	s := &Server{router: router, entries: entries}

	if redisClient != nil {
		relay := service.NewRelay(redisClient)
		entries.AttachRelay(relay)
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		go relay.Listen(ctx, entries.Refresh)
	}

	api.SetupAPI(router, entries, profiles, auth)
	return s
}

// Router exposes the gin engine, primarily for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and the relay listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
