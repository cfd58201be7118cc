package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tmarek/nutrilog/backend/internal/models"
	"github.com/tmarek/nutrilog/backend/internal/service"
	"github.com/tmarek/nutrilog/backend/internal/types"
)

type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.LogEntry{}))

	router := gin.New()
	SetupAPI(router,
		service.NewEntryService(db, nil),
		service.NewProfileService(db),
		service.NewAuthService(db, "test-secret"))

	return &testAPI{router: router, db: db}
}

// tokenFor issues a valid JWT for an arbitrary user id.
func (a *testAPI) tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	auth := service.NewAuthService(a.db, "test-secret")
	token, err := auth.GenerateToken(&types.TokenClaims{UserID: userID, Email: "test@example.com"})
	require.NoError(t, err)
	return token
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}
