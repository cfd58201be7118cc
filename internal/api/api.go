package api

import (
	"github.com/gin-gonic/gin"

	"github.com/tmarek/nutrilog/backend/internal/service"
)

// SetupAPI wires services and handlers onto the router.
func SetupAPI(router *gin.Engine, entries *service.EntryService, profiles *service.ProfileService, auth *service.AuthService) {
	v1 := router.Group("/api/v1")
	{
		entryHandler := NewEntryHandler(entries, profiles)
		profileHandler := NewProfileHandler(profiles)
		authHandler := NewAuthHandler(auth)
		adminHandler := NewAdminHandler(entries)

		authHandler.RegisterRoutes(v1)
		entryHandler.RegisterRoutes(v1, auth)
		profileHandler.RegisterRoutes(v1, auth)
		adminHandler.RegisterRoutes(v1, auth)
	}
}
