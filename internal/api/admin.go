package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tmarek/nutrilog/backend/internal/middleware"
	"github.com/tmarek/nutrilog/backend/internal/service"
)

// confirmEraseValue must be echoed by the caller before the irreversible
// data clear runs. Explicit confirmation lives at this boundary, not in the
// store.
const (
	confirmEraseHeader = "X-Confirm-Erase"
	confirmEraseValue  = "erase-all-data"
)

type AdminHandler struct {
	entries service.IEntryService
}

func NewAdminHandler(entries service.IEntryService) *AdminHandler {
	return &AdminHandler{entries: entries}
}

func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(validator))
	{
		admin.DELETE("/data", h.ClearAllData)
	}
}

// ClearAllData erases every user's persisted state in one irreversible
// action.
func (h *AdminHandler) ClearAllData(c *gin.Context) {
	if c.GetHeader(confirmEraseHeader) != confirmEraseValue {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "confirmation required: set " + confirmEraseHeader + ": " + confirmEraseValue,
		})
		return
	}

	if err := h.entries.ClearAllData(c.Request.Context()); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
