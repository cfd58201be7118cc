package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tmarek/nutrilog/backend/internal/models"
	"github.com/tmarek/nutrilog/backend/internal/service"
)

// CreateEntryRequest is one food entry as submitted by a presentation
// collaborator. ID is optional; the store generates one when absent.
type CreateEntryRequest struct {
	ID        string  `json:"id"`
	Name      string  `json:"name" binding:"required"`
	Portion   string  `json:"portion"`
	Calories  float64 `json:"calories" binding:"gte=0"`
	Protein   float64 `json:"protein" binding:"gte=0"`
	Carbs     float64 `json:"carbs" binding:"gte=0"`
	Fat       float64 `json:"fat" binding:"gte=0"`
	Timestamp *int64  `json:"timestamp"`
}

func (r *CreateEntryRequest) toModel() *models.LogEntry {
	return &models.LogEntry{
		EntryID:   r.ID,
		Name:      r.Name,
		Portion:   r.Portion,
		Calories:  r.Calories,
		Protein:   r.Protein,
		Carbs:     r.Carbs,
		Fat:       r.Fat,
		Timestamp: r.Timestamp,
	}
}

// BatchAddRequest is a multi-item add, e.g. a multi-item scan result.
type BatchAddRequest struct {
	Entries []CreateEntryRequest `json:"entries" binding:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// currentUserID pulls the authenticated user out of the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}

// writeServiceError maps service errors onto HTTP statuses. Persistence
// failures surface as dismissible notices; the process keeps serving.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "onboarding_required": true})
	case errors.Is(err, service.ErrPersistence):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage operation failed, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseDayQuery reads the date and tz query parameters. date defaults to
// today, tz to UTC.
func parseDayQuery(c *gin.Context) (time.Time, *time.Location, bool) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown time zone"})
			return time.Time{}, nil, false
		}
		loc = parsed
	}

	day := time.Now().In(loc)
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return time.Time{}, nil, false
		}
		day = parsed
	}
	return day, loc, true
}
