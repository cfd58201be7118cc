package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tmarek/nutrilog/backend/internal/aggregate"
	"github.com/tmarek/nutrilog/backend/internal/middleware"
	"github.com/tmarek/nutrilog/backend/internal/models"
	"github.com/tmarek/nutrilog/backend/internal/service"
)

// EntryHandler exposes the observable log store to presentation
// collaborators.
type EntryHandler struct {
	entries  service.IEntryService
	profiles service.IProfileService
}

func NewEntryHandler(entries service.IEntryService, profiles service.IProfileService) *EntryHandler {
	return &EntryHandler{entries: entries, profiles: profiles}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup, validator middleware.TokenValidator) {
	entries := router.Group("/entries")
	entries.Use(middleware.AuthMiddleware(validator))
	{
		entries.POST("", h.AddEntry)
		entries.POST("/batch", h.AddBatch)
		entries.DELETE("/:id", h.RemoveEntry)
		entries.GET("", h.ListEntries)
		entries.GET("/day", h.EntriesOnDay)
		entries.GET("/trend", h.Trend)
		entries.GET("/summary", h.DailySummary)
		entries.GET("/stream", h.Stream)
	}
}

func (h *EntryHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry := req.toModel()
	if err := h.entries.AddEntry(c.Request.Context(), userID, entry); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// AddBatch persists each item independently. Partial success is reported,
// never silently lost: the response carries per-item outcomes and already
// persisted items have notified subscribers.
func (h *EntryHandler) AddBatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BatchAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	batch := make([]*models.LogEntry, len(req.Entries))
	for i := range req.Entries {
		batch[i] = req.Entries[i].toModel()
	}

	result := h.entries.AddEntries(c.Request.Context(), userID, batch)
	status := http.StatusCreated
	if result.Failed == len(result.Results) && len(result.Results) > 0 {
		status = http.StatusInternalServerError
	} else if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

func (h *EntryHandler) RemoveEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.entries.RemoveEntry(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EntryHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.entries.ListEntries(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *EntryHandler) EntriesOnDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	day, loc, ok := parseDayQuery(c)
	if !ok {
		return
	}

	entries, err := h.entries.ListEntries(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":    day.Format("2006-01-02"),
		"entries": aggregate.EntriesOnDay(entries, day, loc),
	})
}

// maxTrendDays bounds the series a single request may ask for.
const maxTrendDays = 366

func (h *EntryHandler) Trend(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown time zone"})
			return
		}
		loc = parsed
	}

	from, err := time.ParseInLocation("2006-01-02", c.Query("from"), loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", c.Query("to"), loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return
	}
	if from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from date must not be after to date"})
		return
	}
	if to.After(from.AddDate(0, 0, maxTrendDays-1)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date range too large, maximum 366 days"})
		return
	}

	entries, err := h.entries.ListEntries(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": aggregate.Trend(entries, from, to, loc)})
}

// DailySummary reports one day's macro totals next to the user's goals.
// Missing profiles fall back to the default goals without forcing
// onboarding here.
func (h *EntryHandler) DailySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	day, loc, ok := parseDayQuery(c)
	if !ok {
		return
	}

	entries, err := h.entries.ListEntries(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	goals := models.DefaultMacroGoals()
	if profile, err := h.profiles.GetProfile(c.Request.Context(), userID); err == nil {
		goals = profile.MacroGoals
	}

	c.JSON(http.StatusOK, gin.H{
		"date":   day.Format("2006-01-02"),
		"totals": aggregate.SumMacros(aggregate.EntriesOnDay(entries, day, loc)),
		"goals":  goals,
	})
}
