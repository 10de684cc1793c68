package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/aman-churiwal/libretune/internal/service"
	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Handles GET /admin/analytics
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Handles GET /admin/logs
func (h *AnalyticsHandler) GetLogs(c *gin.Context) {
	from, to, err := parseTimeRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page := parsePage(c)
	logs, err := h.service.GetLogs(c.Request.Context(), from, to, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":   logs,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

// Handles DELETE /admin/logs?before=
func (h *AnalyticsHandler) PurgeLogs(c *gin.Context) {
	before, err := parseTime(c.Query("before"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "before must be RFC3339 or a unix timestamp"})
		return
	}

	deleted, err := h.service.Purge(c.Request.Context(), before)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Parses 'from' and 'to' query parameters
func parseTimeRange(c *gin.Context) (time.Time, time.Time, error) {
	// Default: last 24 hours
	to := time.Now()
	from := to.Add(-24 * time.Hour)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := parseTime(fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}

	if toStr := c.Query("to"); toStr != "" {
		parsed, err := parseTime(toStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}

	return from, to, nil
}

// parseTime accepts RFC3339 or unix seconds.
func parseTime(raw string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, raw)
	if err == nil {
		return parsed, nil
	}

	// Try Unix timestamp
	if timestamp, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil {
		return time.Unix(timestamp, 0), nil
	}

	return time.Time{}, err
}
