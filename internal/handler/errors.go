package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aman-churiwal/libretune/internal/repository"
	"github.com/aman-churiwal/libretune/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps repository and service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, service.ErrNoUpdates):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
	default:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

// parseID validates the :id path parameter. It writes a 400 and returns false
// when the id is not a UUID.
func parseID(c *gin.Context) (string, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return "", false
	}
	return id.String(), true
}

// Parses 'limit' and 'offset' query parameters
func parsePage(c *gin.Context) repository.Page {
	var page repository.Page

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			page.Limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil {
			page.Offset = o
		}
	}

	return page.Normalize()
}
