package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Plain text endpoints kept for smoke testing the request logger.
type GeneralHandler struct{}

func NewGeneralHandler() *GeneralHandler {
	return &GeneralHandler{}
}

// Handles GET /
func (h *GeneralHandler) Hello(c *gin.Context) {
	text(c, http.StatusOK, "Hello world!")
}

// Handles GET /users/:id/
func (h *GeneralHandler) Welcome(c *gin.Context) {
	text(c, http.StatusOK, fmt.Sprintf("Welcome %s!", c.Param("id")))
}

// Handles GET /search
func (h *GeneralHandler) Search(c *gin.Context) {
	var params struct {
		Query  string  `form:"query" binding:"required"`
		Limit  *uint32 `form:"limit"`
		Offset *uint32 `form:"offset"`
	}

	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit := uint32(10)
	if params.Limit != nil {
		limit = *params.Limit
	}
	offset := uint32(0)
	if params.Offset != nil {
		offset = *params.Offset
	}

	text(c, http.StatusOK, fmt.Sprintf("Searching for '%s' with limit %d and offset %d", params.Query, limit, offset))
}

// Handles GET /test/:status
func (h *GeneralHandler) TestStatus(c *gin.Context) {
	status, err := strconv.ParseUint(c.Param("status"), 10, 16)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
		return
	}

	switch status {
	case http.StatusOK:
		text(c, http.StatusOK, "Success!")
	case http.StatusNotFound:
		text(c, http.StatusNotFound, "Not Found!")
	case http.StatusInternalServerError:
		text(c, http.StatusInternalServerError, "Server Error!")
	default:
		text(c, http.StatusBadRequest, "Bad Request!")
	}
}

// text writes a plain body with an explicit Content-Length so the request
// logger can report the response size.
func text(c *gin.Context, status int, body string) {
	c.Header("Content-Length", strconv.Itoa(len(body)))
	c.String(status, body)
}
