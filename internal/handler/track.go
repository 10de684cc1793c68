package handler

import (
	"net/http"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TrackHandler struct {
	service *service.TrackService
}

func NewTrackHandler(service *service.TrackService) *TrackHandler {
	return &TrackHandler{service: service}
}

func (h *TrackHandler) Create(c *gin.Context) {
	var req struct {
		UserID        uuid.UUID `json:"user_id" binding:"required"`
		Title         string    `json:"title" binding:"required"`
		Description   *string   `json:"description"`
		AudioURL      string    `json:"audio_url" binding:"required,url"`
		CoverImageURL *string   `json:"cover_image_url" binding:"omitempty,url"`
		Genre         *string   `json:"genre"`
		IsPublic      *bool     `json:"is_public"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	track := &models.Track{
		UserID:        req.UserID,
		Title:         req.Title,
		Description:   req.Description,
		AudioURL:      req.AudioURL,
		CoverImageURL: req.CoverImageURL,
		Genre:         req.Genre,
		IsPublic:      req.IsPublic == nil || *req.IsPublic,
	}

	if err := h.service.Create(c.Request.Context(), track); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, track)
}

// Handles GET /tracks?user_id=
func (h *TrackHandler) List(c *gin.Context) {
	userID := c.Query("user_id")
	if userID != "" {
		if _, err := uuid.Parse(userID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
			return
		}
	}

	page := parsePage(c)
	tracks, err := h.service.List(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tracks": tracks,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

func (h *TrackHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	track, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, track)
}

func (h *TrackHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Title         *string `json:"title"`
		Description   *string `json:"description"`
		AudioURL      *string `json:"audio_url" binding:"omitempty,url"`
		CoverImageURL *string `json:"cover_image_url" binding:"omitempty,url"`
		Genre         *string `json:"genre"`
		IsPublic      *bool   `json:"is_public"`
		Likes         *uint32 `json:"likes"`
		Dislikes      *uint32 `json:"dislikes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Build updates map
	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AudioURL != nil {
		updates["audio_url"] = *req.AudioURL
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = *req.CoverImageURL
	}
	if req.Genre != nil {
		updates["genre"] = *req.Genre
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if req.Likes != nil {
		updates["likes"] = *req.Likes
	}
	if req.Dislikes != nil {
		updates["dislikes"] = *req.Dislikes
	}

	track, err := h.service.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, track)
}

func (h *TrackHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Track deleted successfully"})
}
