package handler

import (
	"net/http"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlaylistHandler struct {
	service *service.PlaylistService
}

func NewPlaylistHandler(service *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{service: service}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req struct {
		UserID          uuid.UUID `json:"user_id" binding:"required"`
		Name            string    `json:"name" binding:"required"`
		Description     *string   `json:"description"`
		CoverImageURL   *string   `json:"cover_image_url" binding:"omitempty,url"`
		IsPublic        *bool     `json:"is_public"`
		IsCollaborative bool      `json:"is_collaborative"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playlist := &models.Playlist{
		UserID:          req.UserID,
		Name:            req.Name,
		Description:     req.Description,
		CoverImageURL:   req.CoverImageURL,
		IsPublic:        req.IsPublic == nil || *req.IsPublic,
		IsCollaborative: req.IsCollaborative,
	}

	if err := h.service.Create(c.Request.Context(), playlist); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, playlist)
}

func (h *PlaylistHandler) List(c *gin.Context) {
	page := parsePage(c)

	playlists, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playlists": playlists,
		"limit":     page.Limit,
		"offset":    page.Offset,
	})
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	playlist, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Name            *string `json:"name"`
		Description     *string `json:"description"`
		CoverImageURL   *string `json:"cover_image_url" binding:"omitempty,url"`
		IsPublic        *bool   `json:"is_public"`
		IsCollaborative *bool   `json:"is_collaborative"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.CoverImageURL != nil {
		updates["cover_image_url"] = *req.CoverImageURL
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if req.IsCollaborative != nil {
		updates["is_collaborative"] = *req.IsCollaborative
	}

	playlist, err := h.service.Update(c.Request.Context(), id, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, playlist)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted successfully"})
}
