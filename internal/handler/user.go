package handler

import (
	"net/http"

	"github.com/aman-churiwal/libretune/internal/models"
	"github.com/aman-churiwal/libretune/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Create(c *gin.Context) {
	var req struct {
		Username   string            `json:"username" binding:"required,max=64"`
		Email      string            `json:"email" binding:"required,email"`
		Password   string            `json:"password" binding:"required,min=8"`
		Bio        *string           `json:"bio"`
		CreatedVia models.CreatedVia `json:"created_via" binding:"omitempty,oneof=web mobile google spotify soundcloud"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := h.service.Create(ctx, service.CreateUserInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Bio:        req.Bio,
		CreatedVia: req.CreatedVia,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) List(c *gin.Context) {
	page := parsePage(c)

	users, err := h.service.List(c.Request.Context(), page)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":  users,
		"limit":  page.Limit,
		"offset": page.Offset,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Username      *string `json:"username" binding:"omitempty,max=64"`
		Email         *string `json:"email" binding:"omitempty,email"`
		Password      *string `json:"password" binding:"omitempty,min=8"`
		Bio           *string `json:"bio"`
		EmailVerified *bool   `json:"email_verified"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Update(c.Request.Context(), id, service.UpdateUserInput{
		Username:      req.Username,
		Email:         req.Email,
		Password:      req.Password,
		Bio:           req.Bio,
		EmailVerified: req.EmailVerified,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
