package api

import (
	"net/http"

	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.services.Auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.services.Auth.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout handles POST /api/logout; it revokes the presented token
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.services.Auth.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
