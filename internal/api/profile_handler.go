package api

import (
	"net/http"

	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(services *service.Services, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		services: services,
		log:      log.With().Str("handler", "profile").Logger(),
	}
}

// List handles GET /api/profiles
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.services.Profile.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	c.JSON(http.StatusOK, profiles)
}

// Get handles GET /api/profiles/:user_id
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.services.Profile.Get(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update handles PATCH /api/profiles/:user_id; owner only
func (h *ProfileHandler) Update(c *gin.Context) {
	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.services.Profile.Update(c.Request.Context(), currentUserID(c), c.Param("user_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
