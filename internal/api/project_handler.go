package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/club-portal-api/internal/config"
	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ProjectHandler handles project submission endpoints
type ProjectHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "project").Logger(),
	}
}

// List handles GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.services.Project.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if projects == nil {
		projects = []*models.ProjectListItem{}
	}
	c.JSON(http.StatusOK, projects)
}

// Create handles POST /api/projects. Accepts a multipart form with
// team_name, team_members, description and the code_file archive.
func (h *ProjectHandler) Create(c *gin.Context) {
	teamName := c.PostForm("team_name")
	if teamName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_name is required"})
		return
	}
	teamMembers := c.PostForm("team_members")
	if teamMembers == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_members is required"})
		return
	}

	file, header, err := c.Request.FormFile("code_file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code_file upload is required"})
		return
	}
	defer file.Close()

	// Validate file size before reading it into memory
	if header.Size > h.cfg.Upload.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("file too large, max size is %d MB", h.cfg.Upload.MaxUploadSize/(1024*1024)),
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return
	}

	project, err := h.services.Project.Create(c.Request.Context(), currentUserID(c), &models.ProjectCreateRequest{
		TeamName:    teamName,
		TeamMembers: teamMembers,
		Description: c.PostForm("description"),
		Archive:     data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// Get handles GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.services.Project.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Update handles PATCH /api/projects/:id; owner only, metadata only
func (h *ProjectHandler) Update(c *gin.Context) {
	var req models.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.services.Project.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Project successfully updated.",
		"data":    project,
	})
}

// Delete handles DELETE /api/projects/:id; owner only
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.services.Project.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments handles GET /api/projects/:id/comments
func (h *ProjectHandler) ListComments(c *gin.Context) {
	comments, err := h.services.Project.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment handles POST /api/projects/:id/comments
func (h *ProjectHandler) AddComment(c *gin.Context) {
	var req models.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.services.Project.AddComment(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/projects/:id/comments/:comment_id
func (h *ProjectHandler) DeleteComment(c *gin.Context) {
	err := h.services.Project.DeleteComment(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Preview handles GET /api/projects/:id/code-preview. Returns the text
// content of allow-listed source files inside the stored archive.
func (h *ProjectHandler) Preview(c *gin.Context) {
	contents, err := h.services.Project.Preview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contents)
}
