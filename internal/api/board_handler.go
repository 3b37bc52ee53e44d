package api

import (
	"net/http"

	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BoardHandler handles board post endpoints
type BoardHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(services *service.Services, log zerolog.Logger) *BoardHandler {
	return &BoardHandler{
		services: services,
		log:      log.With().Str("handler", "board").Logger(),
	}
}

// List handles GET /api/boards
func (h *BoardHandler) List(c *gin.Context) {
	boards, err := h.services.Board.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if boards == nil {
		boards = []*models.Board{}
	}
	c.JSON(http.StatusOK, boards)
}

// Create handles POST /api/boards
func (h *BoardHandler) Create(c *gin.Context) {
	var req models.BoardCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.services.Board.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, board)
}

// Get handles GET /api/boards/:id
func (h *BoardHandler) Get(c *gin.Context) {
	board, err := h.services.Board.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Update handles PATCH /api/boards/:id; owner only
func (h *BoardHandler) Update(c *gin.Context) {
	var req models.BoardUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	board, err := h.services.Board.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Board successfully updated.",
		"data":    board,
	})
}

// Delete handles DELETE /api/boards/:id; owner only
func (h *BoardHandler) Delete(c *gin.Context) {
	if err := h.services.Board.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments handles GET /api/boards/:id/comments
func (h *BoardHandler) ListComments(c *gin.Context) {
	comments, err := h.services.Board.ListComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	c.JSON(http.StatusOK, comments)
}

// AddComment handles POST /api/boards/:id/comments
func (h *BoardHandler) AddComment(c *gin.Context) {
	var req models.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.services.Board.AddComment(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment handles DELETE /api/boards/:id/comments/:comment_id
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	err := h.services.Board.DeleteComment(c.Request.Context(), currentUserID(c), c.Param("id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
