package service

import (
	"context"
	"fmt"
	"time"

	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// boardService implements BoardService
type boardService struct {
	boards   repository.BoardRepository
	comments repository.CommentRepository
	log      zerolog.Logger
}

func newBoardService(repos *repository.Repositories, log zerolog.Logger) BoardService {
	return &boardService{
		boards:   repos.Board,
		comments: repos.Comment,
		log:      log.With().Str("service", "board").Logger(),
	}
}

// List returns all board posts
func (s *boardService) List(ctx context.Context) ([]*models.Board, error) {
	return s.boards.List(ctx)
}

// Create stores a new board post owned by the requesting user
func (s *boardService) Create(ctx context.Context, userID string, req *models.BoardCreateRequest) (*models.Board, error) {
	now := time.Now()
	board := &models.Board{
		ID:        uuid.NewString(),
		SchoolID:  req.SchoolID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	s.log.Info().Str("board_id", board.ID).Str("user_id", userID).Msg("Board created")
	return board, nil
}

// Get returns a board post with its comments
func (s *boardService) Get(ctx context.Context, id string) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	if board == nil {
		return nil, ErrNotFound
	}

	comments, err := s.comments.ListByBoard(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	board.Comments = comments
	return board, nil
}

// Update edits a board post; only its owner may do so
func (s *boardService) Update(ctx context.Context, requesterID, id string, req *models.BoardUpdateRequest) (*models.Board, error) {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	if board == nil {
		return nil, ErrNotFound
	}
	if board.CreatedBy != requesterID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		board.Title = *req.Title
	}
	if req.Content != nil {
		board.Content = *req.Content
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// Delete removes a board post and, through the schema cascade, all of
// its comments; only its owner may do so
func (s *boardService) Delete(ctx context.Context, requesterID, id string) error {
	board, err := s.boards.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load board: %w", err)
	}
	if board == nil {
		return ErrNotFound
	}
	if board.CreatedBy != requesterID {
		return ErrForbidden
	}

	if err := s.boards.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}

	s.log.Info().Str("board_id", id).Str("user_id", requesterID).Msg("Board deleted")
	return nil
}

// ListComments returns the comments on a board post
func (s *boardService) ListComments(ctx context.Context, boardID string) ([]*models.Comment, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	if board == nil {
		return nil, ErrNotFound
	}
	return s.comments.ListByBoard(ctx, boardID)
}

// AddComment posts a comment on a board post
func (s *boardService) AddComment(ctx context.Context, userID, boardID string, req *models.CommentCreateRequest) (*models.Comment, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("failed to load board: %w", err)
	}
	if board == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.NewString(),
		BoardID:   boardID,
		AuthorID:  userID,
		Text:      req.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a single comment; only its author may do so
func (s *boardService) DeleteComment(ctx context.Context, requesterID, boardID, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil || comment.BoardID != boardID {
		return ErrNotFound
	}
	if comment.AuthorID != requesterID {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}
