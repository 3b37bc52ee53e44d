package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/club-portal-api/internal/database"
	"github.com/club-portal-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment under its board or project parent
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, board_id, project_id, author_id, text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, nullable(comment.BoardID), nullable(comment.ProjectID),
		comment.AuthorID, comment.Text, comment.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT c.id, COALESCE(c.board_id::text, ''), COALESCE(c.project_id::text, ''),
		       c.author_id, u.username, c.text, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = $1
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.BoardID, &comment.ProjectID,
		&comment.AuthorID, &comment.Author, &comment.Text,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByBoard retrieves all comments on a board post, oldest first
func (r *commentRepo) ListByBoard(ctx context.Context, boardID string) ([]*models.Comment, error) {
	return r.list(ctx, "c.board_id = $1", boardID)
}

// ListByProject retrieves all comments on a project, oldest first
func (r *commentRepo) ListByProject(ctx context.Context, projectID string) ([]*models.Comment, error) {
	return r.list(ctx, "c.project_id = $1", projectID)
}

func (r *commentRepo) list(ctx context.Context, where, parentID string) ([]*models.Comment, error) {
	query := `
		SELECT c.id, COALESCE(c.board_id::text, ''), COALESCE(c.project_id::text, ''),
		       c.author_id, u.username, c.text, c.created_at, c.updated_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE ` + where + `
		ORDER BY c.created_at
	`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID, &comment.BoardID, &comment.ProjectID,
			&comment.AuthorID, &comment.Author, &comment.Text,
			&comment.CreatedAt, &comment.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}
	return comments, rows.Err()
}

// Delete removes a single comment
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	return err
}
