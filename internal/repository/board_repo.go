package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/club-portal-api/internal/database"
	"github.com/club-portal-api/internal/models"
)

// boardRepo is the concrete implementation of BoardRepository
type boardRepo struct {
	db *database.DB
}

// NewBoardRepo creates a new board repository
func NewBoardRepo(db *database.DB) BoardRepository {
	return &boardRepo{db: db}
}

// Create inserts a new board post
func (r *boardRepo) Create(ctx context.Context, board *models.Board) error {
	query := `
		INSERT INTO boards (id, school_id, title, content, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		board.ID, board.SchoolID, board.Title, board.Content, board.CreatedBy,
		board.CreatedAt, time.Now(),
	)
	return err
}

// List retrieves all board posts, newest first
func (r *boardRepo) List(ctx context.Context) ([]*models.Board, error) {
	query := `
		SELECT b.id, b.school_id, b.title, b.content, b.created_by, u.username,
		       b.created_at, b.updated_at
		FROM boards b
		JOIN users u ON u.id = b.created_by
		ORDER BY b.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []*models.Board
	for rows.Next() {
		var board models.Board
		err := rows.Scan(
			&board.ID, &board.SchoolID, &board.Title, &board.Content,
			&board.CreatedBy, &board.Author, &board.CreatedAt, &board.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		boards = append(boards, &board)
	}
	return boards, rows.Err()
}

// GetByID retrieves a board post by ID
func (r *boardRepo) GetByID(ctx context.Context, id string) (*models.Board, error) {
	query := `
		SELECT b.id, b.school_id, b.title, b.content, b.created_by, u.username,
		       b.created_at, b.updated_at
		FROM boards b
		JOIN users u ON u.id = b.created_by
		WHERE b.id = $1
	`

	var board models.Board
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&board.ID, &board.SchoolID, &board.Title, &board.Content,
		&board.CreatedBy, &board.Author, &board.CreatedAt, &board.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &board, nil
}

// Update rewrites the editable board fields
func (r *boardRepo) Update(ctx context.Context, board *models.Board) error {
	query := `
		UPDATE boards SET title = $2, content = $3, updated_at = $4 WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, board.ID, board.Title, board.Content, time.Now())
	return err
}

// Delete removes a board post; its comments cascade at the schema level
func (r *boardRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM boards WHERE id = $1", id)
	return err
}
