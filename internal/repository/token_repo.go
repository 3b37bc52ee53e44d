package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/club-portal-api/internal/database"
	"github.com/club-portal-api/internal/models"
)

// tokenRepo is the concrete implementation of TokenRepository
type tokenRepo struct {
	db *database.DB
}

// NewTokenRepo creates a new token repository
func NewTokenRepo(db *database.DB) TokenRepository {
	return &tokenRepo{db: db}
}

// Create inserts a new login token
func (r *tokenRepo) Create(ctx context.Context, token *models.Token) error {
	query := `
		INSERT INTO tokens (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query,
		token.Token, token.UserID, token.CreatedAt, token.ExpiresAt,
	)
	return err
}

// Get retrieves a token row by its value
func (r *tokenRepo) Get(ctx context.Context, value string) (*models.Token, error) {
	query := `SELECT token, user_id, created_at, expires_at FROM tokens WHERE token = $1`

	var token models.Token
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&token.Token, &token.UserID, &token.CreatedAt, &token.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// GetLiveByUserID retrieves an unexpired token for the user, if any.
// Login reuses this instead of minting a new token every time.
func (r *tokenRepo) GetLiveByUserID(ctx context.Context, userID string, now time.Time) (*models.Token, error) {
	query := `
		SELECT token, user_id, created_at, expires_at FROM tokens
		WHERE user_id = $1 AND expires_at > $2
		ORDER BY expires_at DESC LIMIT 1
	`

	var token models.Token
	err := r.db.QueryRowContext(ctx, query, userID, now).Scan(
		&token.Token, &token.UserID, &token.CreatedAt, &token.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &token, nil
}

// Delete removes a token row
func (r *tokenRepo) Delete(ctx context.Context, value string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM tokens WHERE token = $1", value)
	return err
}

// DeleteExpired removes all tokens past their expiry
func (r *tokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tokens WHERE expires_at <= $1", now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
