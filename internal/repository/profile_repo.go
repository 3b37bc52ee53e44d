package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/club-portal-api/internal/database"
	"github.com/club-portal-api/internal/models"
)

// profileRepo is the concrete implementation of ProfileRepository
type profileRepo struct {
	db *database.DB
}

// NewProfileRepo creates a new profile repository
func NewProfileRepo(db *database.DB) ProfileRepository {
	return &profileRepo{db: db}
}

// Create inserts a profile row for a user
func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, nickname, division, school_id, image_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.Nickname, profile.Division,
		nullable(profile.SchoolID), profile.ImageURL, time.Now(),
	)
	return err
}

// GetByUserID retrieves a profile with its owning username
func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	query := `
		SELECT p.user_id, u.username, p.nickname, p.division,
		       COALESCE(p.school_id, ''), p.image_url, p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	var profile models.Profile
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID, &profile.Username, &profile.Nickname, &profile.Division,
		&profile.SchoolID, &profile.ImageURL, &profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// List retrieves all profiles
func (r *profileRepo) List(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT p.user_id, u.username, p.nickname, p.division,
		       COALESCE(p.school_id, ''), p.image_url, p.updated_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		ORDER BY u.username
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var profile models.Profile
		err := rows.Scan(
			&profile.UserID, &profile.Username, &profile.Nickname, &profile.Division,
			&profile.SchoolID, &profile.ImageURL, &profile.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, &profile)
	}
	return profiles, rows.Err()
}

// Update rewrites the editable profile fields
func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	query := `
		UPDATE profiles
		SET nickname = $2, division = $3, school_id = $4, image_url = $5, updated_at = $6
		WHERE user_id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.UserID, profile.Nickname, profile.Division,
		nullable(profile.SchoolID), profile.ImageURL, time.Now(),
	)
	return err
}

// nullable maps empty strings to NULL so unique columns stay usable
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
