package models

import (
	"time"
)

// Profile holds the club-facing details of a user. One profile exists
// per user and is created together with the account.
type Profile struct {
	UserID   string `json:"user_id" db:"user_id"`
	Username string `json:"username" db:"-"` // joined from users
	Nickname string `json:"nickname" db:"nickname"`
	Division string `json:"division" db:"division"`
	SchoolID string `json:"school_id" db:"school_id"`
	ImageURL string `json:"image_url" db:"image_url"`

	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileUpdateRequest is the payload for PATCH /api/profiles/:user_id.
// Nil fields are left unchanged.
type ProfileUpdateRequest struct {
	Nickname *string `json:"nickname"`
	Division *string `json:"division"`
	SchoolID *string `json:"school_id"`
	ImageURL *string `json:"image_url"`
}
