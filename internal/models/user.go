package models

import (
	"time"
)

// User represents a registered account
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Token maps an opaque login token to a user identity.
// Tokens are created on login and removed on logout or expiry.
type Token struct {
	Token     string    `json:"token" db:"token"`
	UserID    string    `json:"-" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the token is past its expiry at the given time
func (t *Token) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// RegisterRequest is the payload for POST /api/register
type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

// LoginRequest is the payload for POST /api/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 8
