package models

import (
	"time"
)

// Board represents a club notice post
type Board struct {
	ID        string    `json:"id" db:"id"`
	SchoolID  string    `json:"school_id" db:"school_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedBy string    `json:"-" db:"created_by"`
	Author    string    `json:"created_by_username" db:"-"` // joined from users
	CreatedAt time.Time `json:"date_created" db:"created_at"`
	UpdatedAt time.Time `json:"date_updated" db:"updated_at"`

	// Comments is populated on detail reads only
	Comments []*Comment `json:"comments,omitempty" db:"-"`
}

// BoardCreateRequest is the payload for POST /api/boards
type BoardCreateRequest struct {
	SchoolID string `json:"school_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// BoardUpdateRequest is the payload for PATCH /api/boards/:id
type BoardUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}
