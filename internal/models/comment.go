package models

import (
	"time"
)

// Comment is a text annotation attached to a board post or a project.
// Exactly one of the parent references is set; comments are owned by
// their parent and deleted with it.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	BoardID   string    `json:"-" db:"board_id"`
	ProjectID string    `json:"-" db:"project_id"`
	AuthorID  string    `json:"-" db:"author_id"`
	Author    string    `json:"author_username" db:"-"` // joined from users
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CommentCreateRequest is the payload for posting a comment
type CommentCreateRequest struct {
	Text string `json:"text" binding:"required"`
}
