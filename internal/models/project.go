package models

import (
	"time"
)

// Project represents one submitted team entry. The uploaded archive is
// stored inline; TopLevelDirectory, FileSize and Score are derived by
// the ingest pipeline and never user-supplied.
type Project struct {
	ID          string `json:"id" db:"id"`
	TeamName    string `json:"team_name" db:"team_name"`
	TeamMembers string `json:"team_members" db:"team_members"`
	Description string `json:"description,omitempty" db:"description"`

	// Archive holds the raw ZIP bytes. Never serialized out.
	Archive []byte `json:"-" db:"archive"`

	TopLevelDirectory string  `json:"top_level_directory,omitempty" db:"top_level_directory"`
	FileSize          int64   `json:"file_size,omitempty" db:"file_size"`
	Score             float64 `json:"score" db:"score"`

	CreatedBy string    `json:"-" db:"created_by"`
	Author    string    `json:"created_by_username,omitempty" db:"-"` // joined from users
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Comments is populated on detail reads only
	Comments []*Comment `json:"comments,omitempty" db:"-"`
}

// ProjectListItem is the reduced row returned by list endpoints
type ProjectListItem struct {
	ID          string  `json:"id"`
	TeamName    string  `json:"team_name"`
	TeamMembers string  `json:"team_members"`
	Score       float64 `json:"score"`
}

// ProjectCreateRequest carries the multipart fields of a project upload
type ProjectCreateRequest struct {
	TeamName    string
	TeamMembers string
	Description string
	Archive     []byte
}

// ProjectUpdateRequest is the payload for PATCH /api/projects/:id.
// Only user-editable metadata; derived fields cannot be touched.
type ProjectUpdateRequest struct {
	TeamName    *string `json:"team_name"`
	TeamMembers *string `json:"team_members"`
	Description *string `json:"description"`
}
