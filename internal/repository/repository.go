package repository

import (
	"context"
	"time"

	"github.com/club-portal-api/internal/database"
	"github.com/club-portal-api/internal/models"
)

// UserRepository defines the interface for user account operations.
// Account creation always writes the user and its profile together.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// TokenRepository defines the interface for the login token table
type TokenRepository interface {
	Create(ctx context.Context, token *models.Token) error
	Get(ctx context.Context, token string) (*models.Token, error)
	GetLiveByUserID(ctx context.Context, userID string, now time.Time) (*models.Token, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

// BoardRepository defines the interface for board post operations
type BoardRepository interface {
	Create(ctx context.Context, board *models.Board) error
	List(ctx context.Context) ([]*models.Board, error)
	GetByID(ctx context.Context, id string) (*models.Board, error)
	Update(ctx context.Context, board *models.Board) error
	Delete(ctx context.Context, id string) error
}

// CommentRepository defines the interface for comment operations on
// boards and projects
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByBoard(ctx context.Context, boardID string) ([]*models.Comment, error)
	ListByProject(ctx context.Context, projectID string) ([]*models.Comment, error)
	Delete(ctx context.Context, id string) error
}

// ProjectRepository defines the interface for project submissions.
// Reads never load the stored archive; GetArchive fetches it on demand.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	List(ctx context.Context) ([]*models.ProjectListItem, error)
	GetByID(ctx context.Context, id string) (*models.Project, error)
	GetArchive(ctx context.Context, id string) ([]byte, error)
	Update(ctx context.Context, project *models.Project) error
	UpdateScore(ctx context.Context, id string, score float64) error
	Delete(ctx context.Context, id string) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	User    UserRepository
	Token   TokenRepository
	Profile ProfileRepository
	Board   BoardRepository
	Comment CommentRepository
	Project ProjectRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepo(db),
		Token:   NewTokenRepo(db),
		Profile: NewProfileRepo(db),
		Board:   NewBoardRepo(db),
		Comment: NewCommentRepo(db),
		Project: NewProjectRepo(db),
	}
}
