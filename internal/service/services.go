package service

import (
	"context"

	"github.com/club-portal-api/internal/config"
	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/repository"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for registration, login and token
// resolution
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// ProfileService defines the interface for profile operations
type ProfileService interface {
	List(ctx context.Context) ([]*models.Profile, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, requesterID, userID string, req *models.ProfileUpdateRequest) (*models.Profile, error)
}

// BoardService defines the interface for board posts and their comments
type BoardService interface {
	List(ctx context.Context) ([]*models.Board, error)
	Create(ctx context.Context, userID string, req *models.BoardCreateRequest) (*models.Board, error)
	Get(ctx context.Context, id string) (*models.Board, error)
	Update(ctx context.Context, requesterID, id string, req *models.BoardUpdateRequest) (*models.Board, error)
	Delete(ctx context.Context, requesterID, id string) error
	ListComments(ctx context.Context, boardID string) ([]*models.Comment, error)
	AddComment(ctx context.Context, userID, boardID string, req *models.CommentCreateRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, requesterID, boardID, commentID string) error
}

// ProjectService defines the interface for project submissions: the
// upload pipeline, CRUD, comments and the code preview
type ProjectService interface {
	List(ctx context.Context) ([]*models.ProjectListItem, error)
	Create(ctx context.Context, userID string, req *models.ProjectCreateRequest) (*models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, requesterID, id string, req *models.ProjectUpdateRequest) (*models.Project, error)
	Delete(ctx context.Context, requesterID, id string) error
	ListComments(ctx context.Context, projectID string) ([]*models.Comment, error)
	AddComment(ctx context.Context, userID, projectID string, req *models.CommentCreateRequest) (*models.Comment, error)
	DeleteComment(ctx context.Context, requesterID, projectID, commentID string) error
	Preview(ctx context.Context, id string) (map[string]string, error)
}

// Scorer abstracts the external scoring call so services can be tested
// without the network
type Scorer interface {
	Score(ctx context.Context, code []byte) (float64, error)
}

// Services holds all service interfaces
type Services struct {
	Auth    AuthService
	Profile ProfileService
	Board   BoardService
	Project ProjectService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, scorer Scorer, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Auth:    newAuthService(repos, cfg, log),
		Profile: newProfileService(repos, log),
		Board:   newBoardService(repos, log),
		Project: newProjectService(repos, scorer, cfg, log),
	}
}
