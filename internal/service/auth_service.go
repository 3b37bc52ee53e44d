package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/club-portal-api/internal/config"
	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService over the user and token
// repositories
type authService struct {
	users    repository.UserRepository
	tokens   repository.TokenRepository
	tokenTTL time.Duration
	log      zerolog.Logger
}

func newAuthService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) AuthService {
	return &authService{
		users:    repos.User,
		tokens:   repos.Token,
		tokenTTL: cfg.Auth.TokenTTL,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Register creates a user account with an empty profile and returns a
// fresh login token
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, string, error) {
	if req.Password != req.Password2 {
		return nil, "", ErrPasswordMismatch
	}
	if len(req.Password) < models.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	taken, err := s.users.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, "", ErrUsernameTaken
	}

	taken, err = s.users.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Every account gets a profile at registration; both rows are
	// written in one transaction
	profile := &models.Profile{UserID: user.ID, Nickname: user.Username, UpdatedAt: now}
	if err := s.users.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID, now)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	return user, token, nil
}

// Login verifies credentials and returns a live token, reusing an
// unexpired one when present
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	// Sweep the token table opportunistically; expired rows are dead
	// weight either way
	if removed, err := s.tokens.DeleteExpired(ctx, now); err != nil {
		s.log.Warn().Err(err).Msg("Failed to sweep expired tokens")
	} else if removed > 0 {
		s.log.Debug().Int64("removed", removed).Msg("Swept expired tokens")
	}

	existing, err := s.tokens.GetLiveByUserID(ctx, user.ID, now)
	if err != nil {
		return "", fmt.Errorf("failed to look up token: %w", err)
	}
	if existing != nil {
		return existing.Token, nil
	}

	return s.issueToken(ctx, user.ID, now)
}

// Logout revokes the presented token
func (s *authService) Logout(ctx context.Context, token string) error {
	row, err := s.tokens.Get(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to look up token: %w", err)
	}
	if row == nil {
		return ErrInvalidToken
	}
	return s.tokens.Delete(ctx, token)
}

// Authenticate resolves a token to its user. Expired tokens are
// rejected and removed.
func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	row, err := s.tokens.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	if row == nil {
		return nil, ErrInvalidToken
	}
	if row.Expired(time.Now()) {
		if err := s.tokens.Delete(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("Failed to delete expired token")
		}
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, row.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *authService) issueToken(ctx context.Context, userID string, now time.Time) (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := &models.Token{
		Token:     hex.EncodeToString(raw),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}
	return token.Token, nil
}
