package service

import (
	"context"
	"fmt"

	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/repository"
	"github.com/rs/zerolog"
)

// profileService implements ProfileService
type profileService struct {
	profiles repository.ProfileRepository
	log      zerolog.Logger
}

func newProfileService(repos *repository.Repositories, log zerolog.Logger) ProfileService {
	return &profileService{
		profiles: repos.Profile,
		log:      log.With().Str("service", "profile").Logger(),
	}
}

// List returns all profiles
func (s *profileService) List(ctx context.Context) ([]*models.Profile, error) {
	return s.profiles.List(ctx)
}

// Get returns one user's profile
func (s *profileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// Update applies the non-nil fields of req to the requester's own
// profile. Updating someone else's profile is forbidden.
func (s *profileService) Update(ctx context.Context, requesterID, userID string, req *models.ProfileUpdateRequest) (*models.Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.UserID != requesterID {
		return nil, ErrForbidden
	}

	if req.Nickname != nil {
		profile.Nickname = *req.Nickname
	}
	if req.Division != nil {
		profile.Division = *req.Division
	}
	if req.SchoolID != nil {
		profile.SchoolID = *req.SchoolID
	}
	if req.ImageURL != nil {
		profile.ImageURL = *req.ImageURL
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}
