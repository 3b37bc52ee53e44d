package service

import (
	"context"
	"fmt"
	"time"

	"github.com/club-portal-api/internal/archive"
	"github.com/club-portal-api/internal/config"
	"github.com/club-portal-api/internal/models"
	"github.com/club-portal-api/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// projectService implements ProjectService. Creation runs the ingest
// pipeline: inspect the archive, persist the record, then request a
// score from the external service as a best-effort follow-up.
type projectService struct {
	projects    repository.ProjectRepository
	comments    repository.CommentRepository
	scorer      Scorer
	limits      archive.Limits
	previewExts []string
	log         zerolog.Logger
}

func newProjectService(repos *repository.Repositories, scorer Scorer, cfg *config.Config, log zerolog.Logger) ProjectService {
	return &projectService{
		projects: repos.Project,
		comments: repos.Comment,
		scorer:   scorer,
		limits: archive.Limits{
			MaxEntries:      cfg.Upload.MaxEntries,
			MaxUncompressed: cfg.Upload.MaxUncompressed,
		},
		previewExts: cfg.Upload.PreviewExts,
		log:         log.With().Str("service", "project").Logger(),
	}
}

// List returns the reduced project rows
func (s *projectService) List(ctx context.Context) ([]*models.ProjectListItem, error) {
	return s.projects.List(ctx)
}

// Create ingests an uploaded submission. The archive is validated
// before anything is written, so an invalid upload persists nothing.
// The scoring call runs after the insert and never fails the create:
// on any scoring error the stored score stays at its zero default.
func (s *projectService) Create(ctx context.Context, userID string, req *models.ProjectCreateRequest) (*models.Project, error) {
	info, err := archive.Inspect(req.Archive, s.limits)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project := &models.Project{
		ID:                uuid.NewString(),
		TeamName:          req.TeamName,
		TeamMembers:       req.TeamMembers,
		Description:       req.Description,
		Archive:           req.Archive,
		TopLevelDirectory: info.TopLevelDirectory,
		FileSize:          info.FileSize,
		Score:             0,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.log.Info().
		Str("project_id", project.ID).
		Str("team_name", project.TeamName).
		Str("top_level_directory", project.TopLevelDirectory).
		Int64("file_size", project.FileSize).
		Msg("Project ingested")

	if score, err := s.scorer.Score(ctx, req.Archive); err != nil {
		s.log.Warn().Err(err).Str("project_id", project.ID).
			Msg("Scoring call failed, keeping default score")
	} else if err := s.projects.UpdateScore(ctx, project.ID, score); err != nil {
		s.log.Warn().Err(err).Str("project_id", project.ID).
			Msg("Failed to store score, keeping default")
	} else {
		project.Score = score
	}

	return project, nil
}

// Get returns a project with its comments, without the archive bytes
func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}

	comments, err := s.comments.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	project.Comments = comments
	return project, nil
}

// Update edits team metadata; only the owner may do so. Derived fields
// and the archive itself are not touched.
func (s *projectService) Update(ctx context.Context, requesterID, id string, req *models.ProjectUpdateRequest) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}
	if project.CreatedBy != requesterID {
		return nil, ErrForbidden
	}

	if req.TeamName != nil {
		project.TeamName = *req.TeamName
	}
	if req.TeamMembers != nil {
		project.TeamMembers = *req.TeamMembers
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// Delete removes a project and, through the schema cascade, all of its
// comments; only its owner may do so
func (s *projectService) Delete(ctx context.Context, requesterID, id string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return ErrNotFound
	}
	if project.CreatedBy != requesterID {
		return ErrForbidden
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.log.Info().Str("project_id", id).Str("user_id", requesterID).Msg("Project deleted")
	return nil
}

// ListComments returns the comments on a project
func (s *projectService) ListComments(ctx context.Context, projectID string) ([]*models.Comment, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}
	return s.comments.ListByProject(ctx, projectID)
}

// AddComment posts a comment on a project
func (s *projectService) AddComment(ctx context.Context, userID, projectID string, req *models.CommentCreateRequest) (*models.Comment, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if project == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		AuthorID:  userID,
		Text:      req.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// DeleteComment removes a single comment; only its author may do so
func (s *projectService) DeleteComment(ctx context.Context, requesterID, projectID, commentID string) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to load comment: %w", err)
	}
	if comment == nil || comment.ProjectID != projectID {
		return ErrNotFound
	}
	if comment.AuthorID != requesterID {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}

// Preview re-opens the stored archive and returns the decoded text of
// its allow-listed entries
func (s *projectService) Preview(ctx context.Context, id string) (map[string]string, error) {
	data, err := s.projects.GetArchive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load archive: %w", err)
	}
	if data == nil {
		return nil, ErrNotFound
	}
	return archive.Preview(data, s.previewExts)
}
