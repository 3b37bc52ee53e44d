package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/club-portal-api/internal/database"
	"github.com/club-portal-api/internal/models"
)

// projectRepo is the concrete implementation of ProjectRepository
type projectRepo struct {
	db *database.DB
}

// NewProjectRepo creates a new project repository
func NewProjectRepo(db *database.DB) ProjectRepository {
	return &projectRepo{db: db}
}

// Create inserts a project together with its archive bytes and the
// metadata derived from them. One statement, so an insert failure
// leaves nothing behind.
func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (id, team_name, team_members, description, archive,
		                      top_level_directory, file_size, score, created_by,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.TeamName, project.TeamMembers, project.Description,
		project.Archive, project.TopLevelDirectory, project.FileSize, project.Score,
		project.CreatedBy, project.CreatedAt, time.Now(),
	)
	return err
}

// List retrieves the reduced list rows, newest first. The archive
// column is deliberately not selected.
func (r *projectRepo) List(ctx context.Context) ([]*models.ProjectListItem, error) {
	query := `
		SELECT id, team_name, team_members, score
		FROM projects
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.ProjectListItem
	for rows.Next() {
		var item models.ProjectListItem
		if err := rows.Scan(&item.ID, &item.TeamName, &item.TeamMembers, &item.Score); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// GetByID retrieves a project without its archive bytes
func (r *projectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `
		SELECT p.id, p.team_name, p.team_members, p.description,
		       p.top_level_directory, p.file_size, p.score, p.created_by,
		       u.username, p.created_at, p.updated_at
		FROM projects p
		JOIN users u ON u.id = p.created_by
		WHERE p.id = $1
	`

	var project models.Project
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.TeamName, &project.TeamMembers, &project.Description,
		&project.TopLevelDirectory, &project.FileSize, &project.Score,
		&project.CreatedBy, &project.Author, &project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// GetArchive retrieves only the stored archive bytes
func (r *projectRepo) GetArchive(ctx context.Context, id string) ([]byte, error) {
	var archive []byte
	err := r.db.QueryRowContext(ctx, "SELECT archive FROM projects WHERE id = $1", id).Scan(&archive)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return archive, nil
}

// Update rewrites the user-editable metadata fields
func (r *projectRepo) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET team_name = $2, team_members = $3, description = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.TeamName, project.TeamMembers, project.Description, time.Now(),
	)
	return err
}

// UpdateScore records the score returned by the external service
func (r *projectRepo) UpdateScore(ctx context.Context, id string, score float64) error {
	query := `UPDATE projects SET score = $2, updated_at = $3 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, score, time.Now())
	return err
}

// Delete removes a project; its comments cascade at the schema level
func (r *projectRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	return err
}
