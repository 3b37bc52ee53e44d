package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/club-portal-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository. When
// Profiles is set, CreateWithProfile writes both stores atomically the
// way the real repository's transaction does.
type MockUserRepository struct {
	Users          map[string]*models.User
	UsernameToUser map[string]*models.User
	EmailToUser    map[string]*models.User
	InsertError    error
	Profiles       *MockProfileRepository
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:          make(map[string]*models.User),
		UsernameToUser: make(map[string]*models.User),
		EmailToUser:    make(map[string]*models.User),
	}
}

func (m *MockUserRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	if m.Profiles != nil {
		if err := m.Profiles.Create(ctx, profile); err != nil {
			return err
		}
	}
	m.Users[user.ID] = user
	m.UsernameToUser[user.Username] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.UsernameToUser[username], nil
}

func (m *MockUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, exists := m.UsernameToUser[username]
	return exists, nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.EmailToUser[email]
	return exists, nil
}

// MockTokenRepository is a mock implementation of TokenRepository
type MockTokenRepository struct {
	Tokens      map[string]*models.Token
	InsertError error
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{Tokens: make(map[string]*models.Token)}
}

func (m *MockTokenRepository) Create(ctx context.Context, token *models.Token) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Tokens[token.Token] = token
	return nil
}

func (m *MockTokenRepository) Get(ctx context.Context, value string) (*models.Token, error) {
	return m.Tokens[value], nil
}

func (m *MockTokenRepository) GetLiveByUserID(ctx context.Context, userID string, now time.Time) (*models.Token, error) {
	for _, t := range m.Tokens {
		if t.UserID == userID && now.Before(t.ExpiresAt) {
			return t, nil
		}
	}
	return nil, nil
}

func (m *MockTokenRepository) Delete(ctx context.Context, value string) error {
	delete(m.Tokens, value)
	return nil
}

func (m *MockTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	var removed int64
	for value, t := range m.Tokens {
		if !now.Before(t.ExpiresAt) {
			delete(m.Tokens, value)
			removed++
		}
	}
	return removed, nil
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	Profiles    map[string]*models.Profile
	InsertError error
	UpdateError error
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{Profiles: make(map[string]*models.Profile)}
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return m.Profiles[userID], nil
}

func (m *MockProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	out := make([]*models.Profile, 0, len(m.Profiles))
	for _, p := range m.Profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	Boards      map[string]*models.Board
	InsertError error
}

func NewMockBoardRepository() *MockBoardRepository {
	return &MockBoardRepository{Boards: make(map[string]*models.Board)}
}

func (m *MockBoardRepository) Create(ctx context.Context, board *models.Board) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Boards[board.ID] = board
	return nil
}

func (m *MockBoardRepository) List(ctx context.Context) ([]*models.Board, error) {
	out := make([]*models.Board, 0, len(m.Boards))
	for _, b := range m.Boards {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockBoardRepository) GetByID(ctx context.Context, id string) (*models.Board, error) {
	return m.Boards[id], nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *models.Board) error {
	m.Boards[board.ID] = board
	return nil
}

func (m *MockBoardRepository) Delete(ctx context.Context, id string) error {
	delete(m.Boards, id)
	return nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	InsertError error
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[string]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return m.Comments[id], nil
}

func (m *MockCommentRepository) ListByBoard(ctx context.Context, boardID string) ([]*models.Comment, error) {
	return m.list(func(c *models.Comment) bool { return c.BoardID == boardID }), nil
}

func (m *MockCommentRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Comment, error) {
	return m.list(func(c *models.Comment) bool { return c.ProjectID == projectID }), nil
}

func (m *MockCommentRepository) list(match func(*models.Comment) bool) []*models.Comment {
	var out []*models.Comment
	for _, c := range m.Comments {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	delete(m.Comments, id)
	return nil
}

// DeleteByBoard mirrors the schema-level cascade for tests
func (m *MockCommentRepository) DeleteByBoard(boardID string) {
	for id, c := range m.Comments {
		if c.BoardID == boardID {
			delete(m.Comments, id)
		}
	}
}

// DeleteByProject mirrors the schema-level cascade for tests
func (m *MockCommentRepository) DeleteByProject(projectID string) {
	for id, c := range m.Comments {
		if c.ProjectID == projectID {
			delete(m.Comments, id)
		}
	}
}

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	Projects    map[string]*models.Project
	InsertError error
	ScoreCalls  int

	// Comments, when set, receives the schema-level cascade on Delete
	Comments *MockCommentRepository
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{Projects: make(map[string]*models.Project)}
}

func (m *MockProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Projects[project.ID] = project
	return nil
}

func (m *MockProjectRepository) List(ctx context.Context) ([]*models.ProjectListItem, error) {
	out := make([]*models.ProjectListItem, 0, len(m.Projects))
	for _, p := range m.Projects {
		out = append(out, &models.ProjectListItem{
			ID: p.ID, TeamName: p.TeamName, TeamMembers: p.TeamMembers, Score: p.Score,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return m.Projects[id], nil
}

func (m *MockProjectRepository) GetArchive(ctx context.Context, id string) ([]byte, error) {
	p := m.Projects[id]
	if p == nil {
		return nil, nil
	}
	return p.Archive, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *models.Project) error {
	m.Projects[project.ID] = project
	return nil
}

func (m *MockProjectRepository) UpdateScore(ctx context.Context, id string, score float64) error {
	m.ScoreCalls++
	if p := m.Projects[id]; p != nil {
		p.Score = score
	}
	return nil
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	delete(m.Projects, id)
	if m.Comments != nil {
		m.Comments.DeleteByProject(id)
	}
	return nil
}
