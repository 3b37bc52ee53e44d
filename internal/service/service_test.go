package service_test

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/club-portal-api/internal/config"
	"github.com/club-portal-api/internal/mocks"
	"github.com/club-portal-api/internal/repository"
	"github.com/club-portal-api/internal/service"
	"github.com/rs/zerolog"
)

// testEnv bundles the mocks behind a Services instance
type testEnv struct {
	Services *service.Services
	Users    *mocks.MockUserRepository
	Tokens   *mocks.MockTokenRepository
	Profiles *mocks.MockProfileRepository
	Boards   *mocks.MockBoardRepository
	Comments *mocks.MockCommentRepository
	Projects *mocks.MockProjectRepository
	Scorer   *mocks.MockScorer
}

func newTestEnv() *testEnv {
	env := &testEnv{
		Users:    mocks.NewMockUserRepository(),
		Tokens:   mocks.NewMockTokenRepository(),
		Profiles: mocks.NewMockProfileRepository(),
		Boards:   mocks.NewMockBoardRepository(),
		Comments: mocks.NewMockCommentRepository(),
		Projects: mocks.NewMockProjectRepository(),
		Scorer:   mocks.NewMockScorer(75),
	}
	env.Users.Profiles = env.Profiles
	env.Projects.Comments = env.Comments

	repos := &repository.Repositories{
		User:    env.Users,
		Token:   env.Tokens,
		Profile: env.Profiles,
		Board:   env.Boards,
		Comment: env.Comments,
		Project: env.Projects,
	}

	cfg := &config.Config{
		Auth: config.AuthConfig{TokenTTL: time.Hour},
		Upload: config.UploadConfig{
			MaxUploadSize:   10 * 1024 * 1024,
			MaxEntries:      1024,
			MaxUncompressed: 64 * 1024 * 1024,
			PreviewExts:     []string{".py", ".txt"},
		},
	}

	env.Services = service.NewServices(repos, env.Scorer, cfg, zerolog.Nop())
	return env
}

// zipBytes assembles an in-memory ZIP in entry order
func zipBytes(t *testing.T, entries [][2]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		if err != nil {
			t.Fatalf("Create %q failed: %v", e[0], err)
		}
		if _, err := w.Write([]byte(e[1])); err != nil {
			t.Fatalf("Write %q failed: %v", e[0], err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return buf.Bytes()
}
