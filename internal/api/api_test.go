package api_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/club-portal-api/internal/api"
	"github.com/club-portal-api/internal/config"
	"github.com/club-portal-api/internal/mocks"
	"github.com/club-portal-api/internal/repository"
	"github.com/club-portal-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type testServer struct {
	Router *gin.Engine
	Scorer *mocks.MockScorer
}

func setupTestRouter() *testServer {
	gin.SetMode(gin.TestMode)

	comments := mocks.NewMockCommentRepository()
	projects := mocks.NewMockProjectRepository()
	projects.Comments = comments
	profiles := mocks.NewMockProfileRepository()
	users := mocks.NewMockUserRepository()
	users.Profiles = profiles

	repos := &repository.Repositories{
		User:    users,
		Token:   mocks.NewMockTokenRepository(),
		Profile: profiles,
		Board:   mocks.NewMockBoardRepository(),
		Comment: comments,
		Project: projects,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth:   config.AuthConfig{TokenTTL: time.Hour},
		Upload: config.UploadConfig{
			MaxUploadSize:   10 * 1024 * 1024,
			MaxEntries:      1024,
			MaxUncompressed: 64 * 1024 * 1024,
			PreviewExts:     []string{".py", ".txt"},
		},
	}

	scorer := mocks.NewMockScorer(42)
	log := zerolog.Nop()
	services := service.NewServices(repos, scorer, cfg, log)

	return &testServer{
		Router: api.NewRouter(services, cfg, log),
		Scorer: scorer,
	}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token
func (ts *testServer) register(t *testing.T, username string) string {
	t.Helper()

	w := ts.do(t, "POST", "/api/register", "", map[string]string{
		"username":  username,
		"email":     username + "@club.test",
		"password":  "correct-horse",
		"password2": "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Register returned %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatal("Expected a token from register")
	}
	return resp.Token
}

// uploadProject posts a multipart project create and returns the recorder
func (ts *testServer) uploadProject(t *testing.T, token string, archive []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("team_name", "Team Rocket")
	mw.WriteField("team_members", "jessie,james")
	mw.WriteField("description", "demo project")
	fw, err := mw.CreateFormFile("code_file", "submission.zip")
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	fw.Write(archive)
	mw.Close()

	req := httptest.NewRequest("POST", "/api/projects", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func testZip(t *testing.T, entries [][2]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		if err != nil {
			t.Fatalf("Create %q failed: %v", e[0], err)
		}
		w.Write([]byte(e[1]))
	}
	zw.Close()
	return buf.Bytes()
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestRouter()

	w := ts.do(t, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "club-portal-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ts := setupTestRouter()
	ts.register(t, "alice")

	w := ts.do(t, "POST", "/api/login", "", map[string]string{
		"username": "alice",
		"password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Login returned %d: %s", w.Code, w.Body.String())
	}

	w = ts.do(t, "POST", "/api/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for bad password, got %d", w.Code)
	}
}

func TestBoardCreateRequiresAuth(t *testing.T) {
	ts := setupTestRouter()

	w := ts.do(t, "POST", "/api/boards", "", map[string]string{
		"school_id": "20241234",
		"title":     "t",
		"content":   "c",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous create, got %d", w.Code)
	}

	// Reads stay open to anonymous users
	w = ts.do(t, "GET", "/api/boards", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for anonymous list, got %d", w.Code)
	}
}

func TestBoardOwnershipEnforced(t *testing.T) {
	ts := setupTestRouter()
	owner := ts.register(t, "owner")
	intruder := ts.register(t, "intruder")

	w := ts.do(t, "POST", "/api/boards", owner, map[string]string{
		"school_id": "20241234",
		"title":     "Before",
		"content":   "c",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create returned %d: %s", w.Code, w.Body.String())
	}
	var board struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &board)

	w = ts.do(t, "PATCH", "/api/boards/"+board.ID, intruder, map[string]string{"title": "After"})
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-owner patch, got %d", w.Code)
	}

	w = ts.do(t, "DELETE", "/api/boards/"+board.ID, intruder, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-owner delete, got %d", w.Code)
	}

	w = ts.do(t, "DELETE", "/api/boards/"+board.ID, owner, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for owner delete, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body on 204, got %q", w.Body.String())
	}
}

func TestProjectUploadPipeline(t *testing.T) {
	ts := setupTestRouter()
	token := ts.register(t, "alice")

	data := testZip(t, [][2]string{
		{"proj1/main.py", "print('hi')\n"},
		{"proj1/readme.txt", "readme\n"},
	})

	w := ts.uploadProject(t, token, data)
	if w.Code != http.StatusCreated {
		t.Fatalf("Upload returned %d: %s", w.Code, w.Body.String())
	}

	var project struct {
		ID                string  `json:"id"`
		TopLevelDirectory string  `json:"top_level_directory"`
		FileSize          int64   `json:"file_size"`
		Score             float64 `json:"score"`
	}
	json.Unmarshal(w.Body.Bytes(), &project)

	if project.TopLevelDirectory != "proj1" {
		t.Errorf("Expected 'proj1', got %q", project.TopLevelDirectory)
	}
	if project.FileSize != int64(len(data)) {
		t.Errorf("Expected file size %d, got %d", len(data), project.FileSize)
	}
	if project.Score != 42 {
		t.Errorf("Expected score 42, got %f", project.Score)
	}

	// Preview returns only the allow-listed text entries
	w = ts.do(t, "GET", "/api/projects/"+project.ID+"/code-preview", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Preview returned %d: %s", w.Code, w.Body.String())
	}
	var contents map[string]string
	json.Unmarshal(w.Body.Bytes(), &contents)
	if len(contents) != 2 {
		t.Errorf("Expected 2 preview entries, got %d", len(contents))
	}
	if contents["proj1/main.py"] != "print('hi')\n" {
		t.Errorf("Unexpected preview content: %q", contents["proj1/main.py"])
	}
}

func TestProjectUploadInvalidArchive(t *testing.T) {
	ts := setupTestRouter()
	token := ts.register(t, "alice")

	w := ts.uploadProject(t, token, []byte("not a zip"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid archive, got %d", w.Code)
	}

	// Nothing was persisted
	w = ts.do(t, "GET", "/api/projects", "", nil)
	var list []json.RawMessage
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Errorf("Expected no projects, got %d", len(list))
	}
}

func TestProjectUploadRequiresAuth(t *testing.T) {
	ts := setupTestRouter()

	data := testZip(t, [][2]string{{"p/a.py", "x"}})
	w := ts.uploadProject(t, "", data)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous upload, got %d", w.Code)
	}
}

func TestProjectNotFound(t *testing.T) {
	ts := setupTestRouter()

	w := ts.do(t, "GET", "/api/projects/missing", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	w = ts.do(t, "GET", "/api/projects/missing/code-preview", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing preview, got %d", w.Code)
	}
}

func TestPreviewUndecodableEntry(t *testing.T) {
	ts := setupTestRouter()
	token := ts.register(t, "alice")

	data := testZip(t, [][2]string{{"p/bad.py", "\xff\xfe\x00\x80"}})
	w := ts.uploadProject(t, token, data)
	if w.Code != http.StatusCreated {
		t.Fatalf("Upload returned %d: %s", w.Code, w.Body.String())
	}
	var project struct {
		ID string `json:"id"`
	}
	json.Unmarshal(w.Body.Bytes(), &project)

	w = ts.do(t, "GET", "/api/projects/"+project.ID+"/code-preview", "", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for undecodable entry, got %d", w.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	ts := setupTestRouter()
	token := ts.register(t, "alice")

	w := ts.do(t, "POST", "/api/logout", token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("Logout returned %d: %s", w.Code, w.Body.String())
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected empty body on 204, got %q", w.Body.String())
	}

	w = ts.do(t, "POST", "/api/boards", token, map[string]string{
		"school_id": "1", "title": "t", "content": "c",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 after logout, got %d", w.Code)
	}
}
