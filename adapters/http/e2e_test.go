package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/portfolio/adapters/github_contents"
	"github.com/khoahotran/portfolio/adapters/media_storage"
	"github.com/khoahotran/portfolio/adapters/persistence"
	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/internal/application/usecase/backup"
	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio/internal/application/usecase/editor"
	feedUC "github.com/khoahotran/portfolio/internal/application/usecase/feed"
	mediaUC "github.com/khoahotran/portfolio/internal/application/usecase/media"
	"github.com/khoahotran/portfolio/internal/application/usecase/publish"
	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/codec"
	"github.com/khoahotran/portfolio/internal/defaults"
	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const adminPassword = "e2e_test_password_123"

// fakeGitHub is a minimal contents API: one file, GET for its sha, PUT to replace it.
type fakeGitHub struct {
	mu      sync.Mutex
	sha     string
	content []byte
	message string
	puts    int
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path != "/repos/me/site/contents/src/constants.ts" {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]string{"type": "file", "sha": f.sha, "path": "src/constants.ts"})
	case http.MethodPut:
		var body struct {
			Message string `json:"message"`
			Content []byte `json:"content"`
			SHA     string `json:"sha"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.SHA != f.sha {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"sha does not match"}`))
			return
		}
		f.content, f.message, f.sha = body.Content, body.Message, "next-sha"
		f.puts++
		_, _ = w.Write([]byte(`{"content":{"sha":"next-sha"}}`))
	}
}

func (f *fakeGitHub) putCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.puts
}

func (f *fakeGitHub) pushed() ([]byte, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content, f.message
}

type E2ETestSuite struct {
	suite.Suite
	Router  *gin.Engine
	storage storage.Storage
	github  *fakeGitHub
	ghSrv   *httptest.Server
}

func (s *E2ETestSuite) SetupTest() {
	log := logger.NewNop()
	s.storage = persistence.NewMemoryStorage()
	s.github = &fakeGitHub{sha: "first-sha"}
	s.ghSrv = httptest.NewServer(s.github)

	store := state.NewStore(s.storage, defaults.MustLoad(), nil, log)
	store.Init(context.Background())

	sessions := authUC.NewSessionRegistry(time.Hour)
	workspaces := editor.NewWorkspaces()
	jwtSvc := auth.NewJWTService("e2e-secret", time.Hour)

	contents, err := github_contents.NewContentsClient(s.ghSrv.URL, s.ghSrv.Client())
	s.Require().NoError(err)
	exportUC := publish.NewExportUseCase(store, codec.TypeScript{}, nil)
	configUC := publish.NewConfigUseCase(s.storage, "src/constants.ts", log)
	publishUC := publish.NewPublishUseCase(exportUC, configUC, contents, publish.NewStatusTracker(), nil, log, nil)
	uploadUC := mediaUC.NewUploadUseCase(store, media_storage.NewDataURLAdapter(), "portfolio", 512, 2<<20, log)

	h := Handlers{
		Auth: NewAuthHandler(
			authUC.NewLoginUseCase(auth.NewStaticVerifier(adminPassword), sessions, jwtSvc, log),
			authUC.NewLogoutUseCase(sessions, workspaces, log),
			sessions, log,
		),
		Portfolio:   NewPortfolioHandler(store, exportUC, log),
		Profile:     NewProfileHandler(editor.NewProfileEditor(store, workspaces), log),
		Projects:    NewProjectHandler(editor.NewProjectEditor(store, workspaces, nil), log),
		Experiences: NewExperienceHandler(editor.NewExperienceEditor(store, workspaces, nil), log),
		Skills:      NewSkillHandler(editor.NewSkillsEditor(store, workspaces), log),
		Publish:     NewPublishHandler(configUC, publishUC, log),
		Media:       NewMediaHandler(uploadUC, 2<<20, log),
		Contact:     NewContactHandler(contactUC.NewContactUseCase(store)),
		Feed:        NewFeedHandler(feedUC.NewProjectsFeedUseCase(store, "http://localhost:3000", log, nil), log),
		Backup:      NewBackupHandler(backup.NewBackupUseCase(exportUC, media_storage.NewDataURLAdapter(), log)),
	}

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(h, jwtSvc, sessions, log)
}

func (s *E2ETestSuite) TearDownTest() {
	s.ghSrv.Close()
}

func (s *E2ETestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *E2ETestSuite) login() string {
	w := s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{"password": adminPassword})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["access_token"].(string)
}

func (s *E2ETestSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *E2ETestSuite) TestPublicPortfolio() {
	w := s.do(http.MethodGet, "/api/portfolio", "", nil)
	s.Equal(http.StatusOK, w.Code)

	var dto PortfolioDTO
	s.decode(w, &dto)
	s.Equal(defaults.MustLoad().Profile.Name, dto.Profile.Name)
	s.Equal(len(dto.Projects), dto.ProjectCount)
	s.Nil(dto.ResumeURL, "placeholder resume is not exposed")
}

func (s *E2ETestSuite) TestLogin() {
	s.Run("Success", func() {
		s.NotEmpty(s.login())
	})
	s.Run("Wrong password", func() {
		w := s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{"password": "nope"})
		s.Equal(http.StatusUnauthorized, w.Code)
		s.Contains(w.Body.String(), "Incorrect password")
	})
	s.Run("Missing password", func() {
		w := s.do(http.MethodPost, "/api/admin/auth/login", "", gin.H{})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *E2ETestSuite) TestAdminRoutesRequireToken() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/admin/export", "", nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/admin/export", "garbage", nil).Code)
}

func (s *E2ETestSuite) TestViewModeBlocksEditors() {
	token := s.login()
	w := s.do(http.MethodPut, "/api/admin/mode", token, gin.H{"mode": "view"})
	s.Require().Equal(http.StatusOK, w.Code)

	s.Equal(http.StatusForbidden, s.do(http.MethodPost, "/api/admin/projects", token, nil).Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/admin/export", token, nil).Code, "view mode can still export")

	s.Require().Equal(http.StatusOK, s.do(http.MethodPut, "/api/admin/mode", token, gin.H{"mode": "edit"}).Code)
	s.Equal(http.StatusCreated, s.do(http.MethodPost, "/api/admin/projects", token, nil).Code)
}

func (s *E2ETestSuite) TestLogoutEndsSession() {
	token := s.login()
	s.Equal(http.StatusNoContent, s.do(http.MethodPost, "/api/admin/logout", token, nil).Code)
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/admin/session", token, nil).Code)
}

func (s *E2ETestSuite) TestProjectLifecycle() {
	token := s.login()

	w := s.do(http.MethodPost, "/api/admin/projects", token, nil)
	s.Require().Equal(http.StatusCreated, w.Code)
	var draft editor.ProjectDraft
	s.decode(w, &draft)
	s.Equal("New Project", draft.Title)

	s.Require().Equal(http.StatusOK, s.do(http.MethodPatch, "/api/admin/projects/draft", token,
		gin.H{"field": "title", "value": "Ledger"}).Code)
	s.Require().Equal(http.StatusOK, s.do(http.MethodPatch, "/api/admin/projects/draft", token,
		gin.H{"field": "tech", "value": "Go, Postgres, "}).Code)

	w = s.do(http.MethodPost, "/api/admin/projects/"+formatInt(draft.ID)+"/save", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	raw, found, err := s.storage.Get(context.Background(), storage.KeyProjects)
	s.Require().NoError(err)
	s.Require().True(found)
	s.Contains(raw, `"title":"Ledger"`)
	s.Contains(raw, `"tech":["Go","Postgres"]`)

	s.Equal(http.StatusBadRequest, s.do(http.MethodDelete, "/api/admin/projects/"+formatInt(draft.ID), token, nil).Code)
	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/api/admin/projects/"+formatInt(draft.ID)+"?confirm=true", token, nil).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, "/api/admin/projects/"+formatInt(draft.ID)+"/edit", token, nil).Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/admin/projects/abc/edit", token, nil).Code)
}

func (s *E2ETestSuite) TestSkillsAndReset() {
	token := s.login()

	w := s.do(http.MethodPost, "/api/admin/skills", token, gin.H{"tag": "Zig"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Zig")

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/admin/reset", token, nil).Code)
	w = s.do(http.MethodPost, "/api/admin/reset?confirm=true", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), `"Zig"`)
}

func (s *E2ETestSuite) TestPublishFlow() {
	token := s.login()

	w := s.do(http.MethodPost, "/api/admin/publish", token, gin.H{"owner": "me", "repo": "site"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), publish.MsgMissingDetails)

	w = s.do(http.MethodPost, "/api/admin/publish", token, gin.H{"owner": "me", "repo": "site", "token": "ghp_x"})
	s.Require().Equal(http.StatusAccepted, w.Code, w.Body.String())

	s.Eventually(func() bool {
		w := s.do(http.MethodGet, "/api/admin/publish/status", token, nil)
		return strings.Contains(w.Body.String(), `"status":"success"`)
	}, 2*time.Second, 10*time.Millisecond)

	pushed, message := s.github.pushed()
	s.True(strings.HasPrefix(message, "Update portfolio content ("))
	snap, err := codec.TypeScript{}.Decode(pushed)
	s.Require().NoError(err)
	s.Equal(defaults.MustLoad().Profile, snap.Profile)

	w = s.do(http.MethodGet, "/api/admin/publish/config", token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.NotContains(w.Body.String(), "ghp_x")
	s.Contains(w.Body.String(), `"has_token":true`)

	// A stored config lets the next publish run with an empty body.
	s.Require().Equal(http.StatusAccepted, s.do(http.MethodPost, "/api/admin/publish", token, nil).Code)
	s.Eventually(func() bool {
		return s.github.putCount() == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *E2ETestSuite) TestSaveConfigKeepsStoredToken() {
	token := s.login()

	w := s.do(http.MethodPut, "/api/admin/publish/config", token, gin.H{"owner": "me", "repo": "site", "token": "ghp_x"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var cfg GitHubConfigDTO
	s.decode(s.do(http.MethodGet, "/api/admin/publish/config", token, nil), &cfg)
	s.True(cfg.HasToken)

	// Send back what was read, with one field edited.
	w = s.do(http.MethodPut, "/api/admin/publish/config", token, gin.H{"owner": cfg.Owner, "repo": cfg.Repo, "path": "web/data.ts"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &cfg)
	s.Equal(GitHubConfigDTO{Owner: "me", Repo: "site", Path: "web/data.ts", HasToken: true}, cfg)

	stored, found, err := s.storage.Get(context.Background(), storage.KeyGitHubToken)
	s.Require().NoError(err)
	s.True(found)
	s.Equal("ghp_x", stored)
}

func (s *E2ETestSuite) TestPublishMissingFile() {
	token := s.login()
	w := s.do(http.MethodPost, "/api/admin/publish", token, gin.H{"owner": "me", "repo": "site", "token": "t", "path": "src/other.ts"})
	s.Require().Equal(http.StatusAccepted, w.Code)

	s.Eventually(func() bool {
		w := s.do(http.MethodGet, "/api/admin/publish/status", token, nil)
		return strings.Contains(w.Body.String(), "File 'src/other.ts' not found in repo. Check the file path input.")
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *E2ETestSuite) TestResumeUploadTooLarge() {
	token := s.login()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cv.pdf")
	s.Require().NoError(err)
	_, err = part.Write(make([]byte, 2<<20+10))
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/admin/media/resume", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	s.Equal(http.StatusRequestEntityTooLarge, w.Code)
	s.Contains(w.Body.String(), "File is too large (Limit 2MB)")
}

func (s *E2ETestSuite) TestContact() {
	w := s.do(http.MethodPost, "/api/contact", "", gin.H{"name": "Bob", "email": "bob@example.com", "message": "Hello"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Portfolio%20Contact%20from%20Bob")

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, "/api/contact", "", gin.H{"name": "Bob"}).Code)
}

func (s *E2ETestSuite) TestProjectsFeed() {
	w := s.do(http.MethodGet, "/api/feed/rss", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Header().Get("Content-Type"), "application/rss+xml")
	s.Contains(w.Body.String(), "<rss")

	w = s.do(http.MethodGet, "/api/feed/atom", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "<feed")
}

func (s *E2ETestSuite) TestBackupSnapshot() {
	token := s.login()

	w := s.do(http.MethodPost, "/api/admin/backup", token, nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	var out backup.Output
	s.decode(w, &out)
	s.True(strings.HasPrefix(out.URL, "data:"))
	s.True(strings.HasPrefix(out.PublicID, "snapshot-"))
	s.True(strings.HasSuffix(out.PublicID, ".ts"))
}

func TestE2ETestSuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}
