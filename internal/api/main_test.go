package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/emrgen/wiki/internal/auth"
	"github.com/emrgen/wiki/internal/cache"
	"github.com/emrgen/wiki/internal/compress"
	"github.com/emrgen/wiki/internal/service"
	"github.com/emrgen/wiki/internal/storage"
	"github.com/emrgen/wiki/internal/store"
	"github.com/emrgen/wiki/internal/tester"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "0123456789abcdef0123456789abcdef"
	testUsername = "admin"
	testPassword = "admin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	tester.Setup()
	code := m.Run()
	tester.Teardown()

	os.Exit(code)
}

type testServer struct {
	t        *testing.T
	router   *gin.Engine
	services Services
}

// newTestServer serves the api on a fresh database with an admin user.
func newTestServer(t *testing.T, pageSize int) *testServer {
	t.Helper()
	tester.Setup()

	s := store.NewGormStore(tester.TestDB())
	blobs, err := storage.NewLocal(tester.StoragePath(), compress.NewNop())
	require.NoError(t, err)

	articles := service.NewArticleService(s, cache.NewMemory())
	services := Services{
		Articles:    articles,
		Revisions:   service.NewRevisionService(s, articles),
		Attachments: service.NewAttachmentService(s, blobs),
		URLs:        service.NewURLPathService(s),
		Users:       service.NewUserService(s),
		Groups:      service.NewGroupService(s),
		Tags:        service.NewTagService(s),
		Auth:        service.NewAuthService(s),
	}

	_, err = services.Users.EnsureAdmin(context.TODO(), testUsername, testPassword)
	require.NoError(t, err)

	sessions, err := auth.NewSessions(testSecret, "wiki-session")
	require.NoError(t, err)

	router := gin.New()
	router.Use(auth.RequireUser(auth.DefaultPolicy(), sessions, services.Auth))
	NewHandler(services, sessions, pageSize).Register(router)

	return &testServer{t: t, router: router, services: services}
}

// do sends body as json with the admin's basic credentials.
func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(testUsername, testPassword)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decode reads a json response into a generic value.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var v map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// keys returns the top level keys of a decoded JSON object.
func keys(v any) []string {
	m, _ := v.(map[string]any)
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// createRoot creates the root article through the api and returns its id.
func (s *testServer) createRoot(content string) uint {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/articles/", gin.H{
		"parent":  nil,
		"title":   "Root",
		"content": content,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	return uint(decode(s.t, w)["id"].(float64))
}
