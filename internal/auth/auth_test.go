package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/emrgen/wiki/internal/service"
	"github.com/emrgen/wiki/internal/store"
	"github.com/emrgen/wiki/internal/tester"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	tester.Setup()
	code := m.Run()
	tester.Teardown()

	os.Exit(code)
}

func TestPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.True(t, p.Public("/_accounts/login/"))
	assert.True(t, p.Public("/admin/login/"))
	assert.False(t, p.Public("/_accounts/logout/"))
	assert.False(t, p.Public("/api/users/"))
}

func TestNewSessions_ShortSecret(t *testing.T) {
	_, err := NewSessions("short", "wiki-session")
	assert.Error(t, err)
}

func TestRequireUser(t *testing.T) {
	tester.Setup()
	s := store.NewGormStore(tester.TestDB())
	users := service.NewUserService(s)
	authService := service.NewAuthService(s)

	_, err := users.EnsureAdmin(context.TODO(), "admin", "admin")
	require.NoError(t, err)

	sessions, err := NewSessions(testSecret, "wiki-session")
	require.NoError(t, err)

	router := gin.New()
	router.Use(RequireUser(DefaultPolicy(), sessions, authService))
	router.GET("/api/users/", func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})
	router.POST("/_accounts/login/", func(c *gin.Context) {
		user, err := authService.Login(c.Request.Context(), "admin", "admin")
		require.NoError(t, err)
		require.NoError(t, sessions.Login(c.Writer, c.Request, user.ID))
		c.Status(http.StatusOK)
	})

	t.Run("anonymous", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, w.Body.String())
	})

	t.Run("basic auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		req.SetBasicAuth("admin", "admin")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", w.Body.String())
	})

	t.Run("bad basic auth", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		req.SetBasicAuth("admin", "wrong")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), MsgInvalidBasicAuth)
	})

	t.Run("session", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/_accounts/login/", strings.NewReader("")))
		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", w.Body.String())
	})
}
