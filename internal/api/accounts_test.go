package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s := newTestServer(t, 100)

	login := func(path, contentType, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := login("/_accounts/login/", "application/json", `{"username":"admin","password":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"non_field_errors":["Unable to log in with provided credentials."]}`, w.Body.String())

	w = login("/_accounts/login/", "application/json", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"username":["This field is required."],"password":["This field is required."]}`, w.Body.String())

	form := url.Values{"username": {"admin"}, "password": {"admin"}}
	w = login("/admin/login/", "application/x-www-form-urlencoded", form.Encode())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode(t, w)["last_login"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/_accounts/logout/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"detail":"Successfully logged out."}`, w.Body.String())
}

func TestAnonymousForbidden(t *testing.T) {
	s := newTestServer(t, 100)

	tests := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/api/articles/", ""},
		{http.MethodGet, "/api/users/", ""},
		{http.MethodPost, "/api/users/", `{"username":"test-user-1","email":"test-user-1@example.com","password":"helloworld"}`},
		{http.MethodGet, "/api/users/1/", ""},
		{http.MethodPatch, "/api/users/1/", `{"first_name":"New Name"}`},
		{http.MethodDelete, "/api/users/1/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			s.router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, w.Body.String())
		})
	}

	admin, err := s.services.Users.GetUser(context.TODO(), 1)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Empty(t, admin.FirstName)
}
