package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticles_CreateAndGet(t *testing.T) {
	s := newTestServer(t, 100)
	id := s.createRoot("# Welcome")

	w := s.do(http.MethodGet, fmt.Sprintf("/api/articles/%d/", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.ElementsMatch(t, []string{
		"id", "url", "created", "modified",
		"group_read", "group_write", "other_read", "other_write",
		"owner", "group", "current_revision", "attachments",
	}, keys(body))
	assert.Equal(t, fmt.Sprintf("http://example.com/api/articles/%d/", id), body["url"])
	assert.Equal(t, true, body["other_read"])
	assert.Equal(t, "admin", body["owner"].(map[string]any)["username"])

	current := body["current_revision"].(map[string]any)
	assert.Equal(t, "Root", current["title"])
	assert.Equal(t, float64(1), current["revision_number"])
	assert.Nil(t, current["previous_revision"])
	assert.Empty(t, body["attachments"])

	w = s.do(http.MethodPost, "/api/articles/", gin.H{"parent": nil, "title": "Other", "content": ""})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"detail":"Failed to create article. A root article already exists"}`, w.Body.String())
}

func TestArticles_CreateValidation(t *testing.T) {
	s := newTestServer(t, 100)

	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{
			name: "missing fields",
			body: gin.H{},
			want: `{"parent":["This field is required."],"title":["This field is required."],"content":["This field is required."]}`,
		},
		{
			name: "blank title",
			body: gin.H{"parent": nil, "title": "  ", "content": ""},
			want: `{"title":["This field may not be blank."]}`,
		},
		{
			name: "bad slug",
			body: gin.H{"parent": nil, "title": "Root", "slug": "a b", "content": ""},
			want: `{"slug":["Enter a valid “slug” consisting of letters, numbers, underscores or hyphens."]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/articles/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}
}

func TestArticles_ChildSlugConflict(t *testing.T) {
	s := newTestServer(t, 100)
	root := s.createRoot("")

	child := gin.H{"parent": root, "title": "Child", "content": "child"}
	w := s.do(http.MethodPost, "/api/articles/", child)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/articles/", child)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "non_field_errors")

	w = s.do(http.MethodPost, "/api/articles/", gin.H{"parent": 999, "title": "Lost", "content": ""})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticles_UpdateAndRevisions(t *testing.T) {
	s := newTestServer(t, 100)
	id := s.createRoot("first")
	path := fmt.Sprintf("/api/articles/%d/", id)

	w := s.do(http.MethodPut, path, gin.H{"title": "Root", "content": "  second  ", "user_message": "edit"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	current := decode(t, w)["current_revision"].(map[string]any)
	assert.Equal(t, float64(2), current["revision_number"])
	assert.Equal(t, "Root", current["title"])

	revision, err := s.services.Revisions.GetRevision(context.TODO(), id, uint(current["id"].(float64)))
	require.NoError(t, err)
	assert.Equal(t, "second", revision.Content)

	w = s.do(http.MethodPost, path+"revisions/", gin.H{"title": "Renamed", "content": "third"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	current = decode(t, w)["current_revision"].(map[string]any)
	assert.Equal(t, "Renamed", current["title"])

	w = s.do(http.MethodGet, path+"revisions/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.Equal(t, float64(3), page["count"])

	revisionID := uint(current["id"].(float64))
	w = s.do(http.MethodGet, fmt.Sprintf("%srevisions/%d/", path, revisionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "third", body["content"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["username"])
	assert.NotNil(t, body["previous_revision"])

	w = s.do(http.MethodPost, path+"revisions/", gin.H{"content": "fourth"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	current = decode(t, w)["current_revision"].(map[string]any)
	assert.Equal(t, "Renamed", current["title"])
	assert.Equal(t, float64(4), current["revision_number"])

	w = s.do(http.MethodPut, "/api/articles/999/", gin.H{"title": "x", "content": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArticles_UpdateValidation(t *testing.T) {
	s := newTestServer(t, 100)
	id := s.createRoot("first")
	path := fmt.Sprintf("/api/articles/%d/", id)

	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{
			name: "missing title",
			body: gin.H{"content": "second"},
			want: `{"title":["This field is required."]}`,
		},
		{
			name: "null title",
			body: gin.H{"title": nil, "content": "second"},
			want: `{"title":["This field may not be null."]}`,
		},
		{
			name: "blank title",
			body: gin.H{"title": " ", "content": "second"},
			want: `{"title":["This field may not be blank."]}`,
		},
		{
			name: "missing content",
			body: gin.H{"title": "Root"},
			want: `{"content":["This field is required."]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPut, path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}

	revisions, total, err := s.services.Revisions.ListRevisions(context.TODO(), id, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, revisions, 1)
}

func TestArticles_HTML(t *testing.T) {
	s := newTestServer(t, 100)
	id := s.createRoot("# Title\n\n<script>alert(1)</script>\n\n*hi*")

	w := s.do(http.MethodGet, fmt.Sprintf("/api/articles/%d/html/", id), nil)
	require.Equal(t, http.StatusOK, w.Code)

	html := decode(t, w)["html"].(string)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<em>hi</em>")
	assert.NotContains(t, html, "<script>")
}

func TestArticles_Pagination(t *testing.T) {
	s := newTestServer(t, 2)
	root := s.createRoot("")
	for i := 0; i < 3; i++ {
		w := s.do(http.MethodPost, "/api/articles/", gin.H{"parent": root, "title": fmt.Sprintf("Page %d", i), "content": ""})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/api/articles/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.Equal(t, float64(4), page["count"])
	assert.Equal(t, "http://example.com/api/articles/?page=2", page["next"])
	assert.Nil(t, page["previous"])
	require.Len(t, page["results"], 2)
	for _, result := range page["results"].([]any) {
		assert.ElementsMatch(t, []string{"id", "url", "current_revision"}, keys(result))
	}

	w = s.do(http.MethodGet, "/api/articles/?page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decode(t, w)
	assert.Nil(t, page["next"])
	assert.Equal(t, "http://example.com/api/articles/", page["previous"])

	for _, bad := range []string{"3", "0", "abc"} {
		w = s.do(http.MethodGet, "/api/articles/?page="+bad, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, bad)
		assert.JSONEq(t, `{"detail":"Invalid page."}`, w.Body.String())
	}
}

func TestArticles_URLPaths(t *testing.T) {
	s := newTestServer(t, 100)
	root := s.createRoot("")
	w := s.do(http.MethodPost, "/api/articles/", gin.H{"parent": root, "title": "Child", "slug": "kid", "content": ""})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/urls/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, strings.Count(w.Body.String(), `"slug"`))

	urls, err := s.services.URLs.ListURLPaths(context.TODO())
	require.NoError(t, err)
	var childID uint
	for _, u := range urls {
		if u.ParentID != nil {
			childID = u.ID
		}
	}

	w = s.do(http.MethodGet, fmt.Sprintf("/api/urls/%d/", childID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "kid/", body["path"])
	assert.NotNil(t, body["parent_url"])
}

func TestAttachments(t *testing.T) {
	s := newTestServer(t, 100)
	id := s.createRoot("")

	attachment, err := s.services.Attachments.Upload(context.TODO(), service.UploadParams{
		ArticleID: id,
		Filename:  "notes.txt",
		Body:      strings.NewReader("hello"),
	})
	require.NoError(t, err)

	base := fmt.Sprintf("/api/articles/%d/attachments/%d/", id, attachment.ID)

	w := s.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "notes.txt", decode(t, w)["original_filename"])

	w = s.do(http.MethodGet, base+"download/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", w.Body.String())
	assert.Equal(t, "attachment; filename=notes.txt", w.Header().Get("Content-Disposition"))

	w = s.do(http.MethodGet, base+"revisions/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/articles/%d/attachments/%d/", id+1, attachment.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
