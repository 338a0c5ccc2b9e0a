package wiki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	var lastBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"detail":"Authentication credentials were not provided."}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/articles/":
			lastBody = nil
			_ = json.NewDecoder(r.Body).Decode(&lastBody)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"url":"http://x/api/articles/1/","current_revision":{"id":1,"title":"Root","revision_number":1}}`))
		case r.Method == http.MethodPut && r.URL.Path == "/api/articles/1/":
			lastBody = nil
			_ = json.NewDecoder(r.Body).Decode(&lastBody)
			_, _ = w.Write([]byte(`{"id":1,"url":"http://x/api/articles/1/","current_revision":{"id":2,"title":"Root","revision_number":2}}`))
		case r.URL.Path == "/api/articles/1/html/":
			_, _ = w.Write([]byte(`{"html":"<p>hi</p>"}`))
		case r.URL.Path == "/api/articles/" && r.URL.Query().Get("page") == "2":
			_, _ = w.Write([]byte(`{"count":3,"next":null,"previous":"http://x/api/articles/","results":[{"id":3,"url":"u","current_revision":null}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Not found."}`))
		}
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "admin", "secret")
	require.NoError(t, err)
	ctx := context.Background()

	article, err := c.CreateArticle(ctx, CreateArticleInput{Title: "Root", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, uint(1), article.ID)
	assert.Equal(t, "Root", article.CurrentRevision.Title)
	assert.Contains(t, lastBody, "parent")
	assert.Nil(t, lastBody["parent"])
	assert.NotContains(t, lastBody, "slug")

	article, err = c.UpdateArticle(ctx, 1, UpdateArticleInput{Title: "Root", Content: "second"})
	require.NoError(t, err)
	assert.Equal(t, 2, article.CurrentRevision.RevisionNumber)
	assert.Equal(t, "Root", lastBody["title"])
	assert.NotContains(t, lastBody, "user_message")

	html, err := c.ArticleHTML(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", html)

	page, err := c.ListArticles(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Len(t, page.Results, 1)

	_, err = c.GetArticle(ctx, 9)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	anon, err := NewClient(srv.URL, "", "")
	require.NoError(t, err)
	_, err = anon.ListURLPaths(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)

	_, err = NewClient("not a url", "", "")
	assert.Error(t, err)
}
