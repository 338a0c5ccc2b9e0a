package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	s := newTestServer(t, 100)
	id := s.createRoot("")
	path := fmt.Sprintf("/api/articles/%d/tags/", id)

	w := s.do(http.MethodPost, "/api/tags/", gin.H{"name": "Go Lang"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tag := decode(t, w)
	assert.Equal(t, "go-lang", tag["slug"])

	w = s.do(http.MethodPost, "/api/tags/", gin.H{"name": "Go Lang"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"name":["tag with this name already exists."]}`, w.Body.String())

	w = s.do(http.MethodGet, "/api/tags/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`[{"id":%v,"name":"Go Lang","slug":"go-lang"}]`, tag["id"]), w.Body.String())

	w = s.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	form := decode(t, w)
	assert.Empty(t, form["tags"])
	assert.Len(t, form["add_choices"], 1)
	assert.Empty(t, form["remove_choices"])

	w = s.do(http.MethodPost, path, gin.H{"add_tag": tag["id"]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode(t, w)
	assert.Equal(t, "Tags for this article have been updated", result["message"])
	assert.Len(t, result["tags"], 1)

	w = s.do(http.MethodPost, path, gin.H{"remove_tag": 999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"remove_tag":["Select a valid choice. That choice is not one of the available choices."]}`, w.Body.String())

	w = s.do(http.MethodPost, path, gin.H{"remove_tag": tag["id"]})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decode(t, w)["tags"])

	w = s.do(http.MethodGet, "/api/articles/999/tags/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
