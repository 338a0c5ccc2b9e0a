package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listURLPaths returns every url path without pagination.
func (h *Handler) listURLPaths(c *gin.Context) {
	paths, err := h.services.URLs.ListURLPaths(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	l := newLinker(c)
	results := make([]URLPathView, 0, len(paths))
	for _, p := range paths {
		results = append(results, urlPathView(l, p))
	}

	c.JSON(http.StatusOK, results)
}

func (h *Handler) getURLPath(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	path, err := h.services.URLs.GetURLPath(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	full, err := h.services.URLs.Path(c.Request.Context(), path)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, urlPathDetailView(newLinker(c), path, full))
}
