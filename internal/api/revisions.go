package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listRevisions(c *gin.Context) {
	articleID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	page, err := parsePage(c, h.pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	revisions, total, err := h.services.Revisions.ListRevisions(c.Request.Context(), articleID, page.offset(), page.size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	l := newLinker(c)
	results := make([]RevisionView, 0, len(revisions))
	for _, r := range revisions {
		results = append(results, revisionView(l, r))
	}

	resp, err := newPage(c, page, total, results)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getRevision(c *gin.Context) {
	articleID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}
	id, err := pathID(c, "rid")
	if err != nil {
		abortWithError(c, err)
		return
	}

	revision, err := h.services.Revisions.GetRevision(c.Request.Context(), articleID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, revisionView(newLinker(c), revision))
}

func (h *Handler) createRevision(c *gin.Context) {
	article, ok := h.article(c)
	if !ok {
		return
	}

	var req revisionRequest
	if !bindJSON(c, &req) {
		return
	}

	params, err := req.params(c, false)
	if err != nil {
		abortWithError(c, err)
		return
	}

	article, err = h.services.Revisions.CreateRevision(c.Request.Context(), article.ID, params)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, articleView(newLinker(c), article))
}
