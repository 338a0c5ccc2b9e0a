package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
)

type groupRequest struct {
	Name Nullable[string] `json:"name"`
}

func (r *groupRequest) name() (string, error) {
	var f fieldErrors

	name := strings.TrimSpace(r.Name.Value)
	if f.present("name", r.Name.Set, r.Name.Valid, false) {
		f.text("name", name, 150)
	}

	return name, f.err()
}

func (h *Handler) listGroups(c *gin.Context) {
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	groups, total, err := h.services.Groups.ListGroups(c.Request.Context(), page.offset(), page.size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	l := newLinker(c)
	results := make([]GroupView, 0, len(groups))
	for _, g := range groups {
		results = append(results, groupView(l, g))
	}

	resp, err := newPage(c, page, total, results)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getGroup(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	group, err := h.services.Groups.GetGroup(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, groupView(newLinker(c), group))
}

func (h *Handler) createGroup(c *gin.Context) {
	var req groupRequest
	if !bindJSON(c, &req) {
		return
	}

	name, err := req.name()
	if err != nil {
		abortWithError(c, err)
		return
	}

	group, err := h.services.Groups.CreateGroup(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, groupError(err))
		return
	}

	c.JSON(http.StatusCreated, groupView(newLinker(c), group))
}

func (h *Handler) replaceGroup(c *gin.Context) {
	h.updateGroup(c, false)
}

func (h *Handler) patchGroup(c *gin.Context) {
	h.updateGroup(c, true)
}

func (h *Handler) updateGroup(c *gin.Context, partial bool) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	group, err := h.services.Groups.GetGroup(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req groupRequest
	if !bindJSON(c, &req) {
		return
	}

	if partial && !req.Name.Set {
		c.JSON(http.StatusOK, groupView(newLinker(c), group))
		return
	}

	name, err := req.name()
	if err != nil {
		abortWithError(c, err)
		return
	}

	group, err = h.services.Groups.RenameGroup(c.Request.Context(), id, name)
	if err != nil {
		abortWithError(c, groupError(err))
		return
	}

	c.JSON(http.StatusOK, groupView(newLinker(c), group))
}

func (h *Handler) deleteGroup(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.services.Groups.DeleteGroup(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func groupError(err error) error {
	if errors.Is(err, service.ErrGroupNameTaken) {
		return service.NewFieldError("name", msgGroupUsed)
	}
	return err
}
