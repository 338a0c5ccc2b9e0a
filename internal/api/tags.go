package api

import (
	"errors"
	"net/http"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
)

type tagRequest struct {
	Name Nullable[string] `json:"name"`
	Slug Nullable[string] `json:"slug"`
}

type tagFormRequest struct {
	AddTag    Nullable[uint] `json:"add_tag"`
	RemoveTag Nullable[uint] `json:"remove_tag"`
}

func (h *Handler) listTags(c *gin.Context) {
	tags, err := h.services.Tags.ListTags(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tagViews(tags))
}

func (h *Handler) createTag(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req) {
		return
	}

	var f fieldErrors
	if f.present("name", req.Name.Set, req.Name.Valid, false) {
		f.text("name", req.Name.Value, 100)
	}
	if f.notNull("slug", req.Slug.Set, req.Slug.Valid) && req.Slug.Value != "" {
		f.check("slug", req.Slug.Value, "max=100,slug")
	}
	if err := f.err(); err != nil {
		abortWithError(c, err)
		return
	}

	tag, err := h.services.Tags.CreateTag(c.Request.Context(), req.Name.Value, req.Slug.Value)
	if err != nil {
		if errors.Is(err, service.ErrTagExists) {
			err = service.NewFieldError("name", msgTagUsed)
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tagViews([]*model.Tag{tag})[0])
}

func (h *Handler) articleTags(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	form, err := h.services.Tags.Form(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, tagFormView(form))
}

func (h *Handler) saveArticleTags(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req tagFormRequest
	if !bindJSON(c, &req) {
		return
	}

	form, err := h.services.Tags.SaveForm(c.Request.Context(), id, req.AddTag.Ptr(), req.RemoveTag.Ptr())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, TagFormResultView{
		Message: service.MsgTagsUpdated,
		Tags:    tagViews(form.Tags),
	})
}
