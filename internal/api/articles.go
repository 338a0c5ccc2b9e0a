package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/emrgen/wiki/internal/auth"
	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/service"
	"github.com/emrgen/wiki/internal/store"
	"github.com/gin-gonic/gin"
)

type permissionsRequest struct {
	Group      Nullable[uint] `json:"group"`
	GroupRead  *bool          `json:"group_read"`
	GroupWrite *bool          `json:"group_write"`
	OtherRead  *bool          `json:"other_read"`
	OtherWrite *bool          `json:"other_write"`
}

type createArticleRequest struct {
	Parent      Nullable[uint]      `json:"parent"`
	Title       Nullable[string]    `json:"title"`
	Slug        Nullable[string]    `json:"slug"`
	Content     Nullable[string]    `json:"content"`
	Summary     Nullable[string]    `json:"summary"`
	Permissions *permissionsRequest `json:"permissions"`
}

func (r *createArticleRequest) params() (service.CreateArticleParams, error) {
	var f fieldErrors

	f.present("parent", r.Parent.Set, r.Parent.Valid, true)

	title := strings.TrimSpace(r.Title.Value)
	if f.present("title", r.Title.Set, r.Title.Valid, false) {
		f.text("title", title, 200)
	}

	articleSlug := strings.TrimSpace(r.Slug.Value)
	if articleSlug != "" {
		f.check("slug", articleSlug, "max=50,slug")
	}

	f.present("content", r.Content.Set, r.Content.Valid, false)

	summary := strings.TrimSpace(r.Summary.Value)
	if f.notNull("summary", r.Summary.Set, r.Summary.Valid) {
		f.check("summary", summary, "max=255")
	}

	perms := service.DefaultArticlePermissions()
	if p := r.Permissions; p != nil {
		perms.GroupID = p.Group.Ptr()
		for _, flag := range []struct {
			value *bool
			dst   *bool
		}{
			{p.GroupRead, &perms.GroupRead},
			{p.GroupWrite, &perms.GroupWrite},
			{p.OtherRead, &perms.OtherRead},
			{p.OtherWrite, &perms.OtherWrite},
		} {
			if flag.value != nil {
				*flag.dst = *flag.value
			}
		}
	}

	return service.CreateArticleParams{
		ParentID:    r.Parent.Ptr(),
		Title:       title,
		Slug:        articleSlug,
		Content:     r.Content.Value,
		Summary:     summary,
		Permissions: perms,
	}, f.err()
}

type revisionRequest struct {
	Title       Nullable[string] `json:"title"`
	Content     Nullable[string] `json:"content"`
	UserMessage Nullable[string] `json:"user_message"`
}

// params validates a new revision. With requireTitle unset a missing title
// keeps the current one.
func (r *revisionRequest) params(c *gin.Context, requireTitle bool) (service.RevisionParams, error) {
	var f fieldErrors

	var hasTitle bool
	if requireTitle {
		hasTitle = f.present("title", r.Title.Set, r.Title.Valid, false)
	} else {
		hasTitle = r.Title.Set && f.notNull("title", r.Title.Set, r.Title.Valid)
	}

	var title *string
	if hasTitle {
		t := strings.TrimSpace(r.Title.Value)
		f.text("title", t, 255)
		title = &t
	}

	f.present("content", r.Content.Set, r.Content.Valid, true)

	message := strings.TrimSpace(r.UserMessage.Value)
	if f.notNull("user_message", r.UserMessage.Set, r.UserMessage.Valid) {
		f.check("user_message", message, "max=255")
	}

	params := service.RevisionParams{
		Title:       title,
		Content:     r.Content.Value,
		UserMessage: message,
		IPAddress:   clientIP(c),
	}
	if user := auth.CurrentUser(c); user != nil {
		params.UserID = &user.ID
	}

	return params, f.err()
}

func (h *Handler) listArticles(c *gin.Context) {
	page, err := parsePage(c, h.pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}

	articles, total, err := h.services.Articles.ListArticles(c.Request.Context(), page.offset(), page.size)
	if err != nil {
		abortWithError(c, err)
		return
	}

	l := newLinker(c)
	results := make([]ArticleSummaryView, 0, len(articles))
	for _, a := range articles {
		results = append(results, articleSummaryView(l, a))
	}

	resp, err := newPage(c, page, total, results)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getArticle(c *gin.Context) {
	article, ok := h.article(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, articleView(newLinker(c), article))
}

// article loads the article named by the :id parameter.
func (h *Handler) article(c *gin.Context) (*model.Article, bool) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}

	article, err := h.services.Articles.GetArticle(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}

	return article, true
}

func (h *Handler) createArticle(c *gin.Context) {
	var req createArticleRequest
	if !bindJSON(c, &req) {
		return
	}

	params, err := req.params()
	if err != nil {
		abortWithError(c, err)
		return
	}
	params.IPAddress = clientIP(c)
	if user := auth.CurrentUser(c); user != nil {
		params.UserID = &user.ID
	}

	article, err := h.services.Articles.CreateArticle(c.Request.Context(), params)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr), errors.Is(err, store.ErrNotFound):
			abortWithError(c, err)
		case errors.Is(err, service.ErrRootExists):
			c.AbortWithStatusJSON(http.StatusConflict, detail("Failed to create article. A root article already exists"))
		case errors.Is(err, service.ErrSlugConflict):
			c.AbortWithStatusJSON(http.StatusConflict, detail("Failed to create article. Conflicting slug under the same parent"))
		default:
			c.AbortWithStatusJSON(http.StatusBadRequest, detail("Failed to create article: "+err.Error()))
		}
		return
	}

	c.JSON(http.StatusCreated, articleView(newLinker(c), article))
}

func (h *Handler) updateArticle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	var req revisionRequest
	if !bindJSON(c, &req) {
		return
	}

	params, err := req.params(c, true)
	if err != nil {
		abortWithError(c, err)
		return
	}

	article, err := h.services.Articles.UpdateArticle(c.Request.Context(), id, params)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleView(newLinker(c), article))
}

func (h *Handler) articleHTML(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, err)
		return
	}

	html, err := h.services.Articles.RenderHTML(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, HTMLView{HTML: html})
}
