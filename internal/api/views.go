package api

import (
	"time"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/service"
)

type GroupView struct {
	ID   uint   `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

func groupView(l linker, g *model.Group) GroupView {
	return GroupView{ID: g.ID, URL: l.group(g.ID), Name: g.Name}
}

type UserMinimalView struct {
	ID       uint   `json:"id"`
	URL      string `json:"url"`
	Username string `json:"username"`
}

func userMinimalView(l linker, u *model.User) *UserMinimalView {
	if u == nil {
		return nil
	}

	return &UserMinimalView{ID: u.ID, URL: l.user(u.ID), Username: u.Username}
}

type UserView struct {
	ID              uint        `json:"id"`
	URL             string      `json:"url"`
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	Groups          []GroupView `json:"groups"`
	IsActive        bool        `json:"is_active"`
	LastName        string      `json:"last_name"`
	IsStaff         bool        `json:"is_staff"`
	UserPermissions []uint      `json:"user_permissions"`
	FirstName       string      `json:"first_name"`
	IsSuperuser     bool        `json:"is_superuser"`
	DateJoined      time.Time   `json:"date_joined"`
	LastLogin       *time.Time  `json:"last_login"`
}

func userView(l linker, u *model.User) UserView {
	groups := make([]GroupView, 0, len(u.Groups))
	for _, g := range u.Groups {
		groups = append(groups, groupView(l, g))
	}

	return UserView{
		ID:              u.ID,
		URL:             l.user(u.ID),
		Username:        u.Username,
		Email:           u.Email,
		Groups:          groups,
		IsActive:        u.IsActive,
		LastName:        u.LastName,
		IsStaff:         u.IsStaff,
		UserPermissions: u.PermissionIDs(),
		FirstName:       u.FirstName,
		IsSuperuser:     u.IsSuperuser,
		DateJoined:      u.DateJoined,
		LastLogin:       u.LastLogin,
	}
}

type RevisionMinimalView struct {
	ID               uint   `json:"id"`
	URL              string `json:"url"`
	Title            string `json:"title"`
	RevisionNumber   int    `json:"revision_number"`
	PreviousRevision *uint  `json:"previous_revision"`
}

func revisionMinimalView(l linker, r *model.ArticleRevision) *RevisionMinimalView {
	if r == nil {
		return nil
	}

	return &RevisionMinimalView{
		ID:               r.ID,
		URL:              l.articleRevision(r.ArticleID, r.ID),
		Title:            r.Title,
		RevisionNumber:   r.RevisionNumber,
		PreviousRevision: r.PreviousRevisionID,
	}
}

type RevisionView struct {
	ID               uint             `json:"id"`
	URL              string           `json:"url"`
	User             *UserMinimalView `json:"user"`
	RevisionNumber   int              `json:"revision_number"`
	UserMessage      string           `json:"user_message"`
	AutomaticLog     string           `json:"automatic_log"`
	IPAddress        *string          `json:"ip_address"`
	Modified         time.Time        `json:"modified"`
	Created          time.Time        `json:"created"`
	Deleted          bool             `json:"deleted"`
	Locked           bool             `json:"locked"`
	Content          string           `json:"content"`
	Title            string           `json:"title"`
	Article          uint             `json:"article"`
	PreviousRevision *uint            `json:"previous_revision"`
}

func revisionView(l linker, r *model.ArticleRevision) RevisionView {
	return RevisionView{
		ID:               r.ID,
		URL:              l.articleRevision(r.ArticleID, r.ID),
		User:             userMinimalView(l, r.User),
		RevisionNumber:   r.RevisionNumber,
		UserMessage:      r.UserMessage,
		AutomaticLog:     r.AutomaticLog,
		IPAddress:        r.IPAddress,
		Modified:         r.Modified,
		Created:          r.Created,
		Deleted:          r.Deleted,
		Locked:           r.Locked,
		Content:          r.Content,
		Title:            r.Title,
		Article:          r.ArticleID,
		PreviousRevision: r.PreviousRevisionID,
	}
}

type ArticleSummaryView struct {
	ID              uint                 `json:"id"`
	URL             string               `json:"url"`
	CurrentRevision *RevisionMinimalView `json:"current_revision"`
}

func articleSummaryView(l linker, a *model.Article) ArticleSummaryView {
	return ArticleSummaryView{
		ID:              a.ID,
		URL:             l.article(a.ID),
		CurrentRevision: revisionMinimalView(l, a.CurrentRevision),
	}
}

type ArticleView struct {
	ID              uint                    `json:"id"`
	URL             string                  `json:"url"`
	Created         time.Time               `json:"created"`
	Modified        time.Time               `json:"modified"`
	GroupRead       bool                    `json:"group_read"`
	GroupWrite      bool                    `json:"group_write"`
	OtherRead       bool                    `json:"other_read"`
	OtherWrite      bool                    `json:"other_write"`
	Owner           *UserMinimalView        `json:"owner"`
	Group           *GroupView              `json:"group"`
	CurrentRevision *RevisionMinimalView    `json:"current_revision"`
	Attachments     []AttachmentSummaryView `json:"attachments"`
}

func articleView(l linker, a *model.Article) ArticleView {
	var group *GroupView
	if a.Group != nil {
		g := groupView(l, a.Group)
		group = &g
	}

	attachments := make([]AttachmentSummaryView, 0, len(a.Attachments))
	for _, attachment := range a.Attachments {
		attachments = append(attachments, attachmentSummaryView(l, attachment))
	}

	return ArticleView{
		ID:              a.ID,
		URL:             l.article(a.ID),
		Created:         a.Created,
		Modified:        a.Modified,
		GroupRead:       a.GroupRead,
		GroupWrite:      a.GroupWrite,
		OtherRead:       a.OtherRead,
		OtherWrite:      a.OtherWrite,
		Owner:           userMinimalView(l, a.Owner),
		Group:           group,
		CurrentRevision: revisionMinimalView(l, a.CurrentRevision),
		Attachments:     attachments,
	}
}

type AttachmentRevisionMinimalView struct {
	ID             uint    `json:"id"`
	RevisionNumber int     `json:"revision_number"`
	Description    string  `json:"description"`
	URL            *string `json:"url"`
}

func attachmentRevisionMinimalView(l linker, a *model.Attachment) *AttachmentRevisionMinimalView {
	r := a.CurrentRevision
	if r == nil {
		return nil
	}

	return &AttachmentRevisionMinimalView{
		ID:             r.ID,
		RevisionNumber: r.RevisionNumber,
		Description:    r.Description,
		URL:            l.attachmentRevision(a, r.ID),
	}
}

type AttachmentSummaryView struct {
	ID               uint                           `json:"id"`
	URL              string                         `json:"url"`
	OriginalFilename string                         `json:"original_filename"`
	CurrentRevision  *AttachmentRevisionMinimalView `json:"current_revision"`
}

func attachmentSummaryView(l linker, a *model.Attachment) AttachmentSummaryView {
	return AttachmentSummaryView{
		ID:               a.ID,
		URL:              l.attachment(a.ArticleID, a.ID),
		OriginalFilename: a.OriginalFilename,
		CurrentRevision:  attachmentRevisionMinimalView(l, a),
	}
}

type AttachmentView struct {
	ID               uint                           `json:"id"`
	URL              string                         `json:"url"`
	CurrentRevision  *AttachmentRevisionMinimalView `json:"current_revision"`
	OriginalFilename string                         `json:"original_filename"`
	Article          uint                           `json:"article"`
	Deleted          bool                           `json:"deleted"`
	Created          time.Time                      `json:"created"`
	Modified         time.Time                      `json:"modified"`
}

func attachmentView(l linker, a *model.Attachment) AttachmentView {
	return AttachmentView{
		ID:               a.ID,
		URL:              l.attachment(a.ArticleID, a.ID),
		CurrentRevision:  attachmentRevisionMinimalView(l, a),
		OriginalFilename: a.OriginalFilename,
		Article:          a.ArticleID,
		Deleted:          a.Deleted,
		Created:          a.Created,
		Modified:         a.Modified,
	}
}

type AttachmentRevisionView struct {
	ID               uint             `json:"id"`
	URL              *string          `json:"url"`
	User             *UserMinimalView `json:"user"`
	RevisionNumber   int              `json:"revision_number"`
	UserMessage      string           `json:"user_message"`
	AutomaticLog     string           `json:"automatic_log"`
	IPAddress        *string          `json:"ip_address"`
	File             *string          `json:"file"`
	Size             int64            `json:"size"`
	Description      string           `json:"description"`
	Attachment       uint             `json:"attachment"`
	PreviousRevision *uint            `json:"previous_revision"`
	Deleted          bool             `json:"deleted"`
	Locked           bool             `json:"locked"`
	Created          time.Time        `json:"created"`
	Modified         time.Time        `json:"modified"`
}

func attachmentRevisionView(l linker, r *model.AttachmentRevision) AttachmentRevisionView {
	return AttachmentRevisionView{
		ID:               r.ID,
		URL:              l.attachmentRevision(r.Attachment, r.ID),
		User:             userMinimalView(l, r.User),
		RevisionNumber:   r.RevisionNumber,
		UserMessage:      r.UserMessage,
		AutomaticLog:     r.AutomaticLog,
		IPAddress:        r.IPAddress,
		File:             l.attachmentRevisionDownload(r.Attachment, r.ID),
		Size:             r.Size,
		Description:      r.Description,
		Attachment:       r.AttachmentID,
		PreviousRevision: r.PreviousRevisionID,
		Deleted:          r.Deleted,
		Locked:           r.Locked,
		Created:          r.Created,
		Modified:         r.Modified,
	}
}

// ArticleStubView is the article as shown inside a url path.
type ArticleStubView struct {
	ID       uint      `json:"id"`
	URL      string    `json:"url"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

type URLPathView struct {
	ID      uint             `json:"id"`
	URL     string           `json:"url"`
	Article *ArticleStubView `json:"article"`
	Slug    string           `json:"slug"`
	Level   int              `json:"level"`
	Parent  *uint            `json:"parent"`
}

func urlPathView(l linker, p *model.URLPath) URLPathView {
	var article *ArticleStubView
	if p.Article != nil {
		article = &ArticleStubView{
			ID:       p.Article.ID,
			URL:      l.article(p.Article.ID),
			Created:  p.Article.Created,
			Modified: p.Article.Modified,
		}
	}

	return URLPathView{
		ID:      p.ID,
		URL:     l.urlPath(p.ID),
		Article: article,
		Slug:    p.Slug,
		Level:   p.Level,
		Parent:  p.ParentID,
	}
}

type URLPathDetailView struct {
	URLPathView
	ParentURL *string `json:"parent_url"`
	Path      string  `json:"path"`
}

func urlPathDetailView(l linker, p *model.URLPath, path string) URLPathDetailView {
	return URLPathDetailView{
		URLPathView: urlPathView(l, p),
		ParentURL:   l.urlParent(p),
		Path:        path,
	}
}

type TagView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func tagViews(tags []*model.Tag) []TagView {
	views := make([]TagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, TagView{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return views
}

type TagFormView struct {
	Tags          []TagView `json:"tags"`
	AddChoices    []TagView `json:"add_choices"`
	RemoveChoices []TagView `json:"remove_choices"`
}

func tagFormView(form *service.TagForm) TagFormView {
	return TagFormView{
		Tags:          tagViews(form.Tags),
		AddChoices:    tagViews(form.AddChoices),
		RemoveChoices: tagViews(form.RemoveChoices),
	}
}

type TagFormResultView struct {
	Message string    `json:"message"`
	Tags    []TagView `json:"tags"`
}

type HTMLView struct {
	HTML string `json:"html"`
}
