package api

import (
	"github.com/emrgen/wiki/internal/auth"
	"github.com/emrgen/wiki/internal/service"
	"github.com/gin-gonic/gin"
)

// Services are the domain services behind the api.
type Services struct {
	Articles    *service.ArticleService
	Revisions   *service.RevisionService
	Attachments *service.AttachmentService
	URLs        *service.URLPathService
	Users       *service.UserService
	Groups      *service.GroupService
	Tags        *service.TagService
	Auth        *service.AuthService
}

// Handler serves the wiki json api.
type Handler struct {
	services Services
	sessions *auth.Sessions
	pageSize int
}

func NewHandler(services Services, sessions *auth.Sessions, pageSize int) *Handler {
	if pageSize <= 0 {
		pageSize = 100
	}

	return &Handler{
		services: services,
		sessions: sessions,
		pageSize: pageSize,
	}
}

// Register adds the api and account routes to r.
func (h *Handler) Register(r gin.IRouter) {
	accounts := r.Group("/")
	{
		accounts.POST(auth.LoginPath, h.login)
		accounts.POST(auth.AdminLoginPath, h.login)
		accounts.POST(auth.LogoutPath, h.logout)
	}

	api := r.Group("/api")
	{
		api.GET("/users/", h.listUsers)
		api.POST("/users/", h.createUser)
		api.GET("/users/:id/", h.getUser)
		api.PUT("/users/:id/", h.replaceUser)
		api.PATCH("/users/:id/", h.patchUser)
		api.DELETE("/users/:id/", h.deleteUser)

		api.GET("/groups/", h.listGroups)
		api.POST("/groups/", h.createGroup)
		api.GET("/groups/:id/", h.getGroup)
		api.PUT("/groups/:id/", h.replaceGroup)
		api.PATCH("/groups/:id/", h.patchGroup)
		api.DELETE("/groups/:id/", h.deleteGroup)

		api.GET("/articles/", h.listArticles)
		api.POST("/articles/", h.createArticle)
		api.GET("/articles/:id/", h.getArticle)
		api.PUT("/articles/:id/", h.updateArticle)
		api.GET("/articles/:id/html/", h.articleHTML)
		api.GET("/articles/:id/tags/", h.articleTags)
		api.POST("/articles/:id/tags/", h.saveArticleTags)

		api.GET("/articles/:id/revisions/", h.listRevisions)
		api.POST("/articles/:id/revisions/", h.createRevision)
		api.GET("/articles/:id/revisions/:rid/", h.getRevision)

		api.GET("/articles/:id/attachments/", h.listAttachments)
		api.GET("/articles/:id/attachments/:aid/", h.getAttachment)
		api.GET("/articles/:id/attachments/:aid/download/", h.downloadAttachment)
		api.GET("/articles/:id/attachments/:aid/revisions/", h.listAttachmentRevisions)
		api.GET("/articles/:id/attachments/:aid/revisions/:rid/", h.getAttachmentRevision)
		api.GET("/articles/:id/attachments/:aid/revisions/:rid/download/", h.downloadAttachmentRevision)

		api.GET("/urls/", h.listURLPaths)
		api.GET("/urls/:id/", h.getURLPath)

		api.GET("/tags/", h.listTags)
		api.POST("/tags/", h.createTag)
	}
}
