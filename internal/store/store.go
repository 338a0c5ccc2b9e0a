package store

import (
	"context"

	"github.com/emrgen/wiki/internal/model"
)

type Store interface {
	UserStore
	GroupStore
	ArticleStore
	ArticleRevisionStore
	URLPathStore
	AttachmentStore
	TagStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type UserStore interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUser retrieves a user with groups and permissions by ID.
	GetUser(ctx context.Context, id uint) (*model.User, error)
	// GetUserByUsername retrieves a user by username.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	// ListUsers retrieves a page of users, newest first, and the total count.
	ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error)
	// UpdateUser saves the user's own columns.
	UpdateUser(ctx context.Context, user *model.User) error
	// DeleteUser deletes a user and detaches it from articles and revisions.
	DeleteUser(ctx context.Context, id uint) error
	// UsernameTaken reports whether another user than excludeID has the username.
	UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	// SetUserGroups replaces the groups of a user.
	SetUserGroups(ctx context.Context, user *model.User, groups []*model.Group) error
}

type GroupStore interface {
	// CreateGroup creates a new group.
	CreateGroup(ctx context.Context, group *model.Group) error
	// GetGroup retrieves a group by ID.
	GetGroup(ctx context.Context, id uint) (*model.Group, error)
	// FindGroups retrieves the groups with the given IDs that exist.
	FindGroups(ctx context.Context, ids []uint) ([]*model.Group, error)
	// GetGroupByName retrieves a group by name.
	GetGroupByName(ctx context.Context, name string) (*model.Group, error)
	// ListGroups retrieves a page of groups and the total count.
	ListGroups(ctx context.Context, offset, limit int) ([]*model.Group, int64, error)
	// UpdateGroup saves a group.
	UpdateGroup(ctx context.Context, group *model.Group) error
	// DeleteGroup deletes a group and detaches it from users and articles.
	DeleteGroup(ctx context.Context, id uint) error
	// GroupNameTaken reports whether another group than excludeID has the name.
	GroupNameTaken(ctx context.Context, name string, excludeID uint) (bool, error)
}

type ArticleStore interface {
	// CreateArticle creates a new article.
	CreateArticle(ctx context.Context, article *model.Article) error
	// GetArticle retrieves an article with owner, group, current revision and attachments.
	GetArticle(ctx context.Context, id uint) (*model.Article, error)
	// ListArticles retrieves a page of articles ordered by title and the total count.
	ListArticles(ctx context.Context, offset, limit int) ([]*model.Article, int64, error)
	// UpdateArticle saves the article's own columns.
	UpdateArticle(ctx context.Context, article *model.Article) error
}

type ArticleRevisionStore interface {
	// CreateArticleRevision creates a new article revision.
	CreateArticleRevision(ctx context.Context, revision *model.ArticleRevision) error
	// GetArticleRevision retrieves a revision of an article.
	GetArticleRevision(ctx context.Context, articleID, id uint) (*model.ArticleRevision, error)
	// ListArticleRevisions retrieves a page of an article's revisions and the total count.
	ListArticleRevisions(ctx context.Context, articleID uint, offset, limit int) ([]*model.ArticleRevision, int64, error)
	// MaxArticleRevisionNumber returns the highest revision number of an article, 0 if none.
	MaxArticleRevisionNumber(ctx context.Context, articleID uint) (int, error)
}

type URLPathStore interface {
	// CreateURLPath creates a new url path.
	CreateURLPath(ctx context.Context, path *model.URLPath) error
	// GetURLPath retrieves a url path with its article.
	GetURLPath(ctx context.Context, id uint) (*model.URLPath, error)
	// GetRootURLPath retrieves the url path without a parent.
	GetRootURLPath(ctx context.Context) (*model.URLPath, error)
	// ListURLPaths retrieves all url paths with their articles.
	ListURLPaths(ctx context.Context) ([]*model.URLPath, error)
	// CountURLPaths counts the url paths with the given parent and slug.
	CountURLPaths(ctx context.Context, parentID *uint, slug string) (int64, error)
}

type AttachmentStore interface {
	// CreateAttachment creates a new attachment.
	CreateAttachment(ctx context.Context, attachment *model.Attachment) error
	// GetAttachment retrieves an attachment of an article with its current revision.
	GetAttachment(ctx context.Context, articleID, id uint) (*model.Attachment, error)
	// GetAttachmentByFilename retrieves the attachment of an article with the given filename.
	GetAttachmentByFilename(ctx context.Context, articleID uint, filename string) (*model.Attachment, error)
	// ListAttachments retrieves a page of an article's attachments and the total count.
	ListAttachments(ctx context.Context, articleID uint, offset, limit int) ([]*model.Attachment, int64, error)
	// UpdateAttachment saves the attachment's own columns.
	UpdateAttachment(ctx context.Context, attachment *model.Attachment) error
	// CreateAttachmentRevision creates a new attachment revision.
	CreateAttachmentRevision(ctx context.Context, revision *model.AttachmentRevision) error
	// GetAttachmentRevision retrieves a revision of an attachment.
	GetAttachmentRevision(ctx context.Context, attachmentID, id uint) (*model.AttachmentRevision, error)
	// ListAttachmentRevisions retrieves a page of an attachment's revisions and the total count.
	ListAttachmentRevisions(ctx context.Context, attachmentID uint, offset, limit int) ([]*model.AttachmentRevision, int64, error)
}

type TagStore interface {
	// CreateTag creates a new tag.
	CreateTag(ctx context.Context, tag *model.Tag) error
	// GetTag retrieves a tag by ID.
	GetTag(ctx context.Context, id uint) (*model.Tag, error)
	// ListTags retrieves all tags ordered by slug.
	ListTags(ctx context.Context) ([]*model.Tag, error)
	// TagExists reports whether a tag with the name or slug exists.
	TagExists(ctx context.Context, name, slug string) (bool, error)
	// GetTagsOnArticle retrieves the tag association of an article, tags ordered by slug.
	GetTagsOnArticle(ctx context.Context, articleID uint) (*model.TagsOnArticle, error)
	// CreateTagsOnArticle creates the tag association of an article.
	CreateTagsOnArticle(ctx context.Context, tags *model.TagsOnArticle) error
	// AddArticleTag adds a tag to an association.
	AddArticleTag(ctx context.Context, tags *model.TagsOnArticle, tag *model.Tag) error
	// RemoveArticleTag removes a tag from an association.
	RemoveArticleTag(ctx context.Context, tags *model.TagsOnArticle, tag *model.Tag) error
	// CountArticleTags returns the number of tags on every tagged article.
	CountArticleTags(ctx context.Context) ([]*model.ArticleTagCount, error)
}
