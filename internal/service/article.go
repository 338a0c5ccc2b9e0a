package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/emrgen/wiki/internal/cache"
	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/render"
	"github.com/emrgen/wiki/internal/slug"
	"github.com/emrgen/wiki/internal/store"
	"github.com/sirupsen/logrus"
)

// MsgSlugExists is the non-field message for a duplicate (parent, slug).
const MsgSlugExists = "Article with this slug already exists under this parent URL."

// ArticlePermissions are the access flags stored on a new article.
type ArticlePermissions struct {
	GroupID    *uint
	GroupRead  bool
	GroupWrite bool
	OtherRead  bool
	OtherWrite bool
}

// DefaultArticlePermissions grants read and write to everyone and sets no group.
func DefaultArticlePermissions() ArticlePermissions {
	return ArticlePermissions{
		GroupRead:  true,
		GroupWrite: true,
		OtherRead:  true,
		OtherWrite: true,
	}
}

// CreateArticleParams describe a new article placed under ParentID, or the
// root article when ParentID is nil.
type CreateArticleParams struct {
	ParentID    *uint
	Title       string
	Slug        string
	Content     string
	Summary     string
	Permissions ArticlePermissions
	UserID      *uint
	IPAddress   *string
}

// RevisionParams describe a new article revision. A nil Title keeps the
// current title.
type RevisionParams struct {
	Title       *string
	Content     string
	UserMessage string
	UserID      *uint
	IPAddress   *string
}

// NewArticleService creates a new ArticleService.
func NewArticleService(store store.Store, cache cache.HTMLCache) *ArticleService {
	return &ArticleService{
		store: store,
		cache: cache,
	}
}

// ArticleService is a service for managing articles.
type ArticleService struct {
	store store.Store
	cache cache.HTMLCache
}

func (a *ArticleService) ListArticles(ctx context.Context, offset, limit int) ([]*model.Article, int64, error) {
	return a.store.ListArticles(ctx, offset, limit)
}

func (a *ArticleService) GetArticle(ctx context.Context, id uint) (*model.Article, error) {
	return a.store.GetArticle(ctx, id)
}

// CreateArticle creates the article, its first revision and its url path in
// one transaction. An empty slug is derived from the title.
func (a *ArticleService) CreateArticle(ctx context.Context, params CreateArticleParams) (*model.Article, error) {
	articleSlug := strings.TrimSpace(params.Slug)
	if articleSlug == "" {
		articleSlug = slug.Slugify(params.Title)
	}

	existing, err := a.store.CountURLPaths(ctx, params.ParentID, articleSlug)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, NewNonFieldError(MsgSlugExists)
	}

	level := 0
	if params.ParentID != nil {
		parent, err := a.store.GetURLPath(ctx, *params.ParentID)
		if err != nil {
			return nil, err
		}
		level = parent.Level + 1
	}

	perms := params.Permissions
	if perms.GroupID != nil {
		if _, err := a.store.GetGroup(ctx, *perms.GroupID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, NewFieldError("permissions", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *perms.GroupID))
			}
			return nil, err
		}
	}

	article := &model.Article{
		OwnerID:    params.UserID,
		GroupID:    perms.GroupID,
		GroupRead:  perms.GroupRead,
		GroupWrite: perms.GroupWrite,
		OtherRead:  perms.OtherRead,
		OtherWrite: perms.OtherWrite,
	}

	err = a.store.Transaction(ctx, func(tx store.Store) error {
		if params.ParentID == nil {
			_, err := tx.GetRootURLPath(ctx)
			if err == nil {
				return ErrRootExists
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		if err := tx.CreateArticle(ctx, article); err != nil {
			return err
		}

		revision := &model.ArticleRevision{
			ArticleID:      article.ID,
			RevisionNumber: 1,
			Title:          params.Title,
			Content:        params.Content,
			UserMessage:    params.Summary,
			UserID:         params.UserID,
			IPAddress:      params.IPAddress,
		}
		if err := tx.CreateArticleRevision(ctx, revision); err != nil {
			return err
		}

		article.CurrentRevisionID = &revision.ID
		if err := tx.UpdateArticle(ctx, article); err != nil {
			return err
		}

		path := &model.URLPath{
			ArticleID: article.ID,
			ParentID:  params.ParentID,
			Slug:      articleSlug,
			Level:     level,
		}
		if err := tx.CreateURLPath(ctx, path); err != nil {
			switch {
			case errors.Is(err, store.ErrConflict) && params.ParentID == nil:
				return ErrRootExists
			case errors.Is(err, store.ErrConflict):
				return ErrSlugConflict
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created article %d with slug %q", article.ID, articleSlug)

	return a.store.GetArticle(ctx, article.ID)
}

// UpdateArticle stores new content for an article as its next revision.
// Surrounding whitespace is stripped from the content.
func (a *ArticleService) UpdateArticle(ctx context.Context, id uint, params RevisionParams) (*model.Article, error) {
	params.Content = strings.TrimSpace(params.Content)
	return a.AddRevision(ctx, id, params)
}

// AddRevision appends a revision to the article and makes it current.
func (a *ArticleService) AddRevision(ctx context.Context, id uint, params RevisionParams) (*model.Article, error) {
	err := a.store.Transaction(ctx, func(tx store.Store) error {
		article, err := tx.GetArticle(ctx, id)
		if err != nil {
			return err
		}

		revision := &model.ArticleRevision{
			ArticleID:   article.ID,
			Content:     params.Content,
			UserMessage: params.UserMessage,
			UserID:      params.UserID,
			IPAddress:   params.IPAddress,
		}
		if params.Title != nil {
			revision.Title = *params.Title
		}

		if article.CurrentRevision != nil {
			revision.InheritPredecessor(article.CurrentRevision)
		} else {
			number, err := tx.MaxArticleRevisionNumber(ctx, article.ID)
			if err != nil {
				return err
			}
			revision.RevisionNumber = number + 1
		}

		if err := tx.CreateArticleRevision(ctx, revision); err != nil {
			return err
		}

		article.CurrentRevisionID = &revision.ID
		article.CurrentRevision = revision
		if err := tx.UpdateArticle(ctx, article); err != nil {
			return err
		}

		logrus.Debugf("article %d is at revision %d", article.ID, revision.RevisionNumber)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return a.store.GetArticle(ctx, id)
}

// RenderHTML renders the current revision of an article. Rendered revisions
// are cached by revision id.
func (a *ArticleService) RenderHTML(ctx context.Context, id uint) (string, error) {
	article, err := a.store.GetArticle(ctx, id)
	if err != nil {
		return "", err
	}

	if article.CurrentRevision == nil {
		return "", nil
	}
	revisionID := article.CurrentRevision.ID

	html, ok, err := a.cache.GetHTML(ctx, revisionID)
	if err != nil {
		logrus.Warnf("html cache read for revision %d failed: %v", revisionID, err)
	} else if ok {
		return html, nil
	}

	html, err = render.Markdown(article.CurrentRevision.Content)
	if err != nil {
		return "", fmt.Errorf("rendering revision %d: %w", revisionID, err)
	}

	if err := a.cache.SetHTML(ctx, revisionID, html); err != nil {
		logrus.Warnf("html cache write for revision %d failed: %v", revisionID, err)
	}

	return html, nil
}
