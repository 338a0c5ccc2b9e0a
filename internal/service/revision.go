package service

import (
	"context"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
)

// NewRevisionService creates a new RevisionService.
func NewRevisionService(store store.Store, articles *ArticleService) *RevisionService {
	return &RevisionService{
		store:    store,
		articles: articles,
	}
}

// RevisionService reads the revision history of articles and appends to it.
type RevisionService struct {
	store    store.Store
	articles *ArticleService
}

func (r *RevisionService) ListRevisions(ctx context.Context, articleID uint, offset, limit int) ([]*model.ArticleRevision, int64, error) {
	return r.store.ListArticleRevisions(ctx, articleID, offset, limit)
}

func (r *RevisionService) GetRevision(ctx context.Context, articleID, id uint) (*model.ArticleRevision, error) {
	return r.store.GetArticleRevision(ctx, articleID, id)
}

// CreateRevision appends a revision to the article and returns the article.
func (r *RevisionService) CreateRevision(ctx context.Context, articleID uint, params RevisionParams) (*model.Article, error) {
	return r.articles.AddRevision(ctx, articleID, params)
}
