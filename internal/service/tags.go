package service

import (
	"context"
	"errors"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/slug"
	"github.com/emrgen/wiki/internal/store"
)

const (
	// MsgTagsUpdated is shown after the tags of an article were saved.
	MsgTagsUpdated = "Tags for this article have been updated"
	// MsgInvalidChoice is the field message for a value that was not offered.
	MsgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// TagForm is the tag sidebar of an article: the tags on it, the tags that
// can be added and the tags that can be removed.
type TagForm struct {
	Article       *model.Article
	Tags          []*model.Tag
	AddChoices    []*model.Tag
	RemoveChoices []*model.Tag

	association *model.TagsOnArticle
}

func tagIDs(tags []*model.Tag) mapset.Set[uint] {
	ids := mapset.NewThreadUnsafeSet[uint]()
	for _, tag := range tags {
		ids.Add(tag.ID)
	}
	return ids
}

// NewTagService creates a new TagService.
func NewTagService(store store.Store) *TagService {
	return &TagService{store: store}
}

// TagService is a service for managing tags and the tags on articles.
type TagService struct {
	store store.Store
}

func (t *TagService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	return t.store.ListTags(ctx)
}

// CreateTag creates a tag. An empty slug is derived from the name.
func (t *TagService) CreateTag(ctx context.Context, name, tagSlug string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewFieldError("name", "This field may not be blank.")
	}
	if strings.TrimSpace(tagSlug) == "" {
		tagSlug = slug.Slugify(name)
	}
	if !slug.Valid(tagSlug) {
		return nil, NewFieldError("slug", "Enter a valid “slug” consisting of letters, numbers, underscores or hyphens.")
	}

	exists, err := t.store.TagExists(ctx, name, tagSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrTagExists
	}

	tag := &model.Tag{Name: name, Slug: tagSlug}
	if err := t.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	return tag, nil
}

// CountArticleTags returns the number of tags on every tagged article.
func (t *TagService) CountArticleTags(ctx context.Context) ([]*model.ArticleTagCount, error) {
	return t.store.CountArticleTags(ctx)
}

// Form builds the tag sidebar of an article. An article whose tags were
// never edited has no tags to remove.
func (t *TagService) Form(ctx context.Context, articleID uint) (*TagForm, error) {
	return buildTagForm(ctx, t.store, articleID)
}

// SaveForm adds and removes one tag each, creating the article's tag
// association on first use. Either id may be nil.
func (t *TagService) SaveForm(ctx context.Context, articleID uint, addTagID, removeTagID *uint) (*TagForm, error) {
	err := t.store.Transaction(ctx, func(tx store.Store) error {
		form, err := buildTagForm(ctx, tx, articleID)
		if err != nil {
			return err
		}

		verr := &ValidationError{}
		if addTagID != nil && !tagIDs(form.AddChoices).Contains(*addTagID) {
			verr.Add("add_tag", MsgInvalidChoice)
		}
		if removeTagID != nil && !tagIDs(form.RemoveChoices).Contains(*removeTagID) {
			verr.Add("remove_tag", MsgInvalidChoice)
		}
		if !verr.Empty() {
			return verr
		}

		association := form.association
		if association == nil {
			association = &model.TagsOnArticle{
				ArticleID:         articleID,
				ArticleRevisionID: form.Article.CurrentRevisionID,
			}
			if err := tx.CreateTagsOnArticle(ctx, association); err != nil {
				return err
			}
		}

		if addTagID != nil {
			if err := tx.AddArticleTag(ctx, association, findTag(form.AddChoices, *addTagID)); err != nil {
				return err
			}
		}
		if removeTagID != nil {
			if err := tx.RemoveArticleTag(ctx, association, findTag(form.RemoveChoices, *removeTagID)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t.Form(ctx, articleID)
}

func buildTagForm(ctx context.Context, s store.Store, articleID uint) (*TagForm, error) {
	article, err := s.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}

	all, err := s.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	form := &TagForm{
		Article:       article,
		Tags:          []*model.Tag{},
		AddChoices:    all,
		RemoveChoices: []*model.Tag{},
	}

	association, err := s.GetTagsOnArticle(ctx, articleID)
	if errors.Is(err, store.ErrNotFound) {
		return form, nil
	}
	if err != nil {
		return nil, err
	}

	form.association = association
	form.Tags = association.Tags
	form.RemoveChoices = association.Tags

	return form, nil
}

func findTag(tags []*model.Tag, id uint) *model.Tag {
	for _, tag := range tags {
		if tag.ID == id {
			return tag
		}
	}
	return nil
}
