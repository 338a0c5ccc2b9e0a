package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagService_CreateTag(t *testing.T) {
	s := newServices(t)
	ctx := context.TODO()

	tag, err := s.tags.CreateTag(ctx, "Getting Started", "")
	require.NoError(t, err)
	assert.Equal(t, "getting-started", tag.Slug)

	_, err = s.tags.CreateTag(ctx, "Getting Started", "other")
	assert.ErrorIs(t, err, ErrTagExists)

	_, err = s.tags.CreateTag(ctx, "Other", "getting-started")
	assert.ErrorIs(t, err, ErrTagExists)

	_, err = s.tags.CreateTag(ctx, "Bad", "not a slug")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")
}

func TestTagService_Form(t *testing.T) {
	s := newServices(t)
	ctx := context.TODO()

	root := createRoot(t, s)
	beta, err := s.tags.CreateTag(ctx, "Beta", "")
	require.NoError(t, err)
	alpha, err := s.tags.CreateTag(ctx, "Alpha", "")
	require.NoError(t, err)

	form, err := s.tags.Form(ctx, root.ID)
	require.NoError(t, err)
	assert.Empty(t, form.Tags)
	assert.Empty(t, form.RemoveChoices)
	require.Len(t, form.AddChoices, 2)
	assert.Equal(t, "alpha", form.AddChoices[0].Slug)
	assert.Equal(t, "beta", form.AddChoices[1].Slug)

	// a tag that is not on the article cannot be removed
	_, err = s.tags.SaveForm(ctx, root.ID, nil, &alpha.ID)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{MsgInvalidChoice}, verr.Fields["remove_tag"])

	form, err = s.tags.SaveForm(ctx, root.ID, &beta.ID, nil)
	require.NoError(t, err)
	require.Len(t, form.Tags, 1)
	assert.Equal(t, beta.ID, form.Tags[0].ID)
	require.Len(t, form.RemoveChoices, 1)

	association, err := s.store.GetTagsOnArticle(ctx, root.ID)
	require.NoError(t, err)
	require.NotNil(t, association.ArticleRevisionID)
	assert.Equal(t, *root.CurrentRevisionID, *association.ArticleRevisionID)

	form, err = s.tags.SaveForm(ctx, root.ID, &alpha.ID, &beta.ID)
	require.NoError(t, err)
	require.Len(t, form.Tags, 1)
	assert.Equal(t, alpha.ID, form.Tags[0].ID)

	_, err = s.tags.SaveForm(ctx, root.ID, ptr(uint(999)), nil)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "add_tag")

	counts, err := s.tags.CountArticleTags(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, root.ID, counts[0].ArticleID)
	assert.Equal(t, "Root Article", counts[0].Title)
	assert.Equal(t, int64(1), counts[0].Count)
}
