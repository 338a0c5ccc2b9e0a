package service

import (
	"context"
	"strings"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
)

// NewURLPathService creates a new URLPathService.
func NewURLPathService(store store.Store) *URLPathService {
	return &URLPathService{store: store}
}

// URLPathService reads the wiki hierarchy.
type URLPathService struct {
	store store.Store
}

func (u *URLPathService) ListURLPaths(ctx context.Context) ([]*model.URLPath, error) {
	return u.store.ListURLPaths(ctx)
}

func (u *URLPathService) GetURLPath(ctx context.Context, id uint) (*model.URLPath, error) {
	return u.store.GetURLPath(ctx, id)
}

// Path returns the slugs from the root down to path, each followed by a
// slash. The root itself has the empty path.
func (u *URLPathService) Path(ctx context.Context, path *model.URLPath) (string, error) {
	var slugs []string
	for current := path; !current.IsRoot(); {
		slugs = append(slugs, current.Slug)

		parent, err := u.store.GetURLPath(ctx, *current.ParentID)
		if err != nil {
			return "", err
		}
		current = parent
	}

	if len(slugs) == 0 {
		return "", nil
	}

	for i, j := 0, len(slugs)-1; i < j; i, j = i+1, j-1 {
		slugs[i], slugs[j] = slugs[j], slugs[i]
	}

	return strings.Join(slugs, "/") + "/", nil
}
