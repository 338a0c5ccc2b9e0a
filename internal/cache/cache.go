package cache

import (
	"context"
	"time"
)

// HTMLTTL is how long a rendered revision stays cached.
const HTMLTTL = 24 * time.Hour

// HTMLCache stores rendered article revisions keyed by revision id.
// Revisions are immutable, so entries never need invalidation.
type HTMLCache interface {
	// GetHTML returns the cached html and whether it was found.
	GetHTML(ctx context.Context, revisionID uint) (string, bool, error)
	// SetHTML caches the html of a revision.
	SetHTML(ctx context.Context, revisionID uint, html string) error
}
