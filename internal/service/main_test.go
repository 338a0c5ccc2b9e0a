package service

import (
	"os"
	"testing"

	"github.com/emrgen/wiki/internal/cache"
	"github.com/emrgen/wiki/internal/compress"
	"github.com/emrgen/wiki/internal/storage"
	"github.com/emrgen/wiki/internal/store"
	"github.com/emrgen/wiki/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()
	tester.Teardown()

	os.Exit(code)
}

type services struct {
	store       store.Store
	articles    *ArticleService
	revisions   *RevisionService
	attachments *AttachmentService
	urls        *URLPathService
	users       *UserService
	groups      *GroupService
	tags        *TagService
	auth        *AuthService
}

// newServices wires every service to a fresh test database.
func newServices(t *testing.T) *services {
	t.Helper()
	tester.Setup()

	s := store.NewGormStore(tester.TestDB())
	blobs, err := storage.NewLocal(tester.StoragePath(), compress.NewGZip())
	if err != nil {
		t.Fatal(err)
	}

	articles := NewArticleService(s, cache.NewMemory())
	return &services{
		store:       s,
		articles:    articles,
		revisions:   NewRevisionService(s, articles),
		attachments: NewAttachmentService(s, blobs),
		urls:        NewURLPathService(s),
		users:       NewUserService(s),
		groups:      NewGroupService(s),
		tags:        NewTagService(s),
		auth:        NewAuthService(s),
	}
}

func ptr[T any](v T) *T {
	return &v
}
