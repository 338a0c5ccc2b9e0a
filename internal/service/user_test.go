package service

import (
	"context"
	"testing"

	"github.com/emrgen/wiki/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	s := newServices(t)
	ctx := context.TODO()

	editors, err := s.groups.CreateGroup(ctx, "editors")
	require.NoError(t, err)

	user, err := s.users.CreateUser(ctx, UserInput{
		Username: ptr("test-user-1"),
		Email:    ptr("test-user-1@example.com"),
		Password: ptr("helloworld"),
		GroupIDs: &[]uint{editors.ID},
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	assert.NotEqual(t, "helloworld", user.Password)
	assert.True(t, CheckPassword(user.Password, "helloworld"))
	require.Len(t, user.Groups, 1)
	assert.Equal(t, "editors", user.Groups[0].Name)

	_, err = s.users.CreateUser(ctx, UserInput{Username: ptr("test-user-1")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = s.users.CreateUser(ctx, UserInput{Username: ptr("bad-group"), GroupIDs: &[]uint{999}})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "groups")

	other, err := s.users.CreateUser(ctx, UserInput{Username: ptr("delete-me")})
	require.NoError(t, err)

	_, err = s.users.UpdateUser(ctx, user.ID, UserInput{Username: ptr("delete-me")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	updated, err := s.users.UpdateUser(ctx, user.ID, UserInput{FirstName: ptr("New Name"), GroupIDs: &[]uint{}})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FirstName)
	assert.Equal(t, "test-user-1", updated.Username)
	assert.Empty(t, updated.Groups)

	users, total, err := s.users.ListUsers(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, other.ID, users[0].ID)

	require.NoError(t, s.users.DeleteUser(ctx, other.ID))
	assert.ErrorIs(t, s.users.DeleteUser(ctx, other.ID), store.ErrNotFound)

	_, err = s.users.UpdateUser(ctx, 999, UserInput{FirstName: ptr("x")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUserService_DeleteDetachesArticles(t *testing.T) {
	s := newServices(t)
	ctx := context.TODO()

	user, err := s.users.CreateUser(ctx, UserInput{Username: ptr("author")})
	require.NoError(t, err)

	root, err := s.articles.CreateArticle(ctx, CreateArticleParams{
		Title:       "Root",
		Permissions: DefaultArticlePermissions(),
		UserID:      &user.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, root.OwnerID)

	require.NoError(t, s.users.DeleteUser(ctx, user.ID))

	article, err := s.articles.GetArticle(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, article.OwnerID)
	assert.Nil(t, article.CurrentRevision.UserID)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	s := newServices(t)
	ctx := context.TODO()

	created, err := s.users.EnsureAdmin(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.users.EnsureAdmin(ctx, "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := s.auth.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsActive)
}

func TestAuthService(t *testing.T) {
	s := newServices(t)
	ctx := context.TODO()

	user, err := s.users.CreateUser(ctx, UserInput{Username: ptr("reader"), Password: ptr("pw")})
	require.NoError(t, err)
	inactive, err := s.users.CreateUser(ctx, UserInput{Username: ptr("gone"), Password: ptr("pw"), IsActive: ptr(false)})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid", "reader", "pw", nil},
		{"wrong password", "reader", "nope", ErrInvalidCredentials},
		{"unknown user", "nobody", "pw", ErrInvalidCredentials},
		{"inactive user", "gone", "pw", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.auth.Login(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.NotNil(t, got.LastLogin)
		})
	}

	_, err = s.auth.ActiveUser(ctx, user.ID)
	assert.NoError(t, err)
	_, err = s.auth.ActiveUser(ctx, inactive.ID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGroupService(t *testing.T) {
	s := newServices(t)
	ctx := context.TODO()

	group, err := s.groups.CreateGroup(ctx, "editors")
	require.NoError(t, err)
	_, err = s.groups.CreateGroup(ctx, "readers")
	require.NoError(t, err)

	_, err = s.groups.CreateGroup(ctx, "editors")
	assert.ErrorIs(t, err, ErrGroupNameTaken)

	_, err = s.groups.RenameGroup(ctx, group.ID, "readers")
	assert.ErrorIs(t, err, ErrGroupNameTaken)

	renamed, err := s.groups.RenameGroup(ctx, group.ID, "writers")
	require.NoError(t, err)
	assert.Equal(t, "writers", renamed.Name)

	groups, total, err := s.groups.ListGroups(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, groups, 1)

	require.NoError(t, s.groups.DeleteGroup(ctx, group.ID))
	_, err = s.groups.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
