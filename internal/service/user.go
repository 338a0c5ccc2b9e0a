package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
	"github.com/sirupsen/logrus"
)

// UserInput holds the user fields to write. Nil fields are left unchanged.
type UserInput struct {
	Username    *string
	Email       *string
	Password    *string
	FirstName   *string
	LastName    *string
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
	GroupIDs    *[]uint
}

func (in UserInput) apply(user *model.User) error {
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}
	if in.IsSuperuser != nil {
		user.IsSuperuser = *in.IsSuperuser
	}
	if in.Password != nil {
		hash, err := HashPassword(*in.Password)
		if err != nil {
			return err
		}
		user.Password = hash
	}

	return nil
}

// NewUserService creates a new UserService.
func NewUserService(store store.Store) *UserService {
	return &UserService{store: store}
}

// UserService is a service for managing user accounts.
type UserService struct {
	store store.Store
}

func (u *UserService) ListUsers(ctx context.Context, offset, limit int) ([]*model.User, int64, error) {
	return u.store.ListUsers(ctx, offset, limit)
}

func (u *UserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	return u.store.GetUser(ctx, id)
}

// CreateUser creates an active user. The password is stored as a bcrypt hash.
func (u *UserService) CreateUser(ctx context.Context, in UserInput) (*model.User, error) {
	if in.Username == nil {
		return nil, NewFieldError("username", "This field is required.")
	}

	taken, err := u.store.UsernameTaken(ctx, *in.Username, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	user := &model.User{IsActive: true}
	if err := in.apply(user); err != nil {
		return nil, err
	}

	err = u.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrUsernameTaken
			}
			return err
		}

		return setGroups(ctx, tx, user, in.GroupIDs)
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("created user %d (%s)", user.ID, user.Username)

	return u.store.GetUser(ctx, user.ID)
}

// UpdateUser writes the given fields of a user.
func (u *UserService) UpdateUser(ctx context.Context, id uint, in UserInput) (*model.User, error) {
	user, err := u.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		taken, err := u.store.UsernameTaken(ctx, *in.Username, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	if err := in.apply(user); err != nil {
		return nil, err
	}

	err = u.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.UpdateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrConflict) {
				return ErrUsernameTaken
			}
			return err
		}

		return setGroups(ctx, tx, user, in.GroupIDs)
	})
	if err != nil {
		return nil, err
	}

	return u.store.GetUser(ctx, id)
}

func (u *UserService) DeleteUser(ctx context.Context, id uint) error {
	return u.store.DeleteUser(ctx, id)
}

// EnsureAdmin creates an active staff superuser unless a user with the
// username exists. It reports whether a user was created.
func (u *UserService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := u.store.GetUserByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, err
	}

	yes := true
	_, err = u.CreateUser(ctx, UserInput{
		Username:    &username,
		Password:    &password,
		IsActive:    &yes,
		IsStaff:     &yes,
		IsSuperuser: &yes,
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func setGroups(ctx context.Context, tx store.Store, user *model.User, ids *[]uint) error {
	if ids == nil {
		return nil
	}

	groups, err := tx.FindGroups(ctx, *ids)
	if err != nil {
		return err
	}

	found := make(map[uint]bool, len(groups))
	for _, g := range groups {
		found[g.ID] = true
	}
	for _, id := range *ids {
		if !found[id] {
			return NewFieldError("groups", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
		}
	}

	return tx.SetUserGroups(ctx, user, groups)
}
