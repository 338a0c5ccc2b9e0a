package service

import (
	"context"
	"errors"
	"time"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
)

// NewAuthService creates a new AuthService.
func NewAuthService(store store.Store) *AuthService {
	return &AuthService{store: store}
}

// AuthService checks credentials and resolves signed-in users.
type AuthService struct {
	store store.Store
}

// Authenticate returns the active user with the username and password.
func (a *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates a user and records the time of the login.
func (a *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := a.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := a.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ActiveUser returns the user with the id if it exists and is active.
func (a *AuthService) ActiveUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := a.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
