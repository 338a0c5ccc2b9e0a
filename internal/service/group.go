package service

import (
	"context"
	"errors"

	"github.com/emrgen/wiki/internal/model"
	"github.com/emrgen/wiki/internal/store"
)

// NewGroupService creates a new GroupService.
func NewGroupService(store store.Store) *GroupService {
	return &GroupService{store: store}
}

// GroupService is a service for managing user groups.
type GroupService struct {
	store store.Store
}

func (g *GroupService) ListGroups(ctx context.Context, offset, limit int) ([]*model.Group, int64, error) {
	return g.store.ListGroups(ctx, offset, limit)
}

func (g *GroupService) GetGroup(ctx context.Context, id uint) (*model.Group, error) {
	return g.store.GetGroup(ctx, id)
}

func (g *GroupService) CreateGroup(ctx context.Context, name string) (*model.Group, error) {
	taken, err := g.store.GroupNameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrGroupNameTaken
	}

	group := &model.Group{Name: name}
	if err := g.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrGroupNameTaken
		}
		return nil, err
	}

	return group, nil
}

// RenameGroup changes the name of a group.
func (g *GroupService) RenameGroup(ctx context.Context, id uint, name string) (*model.Group, error) {
	group, err := g.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := g.store.GroupNameTaken(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrGroupNameTaken
	}

	group.Name = name
	if err := g.store.UpdateGroup(ctx, group); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrGroupNameTaken
		}
		return nil, err
	}

	return group, nil
}

func (g *GroupService) DeleteGroup(ctx context.Context, id uint) error {
	return g.store.DeleteGroup(ctx, id)
}
