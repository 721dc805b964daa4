package services

import (
	"context"
	"fmt"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
)

// ItemService tracks a user's personal items.
type ItemService struct {
	store store.Store
}

func NewItemService(s store.Store) *ItemService { return &ItemService{store: s} }

// CreateItem creates an item for creatorID. An empty status defaults to
// in-progress.
func (s *ItemService) CreateItem(ctx context.Context, creatorID, title, description, status string) (*model.Item, error) {
	if status == "" {
		status = model.ItemInProgress
	}
	if status != model.ItemInProgress && status != model.ItemComplete {
		return nil, fmt.Errorf("unknown item status %q: %w", status, model.ErrBadValues)
	}
	return s.store.Items().Create(ctx, &model.Item{
		CreatorID:   creatorID,
		Title:       title,
		Description: description,
		Status:      status,
	})
}

func (s *ItemService) GetItem(ctx context.Context, itemID string) (*model.Item, error) {
	return s.store.Items().Get(ctx, itemID)
}

func (s *ItemService) ListItems(ctx context.Context, creatorID string) ([]*model.Item, error) {
	return s.store.Items().ListByCreator(ctx, creatorID)
}

func (s *ItemService) UpdateItem(ctx context.Context, itemID string, upd model.ItemUpdate) (*model.Item, error) {
	if upd.Status != nil && *upd.Status != model.ItemInProgress && *upd.Status != model.ItemComplete {
		return nil, fmt.Errorf("unknown item status %q: %w", *upd.Status, model.ErrBadValues)
	}
	return s.store.Items().Update(ctx, itemID, upd)
}

func (s *ItemService) DeleteItem(ctx context.Context, itemID string) error {
	return s.store.Items().Delete(ctx, itemID)
}

// AssertCreator verifies that userID created the item.
func (s *ItemService) AssertCreator(ctx context.Context, itemID, userID string) error {
	it, err := s.store.Items().Get(ctx, itemID)
	if err != nil {
		return err
	}
	if it.CreatorID != userID {
		return fmt.Errorf("user %s is not the creator of item %s: %w", userID, itemID, model.ErrNotAllowed)
	}
	return nil
}
