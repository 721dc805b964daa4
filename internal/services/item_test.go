package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredhq/kindred/internal/model"
)

func TestItemStatusHandling(t *testing.T) {
	s := newTestStore(t)
	svc := NewItemService(s)
	ctx := context.Background()
	u := seedUser(t, s, "item-user")

	// Empty status defaults to in-progress.
	it, err := svc.CreateItem(ctx, u.UserID, "chores", "do them", "")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if it.Status != model.ItemInProgress {
		t.Fatalf("default status: got %q", it.Status)
	}

	if _, err := svc.CreateItem(ctx, u.UserID, "bad", "d", "paused"); !errors.Is(err, model.ErrBadValues) {
		t.Fatalf("unknown create status: want ErrBadValues, got %v", err)
	}

	bad := "paused"
	if _, err := svc.UpdateItem(ctx, it.ItemID, model.ItemUpdate{Status: &bad}); !errors.Is(err, model.ErrBadValues) {
		t.Fatalf("unknown update status: want ErrBadValues, got %v", err)
	}
	done := model.ItemComplete
	if got, err := svc.UpdateItem(ctx, it.ItemID, model.ItemUpdate{Status: &done}); err != nil || got.Status != model.ItemComplete {
		t.Fatalf("complete item: got=%v err=%v", got, err)
	}
}

func TestItemAssertCreator(t *testing.T) {
	s := newTestStore(t)
	svc := NewItemService(s)
	ctx := context.Background()
	owner := seedUser(t, s, "item-owner")
	other := seedUser(t, s, "item-other")

	it, err := svc.CreateItem(ctx, owner.UserID, "mine", "d", model.ItemInProgress)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if err := svc.AssertCreator(ctx, it.ItemID, owner.UserID); err != nil {
		t.Fatalf("owner assert: %v", err)
	}
	if err := svc.AssertCreator(ctx, it.ItemID, other.UserID); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("stranger assert: want ErrNotAllowed, got %v", err)
	}
}
