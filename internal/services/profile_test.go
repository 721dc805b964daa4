package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredhq/kindred/internal/model"
)

func TestProfileUniquePerUser(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s)
	ctx := context.Background()
	u := seedUser(t, s, "prof-user")

	if _, err := svc.CreateProfile(ctx, u.UserID, "First", nil, nil); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if _, err := svc.CreateProfile(ctx, u.UserID, "Second", nil, nil); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("second create: want ErrConflict, got %v", err)
	}

	// Delete-then-create succeeds.
	if err := svc.DeleteProfile(ctx, u.UserID); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if _, err := svc.CreateProfile(ctx, u.UserID, "Third", nil, nil); err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
}

func TestProfilePartialUpdate(t *testing.T) {
	s := newTestStore(t)
	svc := NewProfileService(s)
	ctx := context.Background()
	u := seedUser(t, s, "patch-user")

	bio := "original bio"
	if _, err := svc.CreateProfile(ctx, u.UserID, "Pat", nil, &bio); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	contact := "pat@example.test"
	got, err := svc.UpdateProfile(ctx, u.UserID, model.ProfileUpdate{Contact: &contact})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	// Omitted fields keep their value.
	if got.Name != "Pat" || got.Bio == nil || *got.Bio != bio || got.Contact == nil || *got.Contact != contact {
		t.Fatalf("partial update result: %+v", got)
	}
	if _, err := svc.UpdateProfile(ctx, "no-such-user", model.ProfileUpdate{Contact: &contact}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("update missing profile: want ErrNotFound, got %v", err)
	}
}
