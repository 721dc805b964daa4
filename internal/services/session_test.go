package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kindredhq/kindred/internal/auth"
	"github.com/kindredhq/kindred/internal/model"
)

func TestSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	svc := NewSessionService(s)
	ctx := context.Background()
	u := seedUser(t, s, "sess-user")

	token, sess, err := svc.Start(ctx, u.UserID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if token == "" || sess.TokenHash == token {
		t.Fatalf("raw token must differ from stored hash")
	}

	got, err := svc.Resolve(ctx, token)
	if err != nil || got.UserID != u.UserID {
		t.Fatalf("Resolve: got=%v err=%v", got, err)
	}
	if _, err := svc.Resolve(ctx, "bogus-token"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("bogus token: want ErrNotFound, got %v", err)
	}

	if err := svc.End(ctx, token); err != nil {
		t.Fatalf("End: %v", err)
	}
	if _, err := svc.Resolve(ctx, token); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("ended session: want ErrNotFound, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	s := newTestStore(t)
	svc := NewSessionService(s)
	ctx := context.Background()
	u := seedUser(t, s, "exp-user")

	// Plant an already-expired session directly.
	tp, err := auth.NewTokenPair()
	if err != nil {
		t.Fatalf("token pair: %v", err)
	}
	if _, err := s.Sessions().Create(ctx, &model.Session{
		UserID:    u.UserID,
		TokenHash: tp.Hash,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}); err != nil {
		t.Fatalf("seed expired session: %v", err)
	}

	if _, err := svc.Resolve(ctx, tp.Token); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("expired resolve: want ErrNotAllowed, got %v", err)
	}
	// Resolve deletes the expired row, so the second attempt is a plain miss.
	if _, err := svc.Resolve(ctx, tp.Token); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second resolve: want ErrNotFound, got %v", err)
	}
}

func TestSessionEndAllAndPurge(t *testing.T) {
	s := newTestStore(t)
	svc := NewSessionService(s)
	ctx := context.Background()
	u := seedUser(t, s, "multi-sess")

	t1, _, err := svc.Start(ctx, u.UserID)
	if err != nil {
		t.Fatalf("Start 1: %v", err)
	}
	t2, _, err := svc.Start(ctx, u.UserID)
	if err != nil {
		t.Fatalf("Start 2: %v", err)
	}
	if err := svc.EndAll(ctx, u.UserID); err != nil {
		t.Fatalf("EndAll: %v", err)
	}
	for _, tok := range []string{t1, t2} {
		if _, err := svc.Resolve(ctx, tok); !errors.Is(err, model.ErrNotFound) {
			t.Fatalf("session should be gone, got %v", err)
		}
	}

	// Purge only touches expired rows.
	tp, _ := auth.NewTokenPair()
	if _, err := s.Sessions().Create(ctx, &model.Session{
		UserID: u.UserID, TokenHash: tp.Hash, ExpiresAt: time.Now().UTC().Add(-time.Hour),
	}); err != nil {
		t.Fatalf("seed expired: %v", err)
	}
	live, _, err := svc.Start(ctx, u.UserID)
	if err != nil {
		t.Fatalf("Start live: %v", err)
	}
	if n, err := svc.PurgeExpired(ctx); err != nil || n != 1 {
		t.Fatalf("PurgeExpired: n=%d err=%v", n, err)
	}
	if _, err := svc.Resolve(ctx, live); err != nil {
		t.Fatalf("live session survived purge: %v", err)
	}
}
