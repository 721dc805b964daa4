package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kindredhq/kindred/internal/auth"
	"github.com/kindredhq/kindred/internal/model"
)

// fastHasher keeps password tests quick; production wiring uses NewArgon2.
func fastHasher() auth.PasswordHandler {
	return &auth.Argon2{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func TestUserRegisterAndAuthenticate(t *testing.T) {
	svc := NewUserService(newTestStore(t), fastHasher())
	ctx := context.Background()

	u, err := svc.Register(ctx, "mallory", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash == "hunter22" {
		t.Fatal("password stored in the clear")
	}

	// Duplicate username conflicts.
	if _, err := svc.Register(ctx, "mallory", "other"); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate register: want ErrConflict, got %v", err)
	}

	got, err := svc.Authenticate(ctx, "mallory", "hunter22")
	if err != nil || got.UserID != u.UserID {
		t.Fatalf("Authenticate: got=%v err=%v", got, err)
	}
	if _, err := svc.Authenticate(ctx, "mallory", "wrong"); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("bad password: want ErrNotAllowed, got %v", err)
	}
	// Unknown users look identical to bad passwords.
	if _, err := svc.Authenticate(ctx, "nobody", "pw"); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("unknown user: want ErrNotAllowed, got %v", err)
	}
}

func TestUserUpdateUsername(t *testing.T) {
	svc := NewUserService(newTestStore(t), fastHasher())
	ctx := context.Background()

	a, err := svc.Register(ctx, "ana", "pw-one-23")
	if err != nil {
		t.Fatalf("Register ana: %v", err)
	}
	if _, err := svc.Register(ctx, "ben", "pw-two-23"); err != nil {
		t.Fatalf("Register ben: %v", err)
	}

	if got, err := svc.UpdateUsername(ctx, a.UserID, "ana-prime"); err != nil || got.Username != "ana-prime" {
		t.Fatalf("UpdateUsername: got=%v err=%v", got, err)
	}
	// Taking another user's name conflicts; keeping your own is a no-op.
	if _, err := svc.UpdateUsername(ctx, a.UserID, "ben"); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("steal username: want ErrConflict, got %v", err)
	}
	if got, err := svc.UpdateUsername(ctx, a.UserID, "ana-prime"); err != nil || got.Username != "ana-prime" {
		t.Fatalf("same username: got=%v err=%v", got, err)
	}
}

func TestUserUpdatePassword(t *testing.T) {
	svc := NewUserService(newTestStore(t), fastHasher())
	ctx := context.Background()

	u, err := svc.Register(ctx, "cleo", "old-password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.UpdatePassword(ctx, u.UserID, "new-password"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "cleo", "old-password"); !errors.Is(err, model.ErrNotAllowed) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "cleo", "new-password"); err != nil {
		t.Fatalf("new password: %v", err)
	}
}

func TestUserDeleteCascades(t *testing.T) {
	s := newTestStore(t)
	users := NewUserService(s, fastHasher())
	sessions := NewSessionService(s)
	profiles := NewProfileService(s)
	ctx := context.Background()

	u, err := users.Register(ctx, "dana", "pw-abc-123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, _, err := sessions.Start(ctx, u.UserID)
	if err != nil {
		t.Fatalf("Start session: %v", err)
	}
	if _, err := profiles.CreateProfile(ctx, u.UserID, "Dana", nil, nil); err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	if err := users.DeleteUser(ctx, u.UserID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := sessions.Resolve(ctx, token); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("session should be gone, got %v", err)
	}
	if _, err := profiles.GetProfile(ctx, u.UserID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("profile should be gone, got %v", err)
	}
	if err := users.DeleteUser(ctx, u.UserID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
}
