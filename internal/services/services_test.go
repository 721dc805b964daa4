package services

import (
	"context"
	"testing"

	"github.com/kindredhq/kindred/internal/model"
	"github.com/kindredhq/kindred/internal/store"
	"github.com/kindredhq/kindred/internal/store/sqlite"
)

// newTestStore returns a fresh in-memory store for service tests.
func newTestStore(t *testing.T) store.Store {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return sqlite.NewWithDB(db)
}

func seedUser(t *testing.T, s store.Store, username string) *model.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &model.User{Username: username, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}
