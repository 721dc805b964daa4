package appservice

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kindredhq/kindred/internal/config"
)

func TestCalculateStartupHealthTimeout(t *testing.T) {
	if got := calculateStartupHealthTimeout(5); got != 60 {
		t.Fatalf("expected minimum of 60, got %d", got)
	}
	if got := calculateStartupHealthTimeout(45); got != 90 {
		t.Fatalf("expected interval*2, got %d", got)
	}
}

func TestNewStoreRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{DBDriver: "oracle"}
	if _, err := newStore(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestNewStoreSQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "kindred.db"),
	}
	st, err := newStore(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("newStore: %v", err)
	}
	if st == nil {
		t.Fatalf("expected store")
	}
}
