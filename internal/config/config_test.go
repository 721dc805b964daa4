package config

import "testing"

func TestResolveDefaultsSQLite(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite"}
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("ResolveDefaults: %v", err)
	}
	if cfg.SQLitePath == "" {
		t.Fatalf("expected default sqlite path")
	}
}

func TestResolveDefaultsPostgresRequiresDSN(t *testing.T) {
	cfg := &Config{DBDriver: "postgres"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for postgres without DSN")
	}
	cfg.PostgresDSN = "postgres://localhost:5432/kindred"
	if err := cfg.ResolveDefaults(); err != nil {
		t.Fatalf("ResolveDefaults: %v", err)
	}
}

func TestResolveDefaultsRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{DBDriver: "oracle"}
	if err := cfg.ResolveDefaults(); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestGetHTTPAddr(t *testing.T) {
	cfg := &Config{HTTPPort: 9999}
	if got := cfg.GetHTTPAddr(); got != ":9999" {
		t.Fatalf("GetHTTPAddr = %q", got)
	}
}
