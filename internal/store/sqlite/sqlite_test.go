package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/kindredhq/kindred/internal/store"
	"github.com/kindredhq/kindred/internal/store/storetest"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		db, err := OpenInMemory()
		if err != nil {
			t.Fatalf("open in-memory sqlite: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })
		if err := Migrate(db); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		return NewWithDB(db)
	})
}

func TestOpenCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kindred.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%s): %v", path, err)
	}
	defer func() { _ = db.Close() }()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func TestDDLStatementsNonEmpty(t *testing.T) {
	stmts := DDLStatements()
	if len(stmts) == 0 {
		t.Fatal("expected embedded DDL statements")
	}
	for _, s := range stmts {
		if s == "" {
			t.Fatal("empty DDL statement")
		}
	}
}
