package sqlite

import (
	"database/sql"
	_ "embed"
	"strings"
)

//go:embed schema.sql
var ddlFile string

// DDLStatements returns the CREATE TABLE / INDEX statements from schema.sql,
// split on semicolons with whitespace trimmed.
func DDLStatements() []string {
	parts := strings.Split(ddlFile, ";")
	var out []string
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// Migrate applies the embedded schema. All statements are idempotent.
func Migrate(db *sql.DB) error {
	for _, stmt := range DDLStatements() {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
