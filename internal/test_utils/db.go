package test_utils

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/klokku/freelancer/internal/database"
)

// NewSQLiteDB creates a migrated SQLite database in a per-test temp directory.
// Each database is completely isolated from others.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
