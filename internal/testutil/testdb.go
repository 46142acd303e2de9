package testutil

import (
	"path/filepath"
	"testing"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/jmoiron/sqlx"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return openTestDB(t, db.MemoryDSN)
}

// NewFileTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in
// the pool, which concurrency tests need.
func NewFileTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return openTestDB(t, filepath.Join(t.TempDir(), "cotizador_test.db"))
}

func openTestDB(t *testing.T, dsn string) *sqlx.DB {
	t.Helper()
	database, err := db.OpenDB(db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sqlx.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database)
}
