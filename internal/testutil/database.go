package testutil

import (
	"path/filepath"
	"testing"

	"forumtrack/internal/database"
	"forumtrack/internal/tracking"
)

// NewTestDatabase creates a new in-memory SQLite database with schema applied.
// The database is automatically closed when the test completes.
// A nil clock or idgen falls back to FixedClock and a fresh StubIDGenerator.
func NewTestDatabase(t *testing.T, clock tracking.Clock, idgen tracking.IDGenerator) *database.SQLiteDatabase {
	t.Helper()

	if clock == nil {
		clock = FixedClock()
	}
	if idgen == nil {
		idgen = NewStubIDGenerator("")
	}

	sqlDB, err := database.OpenConnection(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	if _, err := sqlDB.Exec(database.Schema); err != nil {
		sqlDB.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	db := database.NewSQLiteDatabaseFromDB(sqlDB, clock, idgen)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// NewFileTestDatabase creates a migrated SQLite database file under
// t.TempDir(), for tests that need more than one connection.
func NewFileTestDatabase(t *testing.T, clock tracking.Clock, idgen tracking.IDGenerator) *database.SQLiteDatabase {
	t.Helper()

	if clock == nil {
		clock = FixedClock()
	}
	if idgen == nil {
		idgen = NewStubIDGenerator("")
	}

	db, err := database.NewSQLiteDatabase(filepath.Join(t.TempDir(), "forumtrack.db"), clock, idgen)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := db.Migrate(); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}
