package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/ndewijer/Property-Investment-Calculator-Backend/internal/database"
)

// SetupTestDB creates an in-memory SQLite database for testing, migrated with the
// same embedded goose migrations as production. The database is closed when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// database.Open pins the pool to one connection, so the in-memory database
	// lives exactly as long as db.
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if _, err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
