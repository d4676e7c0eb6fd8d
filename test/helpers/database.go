package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/colony-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory sqlite store that lives until t ends.
// Sqlite runs on a single connection, so a test must not use a repository
// outside a unit of work while one is open.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})
	return db
}
