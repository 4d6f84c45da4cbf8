package script

import (
	"testing"

	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/testutil"
	"gorm.io/gorm"
)

// setupTestStore creates a test database and script store for testing.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Script{})

	log := logger.NewTestLogger()
	store := NewMySQLStore(db, log)

	return db, store
}

// createTestScript creates a pending test script with default values.
func createTestScript(name, category string, priority Priority) *Script {
	return &Script{
		Name:     name,
		Path:     "/scripts/" + name + ".sql",
		Category: category,
		Priority: priority,
		Status:   StatusPending,
	}
}
