package repository

import (
	"testing"

	"kiroku/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Todo{},
		&models.Post{},
		&models.Comment{},
		&models.Reply{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
