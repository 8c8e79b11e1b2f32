// Package testutil provides shared test doubles and fixtures for backend tests.
package testutil

import (
	"testing"

	"soulverse/internal/database"
	"soulverse/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB opens a migrated in-memory SQLite database that lives for the test.
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// Every :memory: connection is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// CreateProfile inserts a profile with the given name.
func CreateProfile(t testing.TB, db *gorm.DB, name string) *models.Profile {
	t.Helper()
	p := &models.Profile{Name: name, MBTI: "INFP", Enneagram: "9w3", Tritype: 725}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	return p
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
