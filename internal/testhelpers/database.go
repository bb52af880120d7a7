package testhelpers

import (
	"testing"

	"github.com/meishi-app/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDatabase creates an in-memory sqlite database with the full
// schema and a seeded skill catalog. One open connection only, so every
// query sees the same in-memory store.
func SetupTestDatabase(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		if err := sqlDB.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := db.AutoMigrate(&models.User{}, &models.Skill{}, &models.UserSkill{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	SeedSkills(t, db)
	return db
}

// SeedSkills loads the fixed skill catalog used by the tests.
func SeedSkills(t *testing.T, db *gorm.DB) {
	t.Helper()

	skills := []models.Skill{
		{ID: 1, Name: "Go"},
		{ID: 2, Name: "TypeScript"},
		{ID: 3, Name: "React"},
		{ID: 4, Name: "Next.js"},
		{ID: 5, Name: "Rails"},
		{ID: 6, Name: "Python"},
		{ID: 7, Name: "AWS"},
		{ID: 8, Name: "Docker"},
		{ID: 9, Name: "PostgreSQL"},
		{ID: 10, Name: "GitHub Actions"},
	}
	if err := db.Create(&skills).Error; err != nil {
		t.Fatalf("failed to seed skills: %v", err)
	}
}
