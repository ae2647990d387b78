package services

import (
	"path/filepath"
	"testing"

	"github.com/mukundpurtutor/server/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Question{},
		&models.Attempt{},
		&models.Tutor{},
		&models.Book{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedBank(t *testing.T, db *gorm.DB) []models.Question {
	t.Helper()

	bank := []models.Question{
		{Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4"},
		{Text: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectAnswer: "Paris"},
	}
	if err := db.Create(&bank).Error; err != nil {
		t.Fatalf("seed questions: %v", err)
	}
	return bank
}
