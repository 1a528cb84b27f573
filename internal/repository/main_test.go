package repository

import (
	"testing"

	"kkapi/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.APIToken{},
		&models.Tag{},
		&models.SpeakEntry{},
		&models.Post{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "digest", Nickname: username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func createTestTag(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{UserID: ownerID, Name: name, BgColor: "#409EFF"}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("Failed to create tag: %v", err)
	}
	return tag
}
