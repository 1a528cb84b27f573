// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the kkapi application.
type User struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Username    string         `gorm:"uniqueIndex;not null" json:"username"`
	Password    string         `gorm:"not null" json:"-"`
	Nickname    string         `json:"nickname"`
	Avatar      string         `json:"avatar"`
	Description string         `json:"description"`
	Link        string         `json:"link"`
	Email       string         `json:"email"`
	HomePath    string         `json:"home_path"`
	Status      string         `json:"status"`
	GithubID    string         `json:"github_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
