package models

import "time"

// SpeakTokenTitle is the token title that grants the delegated
// speak-posting capability.
const SpeakTokenTitle = "speak"

// APIToken is a named opaque credential owned by a user. Presenting a
// matching (title, value) pair authenticates as the owner for a single
// capability without issuing a session token.
type APIToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_token_owner_title" json:"user_id"`
	Title     string    `gorm:"not null;uniqueIndex:idx_token_owner_title" json:"title"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
