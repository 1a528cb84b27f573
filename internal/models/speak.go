package models

import "time"

// Visibility is the per-entry redaction tier for speak entries.
type Visibility int

const (
	// VisibilityPublic entries are readable by anyone.
	VisibilityPublic Visibility = 0
	// VisibilityLoginRequired entries are redacted for anonymous viewers.
	VisibilityLoginRequired Visibility = 1
	// VisibilityAuthorOnly entries are redacted for everyone but the author.
	VisibilityAuthorOnly Visibility = 2
)

// Valid reports whether v is a known visibility tier.
func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityLoginRequired, VisibilityAuthorOnly:
		return true
	}
	return false
}

// SpeakEntry is a tagged micro-post.
type SpeakEntry struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	AuthorID    uint       `gorm:"not null;index" json:"author_id"`
	Title       string     `json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Visibility  Visibility `gorm:"not null;default:0" json:"visibility"`
	TagID       uint       `gorm:"not null;index" json:"tag_id"`
	Commentable bool       `gorm:"not null;default:true" json:"commentable"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Display fields joined at query time; not persisted.
	AuthorNickname string `gorm:"->" json:"author_nickname,omitempty"`
	AuthorAvatar   string `gorm:"->" json:"author_avatar,omitempty"`
	TagName        string `gorm:"->" json:"tag_name,omitempty"`
	TagBgColor     string `gorm:"->" json:"tag_bg_color,omitempty"`
}
