package models

import "time"

// Post is a link-aggregator feed item pointing at an external article.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Link      string    `gorm:"not null" json:"link"`
	Author    string    `json:"author"`
	Avatar    string    `json:"avatar"`
	Rule      string    `json:"rule"`
	Published time.Time `json:"published"`
	Updated   time.Time `json:"updated"`
	CreatedAt time.Time `json:"created_at"`
}
