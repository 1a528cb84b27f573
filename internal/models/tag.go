package models

import "time"

// Tag groups speak entries for one user. Names are unique per owner.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_tag_owner_name" json:"user_id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_tag_owner_name" json:"name"`
	BgColor     string    `json:"bg_color"`
	OrderNo     int       `json:"order_no"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
