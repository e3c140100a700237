package models

import "time"

const (
	InformationStatusDraft     = "draft"
	InformationStatusPublished = "published"
	InformationStatusArchived  = "archived"
)

// Information adalah pengumuman/artikel informasi untuk user aplikasi.
type Information struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"type:varchar(255);not null" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	Status    string     `gorm:"type:varchar(50);not null;default:'draft'" json:"status"`
	PublishAt *time.Time `json:"publish_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
