package models

import "time"

const (
	NotificationStatusDraft     = "draft"
	NotificationStatusScheduled = "scheduled"
	NotificationStatusSent      = "sent"
	NotificationStatusFailed    = "failed"
)

const (
	NotificationTargetAll     = "all"
	NotificationTargetUser    = "user"
	NotificationTargetSegment = "segment"
)

// Notification adalah push notification yang dikirim ke user aplikasi.
type Notification struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	Target       string     `gorm:"type:varchar(50);not null;default:'all'" json:"target"`
	TargetUserID *uint      `json:"target_user_id"`
	TargetUser   *User      `gorm:"foreignKey:TargetUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"target_user,omitempty"`
	Status       string     `gorm:"type:varchar(50);not null;default:'draft'" json:"status"`
	ScheduleAt   *time.Time `json:"schedule_at"`
	SentAt       *time.Time `json:"sent_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
