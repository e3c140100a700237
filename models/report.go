package models

import "time"

const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

const (
	ReportPriorityLow    = "low"
	ReportPriorityMedium = "medium"
	ReportPriorityHigh   = "high"
)

// Report adalah laporan user terhadap user lain (konten/perilaku).
type Report struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Reason         string    `gorm:"type:text;not null" json:"reason"`
	Status         string    `gorm:"type:varchar(50);not null;default:'pending'" json:"status"`
	Priority       string    `gorm:"type:varchar(50);not null;default:'medium'" json:"priority"`
	ReporterID     *uint     `json:"reporter_id"`
	Reporter       *User     `gorm:"foreignKey:ReporterID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"reporter,omitempty"`
	ReportedUserID *uint     `json:"reported_user_id"`
	ReportedUser   *User     `gorm:"foreignKey:ReportedUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"reported_user,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
