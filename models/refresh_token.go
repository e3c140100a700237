package models

import "time"

// RefreshToken disimpan di database supaya bisa dicabut (logout / rotasi).
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Token     string     `gorm:"type:varchar(255);unique;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (rt *RefreshToken) Valid() bool {
	return rt.RevokedAt == nil && time.Now().Before(rt.ExpiresAt)
}
