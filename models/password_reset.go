package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetCode is a one-time code with a limited confirmation window.
type PasswordResetCode struct {
	gorm.Model

	MemberID  uint      `gorm:"index;not null" json:"member_id"`
	Member    *Member   `gorm:"foreignKey:MemberID" json:"-"`
	Code      string    `gorm:"size:16" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
}

func (c *PasswordResetCode) IsValidAt(now time.Time) bool {
	return !c.IsUsed && now.Before(c.ExpiresAt)
}
