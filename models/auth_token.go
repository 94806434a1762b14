package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// MemberAuthToken is a single active API token per member.
type MemberAuthToken struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	MemberID  uint      `gorm:"uniqueIndex;not null" json:"member_id"`
	Member    *Member   `gorm:"foreignKey:MemberID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func GenerateTokenKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
