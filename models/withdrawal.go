package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	WithdrawalMethodCard   = "card"
	WithdrawalMethodCrypto = "crypto"
)

const (
	WithdrawalStatusPending  = "pending"
	WithdrawalStatusApproved = "approved"
	WithdrawalStatusRejected = "rejected"
	WithdrawalStatusPaid     = "paid"
)

type WithdrawalRequest struct {
	gorm.Model

	MemberID uint    `gorm:"index;not null" json:"member_id"`
	Member   *Member `gorm:"foreignKey:MemberID" json:"-"`

	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method      string          `gorm:"size:16" json:"method"`
	Destination string          `gorm:"type:text" json:"destination"`
	Status      string          `gorm:"size:16;default:pending;index" json:"status"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
}
