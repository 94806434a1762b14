package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Deposit is the external fact that triggers referral processing. The row is
// created by the caller; referral logic is dispatched explicitly via
// services.ProcessDeposit, never by a persistence hook.
type Deposit struct {
	gorm.Model

	MemberID uint    `gorm:"index;not null" json:"member_id"`
	Member   *Member `gorm:"foreignKey:MemberID" json:"-"`

	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency string          `gorm:"size:8;default:RUB" json:"currency"`
	IsTest   bool            `gorm:"default:false" json:"is_test"`
}
