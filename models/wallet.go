package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TxTypeDeposit    = "deposit"
	TxTypeSpend      = "spend"
	TxTypeWithdraw   = "withdraw"
	TxTypeRefund     = "refund"
	TxTypeAdjustment = "adjustment"
	TxTypeAdminDebit = "admin_debit"
	TxTypeBonus      = "bonus"
)

// WalletTransaction is an append-only ledger row. BalanceAfter always equals
// the member's cash balance immediately after the row was written.
type WalletTransaction struct {
	gorm.Model

	MemberID uint    `gorm:"index;not null" json:"member_id"`
	Member   *Member `gorm:"foreignKey:MemberID" json:"-"`

	Type         string          `gorm:"size:32;index" json:"type"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"balance_after"`
	Description  string          `gorm:"type:text" json:"description"`
	Meta         datatypes.JSON  `gorm:"type:jsonb" json:"meta,omitempty"`
}

// SignedAmount is the amount with the sign implied by the transaction type,
// so that summing rows from zero reconciles to the current balance.
func (t *WalletTransaction) SignedAmount() decimal.Decimal {
	switch t.Type {
	case TxTypeSpend, TxTypeWithdraw, TxTypeAdminDebit:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}
