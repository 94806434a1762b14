package services

import (
	"encoding/json"
	"vclub/database"
	"vclub/models"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyWalletChange is the single write path for the wallet ledger. It runs
// inside the caller's transaction: locks the member row, rejects changes that
// would leave the balance negative, writes the WalletTransaction row and
// persists the new balance. delta > 0 credits, delta < 0 debits. A spend
// additionally pays the referral spend bonus before the balance is persisted.
func applyWalletChange(tx *gorm.DB, memberID uint, delta decimal.Decimal, txType, description string, meta datatypes.JSON) (*models.WalletTransaction, error) {
	if delta.IsZero() {
		return nil, ErrZeroAmount
	}

	var locked models.Member
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked, memberID).Error; err != nil {
		return nil, err
	}

	newBalance := locked.CashBalance.Add(delta)
	if newBalance.IsNegative() {
		return nil, ErrInsufficientBalance
	}

	newBalance = newBalance.Round(2)
	amount := delta.Abs().Round(2)

	wtx := models.WalletTransaction{
		MemberID:     locked.ID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: newBalance,
		Description:  description,
		Meta:         meta,
	}
	if err := tx.Create(&wtx).Error; err != nil {
		return nil, err
	}

	if txType == models.TxTypeSpend {
		if _, err := createSpendReferralBonus(tx, &wtx, &locked); err != nil {
			return nil, err
		}
	}

	if err := tx.Model(&models.Member{}).Where("id = ?", locked.ID).
		Update("cash_balance", newBalance).Error; err != nil {
		return nil, err
	}

	return &wtx, nil
}

func applyWalletChangeAtomic(member *models.Member, delta decimal.Decimal, txType, description string, meta map[string]any) (*models.WalletTransaction, error) {
	metaJSON, err := marshalMeta(meta)
	if err != nil {
		return nil, err
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	wtx, err := applyWalletChange(tx, member.ID, delta, txType, description, metaJSON)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	// Keep the in-memory instance in sync.
	member.CashBalance = wtx.BalanceAfter
	return wtx, nil
}

// WalletDeposit credits the member's wallet by the given positive amount.
func WalletDeposit(member *models.Member, amount decimal.Decimal, description string, meta map[string]any) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return applyWalletChangeAtomic(member, amount, models.TxTypeDeposit, description, meta)
}

// WalletSpend debits the member's wallet by the given positive amount.
// Returns ErrInsufficientBalance when the balance does not cover it.
func WalletSpend(member *models.Member, amount decimal.Decimal, description string, meta map[string]any) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return applyWalletChangeAtomic(member, amount.Neg(), models.TxTypeSpend, description, meta)
}

// AdjustBalance applies a signed admin-only correction.
func AdjustBalance(member *models.Member, delta decimal.Decimal, description string, meta map[string]any) (*models.WalletTransaction, error) {
	if delta.IsZero() {
		return nil, ErrZeroAmount
	}
	return applyWalletChangeAtomic(member, delta, models.TxTypeAdjustment, description, meta)
}

// AdminDebit is an admin-initiated debit with the acting admin recorded in meta.
func AdminDebit(member *models.Member, amount decimal.Decimal, reason string, admin *models.Member, meta map[string]any) (*models.WalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	baseMeta := map[string]any{"source": "admin_debit"}
	if admin != nil && admin.ID != 0 {
		baseMeta["admin_id"] = admin.ID
	}
	for k, v := range meta {
		baseMeta[k] = v
	}

	return applyWalletChangeAtomic(member, amount.Neg(), models.TxTypeAdminDebit, reason, baseMeta)
}

func marshalMeta(meta map[string]any) (datatypes.JSON, error) {
	if len(meta) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
