package services

import (
	"errors"
	"fmt"
	"vclub/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// applyDepositCommission pays the lifetime deposit commission to the direct
// referrer, when that referrer is an influencer. Runs on every qualifying
// deposit, independent of first-bonus state, and never walks past level 1.
func applyDepositCommission(tx *gorm.DB, member *models.Member, depositAmount decimal.Decimal) error {
	if member.ReferrerID == nil {
		return nil
	}

	var referrer models.Member
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&referrer, *member.ReferrerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if !referrer.IsInfluencer() {
		return nil
	}

	commission := depositAmount.Mul(models.InfluencerDepositPercent).Round(2)
	if !commission.IsPositive() {
		return nil
	}

	if err := tx.Create(&models.ReferralReward{
		MemberID:       referrer.ID,
		SourceMemberID: member.ID,
		RewardType:     models.RewardTypeInfluencerDepositPercent,
		AmountRub:      commission,
		Depth:          1,
	}).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"cash_balance": referrer.CashBalance.Add(commission),
	}
	if inc := commission.IntPart(); inc > 0 {
		updates["total_money_earned"] = referrer.TotalMoneyEarned + int(inc)
	}

	return tx.Model(&models.Member{}).Where("id = ?", referrer.ID).
		Updates(updates).Error
}

// createSpendReferralBonus credits the direct influencer referrer with the
// commission rate of a wallet spend, via a dedicated bonus ledger entry.
// The uniqueness probe on the originating transaction guarantees at-most-once
// payout per spend; duplicates are absorbed silently.
func createSpendReferralBonus(tx *gorm.DB, spendTx *models.WalletTransaction, member *models.Member) (*models.ReferralBonus, error) {
	if spendTx == nil || spendTx.ID == 0 || spendTx.Type != models.TxTypeSpend {
		return nil, nil
	}
	if member.ReferrerID == nil {
		return nil, nil
	}

	var referrer models.Member
	if err := tx.First(&referrer, *member.ReferrerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !referrer.IsInfluencer() {
		return nil, nil
	}

	var existing models.ReferralBonus
	err := tx.Where("spend_transaction_id = ?", spendTx.ID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	amount := spendTx.Amount.Mul(models.InfluencerDepositPercent).Round(2)
	if !amount.IsPositive() {
		return nil, nil
	}

	description := fmt.Sprintf(
		"Referral bonus from spend transaction #%d of member %d",
		spendTx.ID, member.ID,
	)
	meta, err := marshalMeta(map[string]any{
		"source_member_id":     member.ID,
		"spend_transaction_id": spendTx.ID,
	})
	if err != nil {
		return nil, err
	}

	if _, err := applyWalletChange(tx, referrer.ID, amount, models.TxTypeBonus, description, meta); err != nil {
		return nil, err
	}

	bonus := models.ReferralBonus{
		ReferrerID:         referrer.ID,
		ReferredMemberID:   member.ID,
		SpendTransactionID: spendTx.ID,
		Amount:             amount,
		Description:        description,
	}
	if err := tx.Create(&bonus).Error; err != nil {
		return nil, err
	}

	if inc := amount.IntPart(); inc > 0 {
		if err := tx.Model(&models.Member{}).Where("id = ?", referrer.ID).
			Update("total_money_earned", gorm.Expr("total_money_earned + ?", inc)).Error; err != nil {
			return nil, err
		}
	}

	return &bonus, nil
}
