package services

import (
	"errors"
	"time"
	"vclub/database"
	"vclub/models"

	"github.com/shopspring/decimal"
)

// ProcessMemberDeposit runs the full referral pipeline for one qualifying
// deposit: a ReferralEvent for analytics, the one-time first-tournament
// distribution when no relation of the member has been paid yet, and the
// direct-referrer commission — all in one transaction. Rank recalculation for
// the direct referrers happens after commit. Returns nil without a referrer.
func ProcessMemberDeposit(member *models.Member, amount decimal.Decimal, createdAt time.Time) (*models.ReferralEvent, error) {
	if member.ID == 0 {
		return nil, nil
	}
	if !amount.IsPositive() {
		return nil, nil
	}
	if member.ReferrerID == nil {
		return nil, nil
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	event := models.ReferralEvent{
		ReferrerID:    *member.ReferrerID,
		ReferredID:    member.ID,
		DepositAmount: int(amount.IntPart()),
	}
	event.CreatedAt = createdAt
	if err := tx.Create(&event).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var paidCount int64
	if err := tx.Model(&models.ReferralRelation{}).
		Where("descendant_id = ? AND has_paid_first_bonus = ?", member.ID, true).
		Count(&paidCount).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var directAncestorIDs []uint
	if paidCount == 0 {
		ids, err := payFirstBonuses(tx, member)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
		directAncestorIDs = ids
	}

	if err := applyDepositCommission(tx, member, amount); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	rankUpMembers(directAncestorIDs)
	return &event, nil
}

// ProcessDeposit dispatches referral processing for a persisted Deposit row
// and credits the deposited amount to the member's wallet. The caller that
// creates the Deposit invokes this explicitly; there is no persistence hook.
func ProcessDeposit(deposit *models.Deposit) (*models.ReferralEvent, error) {
	if deposit == nil || deposit.MemberID == 0 {
		return nil, nil
	}

	var member models.Member
	if err := database.DB.First(&member, deposit.MemberID).Error; err != nil {
		return nil, err
	}

	event, err := ProcessMemberDeposit(&member, deposit.Amount, deposit.CreatedAt)
	if err != nil {
		return nil, err
	}

	if _, err := WalletDeposit(&member, deposit.Amount, "External deposit", map[string]any{
		"deposit_id": deposit.ID,
		"currency":   deposit.Currency,
	}); err != nil && !errors.Is(err, ErrInvalidAmount) {
		return nil, err
	}

	return event, nil
}
