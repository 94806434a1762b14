package services

import (
	"time"
	"vclub/database"
	"vclub/models"

	"gorm.io/gorm/clause"
)

// MarkWithdrawalPaid flips a withdrawal request to paid and debits the funds
// from the member's wallet through the ledger, atomically with the status
// update. A request that is already paid is a no-op.
func MarkWithdrawalPaid(request *models.WithdrawalRequest) (*models.WalletTransaction, error) {
	if request == nil || request.ID == 0 || request.Status == models.WithdrawalStatusPaid {
		return nil, nil
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	var locked models.WithdrawalRequest
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&locked, request.ID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if locked.Status == models.WithdrawalStatusPaid {
		tx.Rollback()
		return nil, nil
	}

	meta, err := marshalMeta(map[string]any{"withdrawal_request_id": locked.ID})
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	wtx, err := applyWalletChange(tx, locked.MemberID, locked.Amount.Neg(),
		models.TxTypeWithdraw, "Withdrawal payout", meta)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	if err := tx.Model(&models.WithdrawalRequest{}).Where("id = ?", locked.ID).
		Updates(map[string]interface{}{
			"status":       models.WithdrawalStatusPaid,
			"processed_at": now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	request.Status = models.WithdrawalStatusPaid
	request.ProcessedAt = &now
	return wtx, nil
}
