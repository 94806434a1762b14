package admin

import (
	"errors"
	"time"
	"vclub/database"
	"vclub/helpers"
	"vclub/models"
	"vclub/services"

	"github.com/gofiber/fiber/v2"
)

func ListWithdrawals(c *fiber.Ctx) error {
	status := c.Query("status")

	query := database.DB.Order("created_at DESC").Limit(200)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.WithdrawalRequest
	if err := query.Find(&requests).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_WITHDRAWALS")
	}

	return helpers.JSONSuccess(c, "OK", requests)
}

type WithdrawalStatusRequest struct {
	RequestID uint   `json:"request_id"`
	Status    string `json:"status"`
}

// UpdateWithdrawalStatus moves a request through its lifecycle. Marking a
// request paid debits the member wallet through the ledger; the payout is
// at-most-once even when called repeatedly.
func UpdateWithdrawalStatus(c *fiber.Ctx) error {
	var req WithdrawalStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var request models.WithdrawalRequest
	if err := database.DB.First(&request, req.RequestID).Error; err != nil {
		return helpers.JSONError(c, "REQUEST_NOT_FOUND")
	}

	switch req.Status {
	case models.WithdrawalStatusPaid:
		wtx, err := services.MarkWithdrawalPaid(&request)
		if err != nil {
			if errors.Is(err, services.ErrInsufficientBalance) {
				return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
			}
			return helpers.JSONError(c, "FAILED_TO_MARK_PAID")
		}
		return helpers.JSONSuccess(c, "Withdrawal paid", fiber.Map{
			"request":     request,
			"transaction": wtx,
		})
	case models.WithdrawalStatusApproved, models.WithdrawalStatusRejected:
		now := time.Now()
		if err := database.DB.Model(&request).Updates(map[string]interface{}{
			"status":       req.Status,
			"processed_at": now,
		}).Error; err != nil {
			return helpers.JSONError(c, "FAILED_TO_UPDATE_STATUS")
		}
		return helpers.JSONSuccess(c, "Withdrawal updated", request)
	default:
		return helpers.JSONError(c, "INVALID_STATUS")
	}
}
