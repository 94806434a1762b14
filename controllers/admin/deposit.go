package admin

import (
	"strings"
	"vclub/database"
	"vclub/helpers"
	"vclub/models"
	"vclub/services"

	"github.com/gofiber/fiber/v2"
)

type CreateDepositRequest struct {
	MemberID uint   `json:"member_id"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	IsTest   bool   `json:"is_test"`
}

// CreateDeposit records an external deposit fact and dispatches the full
// referral pipeline plus the wallet credit for it.
func CreateDeposit(c *fiber.Ctx) error {
	var req CreateDepositRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	amount, err := helpers.ParseAmount(req.Amount)
	if err != nil || !amount.IsPositive() {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	var member models.Member
	if err := database.DB.First(&member, req.MemberID).Error; err != nil {
		return helpers.JSONError(c, "MEMBER_NOT_FOUND")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "RUB"
	}

	deposit := models.Deposit{
		MemberID: member.ID,
		Amount:   amount.Round(2),
		Currency: currency,
		IsTest:   req.IsTest,
	}
	if err := database.DB.Create(&deposit).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_DEPOSIT")
	}

	event, err := services.ProcessDeposit(&deposit)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_PROCESS_DEPOSIT")
	}

	return helpers.JSONSuccess(c, "Deposit processed", fiber.Map{
		"deposit": deposit,
		"event":   event,
	})
}
