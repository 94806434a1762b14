package wallet

import (
	"strings"
	"vclub/database"
	"vclub/helpers"
	"vclub/models"

	"github.com/gofiber/fiber/v2"
)

type WithdrawRequest struct {
	Amount      string `json:"amount"`
	Method      string `json:"method"`
	Destination string `json:"destination"`
}

// RequestWithdrawal files a pending withdrawal request. The funds are only
// debited when an admin marks the request paid.
func RequestWithdrawal(c *fiber.Ctx) error {
	var req WithdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	member, ok := c.Locals("member").(models.Member)
	if !ok {
		return helpers.JSONUnauthorized(c, "INVALID_MEMBER_SESSION")
	}

	amount, err := helpers.ParseAmount(req.Amount)
	if err != nil || !amount.IsPositive() {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	method := strings.TrimSpace(req.Method)
	if method != models.WithdrawalMethodCard && method != models.WithdrawalMethodCrypto {
		return helpers.JSONError(c, "INVALID_METHOD")
	}
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return helpers.JSONError(c, "DESTINATION_REQUIRED")
	}

	if member.CashBalance.LessThan(amount) {
		return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
	}

	request := models.WithdrawalRequest{
		MemberID:    member.ID,
		Amount:      amount.Round(2),
		Method:      method,
		Destination: destination,
		Status:      models.WithdrawalStatusPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_REQUEST")
	}

	return helpers.JSONSuccess(c, "Withdrawal requested", request)
}
