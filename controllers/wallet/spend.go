package wallet

import (
	"errors"
	"vclub/helpers"
	"vclub/models"
	"vclub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SpendRequest struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func Spend(c *fiber.Ctx) error {
	var req SpendRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	member, ok := c.Locals("member").(models.Member)
	if !ok {
		return helpers.JSONUnauthorized(c, "INVALID_MEMBER_SESSION")
	}

	amount, err := helpers.ParseAmount(req.Amount)
	if err != nil {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	refID := uuid.New().String()
	wtx, err := services.WalletSpend(&member, amount, req.Description, map[string]any{
		"ref_id": refID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return helpers.JSONError(c, "INVALID_AMOUNT")
		case errors.Is(err, services.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		default:
			return helpers.JSONError(c, "FAILED_TO_SPEND")
		}
	}

	return helpers.JSONSuccess(c, "Spend recorded", fiber.Map{
		"transaction": wtx,
		"balance":     member.CashBalance,
		"ref_id":      refID,
	})
}
