package admin

import (
	"errors"
	"vclub/database"
	"vclub/helpers"
	"vclub/models"
	"vclub/services"

	"github.com/gofiber/fiber/v2"
)

func ListMembers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var members []models.Member
	if err := database.DB.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&members).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_MEMBERS")
	}

	return helpers.JSONSuccess(c, "OK", members)
}

type AdjustBalanceRequest struct {
	MemberID    uint   `json:"member_id"`
	Delta       string `json:"delta"`
	Description string `json:"description"`
}

// AdjustBalance applies a signed manual correction to a member's wallet.
func AdjustBalance(c *fiber.Ctx) error {
	var req AdjustBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	delta, err := helpers.ParseAmount(req.Delta)
	if err != nil {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	var member models.Member
	if err := database.DB.First(&member, req.MemberID).Error; err != nil {
		return helpers.JSONError(c, "MEMBER_NOT_FOUND")
	}

	admin, _ := c.Locals("member").(models.Member)
	wtx, err := services.AdjustBalance(&member, delta, req.Description, map[string]any{
		"source":   "admin_adjustment",
		"admin_id": admin.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrZeroAmount):
			return helpers.JSONError(c, "INVALID_AMOUNT")
		case errors.Is(err, services.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		default:
			return helpers.JSONError(c, "FAILED_TO_ADJUST_BALANCE")
		}
	}

	return helpers.JSONSuccess(c, "Balance adjusted", fiber.Map{
		"transaction": wtx,
		"balance":     member.CashBalance,
	})
}

type DebitRequest struct {
	MemberID uint   `json:"member_id"`
	Amount   string `json:"amount"`
	Reason   string `json:"reason"`
}

func Debit(c *fiber.Ctx) error {
	var req DebitRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	amount, err := helpers.ParseAmount(req.Amount)
	if err != nil {
		return helpers.JSONError(c, "INVALID_AMOUNT")
	}

	var member models.Member
	if err := database.DB.First(&member, req.MemberID).Error; err != nil {
		return helpers.JSONError(c, "MEMBER_NOT_FOUND")
	}

	admin, _ := c.Locals("member").(models.Member)
	wtx, err := services.AdminDebit(&member, amount, req.Reason, &admin, nil)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return helpers.JSONError(c, "INVALID_AMOUNT")
		case errors.Is(err, services.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_BALANCE")
		default:
			return helpers.JSONError(c, "FAILED_TO_DEBIT")
		}
	}

	return helpers.JSONSuccess(c, "Member debited", fiber.Map{
		"transaction": wtx,
		"balance":     member.CashBalance,
	})
}
