package wallet

import (
	"vclub/database"
	"vclub/helpers"
	"vclub/models"

	"github.com/gofiber/fiber/v2"
)

func ListTransactions(c *fiber.Ctx) error {
	member, ok := c.Locals("member").(models.Member)
	if !ok {
		return helpers.JSONUnauthorized(c, "INVALID_MEMBER_SESSION")
	}

	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	var transactions []models.WalletTransaction
	if err := database.DB.
		Where("member_id = ?", member.ID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&transactions).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_TRANSACTIONS")
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"balance":      member.CashBalance,
		"transactions": transactions,
	})
}
