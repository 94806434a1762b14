package middlewares

import (
	"strings"
	"vclub/database"
	"vclub/helpers"
	"vclub/models"

	"github.com/gofiber/fiber/v2"
)

func MemberAuthMiddleware(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	key := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))

	if key == "" {
		return helpers.JSONUnauthorized(c, "TOKEN_REQUIRED")
	}

	var token models.MemberAuthToken
	if err := database.DB.Preload("Member").First(&token, "key = ?", key).Error; err != nil {
		return helpers.JSONUnauthorized(c, "INVALID_TOKEN")
	}
	if token.Member == nil {
		return helpers.JSONUnauthorized(c, "INVALID_TOKEN")
	}

	c.Locals("member", *token.Member)
	return c.Next()
}

func AdminOnlyMiddleware(c *fiber.Ctx) error {
	member, ok := c.Locals("member").(models.Member)
	if !ok {
		return helpers.JSONUnauthorized(c, "INVALID_MEMBER_SESSION")
	}
	if !member.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "ADMIN_ONLY",
			"data":    nil,
		})
	}
	return c.Next()
}
