package auth

import (
	"strings"
	"vclub/database"
	"vclub/helpers"
	"vclub/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" || req.Password == "" {
		return helpers.JSONError(c, "PHONE_AND_PASSWORD_REQUIRED")
	}

	var member models.Member
	if err := database.DB.Where("phone = ?", phone).First(&member).Error; err != nil {
		return helpers.JSONUnauthorized(c, "INVALID_CREDENTIALS")
	}
	if !member.CheckPassword(req.Password) {
		return helpers.JSONUnauthorized(c, "INVALID_CREDENTIALS")
	}

	token, err := createTokenForMember(&member)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_TOKEN")
	}

	return helpers.JSONSuccess(c, "Logged in", fiber.Map{
		"member": member,
		"token":  token.Key,
	})
}

func Me(c *fiber.Ctx) error {
	member, ok := c.Locals("member").(models.Member)
	if !ok {
		return helpers.JSONUnauthorized(c, "INVALID_MEMBER_SESSION")
	}
	return helpers.JSONSuccess(c, "OK", member)
}
