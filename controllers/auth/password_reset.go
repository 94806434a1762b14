package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"vclub/database"
	"vclub/helpers"
	"vclub/logger"
	"vclub/models"

	"github.com/gofiber/fiber/v2"
)

const resetCodeTTL = 15 * time.Minute

type PasswordResetRequest struct {
	Phone string `json:"phone"`
}

// RequestPasswordReset issues a one-time code. Delivery of the code to the
// member happens outside this service; the response never includes it.
func RequestPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		return helpers.JSONError(c, "PHONE_REQUIRED")
	}

	var member models.Member
	if err := database.DB.Where("phone = ?", phone).First(&member).Error; err != nil {
		// Do not leak which phones are registered.
		return helpers.JSONSuccess(c, "If the phone is registered, a code has been sent", nil)
	}

	code, err := generateResetCode()
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_GENERATE_CODE")
	}

	reset := models.PasswordResetCode{
		MemberID:  member.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_CODE")
	}

	logger.Log.Debugf("password reset code issued for member %d", member.ID)
	return helpers.JSONSuccess(c, "If the phone is registered, a code has been sent", nil)
}

type PasswordResetConfirm struct {
	Phone       string `json:"phone"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

func ConfirmPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" || req.Code == "" || req.NewPassword == "" {
		return helpers.JSONError(c, "PHONE_CODE_AND_PASSWORD_REQUIRED")
	}
	if len(req.NewPassword) < 6 {
		return helpers.JSONError(c, "PASSWORD_TOO_SHORT")
	}

	var member models.Member
	if err := database.DB.Where("phone = ?", phone).First(&member).Error; err != nil {
		return helpers.JSONError(c, "INVALID_CODE")
	}

	var reset models.PasswordResetCode
	if err := database.DB.
		Where("member_id = ? AND code = ? AND is_used = ?", member.ID, req.Code, false).
		Order("created_at DESC").
		First(&reset).Error; err != nil {
		return helpers.JSONError(c, "INVALID_CODE")
	}
	if !reset.IsValidAt(time.Now()) {
		return helpers.JSONError(c, "CODE_EXPIRED")
	}

	if err := member.SetPassword(req.NewPassword); err != nil {
		return helpers.JSONError(c, "FAILED_TO_HASH_PASSWORD")
	}
	if err := database.DB.Model(&member).Update("password_hash", member.PasswordHash).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_PASSWORD")
	}
	if err := database.DB.Model(&reset).Update("is_used", true).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_UPDATE_CODE")
	}

	return helpers.JSONSuccess(c, "Password updated", nil)
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
