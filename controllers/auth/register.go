package auth

import (
	"strings"
	"time"
	"vclub/database"
	"vclub/helpers"
	"vclub/logger"
	"vclub/models"
	"vclub/services"

	"github.com/gofiber/fiber/v2"
)

type RegisterRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	UserType     string `json:"user_type"`
	ReferralCode string `json:"referral_code"`
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" || req.Password == "" {
		return helpers.JSONError(c, "PHONE_AND_PASSWORD_REQUIRED")
	}
	if len(req.Password) < 6 {
		return helpers.JSONError(c, "PASSWORD_TOO_SHORT")
	}

	var existing models.Member
	if err := database.DB.Where("phone = ?", phone).First(&existing).Error; err == nil {
		return helpers.JSONError(c, "PHONE_ALREADY_REGISTERED")
	}

	userType := models.UserTypePlayer
	if req.UserType == models.UserTypeInfluencer {
		userType = models.UserTypeInfluencer
	}

	member := models.Member{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     phone,
		UserType:  userType,
		Rank:      models.RankStandard,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		member.Email = &email
	}
	if userType == models.UserTypeInfluencer {
		now := time.Now()
		member.InfluencerSince = &now
	}
	if err := member.SetPassword(req.Password); err != nil {
		return helpers.JSONError(c, "FAILED_TO_HASH_PASSWORD")
	}

	// Resolve the direct referrer from the submitted code. Unknown codes are
	// ignored; the member just registers without an upline.
	if code := strings.TrimSpace(req.ReferralCode); code != "" {
		var referrer models.Member
		if err := database.DB.Where("referral_code = ?", code).First(&referrer).Error; err == nil {
			member.ReferrerID = &referrer.ID
		}
	}

	if err := database.DB.Create(&member).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_REGISTER_MEMBER")
	}

	code, err := member.GenerateReferralCode()
	if err == nil {
		member.ReferralCode = code
		if err := database.DB.Model(&member).Update("referral_code", code).Error; err != nil {
			logger.Log.Warnf("failed to store referral code for member %d: %v", member.ID, err)
		}
	}

	if err := services.RegisterRelations(&member); err != nil {
		logger.Log.Warnf("failed to build referral relations for member %d: %v", member.ID, err)
	}

	token, err := createTokenForMember(&member)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_CREATE_TOKEN")
	}

	return helpers.JSONSuccess(c, "Member registered successfully", fiber.Map{
		"member": member,
		"token":  token.Key,
	})
}

// createTokenForMember replaces any existing token so there is at most one
// active token per member.
func createTokenForMember(member *models.Member) (*models.MemberAuthToken, error) {
	if err := database.DB.Where("member_id = ?", member.ID).
		Delete(&models.MemberAuthToken{}).Error; err != nil {
		return nil, err
	}

	key, err := models.GenerateTokenKey()
	if err != nil {
		return nil, err
	}

	token := models.MemberAuthToken{Key: key, MemberID: member.ID}
	if err := database.DB.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
