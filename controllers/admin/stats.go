package admin

import (
	"vclub/database"
	"vclub/helpers"
	"vclub/models"
	"vclub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

func StatsOverview(c *fiber.Ctx) error {
	var memberCount, influencerCount, relationCount, eventCount int64
	if err := database.DB.Model(&models.Member{}).Count(&memberCount).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}
	if err := database.DB.Model(&models.Member{}).
		Where("user_type = ?", models.UserTypeInfluencer).
		Count(&influencerCount).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}
	if err := database.DB.Model(&models.ReferralRelation{}).Count(&relationCount).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}
	if err := database.DB.Model(&models.ReferralEvent{}).Count(&eventCount).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	var totalDeposits, totalRewards decimal.NullDecimal
	if err := database.DB.Model(&models.Deposit{}).
		Select("SUM(amount)").Scan(&totalDeposits).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}
	if err := database.DB.Model(&models.ReferralReward{}).
		Select("SUM(amount_rub)").Scan(&totalRewards).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"members":         memberCount,
		"influencers":     influencerCount,
		"relations":       relationCount,
		"referral_events": eventCount,
		"total_deposits":  totalDeposits.Decimal,
		"total_rewards":   totalRewards.Decimal,
	})
}

type RecomputeRankRequest struct {
	MemberID uint `json:"member_id"`
}

// RecomputeRank re-runs the promotion calculator for one member. Idempotent.
func RecomputeRank(c *fiber.Ctx) error {
	var req RecomputeRankRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	var member models.Member
	if err := database.DB.First(&member, req.MemberID).Error; err != nil {
		return helpers.JSONError(c, "MEMBER_NOT_FOUND")
	}

	if err := services.CheckForRankUp(&member); err != nil {
		return helpers.JSONError(c, "FAILED_TO_RECOMPUTE_RANK")
	}

	return helpers.JSONSuccess(c, "Rank recomputed", fiber.Map{
		"member_id": member.ID,
		"rank":      member.Rank,
	})
}
