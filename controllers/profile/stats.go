package profile

import (
	"vclub/database"
	"vclub/helpers"
	"vclub/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Stats returns the member's referral and wallet figures.
func Stats(c *fiber.Ctx) error {
	member, ok := c.Locals("member").(models.Member)
	if !ok {
		return helpers.JSONUnauthorized(c, "INVALID_MEMBER_SESSION")
	}

	var activeReferrals int64
	if err := database.DB.Model(&models.ReferralRelation{}).
		Where("ancestor_id = ? AND level = 1 AND has_paid_first_bonus = ?", member.ID, true).
		Distinct("descendant_id").
		Count(&activeReferrals).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	var totalReferrals int64
	if err := database.DB.Model(&models.ReferralRelation{}).
		Where("ancestor_id = ? AND level = 1", member.ID).
		Count(&totalReferrals).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	var totalDeposits decimal.NullDecimal
	if err := database.DB.Model(&models.Deposit{}).
		Where("member_id = ?", member.ID).
		Select("SUM(amount)").
		Scan(&totalDeposits).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	// Monetary influencer earnings only: first-tournament cash plus deposit
	// commission.
	var influencerEarnings decimal.NullDecimal
	if err := database.DB.Model(&models.ReferralReward{}).
		Where("member_id = ? AND reward_type IN ?", member.ID, []string{
			models.RewardTypeInfluencerFirstTournament,
			models.RewardTypeInfluencerDepositPercent,
		}).
		Select("SUM(amount_rub)").
		Scan(&influencerEarnings).Error; err != nil {
		return helpers.JSONError(c, "FAILED_TO_LOAD_STATS")
	}

	return helpers.JSONSuccess(c, "OK", fiber.Map{
		"rank":                member.Rank,
		"user_type":           member.UserType,
		"v_coins_balance":     member.VCoinsBalance,
		"cash_balance":        member.CashBalance,
		"total_bonus_points":  member.TotalBonusPoints,
		"total_money_earned":  member.TotalMoneyEarned,
		"active_referrals":    activeReferrals,
		"total_referrals":     totalReferrals,
		"total_deposits":      totalDeposits.Decimal,
		"influencer_earnings": influencerEarnings.Decimal,
		"referral_code":       member.ReferralCode,
	})
}
