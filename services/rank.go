package services

import (
	"errors"
	"vclub/database"
	"vclub/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var defaultMultiplier = decimal.NewFromInt(1)

// RankMultiplier returns the depth-bonus multiplier for the given rank and
// user type from an in-memory rule set. Missing rule or multiplier yields 1.00.
func RankMultiplier(rules []models.RankRule, rank, userType string) decimal.Decimal {
	if rank == "" {
		return defaultMultiplier
	}

	for _, rule := range rules {
		if rule.Rank != rank {
			continue
		}

		var value decimal.Decimal
		switch userType {
		case models.UserTypePlayer:
			value = rule.PlayerDepthBonusMultiplier
		case models.UserTypeInfluencer:
			value = rule.InfluencerDepthBonusMultiplier
		default:
			return defaultMultiplier
		}

		if value.IsZero() {
			return defaultMultiplier
		}
		return value
	}

	return defaultMultiplier
}

func getRankMultiplier(tx *gorm.DB, rank, userType string) (decimal.Decimal, error) {
	if rank == "" {
		return defaultMultiplier, nil
	}

	var rule models.RankRule
	if err := tx.First(&rule, "rank = ?", rank).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultMultiplier, nil
		}
		return defaultMultiplier, err
	}

	return RankMultiplier([]models.RankRule{rule}, rank, userType), nil
}

// targetRankFor walks rules ordered by ascending threshold and picks the
// highest rank whose requirement is met, starting from the current rank.
func targetRankFor(rules []models.RankRule, current string, activeCount int64) string {
	target := current
	for _, rule := range rules {
		if activeCount >= int64(rule.RequiredReferrals) {
			target = rule.Rank
		}
	}
	return target
}

// CheckForRankUp recalculates the member's rank from the number of active
// direct referrals: level-1 relations whose first bonus has been paid.
// Idempotent; callable after any event that changes active-referral counts.
func CheckForRankUp(member *models.Member) error {
	if member.ID == 0 {
		return nil
	}

	var activeCount int64
	if err := database.DB.Model(&models.ReferralRelation{}).
		Where("ancestor_id = ? AND level = 1 AND has_paid_first_bonus = ?", member.ID, true).
		Distinct("descendant_id").
		Count(&activeCount).Error; err != nil {
		return err
	}

	var rules []models.RankRule
	if err := database.DB.Order("required_referrals ASC").Find(&rules).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}

	target := targetRankFor(rules, member.Rank, activeCount)
	if target == "" || target == member.Rank {
		return nil
	}

	member.Rank = target
	return database.DB.Model(&models.Member{}).Where("id = ?", member.ID).
		Update("rank", target).Error
}
