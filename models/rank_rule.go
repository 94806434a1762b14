package models

import (
	"github.com/shopspring/decimal"
)

// RankRule maps a rank to its promotion threshold and depth-bonus multipliers.
// Static configuration, read-only to the reward engine.
type RankRule struct {
	Rank                           string          `gorm:"primaryKey;size:20" json:"rank"`
	RequiredReferrals              uint            `gorm:"not null" json:"required_referrals"`
	PlayerDepthBonusMultiplier     decimal.Decimal `gorm:"type:numeric(4,2)" json:"player_depth_bonus_multiplier"`
	InfluencerDepthBonusMultiplier decimal.Decimal `gorm:"type:numeric(4,2)" json:"influencer_depth_bonus_multiplier"`
}
