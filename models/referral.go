package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReferralRelation is one row of the materialized ancestor graph: one entry
// per ancestor for every descendant, level 1 being the direct referrer.
// Rows are created once at registration and never deleted.
type ReferralRelation struct {
	gorm.Model

	AncestorID uint    `gorm:"index:idx_ancestor_descendant,unique;not null" json:"ancestor_id"`
	Ancestor   *Member `gorm:"foreignKey:AncestorID" json:"-"`

	DescendantID uint    `gorm:"index:idx_ancestor_descendant,unique;index;not null" json:"descendant_id"`
	Descendant   *Member `gorm:"foreignKey:DescendantID" json:"-"`

	Level             uint `gorm:"not null" json:"level"`
	HasPaidFirstBonus bool `gorm:"default:false;index" json:"has_paid_first_bonus"`
}

const (
	RewardTypePlayerStack               = "PLAYER_STACK"
	RewardTypeInfluencerFirstTournament = "INFLUENCER_FIRST_TOURNAMENT"
	RewardTypeInfluencerDepositPercent  = "INFLUENCER_DEPOSIT_PERCENT"
)

// ReferralReward is the audit record of a single payout. Never mutated.
type ReferralReward struct {
	gorm.Model

	MemberID uint    `gorm:"index;not null" json:"member_id"`
	Member   *Member `gorm:"foreignKey:MemberID" json:"-"`

	SourceMemberID uint    `gorm:"index;not null" json:"source_member_id"`
	SourceMember   *Member `gorm:"foreignKey:SourceMemberID" json:"-"`

	RewardType string          `gorm:"size:64;index" json:"reward_type"`
	AmountRub  decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount_rub"`
	StackCount int             `gorm:"default:0" json:"stack_count"`
	Depth      int             `gorm:"not null" json:"depth"`
}

// ReferralEvent is an analytics row recorded per processed deposit.
type ReferralEvent struct {
	gorm.Model

	ReferrerID uint    `gorm:"index;not null" json:"referrer_id"`
	Referrer   *Member `gorm:"foreignKey:ReferrerID" json:"-"`

	ReferredID uint    `gorm:"index;not null" json:"referred_id"`
	Referred   *Member `gorm:"foreignKey:ReferredID" json:"-"`

	BonusAmount   int `gorm:"default:0" json:"bonus_amount"`
	MoneyAmount   int `gorm:"default:0" json:"money_amount"`
	DepositAmount int `gorm:"default:0" json:"deposit_amount"`
}

// ReferralBonus records the commission paid to a direct influencer referrer
// for one wallet spend. The unique index on SpendTransactionID guarantees
// at-most-once payout per spend.
type ReferralBonus struct {
	gorm.Model

	ReferrerID uint    `gorm:"index;not null" json:"referrer_id"`
	Referrer   *Member `gorm:"foreignKey:ReferrerID" json:"-"`

	ReferredMemberID uint    `gorm:"index;not null" json:"referred_member_id"`
	ReferredMember   *Member `gorm:"foreignKey:ReferredMemberID" json:"-"`

	SpendTransactionID uint               `gorm:"uniqueIndex;not null" json:"spend_transaction_id"`
	SpendTransaction   *WalletTransaction `gorm:"foreignKey:SpendTransactionID" json:"-"`

	Amount      decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"amount"`
	Description string          `gorm:"type:text" json:"description"`
}
