package models

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MaxReferralDepth bounds the ancestor chain walk and first-bonus fan-out.
const MaxReferralDepth = 10

const (
	UserTypePlayer     = "player"
	UserTypeInfluencer = "influencer"
)

const (
	RankStandard = "standard"
	RankSilver   = "silver"
	RankGold     = "gold"
	RankPlatinum = "platinum"
)

var (
	PlayerDirectReferralBonusVCoins = decimal.NewFromInt(1000)
	PlayerDepthBaseBonusVCoins      = decimal.NewFromInt(100)

	InfluencerDirectReferralBonusCash = decimal.NewFromInt(500)
	InfluencerDepthBaseBonusCash      = decimal.NewFromInt(50)

	// Lifetime commission rate paid to a direct influencer referrer on
	// every deposit and wallet spend.
	InfluencerDepositPercent = decimal.NewFromFloat(0.10)
)

type Member struct {
	gorm.Model

	FirstName string  `gorm:"size:100" json:"first_name"`
	LastName  string  `gorm:"size:100" json:"last_name"`
	Phone     string  `gorm:"uniqueIndex;size:32" json:"phone"`
	Email     *string `gorm:"uniqueIndex;size:255" json:"email,omitempty"`

	IsAdmin bool `gorm:"default:false" json:"is_admin"`

	// Direct upline. Set at most once, at registration.
	ReferrerID *uint   `gorm:"index" json:"referrer_id,omitempty"`
	Referrer   *Member `gorm:"foreignKey:ReferrerID" json:"-"`

	UserType string `gorm:"size:20;default:player" json:"user_type"`
	Rank     string `gorm:"size:20;default:standard" json:"rank"`

	VCoinsBalance decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"v_coins_balance"`
	CashBalance   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"cash_balance"`

	ReferralCode string `gorm:"uniqueIndex;size:32" json:"referral_code"`
	PasswordHash string `gorm:"size:128" json:"-"`

	TotalBonusPoints int `gorm:"default:0" json:"total_bonus_points"`
	TotalMoneyEarned int `gorm:"default:0" json:"total_money_earned"`

	InfluencerSince *time.Time `json:"influencer_since,omitempty"`

	WithdrawalBankDetails  string `gorm:"type:text" json:"-"`
	WithdrawalCryptoWallet string `gorm:"type:text" json:"-"`
}

func (m *Member) IsPlayer() bool {
	return m.UserType == UserTypePlayer
}

func (m *Member) IsInfluencer() bool {
	return m.UserType == UserTypeInfluencer
}

// WalletBalance is the unified spendable money balance, backed by CashBalance.
func (m *Member) WalletBalance() decimal.Decimal {
	return m.CashBalance
}

func (m *Member) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	m.PasswordHash = string(hash)
	return nil
}

func (m *Member) CheckPassword(raw string) bool {
	if m.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(raw)) == nil
}

// GenerateReferralCode builds a code from the primary key plus a short random
// hex suffix. The member must already be persisted.
func (m *Member) GenerateReferralCode() (string, error) {
	if m.ID == 0 {
		return "", fmt.Errorf("cannot generate referral code before member has an id")
	}
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return fmt.Sprintf("REF%d%X", m.ID, buf), nil
}
