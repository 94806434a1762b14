package services

import (
	"testing"
	"vclub/models"

	"github.com/shopspring/decimal"
)

func testRankRules() []models.RankRule {
	return []models.RankRule{
		{Rank: models.RankStandard, RequiredReferrals: 0, PlayerDepthBonusMultiplier: decimal.NewFromFloat(1.00), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(1.00)},
		{Rank: models.RankSilver, RequiredReferrals: 5, PlayerDepthBonusMultiplier: decimal.NewFromFloat(1.50), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(1.50)},
		{Rank: models.RankGold, RequiredReferrals: 20, PlayerDepthBonusMultiplier: decimal.NewFromFloat(2.00), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(2.00)},
		{Rank: models.RankPlatinum, RequiredReferrals: 50, PlayerDepthBonusMultiplier: decimal.NewFromFloat(2.50), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(2.50)},
	}
}

func TestRankMultiplier(t *testing.T) {
	rules := testRankRules()

	cases := []struct {
		rank     string
		userType string
		want     string
	}{
		{models.RankStandard, models.UserTypePlayer, "1"},
		{models.RankSilver, models.UserTypePlayer, "1.5"},
		{models.RankSilver, models.UserTypeInfluencer, "1.5"},
		{models.RankGold, models.UserTypeInfluencer, "2"},
		{models.RankPlatinum, models.UserTypeInfluencer, "2.5"},
	}

	for _, tc := range cases {
		want, _ := decimal.NewFromString(tc.want)
		if got := RankMultiplier(rules, tc.rank, tc.userType); !got.Equal(want) {
			t.Errorf("RankMultiplier(%s, %s) = %s, want %s", tc.rank, tc.userType, got, want)
		}
	}
}

func TestRankMultiplierDefaults(t *testing.T) {
	rules := testRankRules()
	one := decimal.NewFromInt(1)

	if got := RankMultiplier(rules, "", models.UserTypePlayer); !got.Equal(one) {
		t.Errorf("empty rank: got %s, want 1", got)
	}
	if got := RankMultiplier(rules, "diamond", models.UserTypePlayer); !got.Equal(one) {
		t.Errorf("unknown rank: got %s, want 1", got)
	}
	if got := RankMultiplier(rules, models.RankGold, "bot"); !got.Equal(one) {
		t.Errorf("unknown user type: got %s, want 1", got)
	}
	if got := RankMultiplier(nil, models.RankGold, models.UserTypePlayer); !got.Equal(one) {
		t.Errorf("no rules: got %s, want 1", got)
	}
}

func TestTargetRankThresholds(t *testing.T) {
	rules := testRankRules()

	cases := []struct {
		active int64
		want   string
	}{
		{0, models.RankStandard},
		{4, models.RankStandard},
		{5, models.RankSilver},
		{19, models.RankSilver},
		{20, models.RankGold},
		{49, models.RankGold},
		{50, models.RankPlatinum},
		{120, models.RankPlatinum},
	}

	for _, tc := range cases {
		if got := targetRankFor(rules, models.RankStandard, tc.active); got != tc.want {
			t.Errorf("targetRankFor(active=%d) = %s, want %s", tc.active, got, tc.want)
		}
	}
}
