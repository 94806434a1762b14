package services

import (
	"errors"
	"vclub/database"
	"vclub/logger"
	"vclub/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// payFirstBonuses distributes the one-time first-tournament bonuses across
// the member's ancestor chain. Runs inside the caller's transaction: the
// unpaid relations are locked in ascending level order, so a concurrent
// trigger for the same descendant serializes here and finds nothing left to
// pay. For each unpaid relation the ancestor is credited in its currency
// (V-Coins for players, cash for influencers), a ReferralReward is recorded,
// the aggregate counter is bumped and the relation is marked paid.
//
// Returns the ids of the distinct level-1 ancestors touched, so the caller
// can recompute their ranks after commit.
func payFirstBonuses(tx *gorm.DB, member *models.Member) ([]uint, error) {
	var relations []models.ReferralRelation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("descendant_id = ? AND has_paid_first_bonus = ?", member.ID, false).
		Order("level ASC").
		Find(&relations).Error; err != nil {
		return nil, err
	}
	if len(relations) == 0 {
		return nil, nil
	}

	var directAncestorIDs []uint

	for i := range relations {
		relation := &relations[i]

		var ancestor models.Member
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ancestor, relation.AncestorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		var (
			bonus      decimal.Decimal
			stackCount int
			moneyInc   int64
		)
		updates := map[string]interface{}{}

		if relation.Level == 1 {
			if ancestor.IsInfluencer() {
				bonus = models.InfluencerDirectReferralBonusCash
				updates["cash_balance"] = ancestor.CashBalance.Add(bonus)
				moneyInc = bonus.IntPart()

				if err := tx.Create(&models.ReferralReward{
					MemberID:       ancestor.ID,
					SourceMemberID: member.ID,
					RewardType:     models.RewardTypeInfluencerFirstTournament,
					AmountRub:      bonus,
					Depth:          int(relation.Level),
				}).Error; err != nil {
					return nil, err
				}
			} else {
				bonus = models.PlayerDirectReferralBonusVCoins
				updates["v_coins_balance"] = ancestor.VCoinsBalance.Add(bonus)
				stackCount = 1

				if err := tx.Create(&models.ReferralReward{
					MemberID:       ancestor.ID,
					SourceMemberID: member.ID,
					RewardType:     models.RewardTypePlayerStack,
					StackCount:     stackCount,
					Depth:          int(relation.Level),
				}).Error; err != nil {
					return nil, err
				}
			}

			directAncestorIDs = append(directAncestorIDs, ancestor.ID)
		} else {
			if ancestor.IsInfluencer() {
				multiplier, err := getRankMultiplier(tx, ancestor.Rank, models.UserTypeInfluencer)
				if err != nil {
					return nil, err
				}
				bonus = models.InfluencerDepthBaseBonusCash.Mul(multiplier).Round(2)
				updates["cash_balance"] = ancestor.CashBalance.Add(bonus)
				moneyInc = bonus.IntPart()

				if err := tx.Create(&models.ReferralReward{
					MemberID:       ancestor.ID,
					SourceMemberID: member.ID,
					RewardType:     models.RewardTypeInfluencerFirstTournament,
					AmountRub:      bonus,
					Depth:          int(relation.Level),
				}).Error; err != nil {
					return nil, err
				}
			} else {
				multiplier, err := getRankMultiplier(tx, ancestor.Rank, models.UserTypePlayer)
				if err != nil {
					return nil, err
				}
				bonus = models.PlayerDepthBaseBonusVCoins.Mul(multiplier).Round(2)
				updates["v_coins_balance"] = ancestor.VCoinsBalance.Add(bonus)

				// Depth V-Coins convert to whole stacks at the direct-bonus size.
				stackCount = int(bonus.Div(models.PlayerDirectReferralBonusVCoins).IntPart())

				if err := tx.Create(&models.ReferralReward{
					MemberID:       ancestor.ID,
					SourceMemberID: member.ID,
					RewardType:     models.RewardTypePlayerStack,
					StackCount:     stackCount,
					Depth:          int(relation.Level),
				}).Error; err != nil {
					return nil, err
				}
			}
		}

		if ancestor.IsInfluencer() && moneyInc > 0 {
			updates["total_money_earned"] = ancestor.TotalMoneyEarned + int(moneyInc)
		} else if !ancestor.IsInfluencer() && stackCount > 0 {
			updates["total_bonus_points"] = ancestor.TotalBonusPoints + stackCount
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Member{}).Where("id = ?", ancestor.ID).
				Updates(updates).Error; err != nil {
				return nil, err
			}
		}

		if err := tx.Model(&models.ReferralRelation{}).Where("id = ?", relation.ID).
			Update("has_paid_first_bonus", true).Error; err != nil {
			return nil, err
		}
	}

	return directAncestorIDs, nil
}

// PayFirstTournamentBonuses handles the first qualifying deposit of a member
// as a standalone unit of work: distribution in one transaction, rank
// recalculation for the direct referrers after commit.
func PayFirstTournamentBonuses(member *models.Member) error {
	if member.ID == 0 {
		return nil
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	directAncestorIDs, err := payFirstBonuses(tx, member)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	rankUpMembers(directAncestorIDs)
	return nil
}

// rankUpMembers recomputes ranks outside the distribution lock; it only
// reads committed state.
func rankUpMembers(memberIDs []uint) {
	for _, id := range memberIDs {
		var ancestor models.Member
		if err := database.DB.First(&ancestor, id).Error; err != nil {
			continue
		}
		if err := CheckForRankUp(&ancestor); err != nil {
			logger.Log.Warnf("rank recalculation failed for member %d: %v", id, err)
		}
	}
}
