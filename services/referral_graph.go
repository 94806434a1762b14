package services

import (
	"errors"
	"vclub/database"
	"vclub/models"

	"gorm.io/gorm"
)

// RegisterRelations materializes the ancestor chain for a newly created
// member whose referrer is already set. One ReferralRelation per hop, level 1
// being the direct referrer. The walk stops at the end of the chain, at a
// revisited ancestor, or at MaxReferralDepth. Create-if-absent makes repeated
// invocation for the same member a no-op. No rewards are paid here; ranks
// depend on *active* referrals and are recalculated after first-bonus payout.
func RegisterRelations(member *models.Member) error {
	if member.ID == 0 || member.ReferrerID == nil {
		return nil
	}

	visited := make(map[uint]bool)
	ancestorID := member.ReferrerID
	level := uint(1)

	for ancestorID != nil && level <= models.MaxReferralDepth {
		id := *ancestorID
		if id == 0 || visited[id] {
			break
		}
		visited[id] = true

		var ancestor models.Member
		if err := database.DB.First(&ancestor, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				break
			}
			return err
		}

		var relation models.ReferralRelation
		if err := database.DB.
			Where(models.ReferralRelation{AncestorID: id, DescendantID: member.ID}).
			Attrs(models.ReferralRelation{Level: level, HasPaidFirstBonus: false}).
			FirstOrCreate(&relation).Error; err != nil {
			return err
		}

		ancestorID = ancestor.ReferrerID
		level++
	}

	return nil
}
