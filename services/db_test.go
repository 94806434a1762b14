package services

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"vclub/database"
	"vclub/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var phoneSeq int64

// setupTestDB points the package at a throwaway Postgres database and wipes
// the domain tables. Set TEST_DATABASE_DSN to run these tests; without it
// they are skipped.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping database test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if err := database.SeedRankRules(db); err != nil {
		t.Fatalf("failed to seed rank rules: %v", err)
	}

	tables := []string{
		"referral_bonuses",
		"wallet_transactions",
		"referral_rewards",
		"referral_events",
		"referral_relations",
		"withdrawal_requests",
		"deposits",
		"member_auth_tokens",
		"password_reset_codes",
		"members",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to clean table %s: %v", table, err)
		}
	}

	database.DB = db
	return db
}

func createTestMember(t *testing.T, userType, rank string, referrer *models.Member) *models.Member {
	t.Helper()

	member := &models.Member{
		FirstName: "Test",
		LastName:  userType,
		Phone:     fmt.Sprintf("+7999%08d", atomic.AddInt64(&phoneSeq, 1)),
		UserType:  userType,
		Rank:      rank,
	}
	if referrer != nil {
		member.ReferrerID = &referrer.ID
	}
	if err := database.DB.Create(member).Error; err != nil {
		t.Fatalf("failed to create member: %v", err)
	}
	return member
}

func reloadMember(t *testing.T, id uint) *models.Member {
	t.Helper()

	var member models.Member
	if err := database.DB.First(&member, id).Error; err != nil {
		t.Fatalf("failed to reload member %d: %v", id, err)
	}
	return &member
}
