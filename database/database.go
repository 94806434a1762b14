package database

import (
	"fmt"
	"os"
	"strconv"
	"vclub/logger"
	"vclub/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, pass, name, port, sslmode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatal("Failed to connect to database: ", err)
	}

	DB = db
	logger.Log.Info("Connected to database")

	autoMigrateEnv := os.Getenv("DB_AUTO_MIGRATE")
	autoMigrate, err := strconv.ParseBool(autoMigrateEnv)
	if err != nil {
		logger.Log.Warnf("Invalid value for DB_AUTO_MIGRATE: %s", autoMigrateEnv)
	}

	if autoMigrate {
		logger.Log.Info("Starting auto-migration...")

		if err := Migrate(DB); err != nil {
			logger.Log.Fatal("Failed to auto-migrate database: ", err)
		}
		if err := SeedRankRules(DB); err != nil {
			logger.Log.Fatal("Failed to seed rank rules: ", err)
		}

		logger.Log.Info("Auto migration completed")
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Member{},
		&models.Deposit{},
		&models.ReferralRelation{},
		&models.RankRule{},
		&models.ReferralEvent{},
		&models.ReferralReward{},
		&models.ReferralBonus{},
		&models.WalletTransaction{},
		&models.WithdrawalRequest{},
		&models.MemberAuthToken{},
		&models.PasswordResetCode{},
	)
}

// SeedRankRules upserts the static rank table. Safe to run on every start.
func SeedRankRules(db *gorm.DB) error {
	rules := []models.RankRule{
		{Rank: models.RankStandard, RequiredReferrals: 0, PlayerDepthBonusMultiplier: decimal.NewFromFloat(1.00), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(1.00)},
		{Rank: models.RankSilver, RequiredReferrals: 5, PlayerDepthBonusMultiplier: decimal.NewFromFloat(1.50), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(1.50)},
		{Rank: models.RankGold, RequiredReferrals: 20, PlayerDepthBonusMultiplier: decimal.NewFromFloat(2.00), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(2.00)},
		{Rank: models.RankPlatinum, RequiredReferrals: 50, PlayerDepthBonusMultiplier: decimal.NewFromFloat(2.50), InfluencerDepthBonusMultiplier: decimal.NewFromFloat(2.50)},
	}

	for _, rule := range rules {
		target := models.RankRule{Rank: rule.Rank}
		if err := db.Where(models.RankRule{Rank: rule.Rank}).
			Assign(map[string]interface{}{
				"required_referrals":                rule.RequiredReferrals,
				"player_depth_bonus_multiplier":     rule.PlayerDepthBonusMultiplier,
				"influencer_depth_bonus_multiplier": rule.InfluencerDepthBonusMultiplier,
			}).
			FirstOrCreate(&target).Error; err != nil {
			return err
		}
	}
	return nil
}
