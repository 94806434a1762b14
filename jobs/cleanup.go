package jobs

import (
	"time"
	"vclub/database"
	"vclub/logger"
	"vclub/models"
)

// StartCleanupScheduler purges stale one-time artifacts in the background:
// password reset codes that are used or past their expiry.
func StartCleanupScheduler() {
	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for {
			<-ticker.C
			cleanupResetCodes()
		}
	}()
}

func cleanupResetCodes() {
	result := database.DB.
		Where("is_used = ? OR expires_at < ?", true, time.Now()).
		Delete(&models.PasswordResetCode{})

	if result.Error != nil {
		logger.Log.Warn("Failed to delete stale reset codes: ", result.Error)
	} else if result.RowsAffected > 0 {
		logger.Log.Infof("Deleted %d stale password reset codes", result.RowsAffected)
	}
}
