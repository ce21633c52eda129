package logging

import (
	"log/slog"
	"time"

	"github.com/myville/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultLogRetention is how long system_logs rows are kept when the
// retention is not configured.
const DefaultLogRetention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs rows older
// than the configured retention.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	if retention <= 0 {
		retention = DefaultLogRetention
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cutoff := time.Now().Add(-retention)
				result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
				if result.Error != nil {
					slog.Error("log cleanup failed", "error", result.Error)
				} else if result.RowsAffected > 0 {
					slog.Info("log cleanup completed", "deleted", result.RowsAffected, "retention", retention)
				}
			case <-done:
				return
			}
		}
	}()
}
