package metrics

import (
	"context"
	"log/slog"
	"time"
)

// DB interface for store size queries
type DB interface {
	CountRecords() (int, error)
}

// StartStoreSizeCollector starts a background goroutine that periodically
// collects the records_stored gauge from the database
func StartStoreSizeCollector(ctx context.Context, db DB, interval time.Duration) {
	logger := slog.Default()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Collect once immediately
	collectStoreSize(db, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Store size collector stopping")
			return
		case <-ticker.C:
			collectStoreSize(db, logger)
		}
	}
}

func collectStoreSize(db DB, logger *slog.Logger) {
	count, err := db.CountRecords()
	if err != nil {
		logger.Error("Failed to count stored records", "error", err)
		return
	}
	RecordsStored.Set(float64(count))
}
