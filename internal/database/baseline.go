package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"healthbrief/internal/metrics"
	"healthbrief/internal/record"
)

// GetBaseline retrieves the user's baseline ranges. No baseline is a valid
// state and returns (nil, nil); so does an unreadable stored baseline, with
// a warning. There is deliberately no write path here: how baselines get
// derived from history is not this service's call.
func (db *DB) GetBaseline() (*record.Baseline, error) {
	start := time.Now()

	var raw string
	err := db.conn.QueryRow(`
		SELECT baseline_json FROM baseline WHERE id = 1
	`).Scan(&raw)

	metrics.DBOperationDuration.WithLabelValues(metrics.DBOpGetBaseline).Observe(time.Since(start).Seconds())

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		metrics.DBOperationErrorsTotal.WithLabelValues(metrics.DBOpGetBaseline).Inc()
		return nil, fmt.Errorf("failed to get baseline: %w", err)
	}

	var baseline record.Baseline
	if err := json.Unmarshal([]byte(raw), &baseline); err != nil {
		slog.Warn("Stored baseline is unreadable, treating as absent", "error", err)
		return nil, nil
	}
	return &baseline, nil
}
