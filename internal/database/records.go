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

// PutRecord inserts or fully replaces the record for its date. The write is
// a single upsert statement: readers never observe a partially written
// record, and a failed write leaves the prior record intact.
func (db *DB) PutRecord(rec *record.DailyHealthRecord) error {
	start := time.Now()

	if rec == nil || rec.Date == "" {
		return fmt.Errorf("record must have a date")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	var sleepScore *int
	if rec.Sleep != nil {
		sleepScore = rec.Sleep.Score
	}
	var recoveryPercent *float64
	if rec.Recovery != nil {
		recoveryPercent = &rec.Recovery.RecoveryPercent
	}

	now := time.Now().Unix()
	_, err = db.conn.Exec(`
		INSERT INTO daily_records (
			date, source, record_json,
			sleep_score, recovery_percent, workout_count,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			source = excluded.source,
			record_json = excluded.record_json,
			sleep_score = excluded.sleep_score,
			recovery_percent = excluded.recovery_percent,
			workout_count = excluded.workout_count,
			updated_at = excluded.updated_at
	`, rec.Date, string(rec.Source), string(data),
		sleepScore, recoveryPercent, len(rec.Workouts), now, now)

	metrics.DBOperationDuration.WithLabelValues(metrics.DBOpPutRecord).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBOperationErrorsTotal.WithLabelValues(metrics.DBOpPutRecord).Inc()
		return fmt.Errorf("failed to put record for %s: %w", rec.Date, err)
	}
	return nil
}

// GetRecord retrieves the record for a date. An absent date is a valid state
// and returns (nil, nil). A stored document with malformed sub-fields is
// decoded leniently: the bad fields are dropped with a warning and the rest
// of the record stays usable.
func (db *DB) GetRecord(date string) (*record.DailyHealthRecord, error) {
	start := time.Now()

	var raw string
	err := db.conn.QueryRow(`
		SELECT record_json FROM daily_records WHERE date = ?
	`, date).Scan(&raw)

	metrics.DBOperationDuration.WithLabelValues(metrics.DBOpGetRecord).Observe(time.Since(start).Seconds())

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		metrics.DBOperationErrorsTotal.WithLabelValues(metrics.DBOpGetRecord).Inc()
		return nil, fmt.Errorf("failed to get record for %s: %w", date, err)
	}

	rec, diags := record.Decode([]byte(raw))
	for _, d := range diags {
		slog.Warn("Dropped malformed record field", "date", date, "field", d.Field, "error", d.Err)
	}
	if rec.Date == "" {
		rec.Date = date
	}
	return rec, nil
}

// ListRecentDates returns up to n dates that have records, most recent first
func (db *DB) ListRecentDates(n int) ([]string, error) {
	start := time.Now()

	rows, err := db.conn.Query(`
		SELECT date FROM daily_records ORDER BY date DESC LIMIT ?
	`, n)

	metrics.DBOperationDuration.WithLabelValues(metrics.DBOpListRecentDates).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBOperationErrorsTotal.WithLabelValues(metrics.DBOpListRecentDates).Inc()
		return nil, fmt.Errorf("failed to list recent dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan date: %w", err)
		}
		dates = append(dates, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dates: %w", err)
	}
	return dates, nil
}

// CountRecords returns the number of daily records in the store
func (db *DB) CountRecords() (int, error) {
	start := time.Now()

	var count int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM daily_records`).Scan(&count)

	metrics.DBOperationDuration.WithLabelValues(metrics.DBOpCountRecords).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DBOperationErrorsTotal.WithLabelValues(metrics.DBOpCountRecords).Inc()
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}
