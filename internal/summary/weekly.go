// Package summary computes rolling-window aggregates over stored records.
package summary

import (
	"fmt"
	"time"

	"healthbrief/internal/database"
	"healthbrief/internal/record"
)

// WindowDays is the rolling window length, inclusive of today.
const WindowDays = 7

// WindowSummary aggregates the records found in a rolling window. Days is
// how many dates actually had a record; the averages cover only the records
// that carried the relevant field, and are nil when none did.
type WindowSummary struct {
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	Days               int      `json:"days"`
	AvgSleepScore      *float64 `json:"avg_sleep_score,omitempty"`
	AvgRecoveryPercent *float64 `json:"avg_recovery_percent,omitempty"`
	WorkoutCount       int      `json:"workout_count"`
}

// Week aggregates the stored records for the 7 dates ending at today. Dates
// with no record are skipped, never zero-filled or interpolated. A window
// with no records at all returns (nil, nil).
func Week(db *database.DB, today time.Time) (*WindowSummary, error) {
	end := today
	start := today.AddDate(0, 0, -(WindowDays - 1))

	out := &WindowSummary{
		StartDate: record.DateOf(start),
		EndDate:   record.DateOf(end),
	}

	var sleepSum float64
	var sleepN int
	var recoverySum float64
	var recoveryN int

	for i := 0; i < WindowDays; i++ {
		date := record.DateOf(today.AddDate(0, 0, -i))
		rec, err := db.GetRecord(date)
		if err != nil {
			return nil, fmt.Errorf("failed to load record for %s: %w", date, err)
		}
		if rec == nil {
			continue
		}

		out.Days++
		out.WorkoutCount += len(rec.Workouts)

		if rec.Sleep != nil && rec.Sleep.Score != nil {
			sleepSum += float64(*rec.Sleep.Score)
			sleepN++
		}
		if rec.Recovery != nil {
			recoverySum += rec.Recovery.RecoveryPercent
			recoveryN++
		}
	}

	if out.Days == 0 {
		return nil, nil
	}

	if sleepN > 0 {
		avg := sleepSum / float64(sleepN)
		out.AvgSleepScore = &avg
	}
	if recoveryN > 0 {
		avg := recoverySum / float64(recoveryN)
		out.AvgRecoveryPercent = &avg
	}
	return out, nil
}
