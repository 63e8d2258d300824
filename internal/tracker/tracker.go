// Package tracker reads an activity-tracker export file and serves it as a
// sync source. It is the fallback when the wearable is not available: it
// carries activity totals and workouts but never sleep or recovery.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthbrief/internal/adapter"
	"healthbrief/internal/metrics"
	"healthbrief/internal/record"
)

// workoutNamespace seeds the deterministic workout IDs. Re-reading the same
// export entry must produce the same ID so repeated syncs do not duplicate
// workouts on merge.
var workoutNamespace = uuid.MustParse("8f3c5a2e-6d1b-4b9a-9e47-2c0d8e51f7a3")

const trackerOnlyNote = "activity tracker data only; connect the wearable for sleep and recovery"

// exportActivity is one entry in the tracker's activities export
type exportActivity struct {
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	Distance   float64 `json:"distance"`
	MovingTime int64   `json:"moving_time"`
	Calories   int64   `json:"calories"`
}

// Adapter serves tracker export data as a sync source
type Adapter struct {
	exportPath string
	logger     *slog.Logger
}

// NewAdapter creates a tracker source reading from the activities export at
// exportPath. An empty path means the tracker is not configured.
func NewAdapter(exportPath string) *Adapter {
	return &Adapter{
		exportPath: exportPath,
		logger:     slog.Default(),
	}
}

// Name implements adapter.Source
func (a *Adapter) Name() string { return "tracker" }

// Fetch reads the export and aggregates the entries for date into a partial
// record: summed activity totals plus one workout per entry. A missing or
// unconfigured export, or a date with no entries, reports unavailable so the
// day is simply absent rather than recorded as empty.
func (a *Adapter) Fetch(ctx context.Context, date string) (*record.DailyHealthRecord, error) {
	start := time.Now()
	defer func() {
		metrics.AdapterFetchDuration.WithLabelValues(a.Name()).Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if a.exportPath == "" {
		a.logger.Info("Tracker export not configured, skipping")
		metrics.AdapterFetchesTotal.WithLabelValues(a.Name(), metrics.FetchOutcomeUnavailable).Inc()
		return nil, adapter.ErrUnavailable
	}

	activities, err := a.loadActivities()
	if err != nil {
		a.logger.Warn("Failed to load tracker export", "path", a.exportPath, "error", err)
		metrics.AdapterFetchesTotal.WithLabelValues(a.Name(), metrics.FetchOutcomeUnavailable).Inc()
		return nil, adapter.ErrUnavailable
	}

	rec := aggregate(date, activities)
	if rec == nil {
		metrics.AdapterFetchesTotal.WithLabelValues(a.Name(), metrics.FetchOutcomeUnavailable).Inc()
		return nil, adapter.ErrUnavailable
	}

	metrics.AdapterFetchesTotal.WithLabelValues(a.Name(), metrics.FetchOutcomeOK).Inc()
	return rec, nil
}

func (a *Adapter) loadActivities() ([]exportActivity, error) {
	raw, err := os.ReadFile(a.exportPath)
	if err != nil {
		return nil, err
	}

	var activities []exportActivity
	if err := json.Unmarshal(raw, &activities); err != nil {
		return nil, fmt.Errorf("failed to parse activities export: %w", err)
	}
	return activities, nil
}

// aggregate builds the partial record for date from the full export. Entries
// are matched by start_date prefix, so both bare dates and full timestamps
// in the export work. Returns nil when no entry matches.
func aggregate(date string, activities []exportActivity) *record.DailyHealthRecord {
	rec := &record.DailyHealthRecord{
		Date:   date,
		Source: record.SourceTracker,
		Note:   trackerOnlyNote,
	}

	activity := record.Activity{}
	for _, a := range activities {
		if !strings.HasPrefix(a.StartDate, date) {
			continue
		}

		activity.DistanceMeters += a.Distance
		activity.DurationSeconds += a.MovingTime
		activity.Calories += a.Calories
		activity.ActivityCount++

		rec.Workouts = append(rec.Workouts, record.Workout{
			ID:          workoutID(a),
			Type:        workoutType(a.Type),
			DurationMin: int(a.MovingTime / 60),
			Timestamp:   parseStartDate(a.StartDate),
		})
	}

	if activity.ActivityCount == 0 {
		return nil
	}

	rec.Activity = &activity
	return rec
}

// workoutID derives a stable ID from the entry itself
func workoutID(a exportActivity) string {
	key := fmt.Sprintf("%s|%s|%d|%.1f", a.StartDate, a.Type, a.MovingTime, a.Distance)
	return uuid.NewSHA1(workoutNamespace, []byte(key)).String()
}

func workoutType(t string) string {
	if t == "" {
		return "Activity"
	}
	return t
}

func parseStartDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, record.DateFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	var zero time.Time
	return zero
}
