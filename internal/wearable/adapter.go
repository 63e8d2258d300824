package wearable

import (
	"context"
	"log/slog"
	"time"

	"healthbrief/internal/adapter"
	"healthbrief/internal/metrics"
	"healthbrief/internal/record"
)

// Adapter turns wearable vendor telemetry into a partial daily record. The
// wearable is the richest source: it is the only one that supplies sleep and
// recovery.
type Adapter struct {
	client *Client
	logger *slog.Logger
}

// NewAdapter creates a wearable source adapter. A nil client means the
// vendor is not configured; the adapter then reports unavailable on every
// fetch rather than failing.
func NewAdapter(client *Client) *Adapter {
	return &Adapter{
		client: client,
		logger: slog.Default(),
	}
}

// Name implements adapter.Source
func (a *Adapter) Name() string { return "wearable" }

// Fetch retrieves the vendor's three daily documents and assembles the
// partial record. Each document is independent: one failing fetch drops
// that sub-record and the rest still contribute. Only when nothing at all
// could be retrieved does Fetch report unavailable. No error other than
// adapter.ErrUnavailable crosses this boundary.
func (a *Adapter) Fetch(ctx context.Context, date string) (*record.DailyHealthRecord, error) {
	start := time.Now()
	defer func() {
		metrics.AdapterFetchDuration.WithLabelValues(a.Name()).Observe(time.Since(start).Seconds())
	}()

	if a.client == nil {
		a.logger.Info("Wearable not configured, skipping")
		metrics.AdapterFetchesTotal.WithLabelValues(a.Name(), metrics.FetchOutcomeUnavailable).Inc()
		return nil, adapter.ErrUnavailable
	}

	summary, err := a.client.GetDailySummary(ctx, date)
	if err != nil {
		a.logger.Warn("Failed to fetch daily summary", "date", date, "error", err)
		summary = nil
	}
	sleep, err := a.client.GetSleepData(ctx, date)
	if err != nil {
		a.logger.Warn("Failed to fetch sleep data", "date", date, "error", err)
		sleep = nil
	}
	stress, err := a.client.GetStressDetails(ctx, date)
	if err != nil {
		a.logger.Warn("Failed to fetch stress details", "date", date, "error", err)
		stress = nil
	}

	rec := parseVendorData(date, summary, sleep, stress)
	if rec == nil {
		metrics.AdapterFetchesTotal.WithLabelValues(a.Name(), metrics.FetchOutcomeUnavailable).Inc()
		return nil, adapter.ErrUnavailable
	}

	metrics.AdapterFetchesTotal.WithLabelValues(a.Name(), metrics.FetchOutcomeOK).Inc()
	return rec, nil
}

// parseVendorData maps the vendor documents onto the canonical partial
// record. Returns nil when no document contributed anything.
func parseVendorData(date string, summary *DailySummary, sleep *SleepData, stress *StressDetails) *record.DailyHealthRecord {
	rec := &record.DailyHealthRecord{
		Date:   date,
		Source: record.SourceWearable,
	}
	populated := false

	if sleep != nil && sleep.SleepDurationSeconds != nil {
		rec.Sleep = &record.Sleep{
			DurationSeconds: *sleep.SleepDurationSeconds,
			DeepSeconds:     int64Value(sleep.DeepSleepDurationSeconds),
			LightSeconds:    int64Value(sleep.LightSleepDurationSeconds),
			RemSeconds:      int64Value(sleep.RemSleepDurationSeconds),
			AwakeSeconds:    int64Value(sleep.AwakeDurationSeconds),
			Score:           sleep.SleepScore,
		}
		populated = true
	}

	if summary != nil && (summary.Steps != nil || summary.Distance != nil || summary.Calories != nil) {
		rec.Activity = &record.Activity{
			Steps:         int64Value(summary.Steps),
			Calories:      int64Value(summary.Calories),
			ActiveMinutes: int64Value(summary.ActiveMinutes),
		}
		if summary.Distance != nil {
			rec.Activity.DistanceMeters = *summary.Distance
		}
		populated = true
	}

	// Recovery is derived only when the vendor reported a stress index.
	// A missing index means no recovery sub-record, not a zero one.
	if stress != nil && stress.AverageStressLevel != nil {
		rec.Recovery = &record.Recovery{
			ReserveAvg:      intValue(stress.ReserveAverage),
			ReserveMin:      intValue(stress.ReserveMinimum),
			ReserveMax:      intValue(stress.ReserveMaximum),
			AverageStress:   *stress.AverageStressLevel,
			RecoveryPercent: record.RecoveryFromStress(*stress.AverageStressLevel),
		}
		populated = true
	}

	if !populated {
		return nil
	}
	return rec
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
