// Package syncer runs the daily merge pipeline: fetch partial records from
// every configured source, merge them over whatever is already stored, and
// write back the canonical record for the day.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"healthbrief/internal/adapter"
	"healthbrief/internal/database"
	"healthbrief/internal/metrics"
	"healthbrief/internal/record"
)

// Syncer merges source data into the record store
type Syncer struct {
	db      *database.DB
	sources []adapter.Source
	logger  *slog.Logger
}

// New creates a syncer over the given sources. Source order is merge
// priority order: earlier sources win per-field conflicts.
func New(db *database.DB, sources []adapter.Source) *Syncer {
	return &Syncer{
		db:      db,
		sources: sources,
		logger:  slog.Default(),
	}
}

// Sync builds and stores the canonical record for date. Unavailable sources
// are skipped; the stored record for the date, if any, participates in the
// merge so earlier manual logs survive. When no source produced data the
// store is left untouched and Sync returns (nil, nil): the day stays absent.
// Only a store failure is an error.
func (s *Syncer) Sync(ctx context.Context, date string) (*record.DailyHealthRecord, error) {
	start := time.Now()

	var partials []*record.DailyHealthRecord
	for _, src := range s.sources {
		rec, err := src.Fetch(ctx, date)
		if err != nil {
			if errors.Is(err, adapter.ErrUnavailable) {
				s.logger.Info("Source unavailable", "source", src.Name(), "date", date)
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.logger.Warn("Source fetch failed", "source", src.Name(), "date", date, "error", err)
			continue
		}
		s.logger.Info("Fetched partial record", "source", src.Name(), "date", date)
		partials = append(partials, rec)
	}

	if len(partials) == 0 {
		s.logger.Info("No source data for date", "date", date, "duration_ms", time.Since(start).Milliseconds())
		metrics.SyncsTotal.WithLabelValues(metrics.SyncOutcomeNoData).Inc()
		return nil, nil
	}

	existing, err := s.db.GetRecord(date)
	if err != nil {
		metrics.SyncsTotal.WithLabelValues(metrics.SyncOutcomeError).Inc()
		return nil, fmt.Errorf("failed to load existing record: %w", err)
	}

	merged := record.Merge(existing, partials...)
	if err := s.db.PutRecord(merged); err != nil {
		metrics.SyncsTotal.WithLabelValues(metrics.SyncOutcomeError).Inc()
		return nil, fmt.Errorf("failed to store merged record: %w", err)
	}

	s.logger.Info("Synced daily record",
		"date", date,
		"source", merged.Source,
		"workouts", len(merged.Workouts),
		"duration_ms", time.Since(start).Milliseconds())
	metrics.SyncsTotal.WithLabelValues(metrics.SyncOutcomeMerged).Inc()
	return merged, nil
}
