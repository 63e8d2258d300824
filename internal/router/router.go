// Package router maps free-text queries to responses. Routing is
// deliberately simple keyword dispatch, not language understanding: the
// workout parser runs first, then a fixed ordered list of keyword predicates.
// Ordering is the precedence policy. A message containing both "sleep" and
// "week" is a sleep query because sleep is tested first.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"healthbrief/internal/brief"
	"healthbrief/internal/database"
	"healthbrief/internal/metrics"
	"healthbrief/internal/parser"
	"healthbrief/internal/record"
	"healthbrief/internal/summary"
)

const helpText = "I didn't understand that. Try: 'how did I sleep?', 'what's my recovery?', 'log a 30 min run', or 'am I cleared for hard training?'"

// Router answers free-text health queries against the record store
type Router struct {
	db     *database.DB
	logger *slog.Logger
	now    func() time.Time
}

// New creates a query router over the store
func New(db *database.DB) *Router {
	return &Router{
		db:     db,
		logger: slog.Default(),
		now:    time.Now,
	}
}

type rule struct {
	intent   string
	keywords []string
	handle   func(r *Router, today *record.DailyHealthRecord) (string, error)
}

// rules is evaluated top to bottom; the first keyword hit wins.
var rules = []rule{
	{
		intent:   metrics.IntentSleep,
		keywords: []string{"sleep"},
		handle: func(r *Router, today *record.DailyHealthRecord) (string, error) {
			if today == nil {
				return "No sleep data available. Run a sync first.", nil
			}
			return brief.Sleep(today), nil
		},
	},
	{
		intent:   metrics.IntentRecovery,
		keywords: []string{"recovery", "energy", "reserve", "stress"},
		handle: func(r *Router, today *record.DailyHealthRecord) (string, error) {
			if today == nil {
				return "No recovery data available.", nil
			}
			return brief.Recovery(today), nil
		},
	},
	{
		intent:   metrics.IntentClearance,
		keywords: []string{"clear", "train", "hard"},
		handle: func(r *Router, today *record.DailyHealthRecord) (string, error) {
			if today == nil {
				return "No data to determine training clearance.", nil
			}
			return brief.Clearance(today), nil
		},
	},
	{
		intent:   metrics.IntentWeekly,
		keywords: []string{"week"},
		handle: func(r *Router, _ *record.DailyHealthRecord) (string, error) {
			sum, err := summary.Week(r.db, r.now())
			if err != nil {
				return "", err
			}
			return brief.Weekly(sum), nil
		},
	},
	{
		intent:   metrics.IntentBrief,
		keywords: []string{"health", "brief", "how am i"},
		handle: func(r *Router, today *record.DailyHealthRecord) (string, error) {
			if today == nil {
				return "No health data available today.", nil
			}
			baseline, err := r.db.GetBaseline()
			if err != nil {
				return "", err
			}
			return brief.Daily(today, baseline), nil
		},
	},
}

// Respond handles one free-text message and returns the response text. A
// successful workout parse short-circuits everything else and writes to the
// store; all other intents are read-only.
func (r *Router) Respond(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if workout, ok := parser.Parse(message); ok {
		return r.logWorkout(workout)
	}

	lower := strings.ToLower(message)
	today, err := r.db.GetRecord(record.DateOf(r.now()))
	if err != nil {
		return "", fmt.Errorf("failed to load today's record: %w", err)
	}

	for _, rule := range rules {
		if !matchesAny(lower, rule.keywords) {
			continue
		}
		metrics.QueriesTotal.WithLabelValues(rule.intent).Inc()
		r.logger.Info("Routed query", "intent", rule.intent)
		return rule.handle(r, today)
	}

	metrics.QueriesTotal.WithLabelValues(metrics.IntentHelp).Inc()
	return helpText, nil
}

// logWorkout appends a parsed workout to today's record, creating a manual
// record if the day has none yet.
func (r *Router) logWorkout(workout parser.Result) (string, error) {
	now := r.now()
	date := record.DateOf(now)

	rec, err := r.db.GetRecord(date)
	if err != nil {
		return "", fmt.Errorf("failed to load today's record: %w", err)
	}
	if rec == nil {
		rec = &record.DailyHealthRecord{Date: date, Source: record.SourceManual}
	}

	rec.Workouts = append(rec.Workouts, record.Workout{
		ID:          uuid.NewString(),
		Type:        workout.Type,
		DurationMin: workout.DurationMin,
		Timestamp:   now,
	})

	if err := r.db.PutRecord(rec); err != nil {
		return "", fmt.Errorf("failed to store workout: %w", err)
	}

	metrics.QueriesTotal.WithLabelValues(metrics.IntentLogWorkout).Inc()
	metrics.WorkoutsLoggedTotal.Inc()
	r.logger.Info("Logged workout", "type", workout.Type, "duration_min", workout.DurationMin, "date", date)
	return fmt.Sprintf("Logged: %s %d min", workout.Type, workout.DurationMin), nil
}

func matchesAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
