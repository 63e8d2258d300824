// Package adapter defines the contract between the sync pipeline and its
// data sources.
package adapter

import (
	"context"
	"errors"

	"healthbrief/internal/record"
)

// ErrUnavailable signals that a source could not produce data: credentials
// missing, vendor unreachable, nothing recorded for the date. It is a normal
// value at the adapter boundary, never a fatal condition, and adapters must
// not let any other vendor failure propagate past it.
var ErrUnavailable = errors.New("source unavailable")

// Source produces a partial daily record for a calendar date, or
// ErrUnavailable.
type Source interface {
	Name() string
	Fetch(ctx context.Context, date string) (*record.DailyHealthRecord, error)
}
