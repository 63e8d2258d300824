package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthbrief/internal/adapter"
	"healthbrief/internal/record"
)

const sampleExport = `[
	{"type": "Run", "start_date": "2026-08-31T07:15:00Z", "distance": 5200.0, "moving_time": 1890, "calories": 410},
	{"type": "Ride", "start_date": "2026-08-31T18:00:00Z", "distance": 12000.0, "moving_time": 2400, "calories": 520},
	{"type": "Run", "start_date": "2026-08-30T07:00:00Z", "distance": 8000.0, "moving_time": 2700, "calories": 600}
]`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activities_latest.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write export: %v", err)
	}
	return path
}

func TestFetchAggregatesDay(t *testing.T) {
	a := NewAdapter(writeExport(t, sampleExport))

	rec, err := a.Fetch(context.Background(), "2026-08-31")
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, record.SourceTracker, rec.Source)
	assert.Equal(t, "2026-08-31", rec.Date)
	assert.Nil(t, rec.Sleep)
	assert.Nil(t, rec.Recovery)
	assert.NotEmpty(t, rec.Note)

	require.NotNil(t, rec.Activity)
	assert.Equal(t, 17200.0, rec.Activity.DistanceMeters)
	assert.Equal(t, int64(4290), rec.Activity.DurationSeconds)
	assert.Equal(t, int64(930), rec.Activity.Calories)
	assert.Equal(t, 2, rec.Activity.ActivityCount)

	require.Len(t, rec.Workouts, 2)
	assert.Equal(t, "Run", rec.Workouts[0].Type)
	assert.Equal(t, 31, rec.Workouts[0].DurationMin)
	assert.Equal(t, "Ride", rec.Workouts[1].Type)
	assert.Equal(t, 40, rec.Workouts[1].DurationMin)
}

func TestFetchStableWorkoutIDs(t *testing.T) {
	a := NewAdapter(writeExport(t, sampleExport))

	first, err := a.Fetch(context.Background(), "2026-08-31")
	require.NoError(t, err)
	second, err := a.Fetch(context.Background(), "2026-08-31")
	require.NoError(t, err)

	require.Len(t, second.Workouts, len(first.Workouts))
	for i := range first.Workouts {
		assert.Equal(t, first.Workouts[i].ID, second.Workouts[i].ID,
			"workout IDs must be stable across repeated syncs")
	}
	assert.NotEqual(t, first.Workouts[0].ID, first.Workouts[1].ID)
}

func TestFetchNoEntriesForDate(t *testing.T) {
	a := NewAdapter(writeExport(t, sampleExport))

	_, err := a.Fetch(context.Background(), "2026-01-01")
	assert.True(t, errors.Is(err, adapter.ErrUnavailable))
}

func TestFetchMissingExport(t *testing.T) {
	a := NewAdapter(filepath.Join(t.TempDir(), "nope.json"))

	_, err := a.Fetch(context.Background(), "2026-08-31")
	assert.True(t, errors.Is(err, adapter.ErrUnavailable))
}

func TestFetchUnconfigured(t *testing.T) {
	a := NewAdapter("")

	_, err := a.Fetch(context.Background(), "2026-08-31")
	assert.True(t, errors.Is(err, adapter.ErrUnavailable))
}

func TestFetchMalformedExport(t *testing.T) {
	a := NewAdapter(writeExport(t, `{"not": "a list"}`))

	_, err := a.Fetch(context.Background(), "2026-08-31")
	assert.True(t, errors.Is(err, adapter.ErrUnavailable),
		"a corrupt export is an unavailable source, not a sync failure")
}

func TestFetchBareDateEntries(t *testing.T) {
	a := NewAdapter(writeExport(t, `[
		{"type": "", "start_date": "2026-08-31", "distance": 0, "moving_time": 600, "calories": 0}
	]`))

	rec, err := a.Fetch(context.Background(), "2026-08-31")
	require.NoError(t, err)
	require.Len(t, rec.Workouts, 1)
	assert.Equal(t, "Activity", rec.Workouts[0].Type)
	assert.Equal(t, 10, rec.Workouts[0].DurationMin)
}
