package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wearablePartial() *DailyHealthRecord {
	score := 82
	return &DailyHealthRecord{
		Date:   "2026-08-31",
		Source: SourceWearable,
		Sleep: &Sleep{
			DurationSeconds: 7 * 3600,
			DeepSeconds:     5400,
			Score:           &score,
		},
		Recovery: &Recovery{
			ReserveAvg:      55,
			AverageStress:   25,
			RecoveryPercent: 75,
		},
		Activity: &Activity{Steps: 9000, Calories: 2100},
	}
}

func trackerPartial() *DailyHealthRecord {
	return &DailyHealthRecord{
		Date:   "2026-08-31",
		Source: SourceTracker,
		Activity: &Activity{
			DistanceMeters:  12000,
			DurationSeconds: 3600,
			Calories:        600,
			ActivityCount:   1,
		},
		Workouts: []Workout{{
			ID:          "tracker-2026-08-31-ride",
			Type:        "Ride",
			DurationMin: 60,
			Timestamp:   time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC),
		}},
	}
}

func TestMergeWearableOnly(t *testing.T) {
	got := Merge(nil, wearablePartial())
	require.NotNil(t, got)

	assert.Equal(t, SourceWearable, got.Source)
	assert.NotNil(t, got.Sleep)
	assert.NotNil(t, got.Recovery)
	assert.NotNil(t, got.Activity)
	assert.Empty(t, got.Note, "wearable day needs no explanatory note")
}

func TestMergeTrackerOnly(t *testing.T) {
	got := Merge(nil, trackerPartial())
	require.NotNil(t, got)

	assert.Equal(t, SourceTracker, got.Source)
	assert.Nil(t, got.Sleep)
	assert.Nil(t, got.Recovery)
	require.NotNil(t, got.Activity)
	assert.Equal(t, 1, got.Activity.ActivityCount)
	assert.NotEmpty(t, got.Note, "tracker-only day carries an explanatory note")
}

func TestMergeBothSources(t *testing.T) {
	got := Merge(nil, wearablePartial(), trackerPartial())
	require.NotNil(t, got)

	assert.Equal(t, SourceMerged, got.Source)
	assert.NotNil(t, got.Sleep, "sleep comes from the wearable")
	assert.NotNil(t, got.Recovery, "recovery comes from the wearable")
	require.NotNil(t, got.Activity)
	assert.Equal(t, int64(9000), got.Activity.Steps,
		"activity totals come from the wearable when it reported any, never summed")
	assert.Len(t, got.Workouts, 1, "tracker workouts survive the merge")
	assert.Empty(t, got.Note)
}

func TestMergeNeitherSource(t *testing.T) {
	assert.Nil(t, Merge(nil), "no partials and no existing record yields no record")
}

func TestMergeIsIdempotent(t *testing.T) {
	w, tr := wearablePartial(), trackerPartial()

	first := Merge(nil, w, tr)
	require.NotNil(t, first)

	second := Merge(first, w, tr)
	require.NotNil(t, second)

	assert.Equal(t, first, second, "re-merging the same partials must not change the record")
	assert.Len(t, second.Workouts, 1, "workout entries must not duplicate on repeated merge")
}

func TestMergePreservesManualWorkouts(t *testing.T) {
	manual := &DailyHealthRecord{
		Date:   "2026-08-31",
		Source: SourceManual,
		Workouts: []Workout{{
			ID:          "b2f9c1f4-manual",
			Type:        "Run",
			DurationMin: 30,
			Timestamp:   time.Date(2026, 8, 31, 6, 30, 0, 0, time.UTC),
		}},
	}

	got := Merge(manual, wearablePartial(), trackerPartial())
	require.NotNil(t, got)

	assert.Equal(t, SourceMerged, got.Source)
	require.Len(t, got.Workouts, 2)
	assert.Equal(t, "Run", got.Workouts[0].Type, "manually logged entries come first")
	assert.Equal(t, "Ride", got.Workouts[1].Type)
}

func TestMergeTrackerAfterWearableKeepsSleep(t *testing.T) {
	existing := Merge(nil, wearablePartial())
	require.NotNil(t, existing)

	got := Merge(existing, trackerPartial())
	require.NotNil(t, got)

	assert.NotNil(t, got.Sleep, "a later tracker-only sync must not wipe wearable sleep")
	assert.NotNil(t, got.Recovery)
	assert.Empty(t, got.Note)
	assert.Equal(t, SourceMerged, got.Source)
}

func TestMergeNoPartialsReturnsExisting(t *testing.T) {
	existing := Merge(nil, wearablePartial())
	assert.Equal(t, existing, Merge(existing))
}
