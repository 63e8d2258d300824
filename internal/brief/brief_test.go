package brief

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"healthbrief/internal/record"
	"healthbrief/internal/summary"
)

func fullRecord() *record.DailyHealthRecord {
	score := 81
	return &record.DailyHealthRecord{
		Date:   "2026-08-31",
		Source: record.SourceMerged,
		Sleep:  &record.Sleep{DurationSeconds: 26100, Score: &score},
		Recovery: &record.Recovery{
			ReserveAvg:      60,
			AverageStress:   28,
			RecoveryPercent: 72,
		},
		Activity: &record.Activity{Steps: 9200, DistanceMeters: 7100.5, Calories: 2300},
		Workouts: []record.Workout{{Type: "Run", DurationMin: 30}},
	}
}

func TestSleepLine(t *testing.T) {
	assert.Equal(t, "Sleep: 7h 15m | Score: 81/100", Sleep(fullRecord()))
}

func TestSleepLineNoScore(t *testing.T) {
	rec := fullRecord()
	rec.Sleep.Score = nil
	assert.Equal(t, "Sleep: 7h 15m", Sleep(rec))
}

func TestSleepLineMissing(t *testing.T) {
	rec := fullRecord()
	rec.Sleep = nil
	assert.Equal(t, "No sleep data available.", Sleep(rec))
}

func TestRecoveryTrafficLight(t *testing.T) {
	tests := []struct {
		percent float64
		status  string
	}{
		{85, "Green"},
		{70, "Green"},
		{55, "Yellow"},
		{40, "Yellow"},
		{20, "Red"},
	}
	for _, tt := range tests {
		rec := fullRecord()
		rec.Recovery.RecoveryPercent = tt.percent
		got := Recovery(rec)
		assert.Contains(t, got, tt.status, "recovery %.0f%%", tt.percent)
	}
}

func TestClearanceVerdicts(t *testing.T) {
	rec := fullRecord()
	assert.Equal(t, "CLEARED for hard training today.", Clearance(rec))

	rec.Recovery.RecoveryPercent = 50
	assert.Equal(t, "MODERATE training recommended.", Clearance(rec))

	rec.Recovery.RecoveryPercent = 20
	rec.Sleep.DurationSeconds = 4 * 3600
	assert.Equal(t, "REST or light activity only recommended.", Clearance(rec))

	rec.Recovery = nil
	assert.Equal(t, "No recovery data to determine clearance.", Clearance(rec))
}

func TestWeeklyBlock(t *testing.T) {
	avgSleep := 70.0
	avgRecovery := 60.4
	got := Weekly(&summary.WindowSummary{
		Days:               3,
		AvgSleepScore:      &avgSleep,
		AvgRecoveryPercent: &avgRecovery,
		WorkoutCount:       4,
	})

	assert.Contains(t, got, "WEEKLY HEALTH SUMMARY")
	assert.Contains(t, got, "Avg Sleep Score: 70/100")
	assert.Contains(t, got, "Avg Recovery: 60%")
	assert.Contains(t, got, "Workouts Logged: 4")
}

func TestWeeklyNoData(t *testing.T) {
	assert.Equal(t, "No health data available for this week.", Weekly(nil))
}

func TestDailyBrief(t *testing.T) {
	got := Daily(fullRecord(), nil)

	assert.True(t, strings.HasPrefix(got, "HEALTH BRIEF 2026-08-31"))
	assert.Contains(t, got, "Sleep: 7h 15m")
	assert.Contains(t, got, "Recovery: 72% (Green)")
	assert.Contains(t, got, "9200 steps")
	assert.Contains(t, got, "CLEARED for hard training today.")
	assert.NotContains(t, got, "ALERT")
}

func TestDailyBriefAlerts(t *testing.T) {
	rec := fullRecord()
	rec.Sleep.DurationSeconds = 4 * 3600
	rec.Recovery.RecoveryPercent = 25

	got := Daily(rec, nil)
	assert.Contains(t, got, "ALERT: short sleep (4.0h, under 5h)")
	assert.Contains(t, got, "ALERT: low recovery (25%, under 30%)")
}

func TestDailyBriefBaselineComparison(t *testing.T) {
	baseSleep := 75.0
	baseRecovery := 65.0
	got := Daily(fullRecord(), &record.Baseline{
		SleepScore:      &baseSleep,
		RecoveryPercent: &baseRecovery,
	})

	assert.Contains(t, got, "Sleep score vs baseline: +6")
	assert.Contains(t, got, "Recovery vs baseline: +7%")
}

func TestDailyBriefTrackerNote(t *testing.T) {
	rec := &record.DailyHealthRecord{
		Date:     "2026-08-31",
		Source:   record.SourceTracker,
		Activity: &record.Activity{DistanceMeters: 5000, ActivityCount: 1},
		Note:     "activity tracker data only; connect the wearable for sleep and recovery",
	}

	got := Daily(rec, nil)
	assert.Contains(t, got, "No sleep data available.")
	assert.Contains(t, got, "Note: activity tracker data only")
}

func TestDailyBriefNoRecord(t *testing.T) {
	assert.Equal(t, "No health data available today.", Daily(nil, nil))
}
