// Package brief renders stored records into the response strings the query
// surface returns. Everything here is plain text formatting over values the
// other packages already computed.
package brief

import (
	"fmt"
	"strings"

	"healthbrief/internal/readiness"
	"healthbrief/internal/record"
	"healthbrief/internal/summary"
)

const (
	lowSleepAlertHours      = 5.0
	lowRecoveryAlertPercent = 30.0
)

// Sleep renders the night's sleep line, e.g. "Sleep: 7h 15m | Score: 81/100"
func Sleep(rec *record.DailyHealthRecord) string {
	if rec == nil || rec.Sleep == nil {
		return "No sleep data available."
	}

	s := rec.Sleep
	hours := s.DurationSeconds / 3600
	minutes := (s.DurationSeconds % 3600) / 60

	line := fmt.Sprintf("Sleep: %dh %dm", hours, minutes)
	if s.Score != nil {
		line += fmt.Sprintf(" | Score: %d/100", *s.Score)
	}
	return line
}

// Recovery renders the recovery line with a traffic-light status
func Recovery(rec *record.DailyHealthRecord) string {
	if rec == nil || rec.Recovery == nil {
		return "No recovery data available."
	}

	r := rec.Recovery
	var status string
	switch {
	case r.RecoveryPercent >= readiness.ClearedRecoveryPercent:
		status = "Green"
	case r.RecoveryPercent >= readiness.ModerateRecoveryPercent:
		status = "Yellow"
	default:
		status = "Red"
	}

	line := fmt.Sprintf("Recovery: %.0f%% (%s)", r.RecoveryPercent, status)
	if r.ReserveAvg > 0 {
		line += fmt.Sprintf(" | Energy reserve: %d", r.ReserveAvg)
	}
	return line
}

// Clearance renders the training-readiness verdict for the day
func Clearance(rec *record.DailyHealthRecord) string {
	verdict := readiness.ClassifyRecord(rec)
	switch verdict {
	case readiness.Cleared:
		return "CLEARED for hard training today."
	case readiness.Moderate:
		return "MODERATE training recommended."
	case readiness.Rest:
		return "REST or light activity only recommended."
	default:
		return "No recovery data to determine clearance."
	}
}

// Weekly renders the rolling-window summary block
func Weekly(sum *summary.WindowSummary) string {
	if sum == nil {
		return "No health data available for this week."
	}

	lines := []string{"WEEKLY HEALTH SUMMARY", ""}
	if sum.AvgSleepScore != nil {
		lines = append(lines, fmt.Sprintf("Avg Sleep Score: %.0f/100", *sum.AvgSleepScore))
	}
	if sum.AvgRecoveryPercent != nil {
		lines = append(lines, fmt.Sprintf("Avg Recovery: %.0f%%", *sum.AvgRecoveryPercent))
	}
	lines = append(lines, fmt.Sprintf("Workouts Logged: %d", sum.WorkoutCount))
	return strings.Join(lines, "\n")
}

// Daily renders the full health brief for one day: the sleep and recovery
// lines, the clearance verdict, any alerts, and how today compares to the
// user's baseline when one is stored.
func Daily(rec *record.DailyHealthRecord, baseline *record.Baseline) string {
	if rec == nil {
		return "No health data available today."
	}

	lines := []string{
		"HEALTH BRIEF " + rec.Date,
		"",
		Sleep(rec),
		Recovery(rec),
	}

	if rec.Activity != nil {
		lines = append(lines, activityLine(rec.Activity))
	}
	if len(rec.Workouts) > 0 {
		lines = append(lines, fmt.Sprintf("Workouts: %d logged", len(rec.Workouts)))
	}

	lines = append(lines, "", Clearance(rec))

	if alerts := alertLines(rec); len(alerts) > 0 {
		lines = append(lines, "")
		lines = append(lines, alerts...)
	}
	if cmp := baselineLines(rec, baseline); len(cmp) > 0 {
		lines = append(lines, "")
		lines = append(lines, cmp...)
	}

	if rec.Note != "" {
		lines = append(lines, "", "Note: "+rec.Note)
	}
	return strings.Join(lines, "\n")
}

func activityLine(a *record.Activity) string {
	var parts []string
	if a.Steps > 0 {
		parts = append(parts, fmt.Sprintf("%d steps", a.Steps))
	}
	if a.DistanceMeters > 0 {
		parts = append(parts, fmt.Sprintf("%.1f km", a.DistanceMeters/1000))
	}
	if a.Calories > 0 {
		parts = append(parts, fmt.Sprintf("%d kcal", a.Calories))
	}
	if a.ActivityCount > 0 {
		parts = append(parts, fmt.Sprintf("%d activities", a.ActivityCount))
	}
	if len(parts) == 0 {
		return "Activity: none recorded"
	}
	return "Activity: " + strings.Join(parts, " | ")
}

func alertLines(rec *record.DailyHealthRecord) []string {
	var alerts []string
	if rec.Sleep != nil && rec.Sleep.Hours() < lowSleepAlertHours {
		alerts = append(alerts, fmt.Sprintf("ALERT: short sleep (%.1fh, under %.0fh)", rec.Sleep.Hours(), lowSleepAlertHours))
	}
	if rec.Recovery != nil && rec.Recovery.RecoveryPercent < lowRecoveryAlertPercent {
		alerts = append(alerts, fmt.Sprintf("ALERT: low recovery (%.0f%%, under %.0f%%)", rec.Recovery.RecoveryPercent, lowRecoveryAlertPercent))
	}
	return alerts
}

// baselineLines compares today against the stored personal baseline. Only
// fields present on both sides produce a line.
func baselineLines(rec *record.DailyHealthRecord, baseline *record.Baseline) []string {
	if baseline == nil {
		return nil
	}

	var lines []string
	if baseline.SleepScore != nil && rec.Sleep != nil && rec.Sleep.Score != nil {
		lines = append(lines, fmt.Sprintf("Sleep score vs baseline: %+.0f", float64(*rec.Sleep.Score)-*baseline.SleepScore))
	}
	if baseline.SleepHours != nil && rec.Sleep != nil {
		lines = append(lines, fmt.Sprintf("Sleep hours vs baseline: %+.1f", rec.Sleep.Hours()-*baseline.SleepHours))
	}
	if baseline.RecoveryPercent != nil && rec.Recovery != nil {
		lines = append(lines, fmt.Sprintf("Recovery vs baseline: %+.0f%%", rec.Recovery.RecoveryPercent-*baseline.RecoveryPercent))
	}
	return lines
}
