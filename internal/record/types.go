package record

import "time"

// DateFormat is the calendar-date key format used throughout the store.
const DateFormat = "2006-01-02"

// DateOf returns the calendar-date key for a point in time.
func DateOf(t time.Time) string {
	return t.Format(DateFormat)
}

// Source tags where a record's data came from. It is a trust-ordering hint,
// not a single-writer constraint: a merged record may carry wearable sleep
// alongside tracker activity.
type Source string

const (
	SourceWearable Source = "wearable"
	SourceTracker  Source = "tracker"
	SourceManual   Source = "manual"
	SourceMerged   Source = "merged"
)

// DailyHealthRecord is the canonical health record for one calendar date.
// At most one exists per date; syncs overwrite rather than version it.
type DailyHealthRecord struct {
	Date     string    `json:"date"`
	Source   Source    `json:"source"`
	Sleep    *Sleep    `json:"sleep,omitempty"`
	Recovery *Recovery `json:"recovery,omitempty"`
	Activity *Activity `json:"activity,omitempty"`
	Workouts []Workout `json:"workouts,omitempty"`
	VO2      *float64  `json:"vo2,omitempty"` // reserved, no adapter populates it yet
	Note     string    `json:"note,omitempty"`
}

// Sleep holds the night's duration and stage breakdown, all in seconds.
type Sleep struct {
	DurationSeconds int64 `json:"duration_seconds"`
	DeepSeconds     int64 `json:"deep_seconds"`
	LightSeconds    int64 `json:"light_seconds"`
	RemSeconds      int64 `json:"rem_seconds"`
	AwakeSeconds    int64 `json:"awake_seconds"`
	Score           *int  `json:"score,omitempty"` // 0-100 when the vendor reports one
}

// Hours returns the sleep duration in fractional hours.
func (s *Sleep) Hours() float64 {
	return float64(s.DurationSeconds) / 3600
}

// Recovery holds the day's energy-reserve telemetry and the derived
// recovery percentage. RecoveryPercent is always in [0, 100].
type Recovery struct {
	ReserveAvg      int     `json:"reserve_avg"`
	ReserveMin      int     `json:"reserve_min"`
	ReserveMax      int     `json:"reserve_max"`
	AverageStress   float64 `json:"average_stress"`
	RecoveryPercent float64 `json:"recovery_percent"`
}

// Activity holds the day's movement totals. Wearable syncs populate the
// step-based fields; tracker syncs populate the aggregated totals.
type Activity struct {
	Steps           int64   `json:"steps,omitempty"`
	DistanceMeters  float64 `json:"distance_meters,omitempty"`
	Calories        int64   `json:"calories,omitempty"`
	ActiveMinutes   int64   `json:"active_minutes,omitempty"`
	DurationSeconds int64   `json:"duration_seconds,omitempty"`
	ActivityCount   int     `json:"activity_count,omitempty"`
}

// Workout is one logged entry in a record's workouts sequence. Entries are
// append-only within a day; order is logging order. The ID is the merge
// dedup key, so adapters must assign IDs that are stable across syncs.
type Workout struct {
	ID          string    `json:"id,omitempty"`
	Type        string    `json:"type"`
	DurationMin int       `json:"duration_min"`
	Timestamp   time.Time `json:"timestamp"`
}

// Baseline is a user's personal-normal reference ranges. It is persisted
// separately from daily records and is read-only in this service: nothing
// here derives or updates baselines.
type Baseline struct {
	SleepScore      *float64  `json:"sleep_score,omitempty"`
	SleepHours      *float64  `json:"sleep_hours,omitempty"`
	RecoveryPercent *float64  `json:"recovery_percent,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitempty"`
}
