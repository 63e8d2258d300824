// Package readiness derives a training-clearance verdict from the day's
// recovery and sleep. The thresholds are fixed policy constants, not tunable
// per user.
package readiness

import "healthbrief/internal/record"

// Policy thresholds.
const (
	ClearedRecoveryPercent  = 70
	ModerateRecoveryPercent = 40
	ClearedSleepHours       = 6
	ModerateSleepHours      = 5
)

// Verdict is the tri-state training-readiness outcome, plus an explicit
// insufficient-data state for days with no recovery telemetry.
type Verdict int

const (
	InsufficientData Verdict = iota
	Cleared
	Moderate
	Rest
)

func (v Verdict) String() string {
	switch v {
	case Cleared:
		return "cleared"
	case Moderate:
		return "moderate"
	case Rest:
		return "rest"
	default:
		return "insufficient_data"
	}
}

// Classify maps recovery percent and sleep hours to a verdict. Absent
// recovery yields InsufficientData no matter how much sleep was recorded;
// absent is never silently treated as zero. Absent sleep only fails the
// sleep-dependent branches.
func Classify(recoveryPercent, sleepHours *float64) Verdict {
	if recoveryPercent == nil {
		return InsufficientData
	}

	sleep := 0.0
	if sleepHours != nil {
		sleep = *sleepHours
	}

	switch {
	case *recoveryPercent >= ClearedRecoveryPercent && sleep >= ClearedSleepHours:
		return Cleared
	case *recoveryPercent >= ModerateRecoveryPercent || sleep >= ModerateSleepHours:
		return Moderate
	default:
		return Rest
	}
}

// ClassifyRecord classifies a stored daily record, pulling out whichever of
// the two inputs it actually carries.
func ClassifyRecord(rec *record.DailyHealthRecord) Verdict {
	if rec == nil {
		return InsufficientData
	}

	var recovery *float64
	if rec.Recovery != nil {
		recovery = &rec.Recovery.RecoveryPercent
	}
	var sleep *float64
	if rec.Sleep != nil {
		h := rec.Sleep.Hours()
		sleep = &h
	}
	return Classify(recovery, sleep)
}
