package record

// RecoveryFromStress derives a recovery percentage from an average stress
// index. This is a coarse linear inverse (100 minus stress, clamped to
// [0, 100]), a heuristic rather than a physiological model. Callers must
// omit the recovery sub-record entirely when the stress index is absent;
// "no recovery data" and "recovery is 0%" mean different things downstream.
func RecoveryFromStress(avgStress float64) float64 {
	recovery := 100 - avgStress
	if recovery < 0 {
		return 0
	}
	if recovery > 100 {
		return 100
	}
	return recovery
}
