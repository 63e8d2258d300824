package record

import "fmt"

const trackerOnlyNote = "activity tracker data only; connect the wearable for sleep and recovery"

// Merge combines the partial records available for one date into a single
// canonical record.
//
// Fallback is per-field, not per-record. The wearable is authoritative for
// sleep and recovery. Activity totals come from exactly one source: the
// wearable when it reported any, otherwise the tracker. Workout entries are
// concatenated across all inputs and deduplicated by entry identity, which
// makes the merge idempotent: merging the same partials into an
// already-merged record changes nothing.
//
// The existing record for the date, if any, acts as the lowest-priority
// input. That preserves manually logged workouts and fields captured by an
// earlier sync that the current set of partials cannot supply.
//
// With no partials Merge returns existing unchanged; with no partials and no
// existing record it returns nil, and the day stays absent from the store.
func Merge(existing *DailyHealthRecord, partials ...*DailyHealthRecord) *DailyHealthRecord {
	var inputs []*DailyHealthRecord
	for _, p := range partials {
		if p != nil {
			inputs = append(inputs, p)
		}
	}
	if len(inputs) == 0 {
		return existing
	}

	var wearable, tracker *DailyHealthRecord
	for _, p := range inputs {
		switch p.Source {
		case SourceWearable:
			if wearable == nil {
				wearable = p
			}
		case SourceTracker:
			if tracker == nil {
				tracker = p
			}
		}
	}

	out := &DailyHealthRecord{Date: mergeDate(existing, inputs)}

	// Sleep and recovery: wearable first, then whatever an earlier sync kept.
	if wearable != nil && wearable.Sleep != nil {
		out.Sleep = wearable.Sleep
	} else if existing != nil {
		out.Sleep = existing.Sleep
	}
	if wearable != nil && wearable.Recovery != nil {
		out.Recovery = wearable.Recovery
	} else if existing != nil {
		out.Recovery = existing.Recovery
	}

	// Activity totals come from exactly one source; never summed across two.
	switch {
	case wearable != nil && wearable.Activity != nil:
		out.Activity = wearable.Activity
	case tracker != nil && tracker.Activity != nil:
		out.Activity = tracker.Activity
	case existing != nil:
		out.Activity = existing.Activity
	}

	if wearable != nil && wearable.VO2 != nil {
		out.VO2 = wearable.VO2
	} else if existing != nil {
		out.VO2 = existing.VO2
	}

	out.Workouts = dedupWorkouts(existing, inputs)
	out.Source = mergeSource(existing, inputs)

	if out.Sleep == nil && out.Recovery == nil && tracker != nil {
		if tracker.Note != "" {
			out.Note = tracker.Note
		} else {
			out.Note = trackerOnlyNote
		}
	}

	return out
}

func mergeDate(existing *DailyHealthRecord, inputs []*DailyHealthRecord) string {
	for _, p := range inputs {
		if p.Date != "" {
			return p.Date
		}
	}
	if existing != nil {
		return existing.Date
	}
	return ""
}

// dedupWorkouts concatenates workout entries in logging order: the existing
// record's entries first, then each partial's. Identity is the entry ID when
// present, otherwise type+duration+timestamp.
func dedupWorkouts(existing *DailyHealthRecord, inputs []*DailyHealthRecord) []Workout {
	seen := make(map[string]bool)
	var out []Workout

	appendAll := func(workouts []Workout) {
		for _, w := range workouts {
			key := w.ID
			if key == "" {
				key = fmt.Sprintf("%s|%d|%d", w.Type, w.DurationMin, w.Timestamp.UnixNano())
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, w)
		}
	}

	if existing != nil {
		appendAll(existing.Workouts)
	}
	for _, p := range inputs {
		appendAll(p.Workouts)
	}
	return out
}

// mergeSource tags the result with the union of contributing provenances:
// a single source keeps its own tag, anything more becomes "merged".
func mergeSource(existing *DailyHealthRecord, inputs []*DailyHealthRecord) Source {
	seen := make(map[Source]bool)
	if existing != nil {
		seen[existing.Source] = true
	}
	for _, p := range inputs {
		seen[p.Source] = true
	}
	if len(seen) == 1 {
		for s := range seen {
			return s
		}
	}
	return SourceMerged
}
