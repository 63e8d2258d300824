package record

import (
	"encoding/json"
	"fmt"
)

// FieldDiag reports one sub-field that failed to decode. The record is still
// usable for every field that parsed cleanly.
type FieldDiag struct {
	Field string
	Err   error
}

func (d FieldDiag) String() string {
	return fmt.Sprintf("%s: %v", d.Field, d.Err)
}

// Decode parses a stored record document leniently. Each sub-field decodes
// independently; a malformed sub-field is dropped and reported as a
// diagnostic instead of failing the whole read. A document that is not a
// JSON object at all yields an empty record plus a single "record"
// diagnostic, which still lets the query path answer from the date key.
func Decode(raw []byte) (*DailyHealthRecord, []FieldDiag) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return &DailyHealthRecord{}, []FieldDiag{{Field: "record", Err: err}}
	}

	rec := &DailyHealthRecord{}
	var diags []FieldDiag

	decode := func(field string, dst interface{}) {
		data, ok := fields[field]
		if !ok {
			return
		}
		if err := json.Unmarshal(data, dst); err != nil {
			diags = append(diags, FieldDiag{Field: field, Err: err})
		}
	}

	decode("date", &rec.Date)
	decode("note", &rec.Note)
	decode("vo2", &rec.VO2)

	var src Source
	decode("source", &src)
	switch src {
	case SourceWearable, SourceTracker, SourceManual, SourceMerged:
		rec.Source = src
	case "":
	default:
		diags = append(diags, FieldDiag{Field: "source", Err: fmt.Errorf("unknown source %q", src)})
	}

	var sleep Sleep
	if raw, ok := fields["sleep"]; ok {
		if err := json.Unmarshal(raw, &sleep); err != nil {
			diags = append(diags, FieldDiag{Field: "sleep", Err: err})
		} else {
			rec.Sleep = &sleep
		}
	}

	var recovery Recovery
	if raw, ok := fields["recovery"]; ok {
		if err := json.Unmarshal(raw, &recovery); err != nil {
			diags = append(diags, FieldDiag{Field: "recovery", Err: err})
		} else {
			rec.Recovery = &recovery
		}
	}

	var activity Activity
	if raw, ok := fields["activity"]; ok {
		if err := json.Unmarshal(raw, &activity); err != nil {
			diags = append(diags, FieldDiag{Field: "activity", Err: err})
		} else {
			rec.Activity = &activity
		}
	}

	if raw, ok := fields["workouts"]; ok {
		var workouts []Workout
		if err := json.Unmarshal(raw, &workouts); err != nil {
			diags = append(diags, FieldDiag{Field: "workouts", Err: err})
		} else {
			rec.Workouts = workouts
		}
	}

	return rec, diags
}
