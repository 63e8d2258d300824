// Package parser extracts structured workouts from free-text statements
// like "log a 30 min run" or "logged 1 hour swim".
package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Result is a recognized workout statement: a canonical activity type and a
// duration in whole minutes.
type Result struct {
	Type        string
	DurationMin int
}

// The pattern list is ordered: an explicit "log"/"logged" phrasing is tried
// before the bare duration-plus-activity phrasing, and the first match wins.
// Overlapping matches in the same text are not detected.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)log(?:ged)?\s+(?:a\s+)?(\d+(?:\.\d+)?)\s*(minutes|minute|min|hours|hour|hr)\s+(\w+)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(minutes|minute|min|hours|hour|hr)\s+(\w+)`),
}

// Parse attempts to extract a workout from free text. A miss is the normal
// case, not an error: the router tries the parser on every inbound message.
func Parse(text string) (Result, bool) {
	for _, p := range patterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		quantity, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}

		unit := strings.ToLower(m[2])
		var duration int
		if strings.HasPrefix(unit, "hour") || strings.HasPrefix(unit, "hr") {
			duration = int(quantity * 60)
		} else {
			duration = int(quantity)
		}

		return Result{
			Type:        NormalizeActivity(m[3]),
			DurationMin: duration,
		}, true
	}
	return Result{}, false
}

// NormalizeActivity maps an activity word onto the fixed taxonomy. Words
// outside the keyword table are kept as-is, capitalized.
func NormalizeActivity(word string) string {
	w := strings.ToLower(strings.TrimSpace(word))
	switch {
	case strings.Contains(w, "run"):
		return "Run"
	case strings.Contains(w, "bike"), strings.Contains(w, "cycling"):
		return "Bike"
	case strings.Contains(w, "swim"):
		return "Swim"
	case strings.Contains(w, "walk"):
		return "Walk"
	case strings.Contains(w, "lift"), strings.Contains(w, "weight"):
		return "Strength"
	case w == "":
		return ""
	default:
		return strings.ToUpper(w[:1]) + w[1:]
	}
}
