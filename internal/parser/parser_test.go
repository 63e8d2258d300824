package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecognizedStatements(t *testing.T) {
	tests := []struct {
		text string
		want Result
	}{
		{"log a 30 min run", Result{Type: "Run", DurationMin: 30}},
		{"log 45 min bike", Result{Type: "Bike", DurationMin: 45}},
		{"logged 1 hour swim", Result{Type: "Swim", DurationMin: 60}},
		{"Logged 1.5 hours cycling", Result{Type: "Bike", DurationMin: 90}},
		{"did a 20 minute walk this morning", Result{Type: "Walk", DurationMin: 20}},
		{"45 min weights", Result{Type: "Strength", DurationMin: 45}},
		{"log a 30 min yoga", Result{Type: "Yoga", DurationMin: 30}},
		{"LOG A 30 MIN RUN", Result{Type: "Run", DurationMin: 30}},
		{"2.5 hr lifting", Result{Type: "Strength", DurationMin: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Parse(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTruncatesFractionalMinutes(t *testing.T) {
	got, ok := Parse("log a 30.9 min run")
	require.True(t, ok)
	assert.Equal(t, 30, got.DurationMin)
}

func TestParseNoMatch(t *testing.T) {
	for _, text := range []string{
		"bike to work",
		"how did I sleep?",
		"am I cleared for hard training?",
		"",
		"log my workout",
	} {
		_, ok := Parse(text)
		assert.False(t, ok, "expected no match for %q", text)
	}
}

func TestParseLogPhrasingWinsOverBare(t *testing.T) {
	// Both patterns could match; the log-phrasing pattern is tried first and
	// its match is the one returned.
	got, ok := Parse("after 10 min warmup I logged 40 min run")
	require.True(t, ok)
	assert.Equal(t, Result{Type: "Run", DurationMin: 40}, got)
}

func TestNormalizeActivity(t *testing.T) {
	assert.Equal(t, "Run", NormalizeActivity("running"))
	assert.Equal(t, "Bike", NormalizeActivity("cycling"))
	assert.Equal(t, "Strength", NormalizeActivity("lifting"))
	assert.Equal(t, "Rowing", NormalizeActivity("rowing"))
	assert.Equal(t, "", NormalizeActivity("  "))
}
