package router

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthbrief/internal/database"
	"healthbrief/internal/record"
)

var testNow = time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*Router, *database.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	r := New(db)
	r.now = func() time.Time { return testNow }
	return r, db
}

func seedToday(t *testing.T, db *database.DB) {
	t.Helper()
	score := 81
	require.NoError(t, db.PutRecord(&record.DailyHealthRecord{
		Date:   "2026-08-31",
		Source: record.SourceWearable,
		Sleep:  &record.Sleep{DurationSeconds: 26100, Score: &score},
		Recovery: &record.Recovery{
			RecoveryPercent: 72,
			AverageStress:   28,
		},
	}))
}

func TestRespondLogsWorkout(t *testing.T) {
	r, db := setupRouter(t)

	reply, err := r.Respond(context.Background(), "log a 30 min run")
	require.NoError(t, err)
	assert.Equal(t, "Logged: Run 30 min", reply)

	rec, err := db.GetRecord("2026-08-31")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, record.SourceManual, rec.Source)
	require.Len(t, rec.Workouts, 1)
	assert.Equal(t, "Run", rec.Workouts[0].Type)
	assert.Equal(t, 30, rec.Workouts[0].DurationMin)
	assert.NotEmpty(t, rec.Workouts[0].ID)
}

func TestRespondAppendsToExistingRecord(t *testing.T) {
	r, db := setupRouter(t)
	seedToday(t, db)

	_, err := r.Respond(context.Background(), "logged 1 hour swim")
	require.NoError(t, err)

	rec, err := db.GetRecord("2026-08-31")
	require.NoError(t, err)
	require.Len(t, rec.Workouts, 1)
	assert.Equal(t, "Swim", rec.Workouts[0].Type)
	assert.Equal(t, 60, rec.Workouts[0].DurationMin)
	assert.NotNil(t, rec.Sleep, "logging a workout must not discard synced fields")
}

func TestRespondSleepQuery(t *testing.T) {
	r, db := setupRouter(t)
	seedToday(t, db)

	reply, err := r.Respond(context.Background(), "how did I sleep?")
	require.NoError(t, err)
	assert.Equal(t, "Sleep: 7h 15m | Score: 81/100", reply)
}

func TestRespondRecoveryQuery(t *testing.T) {
	r, db := setupRouter(t)
	seedToday(t, db)

	reply, err := r.Respond(context.Background(), "what's my recovery?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Recovery: 72% (Green)")
}

func TestRespondClearanceQuery(t *testing.T) {
	r, db := setupRouter(t)
	seedToday(t, db)

	reply, err := r.Respond(context.Background(), "am I cleared for hard training?")
	require.NoError(t, err)
	assert.Equal(t, "CLEARED for hard training today.", reply)
}

func TestRespondWeeklyQuery(t *testing.T) {
	r, db := setupRouter(t)
	seedToday(t, db)

	reply, err := r.Respond(context.Background(), "show me this week")
	require.NoError(t, err)
	assert.Contains(t, reply, "WEEKLY HEALTH SUMMARY")
	assert.Contains(t, reply, "Avg Sleep Score: 81/100")
}

func TestRespondBriefQuery(t *testing.T) {
	r, db := setupRouter(t)
	seedToday(t, db)

	reply, err := r.Respond(context.Background(), "how am i doing?")
	require.NoError(t, err)
	assert.Contains(t, reply, "HEALTH BRIEF 2026-08-31")
}

func TestRespondPrecedence(t *testing.T) {
	r, db := setupRouter(t)
	seedToday(t, db)

	// "sleep" outranks "week" in the dispatch order
	reply, err := r.Respond(context.Background(), "how was my sleep this week?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Sleep: 7h 15m")
	assert.NotContains(t, reply, "WEEKLY")
}

func TestRespondParserOutranksKeywords(t *testing.T) {
	r, _ := setupRouter(t)

	// Contains "train" but parses as a workout statement
	reply, err := r.Respond(context.Background(), "log 45 min training")
	require.NoError(t, err)
	assert.Contains(t, reply, "Logged:")
}

func TestRespondHelpFallback(t *testing.T) {
	r, _ := setupRouter(t)

	reply, err := r.Respond(context.Background(), "what is the meaning of life?")
	require.NoError(t, err)
	assert.Contains(t, reply, "I didn't understand that.")
}

func TestRespondNoDataQueries(t *testing.T) {
	r, _ := setupRouter(t)

	reply, err := r.Respond(context.Background(), "how did I sleep?")
	require.NoError(t, err)
	assert.Equal(t, "No sleep data available. Run a sync first.", reply)

	reply, err = r.Respond(context.Background(), "am I cleared to train?")
	require.NoError(t, err)
	assert.Equal(t, "No data to determine training clearance.", reply)
}
