package database

// Schema contains all SQL statements for creating tables and indexes
const Schema = `
-- Daily records table: one canonical health record per calendar date.
-- The full record is stored as a JSON document; a few fields are extracted
-- into columns for indexing and aggregate queries.
CREATE TABLE IF NOT EXISTS daily_records (
    date TEXT PRIMARY KEY,  -- YYYY-MM-DD

    source TEXT NOT NULL,
    record_json TEXT NOT NULL,

    -- Extracted fields for querying
    sleep_score INTEGER,
    recovery_percent REAL,
    workout_count INTEGER NOT NULL DEFAULT 0,

    -- Metadata
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Baseline table: single row holding the user's personal-normal ranges.
-- This service only reads it; baseline derivation lives elsewhere.
CREATE TABLE IF NOT EXISTS baseline (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    baseline_json TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Index for rolling-window reads
CREATE INDEX IF NOT EXISTS idx_daily_records_date ON daily_records(date DESC);
`
