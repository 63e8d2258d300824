package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"healthbrief/internal/adapter"
	"healthbrief/internal/brief"
	"healthbrief/internal/config"
	"healthbrief/internal/database"
	"healthbrief/internal/record"
	"healthbrief/internal/router"
	"healthbrief/internal/syncer"
	"healthbrief/internal/tracker"
	"healthbrief/internal/wearable"
)

func main() {
	// Disable structured logging for CLI
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError, // Only show errors
	})))

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	if command == "help" {
		printUsage()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Open database
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch command {
	case "sync":
		handleSync(db, cfg)
	case "query":
		handleQuery(db)
	case "brief":
		handleBrief(db)
	default:
		fmt.Fprintf(os.Stderr, "Error: Unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`healthbrief CLI - Daily Health Record Tools

Usage:
  cli <command> [options]

Commands:
  sync [date]      Sync the configured sources for a date (default: today)
  query <text>     Ask a free-text health question or log a workout
  brief            Print today's health brief
  help             Show this help message

Examples:
  cli sync
  cli sync 2026-08-30
  cli query "how did I sleep?"
  cli query "log a 30 min run"
  cli brief

Environment Variables Required:
  INTERNAL_API_KEY       - Key for the internal HTTP API
  DATABASE_PATH          - SQLite database path (default: ./data.db)
  WEARABLE_API_URL       - Wearable vendor API base URL (optional)
  WEARABLE_API_TOKEN     - Wearable vendor API token (optional)
  TRACKER_EXPORT_PATH    - Activity tracker export file (optional)`)
}

func handleSync(db *database.DB, cfg *config.Config) {
	date := record.DateOf(time.Now())
	if len(os.Args) > 2 {
		date = os.Args[2]
		if _, err := time.Parse(record.DateFormat, date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Invalid date '%s', expected YYYY-MM-DD\n", date)
			os.Exit(1)
		}
	}

	var sources []adapter.Source
	if cfg.WearableEnabled() {
		sources = append(sources, wearable.NewAdapter(wearable.NewClient(cfg.WearableAPIURL, cfg.WearableAPIToken)))
	}
	if cfg.TrackerEnabled() {
		sources = append(sources, tracker.NewAdapter(cfg.TrackerExportPath))
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No sources configured")
		fmt.Fprintln(os.Stderr, "Set WEARABLE_API_URL and WEARABLE_API_TOKEN, or TRACKER_EXPORT_PATH")
		os.Exit(1)
	}

	fmt.Printf("Syncing %s...\n", date)

	merged, err := syncer.New(db, sources).Sync(context.Background(), date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Sync failed: %v\n", err)
		os.Exit(1)
	}
	if merged == nil {
		fmt.Println("No source data for this date.")
		return
	}

	fmt.Printf("Synced record for %s (source: %s, workouts: %d)\n",
		merged.Date, merged.Source, len(merged.Workouts))
}

func handleQuery(db *database.DB) {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Error: Query text required")
		fmt.Fprintln(os.Stderr, `Usage: cli query "how did I sleep?"`)
		os.Exit(1)
	}

	message := strings.Join(os.Args[2:], " ")

	reply, err := router.New(db).Respond(context.Background(), message)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(reply)
}

func handleBrief(db *database.DB) {
	today, err := db.GetRecord(record.DateOf(time.Now()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	baseline, err := db.GetBaseline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(brief.Daily(today, baseline))
}
