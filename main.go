package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"healthbrief/internal/adapter"
	"healthbrief/internal/config"
	"healthbrief/internal/database"
	"healthbrief/internal/handlers"
	"healthbrief/internal/metrics"
	"healthbrief/internal/middleware"
	"healthbrief/internal/router"
	"healthbrief/internal/syncer"
	"healthbrief/internal/tracker"
	"healthbrief/internal/wearable"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting healthbrief server",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DatabasePath,
		"log_level", cfg.LogLevel)

	// Open database
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("Database opened successfully")

	// Build the source adapters. Order is merge priority: the wearable wins
	// per-field conflicts over the tracker.
	sources := buildSources(cfg, logger)

	syncerInstance := syncer.New(db, sources)
	queryRouter := router.New(db)

	// Create handlers
	queryHandler := handlers.NewQueryHandler(queryRouter, cfg)
	syncHandler := handlers.NewSyncHandler(syncerInstance, cfg)
	recordsHandler := handlers.NewRecordsHandler(db, cfg)

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.Handle("/query", middleware.WrapHandler(metrics.EndpointQuery, queryHandler.HandleQuery))
	mux.Handle("/sync", middleware.WrapHandler(metrics.EndpointSync, syncHandler.HandleSync))
	mux.Handle("/records/", middleware.WrapHandler(metrics.EndpointRecords, recordsHandler.HandleRecord))

	// Health check endpoint
	mux.Handle("/health", middleware.WrapHandler(metrics.EndpointHealth, func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(); err != nil {
			http.Error(w, "Unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}))

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	collectorCtx, collectorCancel := context.WithCancel(context.Background())
	defer collectorCancel()

	// Start store size collector if metrics are enabled
	if cfg.MetricsEnabled {
		go func() {
			logger.Info("Starting store size collector")
			metrics.StartStoreSizeCollector(collectorCtx, db, 15*time.Second)
		}()
	}

	// Start metrics server if enabled
	var metricsServer *http.Server
	if cfg.MetricsEnabled {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())

		metricsAddr := fmt.Sprintf("%s:%d", cfg.MetricsHost, cfg.MetricsPort)
		metricsServer = &http.Server{
			Addr:    metricsAddr,
			Handler: metricsMux,
		}

		go func() {
			logger.Info("Metrics server listening", "addr", metricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server failed", "error", err)
			}
		}()
	}

	// Start HTTP server in background
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")

	collectorCancel()

	// Shutdown HTTP servers with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Metrics server shutdown failed", "error", err)
		}
	}

	logger.Info("Server stopped")
}

// buildSources assembles the configured source adapters. An unconfigured
// source is simply left out rather than registered in a permanently
// unavailable state.
func buildSources(cfg *config.Config, logger *slog.Logger) []adapter.Source {
	var sources []adapter.Source

	if cfg.WearableEnabled() {
		logger.Info("Wearable source enabled", "url", cfg.WearableAPIURL)
		sources = append(sources, wearable.NewAdapter(wearable.NewClient(cfg.WearableAPIURL, cfg.WearableAPIToken)))
	} else {
		logger.Info("Wearable source disabled")
	}

	if cfg.TrackerEnabled() {
		logger.Info("Tracker source enabled", "export", cfg.TrackerExportPath)
		sources = append(sources, tracker.NewAdapter(cfg.TrackerExportPath))
	} else {
		logger.Info("Tracker source disabled")
	}

	return sources
}
