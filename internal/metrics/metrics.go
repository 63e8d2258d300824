package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label value constants to prevent typos
const (
	// HTTP endpoints
	EndpointQuery   = "query"
	EndpointSync    = "sync"
	EndpointRecords = "records"
	EndpointHealth  = "health"

	// Query intents
	IntentLogWorkout = "log_workout"
	IntentSleep      = "sleep"
	IntentRecovery   = "recovery"
	IntentClearance  = "clearance"
	IntentWeekly     = "weekly"
	IntentBrief      = "brief"
	IntentHelp       = "help"

	// Sync outcomes
	SyncOutcomeMerged = "merged"
	SyncOutcomeNoData = "no_data"
	SyncOutcomeError  = "error"

	// Adapter fetch outcomes
	FetchOutcomeOK          = "ok"
	FetchOutcomeUnavailable = "unavailable"

	// Wearable API operations
	OpDailySummary = "daily_summary"
	OpSleepData    = "sleep_data"
	OpStressData   = "stress_data"

	// Database operations
	DBOpPutRecord       = "put_record"
	DBOpGetRecord       = "get_record"
	DBOpListRecentDates = "list_recent_dates"
	DBOpCountRecords    = "count_records"
	DBOpGetBaseline     = "get_baseline"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint", "status_code"},
	)
)

// Query Metrics
var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queries_total",
			Help: "Total number of natural-language queries by routed intent",
		},
		[]string{"intent"},
	)

	WorkoutsLoggedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "workouts_logged_total",
			Help: "Total number of workouts logged from parsed statements",
		},
	)
)

// Sync Metrics
var (
	SyncsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syncs_total",
			Help: "Total number of sync operations by outcome",
		},
		[]string{"outcome"},
	)

	AdapterFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adapter_fetches_total",
			Help: "Total number of source adapter fetches by outcome",
		},
		[]string{"source", "outcome"},
	)

	AdapterFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adapter_fetch_duration_seconds",
			Help:    "Source adapter fetch latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"source"},
	)
)

// Wearable API Metrics
var (
	WearableAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wearable_api_requests_total",
			Help: "Total number of wearable vendor API requests",
		},
		[]string{"operation", "status_code"},
	)

	WearableAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wearable_api_request_duration_seconds",
			Help:    "Wearable vendor API request latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"operation", "status_code"},
	)
)

// Database Metrics
var (
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_operation_duration_seconds",
			Help:    "Database operation latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	DBOperationErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "db_operation_errors_total",
			Help: "Total number of database operation errors",
		},
		[]string{"operation"},
	)

	RecordsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "records_stored",
			Help: "Number of daily records currently in the store",
		},
	)
)
