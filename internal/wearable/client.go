package wearable

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"healthbrief/internal/metrics"
)

const (
	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 30 * time.Second
)

// Client is a wearable vendor API client. It fetches the raw daily
// telemetry documents; parsing them into the canonical record shape happens
// in the adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *slog.Logger
}

// NewClient creates a new wearable vendor API client
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		token:      token,
		logger:     slog.Default(),
	}
}

// HTTPError is a non-2xx response from the vendor API
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("wearable API returned status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the vendor API
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the vendor API
func IsUnauthorized(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}

// DailySummary is the vendor's daily activity totals document
type DailySummary struct {
	Steps         *int64   `json:"steps"`
	Distance      *float64 `json:"distance"`
	Calories      *int64   `json:"calories"`
	ActiveMinutes *int64   `json:"activeMinutes"`
}

// SleepData is the vendor's nightly sleep document
type SleepData struct {
	SleepDurationSeconds      *int64 `json:"sleepDurationSeconds"`
	DeepSleepDurationSeconds  *int64 `json:"deepSleepDurationSeconds"`
	LightSleepDurationSeconds *int64 `json:"lightSleepDurationSeconds"`
	RemSleepDurationSeconds   *int64 `json:"remSleepDurationSeconds"`
	AwakeDurationSeconds      *int64 `json:"awakeDurationSeconds"`
	SleepScore                *int   `json:"sleepScore"`
}

// StressDetails is the vendor's stress and energy-reserve document
type StressDetails struct {
	AverageStressLevel *float64 `json:"averageStressLevel"`
	ReserveAverage     *int     `json:"reserveAverage"`
	ReserveMaximum     *int     `json:"reserveMaximum"`
	ReserveMinimum     *int     `json:"reserveMinimum"`
}

// GetDailySummary fetches the daily activity totals for a date
func (c *Client) GetDailySummary(ctx context.Context, date string) (*DailySummary, error) {
	var summary DailySummary
	if err := c.get(ctx, metrics.OpDailySummary, "/daily-summary", date, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetSleepData fetches the sleep document for a date
func (c *Client) GetSleepData(ctx context.Context, date string) (*SleepData, error) {
	var sleep SleepData
	if err := c.get(ctx, metrics.OpSleepData, "/sleep", date, &sleep); err != nil {
		return nil, err
	}
	return &sleep, nil
}

// GetStressDetails fetches the stress and energy-reserve document for a date
func (c *Client) GetStressDetails(ctx context.Context, date string) (*StressDetails, error) {
	var stress StressDetails
	if err := c.get(ctx, metrics.OpStressData, "/stress", date, &stress); err != nil {
		return nil, err
	}
	return &stress, nil
}

// get performs a GET request with retries on transient failures
func (c *Client) get(ctx context.Context, operation, path, date string, dst interface{}) error {
	reqURL := fmt.Sprintf("%s%s?date=%s", c.baseURL, path, url.QueryEscape(date))

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Info("retrying request", "operation", operation, "attempt", attempt, "delay_ms", delay.Milliseconds())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = min(delay*2, maxDelay)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.token)

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		duration := time.Since(start)

		if err != nil {
			lastErr = err
			c.logger.Warn("request failed", "operation", operation, "error", err, "attempt", attempt)
			continue
		}

		statusStr := strconv.Itoa(resp.StatusCode)
		metrics.WearableAPIRequestsTotal.WithLabelValues(operation, statusStr).Inc()
		metrics.WearableAPIRequestDuration.WithLabelValues(operation, statusStr).Observe(duration.Seconds())

		c.logger.Debug("wearable_api_request",
			"operation", operation,
			"status", resp.StatusCode,
			"duration_ms", duration.Milliseconds())

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error (%d)", resp.StatusCode)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return &HTTPError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
		}

		err = json.NewDecoder(resp.Body).Decode(dst)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode %s response: %w", operation, err)
		}
		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
