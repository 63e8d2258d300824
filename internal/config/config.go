package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Host string
	Port int

	// Database configuration
	DatabasePath string

	// Wearable vendor API configuration. Both must be set for the wearable
	// source to be enabled.
	WearableAPIURL   string
	WearableAPIToken string

	// Activity tracker export configuration. Empty disables the tracker
	// source.
	TrackerExportPath string

	// Internal API configuration
	InternalAPIKey string

	// Metrics configuration
	MetricsEnabled bool
	MetricsHost    string
	MetricsPort    int

	// Logging configuration
	LogLevel string
}

// WearableEnabled reports whether the wearable source is configured
func (c *Config) WearableEnabled() bool {
	return c.WearableAPIURL != "" && c.WearableAPIToken != ""
}

// TrackerEnabled reports whether the tracker source is configured
func (c *Config) TrackerEnabled() bool {
	return c.TrackerExportPath != ""
}

// Load reads configuration from a .env file in the working directory, if
// present, and the environment. Real environment variables take precedence
// over the file. It fails fast on missing or invalid values.
func Load() (*Config, error) {
	fileVars, err := loadEnvFile(".env")
	if err != nil {
		return nil, err
	}

	get := func(key, defaultValue string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v, ok := fileVars[key]; ok && v != "" {
			return v
		}
		return defaultValue
	}

	cfg := &Config{
		Host:              get("HOST", "localhost"),
		DatabasePath:      get("DATABASE_PATH", "./data.db"),
		LogLevel:          get("LOG_LEVEL", "info"),
		WearableAPIURL:    get("WEARABLE_API_URL", ""),
		WearableAPIToken:  get("WEARABLE_API_TOKEN", ""),
		TrackerExportPath: get("TRACKER_EXPORT_PATH", ""),
		InternalAPIKey:    get("INTERNAL_API_KEY", ""),
		MetricsHost:       get("METRICS_HOST", "localhost"),
	}

	cfg.Port, err = parsePort(get("PORT", "4105"), "PORT")
	if err != nil {
		return nil, err
	}
	cfg.MetricsPort, err = parsePort(get("METRICS_PORT", "9105"), "METRICS_PORT")
	if err != nil {
		return nil, err
	}

	metricsEnabled := get("METRICS_ENABLED", "true")
	cfg.MetricsEnabled, err = strconv.ParseBool(metricsEnabled)
	if err != nil {
		return nil, fmt.Errorf("METRICS_ENABLED must be a boolean, got %q", metricsEnabled)
	}

	if cfg.InternalAPIKey == "" {
		return nil, fmt.Errorf("INTERNAL_API_KEY is required")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	return cfg, nil
}

func parsePort(value, name string) (int, error) {
	port, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, value)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return port, nil
}

// loadEnvFile parses a KEY=VALUE file. Missing files are fine; blank lines
// and # comments are skipped; single or double quotes around values are
// stripped.
func loadEnvFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	vars := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}
		vars[key] = value
	}
	return vars, nil
}
