package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	LogLevel    string
	Env         string

	// Session storage
	SessionDBPath string

	// Booking window used by the slot generator. StartHour is inclusive,
	// EndHour exclusive.
	SlotStartHour    int
	SlotEndHour      int
	SlotIntervalMins int

	// Trailing debounce applied to search-as-you-type lookups.
	SearchDebounce time.Duration

	MetricsEnabled bool
}

// Load reads configuration from environment variables. API_BASE_URL has a
// localhost default in development; every other environment must set it.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:       strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost:3000"), "/"),
		HTTPTimeout:      getEnvAsDuration("HTTP_TIMEOUT", 20*time.Second),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Env:              getEnv("ENV", "development"),
		SessionDBPath:    getEnv("SESSION_DB_PATH", "citasalud-session.db"),
		SlotStartHour:    getEnvAsInt("SLOT_START_HOUR", 8),
		SlotEndHour:      getEnvAsInt("SLOT_END_HOUR", 17),
		SlotIntervalMins: getEnvAsInt("SLOT_INTERVAL_MINS", 15),
		SearchDebounce:   getEnvAsDuration("SEARCH_DEBOUNCE", 500*time.Millisecond),
		MetricsEnabled:   getEnvAsBool("METRICS_ENABLED", true),
	}
	if os.Getenv("API_BASE_URL") == "" && cfg.Env != "development" {
		return nil, fmt.Errorf("config: API_BASE_URL is required when ENV=%q", cfg.Env)
	}
	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
