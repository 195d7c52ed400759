// Package config loads application configuration from environment variables.
// Invalid values fall back to safe defaults with a warning instead of
// crashing the process.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// AppConfig holds all runtime configuration for the API server and worker.
type AppConfig struct {
	// Port is the HTTP listen port.
	Port string

	// DataDir is the directory for the flat-file listing store.
	DataDir string

	// DatabaseURL selects the Postgres store when non-empty.
	DatabaseURL string

	// SourcesFile is the YAML file defining feeds, APIs, boards, and presets.
	SourcesFile string

	// SearchCacheTTL and FeedsCacheTTL are the per-endpoint cache lifetimes.
	SearchCacheTTL time.Duration
	FeedsCacheTTL  time.Duration

	// CacheMaxEntries bounds each response cache.
	CacheMaxEntries int

	// SourceTimeout is the per-adapter deadline for feed and API fetches;
	// BoardTimeout covers the slower DOM-scraping adapters.
	SourceTimeout time.Duration
	BoardTimeout  time.Duration

	// BoardRequestsPerSec is the politeness rate for the shared board session.
	BoardRequestsPerSec float64

	// RequestTimeout is the HTTP server's per-request deadline.
	RequestTimeout time.Duration

	// TargetExperience is the years-of-experience sweet spot used by scoring.
	TargetExperience int

	// Refresh* configure the background worker's periodic snapshot rebuild.
	RefreshSchedule string
	RefreshQuery    string
	RefreshDays     int
	RefreshLimit    int
}

// Load reads configuration from the environment.
func Load() AppConfig {
	return AppConfig{
		Port:                getEnvOrDefault("PORT", "8080"),
		DataDir:             getEnvOrDefault("DATA_DIR", "./data"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SourcesFile:         getEnvOrDefault("SOURCES_FILE", "configs/sources.yaml"),
		SearchCacheTTL:      getEnvDuration("SEARCH_CACHE_TTL", 15*time.Minute),
		FeedsCacheTTL:       getEnvDuration("FEEDS_CACHE_TTL", 10*time.Minute),
		CacheMaxEntries:     getEnvPositiveInt("CACHE_MAX_ENTRIES", 100),
		SourceTimeout:       getEnvDuration("SOURCE_TIMEOUT", 20*time.Second),
		BoardTimeout:        getEnvDuration("BOARD_TIMEOUT", 45*time.Second),
		BoardRequestsPerSec: getEnvFloat("BOARD_REQUESTS_PER_SEC", 0.5),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 60*time.Second),
		TargetExperience:    getEnvPositiveInt("TARGET_YOE", 2),
		RefreshSchedule:     getEnvOrDefault("REFRESH_SCHEDULE", "*/30 * * * *"),
		RefreshQuery:        os.Getenv("REFRESH_QUERY"),
		RefreshDays:         getEnvPositiveInt("REFRESH_DAYS", 7),
		RefreshLimit:        getEnvPositiveInt("REFRESH_LIMIT", 200),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPositiveInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		slog.Warn("invalid integer in environment, using default",
			slog.String("key", key),
			slog.String("value", value),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		slog.Warn("invalid float in environment, using default",
			slog.String("key", key),
			slog.String("value", value),
			slog.Float64("default", defaultValue))
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		slog.Warn("invalid duration in environment, using default",
			slog.String("key", key),
			slog.String("value", value),
			slog.Duration("default", defaultValue))
		return defaultValue
	}
	return parsed
}
