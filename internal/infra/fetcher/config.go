package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// EnrichConfig controls description enrichment: fetching a listing's page
// and extracting readable text when the source description is too thin.
type EnrichConfig struct {
	// Enabled toggles enrichment entirely without redeployment.
	Enabled bool

	// Threshold is the minimum description length (in characters) below
	// which the listing page is fetched. Descriptions at or above the
	// threshold are considered sufficient.
	Threshold int

	// Timeout is the maximum duration for a single page fetch.
	Timeout time.Duration

	// Parallelism bounds concurrent enrichment fetches per aggregation call.
	Parallelism int

	// MaxBodySize is the maximum response body size in bytes.
	MaxBodySize int64

	// MaxRedirects bounds the redirect chain; every target is re-validated.
	MaxRedirects int

	// DenyPrivateIPs blocks URLs resolving to private addresses (SSRF
	// prevention). Should always be true in production.
	DenyPrivateIPs bool
}

// DefaultEnrichConfig returns production-ready enrichment defaults.
func DefaultEnrichConfig() EnrichConfig {
	return EnrichConfig{
		Enabled:        true,
		Threshold:      300,
		Timeout:        10 * time.Second,
		Parallelism:    10,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks the configuration for values that would be unsafe or
// nonsensical at runtime.
func (c *EnrichConfig) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must be non-negative, got %d", c.Threshold)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.Parallelism < 1 || c.Parallelism > 50 {
		return fmt.Errorf("parallelism must be between 1 and 50, got %d", c.Parallelism)
	}
	minBodySize := int64(1024)              // 1KB
	maxBodySize := int64(100 * 1024 * 1024) // 100MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}

// LoadEnrichConfigFromEnv loads enrichment configuration from ENRICH_*
// environment variables, falling back to defaults for unset values.
//
// Variables: ENRICH_ENABLED, ENRICH_THRESHOLD, ENRICH_TIMEOUT,
// ENRICH_PARALLELISM, ENRICH_MAX_BODY_SIZE, ENRICH_MAX_REDIRECTS,
// ENRICH_DENY_PRIVATE_IPS.
func LoadEnrichConfigFromEnv() (EnrichConfig, error) {
	cfg := DefaultEnrichConfig()

	if val := os.Getenv("ENRICH_ENABLED"); val != "" {
		cfg.Enabled = val == "true"
	}
	if val := os.Getenv("ENRICH_THRESHOLD"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid ENRICH_THRESHOLD: %v", err)
		}
		cfg.Threshold = parsed
	}
	if val := os.Getenv("ENRICH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid ENRICH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}
	if val := os.Getenv("ENRICH_PARALLELISM"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid ENRICH_PARALLELISM: %v", err)
		}
		cfg.Parallelism = parsed
	}
	if val := os.Getenv("ENRICH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid ENRICH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}
	if val := os.Getenv("ENRICH_MAX_REDIRECTS"); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid ENRICH_MAX_REDIRECTS: %v", err)
		}
		cfg.MaxRedirects = parsed
	}
	if val := os.Getenv("ENRICH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
