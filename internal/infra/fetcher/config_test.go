package fetcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEnrichConfig(t *testing.T) {
	cfg := DefaultEnrichConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 300, cfg.Threshold)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 10, cfg.Parallelism)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxBodySize)
	assert.Equal(t, 5, cfg.MaxRedirects)
	assert.True(t, cfg.DenyPrivateIPs)
	require.NoError(t, cfg.Validate())
}

func TestEnrichConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EnrichConfig)
		wantErr string
	}{
		{
			name:   "default config is valid",
			mutate: func(c *EnrichConfig) {},
		},
		{
			name:    "negative threshold",
			mutate:  func(c *EnrichConfig) { c.Threshold = -1 },
			wantErr: "threshold must be non-negative",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *EnrichConfig) { c.Timeout = 0 },
			wantErr: "timeout must be positive",
		},
		{
			name:    "parallelism too high",
			mutate:  func(c *EnrichConfig) { c.Parallelism = 100 },
			wantErr: "parallelism must be between",
		},
		{
			name:    "body size too small",
			mutate:  func(c *EnrichConfig) { c.MaxBodySize = 100 },
			wantErr: "max body size must be between",
		},
		{
			name:    "too many redirects",
			mutate:  func(c *EnrichConfig) { c.MaxRedirects = 20 },
			wantErr: "max redirects must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultEnrichConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEnrichConfigFromEnv(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		cfg, err := LoadEnrichConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultEnrichConfig(), cfg)
	})

	t.Run("reads environment overrides", func(t *testing.T) {
		t.Setenv("ENRICH_ENABLED", "false")
		t.Setenv("ENRICH_THRESHOLD", "500")
		t.Setenv("ENRICH_TIMEOUT", "5s")
		t.Setenv("ENRICH_PARALLELISM", "3")

		cfg, err := LoadEnrichConfigFromEnv()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
		assert.Equal(t, 500, cfg.Threshold)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 3, cfg.Parallelism)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		t.Setenv("ENRICH_THRESHOLD", "lots")

		_, err := LoadEnrichConfigFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENRICH_THRESHOLD")
	})

	t.Run("invalid timeout format", func(t *testing.T) {
		t.Setenv("ENRICH_TIMEOUT", "ten seconds")

		_, err := LoadEnrichConfigFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ENRICH_TIMEOUT")
	})

	t.Run("out-of-range value fails validation", func(t *testing.T) {
		t.Setenv("ENRICH_PARALLELISM", "0")

		_, err := LoadEnrichConfigFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})
}
