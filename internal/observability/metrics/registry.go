// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Source metrics track per-adapter fetch behavior during aggregation
var (
	// SourceFetchDuration measures how long one adapter fetch takes
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "source_fetch_duration_seconds",
			Help:    "Duration of a single source adapter fetch in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"source"},
	)

	// SourceRecordsTotal counts raw records returned by each adapter
	SourceRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_records_total",
			Help: "Total raw records returned by each source adapter",
		},
		[]string{"source"},
	)

	// SourceFetchErrors counts adapter failures by source and reason
	SourceFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetch_errors_total",
			Help: "Total source adapter failures",
		},
		[]string{"source", "reason"},
	)
)

// Aggregation metrics track whole-orchestrator outcomes
var (
	// AggregateDuration measures end-to-end aggregation duration
	AggregateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregate_duration_seconds",
			Help:    "Duration of a full aggregation call in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
	)

	// AggregateListings measures merged listing counts per aggregation call
	AggregateListings = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "aggregate_listings",
			Help:    "Number of merged listings produced per aggregation call",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// AggregateFailedSources counts sources that failed within aggregation calls
	AggregateFailedSources = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aggregate_failed_sources_total",
			Help: "Total source failures observed across aggregation calls",
		},
	)
)

// Cache metrics track the response caches, labeled by cache instance
var (
	// CacheHitsTotal counts cache hits per cache instance
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total response cache hits",
		},
		[]string{"cache"},
	)

	// CacheMissesTotal counts cache misses per cache instance
	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total response cache misses (including lazy expiries)",
		},
		[]string{"cache"},
	)

	// CacheEvictionsTotal counts capacity evictions per cache instance
	CacheEvictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "response_cache_evictions_total",
			Help: "Total response cache entries evicted by the capacity bound",
		},
		[]string{"cache"},
	)

	// CacheEntries tracks the current entry count per cache instance
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "response_cache_entries",
			Help: "Current number of entries in the response cache",
		},
		[]string{"cache"},
	)
)

// Store metrics track the listing store
var (
	// ListingsStored tracks the number of listings last persisted
	ListingsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "listings_stored",
			Help: "Number of listings in the last persisted snapshot",
		},
	)

	// RefreshRunsTotal counts worker refresh runs by outcome
	RefreshRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_runs_total",
			Help: "Total refresh runs executed by the worker",
		},
		[]string{"status"},
	)
)
