package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/observability/metrics"
	"github.com/Sumit-SC/job-search-api/internal/repository"
	"github.com/Sumit-SC/job-search-api/internal/resilience/retry"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
)

// Aggregator runs one aggregation call. Implemented by aggregate.Service.
type Aggregator interface {
	Aggregate(ctx context.Context, req aggregate.Request) (*aggregate.Result, error)
}

// Stats summarizes one refresh run.
type Stats struct {
	Listings      int
	FailedSources int
	SourceCounts  map[string]int
	Duration      time.Duration
}

// Service refreshes the stored listing snapshot by aggregating all sources
// and replacing the store contents with the result.
type Service struct {
	Aggregator Aggregator
	Store      repository.ListingStore
}

// Run aggregates with the given request and saves the merged listings as the
// new snapshot. The save is retried with backoff since a transient store
// failure should not throw away a completed aggregation.
func (s *Service) Run(ctx context.Context, req aggregate.Request) (*Stats, error) {
	start := time.Now()

	result, err := s.Aggregator.Aggregate(ctx, req)
	if err != nil {
		metrics.RecordRefreshRun("error")
		return nil, fmt.Errorf("aggregate listings: %w", err)
	}

	err = retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		return s.Store.Save(ctx, result.Listings)
	})
	if err != nil {
		metrics.RecordRefreshRun("error")
		return nil, fmt.Errorf("save listings: %w", err)
	}

	stats := &Stats{
		Listings:      len(result.Listings),
		FailedSources: result.FailedSources,
		SourceCounts:  result.SourceCounts,
		Duration:      time.Since(start),
	}

	metrics.UpdateListingsStored(stats.Listings)
	metrics.RecordRefreshRun("success")
	slog.Info("refresh completed",
		slog.Int("listings", stats.Listings),
		slog.Int("failed_sources", stats.FailedSources),
		slog.Duration("duration", stats.Duration))

	return stats, nil
}
