// Package http provides the HTTP handlers and middleware for the job search
// API: cached aggregation endpoints, stored-listing queries, refresh, and
// operational endpoints.
package http

import (
	"context"

	"github.com/Sumit-SC/job-search-api/internal/cache"
	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	"github.com/Sumit-SC/job-search-api/internal/infra/source"
	"github.com/Sumit-SC/job-search-api/internal/repository"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
	"github.com/Sumit-SC/job-search-api/internal/usecase/listing"
	"github.com/Sumit-SC/job-search-api/internal/usecase/refresh"
)

// Aggregator runs one live aggregation. Implemented by aggregate.Service.
type Aggregator interface {
	Aggregate(ctx context.Context, req aggregate.Request) (*aggregate.Result, error)
}

// ListingService answers queries over the stored snapshot.
type ListingService interface {
	List(ctx context.Context, f listing.Filter) ([]*entity.Listing, error)
	GroupedByCurrency(ctx context.Context, f listing.Filter) (map[string][]*entity.Listing, error)
}

// Refresher rebuilds the stored snapshot from live sources.
type Refresher interface {
	Run(ctx context.Context, req aggregate.Request) (*refresh.Stats, error)
}

// API holds the dependencies of all HTTP handlers.
type API struct {
	Aggregator  Aggregator
	Listings    ListingService
	Refresher   Refresher
	Registry    *source.Registry
	Presets     map[string][]string
	SearchCache *cache.TTLCache
	FeedsCache  *cache.TTLCache
	Store       repository.ListingStore
	Version     string
}
