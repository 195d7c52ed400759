package refresh_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
	"github.com/Sumit-SC/job-search-api/internal/usecase/refresh"
)

type stubAggregator struct {
	result *aggregate.Result
	err    error
	gotReq aggregate.Request
}

func (a *stubAggregator) Aggregate(ctx context.Context, req aggregate.Request) (*aggregate.Result, error) {
	a.gotReq = req
	return a.result, a.err
}

type stubStore struct {
	saved   []*entity.Listing
	saveErr error
	calls   int
}

func (s *stubStore) Load(ctx context.Context) ([]*entity.Listing, error) {
	return s.saved, nil
}

func (s *stubStore) Save(ctx context.Context, listings []*entity.Listing) error {
	s.calls++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = listings
	return nil
}

func TestRun_SavesAggregatedListings(t *testing.T) {
	agg := &stubAggregator{
		result: &aggregate.Result{
			Listings: []*entity.Listing{
				{ID: "a", Title: "Go Engineer", URL: "https://jobs.example.com/a", Source: "feed"},
				{ID: "b", Title: "SRE", URL: "https://jobs.example.com/b", Source: "feed"},
			},
			SourceCounts:  map[string]int{"feed": 2},
			FailedSources: 1,
		},
	}
	store := &stubStore{}
	svc := &refresh.Service{Aggregator: agg, Store: store}

	stats, err := svc.Run(context.Background(), aggregate.Request{Query: "golang", Days: 7})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Listings)
	assert.Equal(t, 1, stats.FailedSources)
	assert.Equal(t, map[string]int{"feed": 2}, stats.SourceCounts)
	assert.Positive(t, stats.Duration)

	require.Len(t, store.saved, 2)
	assert.Equal(t, "golang", agg.gotReq.Query)
	assert.Equal(t, 7, agg.gotReq.Days)
}

func TestRun_AggregatorError(t *testing.T) {
	agg := &stubAggregator{err: errors.New("registry empty")}
	store := &stubStore{}
	svc := &refresh.Service{Aggregator: agg, Store: store}

	_, err := svc.Run(context.Background(), aggregate.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregate listings")
	assert.Zero(t, store.calls)
}

func TestRun_SaveError(t *testing.T) {
	agg := &stubAggregator{result: &aggregate.Result{Listings: []*entity.Listing{}}}
	store := &stubStore{saveErr: errors.New("permission denied")}
	svc := &refresh.Service{Aggregator: agg, Store: store}

	_, err := svc.Run(context.Background(), aggregate.Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save listings")
	assert.Equal(t, 1, store.calls)
}
