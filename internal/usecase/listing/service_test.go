package listing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	"github.com/Sumit-SC/job-search-api/internal/usecase/listing"
)

type stubStore struct {
	listings []*entity.Listing
	loadErr  error
}

func (s *stubStore) Load(ctx context.Context) ([]*entity.Listing, error) {
	return s.listings, s.loadErr
}

func (s *stubStore) Save(ctx context.Context, listings []*entity.Listing) error {
	s.listings = listings
	return nil
}

func timePtr(t time.Time) *time.Time { return &t }

var fixedNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

func fixtureListings() []*entity.Listing {
	return []*entity.Listing{
		{
			ID:       "a",
			Title:    "Senior Go Engineer",
			Company:  "Acme",
			Location: "Remote",
			URL:      "https://jobs.example.com/a",
			Source:   "weworkremotely",
			Currency: "USD",
			PostedAt: timePtr(fixedNow.Add(-48 * time.Hour)),
		},
		{
			ID:       "b",
			Title:    "Frontend Developer",
			Company:  "Globex",
			Location: "Berlin",
			URL:      "https://jobs.example.com/b",
			Source:   "remotive",
			Currency: "EUR",
			PostedAt: timePtr(fixedNow.Add(-2 * time.Hour)),
		},
		{
			ID:       "c",
			Title:    "Platform Engineer",
			Company:  "Initech",
			Location: "Remote",
			URL:      "https://jobs.example.com/c",
			Source:   "weworkremotely",
			PostedAt: nil, // unknown date
		},
		{
			ID:       "d",
			Title:    "Data Engineer",
			Company:  "Hooli",
			Location: "NYC",
			URL:      "https://jobs.example.com/d",
			Source:   "remotive",
			Currency: "USD",
			PostedAt: timePtr(fixedNow.Add(-20 * 24 * time.Hour)),
		},
	}
}

func newService(store *stubStore) *listing.Service {
	svc := listing.NewService(store)
	svc.Clock = func() time.Time { return fixedNow }
	return svc
}

func TestList_SortsNewestFirstUnknownLast(t *testing.T) {
	svc := newService(&stubStore{listings: fixtureListings()})

	got, err := svc.List(context.Background(), listing.Filter{})
	require.NoError(t, err)

	ids := make([]string, 0, len(got))
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"b", "a", "d", "c"}, ids)
}

func TestList_Filters(t *testing.T) {
	tests := []struct {
		name    string
		filter  listing.Filter
		wantIDs []string
	}{
		{
			name:    "query matches title",
			filter:  listing.Filter{Query: "engineer"},
			wantIDs: []string{"a", "d", "c"},
		},
		{
			name:    "query matches any token",
			filter:  listing.Filter{Query: "frontend golang"},
			wantIDs: []string{"b"},
		},
		{
			name:    "source filter is case-insensitive",
			filter:  listing.Filter{Source: "Remotive"},
			wantIDs: []string{"b", "d"},
		},
		{
			name:    "days window keeps unknown dates",
			filter:  listing.Filter{Days: 7},
			wantIDs: []string{"b", "a", "c"},
		},
		{
			name:    "limit truncates after sorting",
			filter:  listing.Filter{Limit: 2},
			wantIDs: []string{"b", "a"},
		},
		{
			name:    "no match",
			filter:  listing.Filter{Query: "haskell"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&stubStore{listings: fixtureListings()})

			got, err := svc.List(context.Background(), tt.filter)
			require.NoError(t, err)

			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestList_StoreError(t *testing.T) {
	svc := newService(&stubStore{loadErr: errors.New("disk gone")})

	_, err := svc.List(context.Background(), listing.Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load listings")
}

func TestGroupedByCurrency(t *testing.T) {
	svc := newService(&stubStore{listings: fixtureListings()})

	groups, err := svc.GroupedByCurrency(context.Background(), listing.Filter{})
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Len(t, groups["USD"], 2)
	assert.Len(t, groups["EUR"], 1)
	require.Len(t, groups["unspecified"], 1)
	assert.Equal(t, "c", groups["unspecified"][0].ID)

	// USD bucket keeps posting-date order.
	assert.Equal(t, "a", groups["USD"][0].ID)
	assert.Equal(t, "d", groups["USD"][1].ID)
}

func TestGroupedByCurrency_AppliesFilter(t *testing.T) {
	svc := newService(&stubStore{listings: fixtureListings()})

	groups, err := svc.GroupedByCurrency(context.Background(), listing.Filter{Source: "remotive"})
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Len(t, groups["EUR"], 1)
	assert.Len(t, groups["USD"], 1)
}
