package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumit-SC/job-search-api/internal/cache"
	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	handler "github.com/Sumit-SC/job-search-api/internal/handler/http"
	"github.com/Sumit-SC/job-search-api/internal/infra/source"
	"github.com/Sumit-SC/job-search-api/internal/normalize"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
	"github.com/Sumit-SC/job-search-api/internal/usecase/listing"
	"github.com/Sumit-SC/job-search-api/internal/usecase/refresh"
)

type stubAggregator struct {
	mu      sync.Mutex
	calls   int
	lastReq aggregate.Request
	result  *aggregate.Result
	err     error
}

func (a *stubAggregator) Aggregate(ctx context.Context, req aggregate.Request) (*aggregate.Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	a.lastReq = req
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}

type stubListings struct {
	listings []*entity.Listing
	err      error
	lastF    listing.Filter
}

func (s *stubListings) List(ctx context.Context, f listing.Filter) ([]*entity.Listing, error) {
	s.lastF = f
	return s.listings, s.err
}

func (s *stubListings) GroupedByCurrency(ctx context.Context, f listing.Filter) (map[string][]*entity.Listing, error) {
	s.lastF = f
	if s.err != nil {
		return nil, s.err
	}
	groups := make(map[string][]*entity.Listing)
	for _, l := range s.listings {
		currency := l.Currency
		if currency == "" {
			currency = "unspecified"
		}
		groups[currency] = append(groups[currency], l)
	}
	return groups, nil
}

type stubRefresher struct {
	stats *refresh.Stats
	err   error
}

func (s *stubRefresher) Run(ctx context.Context, req aggregate.Request) (*refresh.Stats, error) {
	return s.stats, s.err
}

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

type stubAdapter struct {
	name  string
	group string
}

func (a *stubAdapter) Name() string  { return a.name }
func (a *stubAdapter) Group() string { return a.group }
func (a *stubAdapter) Fetch(ctx context.Context, query string, days int) ([]normalize.Record, error) {
	return nil, nil
}

func sampleListings() []*entity.Listing {
	return []*entity.Listing{
		{ID: "a", Title: "Go Engineer", URL: "https://jobs.example.com/a", Source: "feed", Currency: "USD"},
		{ID: "b", Title: "SRE", URL: "https://jobs.example.com/b", Source: "board"},
	}
}

func newTestAPI(agg *stubAggregator) *handler.API {
	return &handler.API{
		Aggregator: agg,
		Listings:   &stubListings{listings: sampleListings()},
		Refresher:  &stubRefresher{stats: &refresh.Stats{Listings: 2, FailedSources: 0}},
		Registry: source.NewRegistry(
			&stubAdapter{name: "weworkremotely", group: source.GroupFeed},
			&stubAdapter{name: "golangprojects", group: source.GroupBoard},
		),
		Presets:     map[string][]string{"remote": {"weworkremotely"}},
		SearchCache: cache.New("search", 5*time.Minute, 10),
		FeedsCache:  cache.New("feeds", 5*time.Minute, 10),
		Store:       &stubStore{},
		Version:     "test",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func doRequest(t *testing.T, api *handler.API, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	api.Routes(discardLogger(), 5*time.Second).ServeHTTP(rec, req)
	return rec
}

func TestSearch_CacheMissThenHit(t *testing.T) {
	agg := &stubAggregator{result: &aggregate.Result{
		Listings:      sampleListings(),
		SourceCounts:  map[string]int{"feed": 1, "board": 1},
		FailedSources: 1,
	}}
	api := newTestAPI(agg)

	rec := doRequest(t, api, http.MethodGet, "/search?q=golang&days=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var resp struct {
		OK            bool             `json:"ok"`
		Count         int              `json:"count"`
		FailedSources int              `json:"failed_sources"`
		SourceCounts  map[string]int   `json:"source_counts"`
		Jobs          []map[string]any `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, 1, resp.FailedSources)
	assert.Len(t, resp.Jobs, 2)

	rec = doRequest(t, api, http.MethodGet, "/search?q=golang&days=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Equal(t, 1, agg.calls, "cache hit must bypass the orchestrator")
}

func TestSearch_FreshSkipsCacheRead(t *testing.T) {
	agg := &stubAggregator{result: &aggregate.Result{Listings: sampleListings()}}
	api := newTestAPI(agg)

	doRequest(t, api, http.MethodGet, "/search?q=golang")
	rec := doRequest(t, api, http.MethodGet, "/search?q=golang&fresh=true")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, agg.calls)
}

func TestSearch_ParamValidation(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "days too low", target: "/search?days=0"},
		{name: "days too high", target: "/search?days=31"},
		{name: "days not a number", target: "/search?days=soon"},
		{name: "limit too high", target: "/search?limit=1000"},
		{name: "unknown preset", target: "/search?preset=nonexistent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := &stubAggregator{result: &aggregate.Result{}}
			rec := doRequest(t, newTestAPI(agg), http.MethodGet, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, agg.calls)
		})
	}
}

func TestSearch_PresetExpandsToSites(t *testing.T) {
	agg := &stubAggregator{result: &aggregate.Result{}}
	api := newTestAPI(agg)

	rec := doRequest(t, api, http.MethodGet, "/search?preset=remote")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"weworkremotely"}, agg.lastReq.Sites)
}

func TestFeeds_RestrictsToFeedGroup(t *testing.T) {
	agg := &stubAggregator{result: &aggregate.Result{Listings: sampleListings()[:1]}}
	api := newTestAPI(agg)

	rec := doRequest(t, api, http.MethodGet, "/feeds?q=golang")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"feed"}, agg.lastReq.Groups)

	// Separate cache family: the same query on /search still misses.
	rec = doRequest(t, api, http.MethodGet, "/search?q=golang")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	assert.Equal(t, 2, agg.calls)
}

func TestJobs_ReturnsStoredListings(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})

	rec := doRequest(t, api, http.MethodGet, "/jobs?q=engineer&source=feed&days=7&limit=50")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK    bool             `json:"ok"`
		Count int              `json:"count"`
		Jobs  []map[string]any `json:"jobs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Count)

	listings := api.Listings.(*stubListings)
	assert.Equal(t, listing.Filter{Query: "engineer", Source: "feed", Days: 7, Limit: 50}, listings.lastF)
}

func TestJobs_StoreErrorIsMasked(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})
	api.Listings = &stubListings{err: errors.New("pq: connection to postgres://user:secret@db failed")}

	rec := doRequest(t, api, http.MethodGet, "/jobs")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestJobsGroupedByCurrency(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})

	rec := doRequest(t, api, http.MethodGet, "/jobs/grouped-by-currency")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK     bool                        `json:"ok"`
		Count  int                         `json:"count"`
		Groups map[string][]map[string]any `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Groups["USD"], 1)
	assert.Len(t, resp.Groups["unspecified"], 1)
}

func TestSources(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})

	rec := doRequest(t, api, http.MethodGet, "/sources")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK      bool `json:"ok"`
		Count   int  `json:"count"`
		Sources []struct {
			Name  string `json:"name"`
			Group string `json:"group"`
		} `json:"sources"`
		Presets map[string][]string `json:"presets"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "weworkremotely", resp.Sources[0].Name)
	assert.Equal(t, source.GroupFeed, resp.Sources[0].Group)
	assert.Contains(t, resp.Presets, "remote")
}

func TestRefresh(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})
	api.Refresher = &stubRefresher{stats: &refresh.Stats{
		Listings:      5,
		FailedSources: 1,
		SourceCounts:  map[string]int{"feed": 5},
		Duration:      1500 * time.Millisecond,
	}}

	rec := doRequest(t, api, http.MethodPost, "/refresh?q=golang")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		OK            bool           `json:"ok"`
		Count         int            `json:"count"`
		FailedSources int            `json:"failed_sources"`
		SourceCounts  map[string]int `json:"source_counts"`
		DurationMS    int64          `json:"duration_ms"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, 5, resp.Count)
	assert.Equal(t, 1, resp.FailedSources)
	assert.Equal(t, int64(1500), resp.DurationMS)
}

func TestRefresh_RequiresPost(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})

	rec := doRequest(t, api, http.MethodGet, "/refresh")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})

		rec := doRequest(t, api, http.MethodGet, "/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp handler.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "test", resp.Version)
		assert.Equal(t, "healthy", resp.Checks["store"].Status)
	})

	t.Run("store unreachable", func(t *testing.T) {
		api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})
		api.Store = &stubStore{loadErr: errors.New("open /data/listings.json: permission denied")}

		rec := doRequest(t, api, http.MethodGet, "/health")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp handler.HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unhealthy", resp.Status)
	})
}

func TestRoutes_RequestIDHeader(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})

	rec := doRequest(t, api, http.MethodGet, "/health")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRoutes_UnknownPath(t *testing.T) {
	api := newTestAPI(&stubAggregator{result: &aggregate.Result{}})

	rec := doRequest(t, api, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
