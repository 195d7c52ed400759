package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Sumit-SC/job-search-api/internal/cache"
	"github.com/Sumit-SC/job-search-api/internal/handler/http/respond"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
)

const cacheHeader = "X-Cache"

// Search handles GET /search: a cached live aggregation across all source
// groups. A cache hit bypasses the orchestrator entirely; `fresh=true` skips
// the cache read but still stores the fresh result.
func (a *API) Search(w http.ResponseWriter, r *http.Request) {
	p, err := a.parseSearchParams(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	req := aggregate.Request{
		Query: p.Query,
		Days:  p.Days,
		Limit: p.Limit,
		Sites: p.Sites,
	}
	a.serveAggregation(w, r, a.SearchCache, "search", req, p.Fresh)
}

// Feeds handles GET /feeds: a cached aggregation restricted to the feed
// group, with its own cache family and TTL.
func (a *API) Feeds(w http.ResponseWriter, r *http.Request) {
	p, err := a.parseSearchParams(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	req := aggregate.Request{
		Query:  p.Query,
		Days:   p.Days,
		Limit:  p.Limit,
		Sites:  p.Sites,
		Groups: []string{"feed"},
	}
	a.serveAggregation(w, r, a.FeedsCache, "feeds", req, p.Fresh)
}

func (a *API) serveAggregation(w http.ResponseWriter, r *http.Request, c *cache.TTLCache, prefix string, req aggregate.Request, fresh bool) {
	key := cache.Key(prefix, map[string]any{
		"q":      req.Query,
		"days":   req.Days,
		"limit":  req.Limit,
		"sites":  strings.Join(req.Sites, ","),
		"groups": strings.Join(req.Groups, ","),
	})

	if !fresh && c != nil {
		if body, ok := c.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(cacheHeader, "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}
	}

	result, err := a.Aggregator.Aggregate(r.Context(), req)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	body, err := json.Marshal(newJobsResponse(result.Listings, result.FailedSources, result.SourceCounts))
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if c != nil {
		c.Set(key, body)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(cacheHeader, "MISS")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
