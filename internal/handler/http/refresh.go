package http

import (
	"net/http"

	"github.com/Sumit-SC/job-search-api/internal/handler/http/respond"
	"github.com/Sumit-SC/job-search-api/internal/usecase/aggregate"
)

type refreshResponse struct {
	OK            bool           `json:"ok"`
	Count         int            `json:"count"`
	FailedSources int            `json:"failed_sources"`
	SourceCounts  map[string]int `json:"source_counts,omitempty"`
	DurationMS    int64          `json:"duration_ms"`
}

// Refresh handles POST /refresh: runs a full aggregation and replaces the
// stored snapshot with the result.
func (a *API) Refresh(w http.ResponseWriter, r *http.Request) {
	p, err := a.parseSearchParams(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	stats, err := a.Refresher.Run(r.Context(), aggregate.Request{
		Query: p.Query,
		Days:  p.Days,
		Limit: p.Limit,
		Sites: p.Sites,
	})
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, refreshResponse{
		OK:            true,
		Count:         stats.Listings,
		FailedSources: stats.FailedSources,
		SourceCounts:  stats.SourceCounts,
		DurationMS:    stats.Duration.Milliseconds(),
	})
}
