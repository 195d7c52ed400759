package http

import (
	"net/http"
	"strings"

	"github.com/Sumit-SC/job-search-api/internal/handler/http/respond"
	"github.com/Sumit-SC/job-search-api/internal/usecase/listing"
)

// Jobs handles GET /jobs: stored listings filtered by q, days, limit, and
// source, sorted by posting date descending with unknown dates last.
func (a *API) Jobs(w http.ResponseWriter, r *http.Request) {
	f, err := parseListingFilter(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	jobs, err := a.Listings.List(r.Context(), f)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	respond.JSON(w, http.StatusOK, newJobsResponse(jobs, 0, nil))
}

// JobsGroupedByCurrency handles GET /jobs/grouped-by-currency: stored
// listings bucketed by salary currency.
func (a *API) JobsGroupedByCurrency(w http.ResponseWriter, r *http.Request) {
	f, err := parseListingFilter(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	groups, err := a.Listings.GroupedByCurrency(r.Context(), f)
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	count := 0
	for _, bucket := range groups {
		count += len(bucket)
	}
	respond.JSON(w, http.StatusOK, groupedResponse{OK: true, Count: count, Groups: groups})
}

func parseListingFilter(r *http.Request) (listing.Filter, error) {
	q := r.URL.Query()
	f := listing.Filter{
		Query:  strings.TrimSpace(q.Get("q")),
		Source: strings.TrimSpace(q.Get("source")),
	}

	var err error
	if f.Days, err = parseBoundedInt(q.Get("days"), "days", 1, maxDays); err != nil {
		return f, err
	}
	if f.Limit, err = parseBoundedInt(q.Get("limit"), "limit", 1, maxLimit); err != nil {
		return f, err
	}
	return f, nil
}
