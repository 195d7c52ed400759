package http

import "github.com/Sumit-SC/job-search-api/internal/domain/entity"

// jobsResponse is the envelope shared by every listing endpoint. Source
// failures are reported as data so partial results remain a 200.
type jobsResponse struct {
	OK            bool              `json:"ok"`
	Count         int               `json:"count"`
	FailedSources int               `json:"failed_sources"`
	SourceCounts  map[string]int    `json:"source_counts,omitempty"`
	Jobs          []*entity.Listing `json:"jobs"`
}

// groupedResponse buckets stored listings by salary currency.
type groupedResponse struct {
	OK     bool                         `json:"ok"`
	Count  int                          `json:"count"`
	Groups map[string][]*entity.Listing `json:"groups"`
}

func newJobsResponse(jobs []*entity.Listing, failedSources int, sourceCounts map[string]int) jobsResponse {
	if jobs == nil {
		jobs = []*entity.Listing{}
	}
	return jobsResponse{
		OK:            true,
		Count:         len(jobs),
		FailedSources: failedSources,
		SourceCounts:  sourceCounts,
		Jobs:          jobs,
	}
}
