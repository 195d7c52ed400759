package aggregate

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	"github.com/Sumit-SC/job-search-api/internal/infra/source"
	"github.com/Sumit-SC/job-search-api/internal/normalize"
	"github.com/Sumit-SC/job-search-api/internal/observability/metrics"
	"github.com/Sumit-SC/job-search-api/internal/score"
)

const (
	// DefaultDays is the recency window applied when the request does not set one.
	DefaultDays = 7

	// DefaultLimit caps the merged result when the request does not set one.
	DefaultLimit = 100

	defaultSourceTimeout = 20 * time.Second
	defaultBoardTimeout  = 45 * time.Second
	defaultBoardRate     = 0.5
)

// ContentFetcher fetches a listing page and extracts readable text.
// Implemented by fetcher.ReadabilityFetcher; nil disables enrichment.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// EnrichSettings controls when and how aggressively descriptions are enriched.
type EnrichSettings struct {
	// Threshold is the minimum description length that skips enrichment.
	Threshold int
	// Parallelism bounds concurrent page fetches per aggregation call.
	Parallelism int
}

// Request describes one aggregation call.
type Request struct {
	Query  string
	Days   int
	Limit  int
	Groups []string // adapter groups to include; empty = all
	Sites  []string // adapter names to include; empty = all
}

// Result is the merged outcome of one aggregation call. Source failures are
// reported as data, not as an error: an empty Listings slice with a non-zero
// FailedSources count is a successful aggregation.
type Result struct {
	Listings      []*entity.Listing
	SourceCounts  map[string]int
	FailedSources int
}

// Service fans a request out to every selected source adapter, then merges,
// deduplicates, enriches, and scores the records into ranked listings.
type Service struct {
	Registry            *source.Registry
	ContentFetcher      ContentFetcher
	Enrich              EnrichSettings
	SourceTimeout       time.Duration // per feed/API adapter
	BoardTimeout        time.Duration // per board adapter
	BoardRequestsPerSec float64
	TargetExperience    int
}

// Aggregate runs the request against all selected adapters concurrently and
// returns the merged listings. Adapter failures and timeouts contribute zero
// records and increment FailedSources; they are never raised to the caller.
func (s *Service) Aggregate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	days := req.Days
	if days <= 0 {
		days = DefaultDays
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := &Result{
		Listings:     []*entity.Listing{},
		SourceCounts: map[string]int{},
	}

	adapters := s.Registry.Select(req.Groups, req.Sites)
	if len(adapters) == 0 {
		return result, nil
	}

	fetched, failed := s.fetchAll(ctx, adapters, req.Query, days)
	result.FailedSources = failed

	survivors := s.mergeRecords(adapters, fetched, days)
	s.enrichDescriptions(ctx, survivors)

	target := s.TargetExperience
	if target <= 0 {
		target = score.DefaultTargetExperience
	}
	for _, sv := range survivors {
		listing, ok := normalize.Normalize(sv.rec, sv.source)
		if !ok {
			continue
		}
		sc := score.Score(listing.Title, listing.Description, listing.Location,
			listing.ExperienceMin, listing.ExperienceMax, target)
		listing.MatchScore = &sc

		result.Listings = append(result.Listings, listing)
		result.SourceCounts[sv.source]++
		if len(result.Listings) >= limit {
			break
		}
	}

	duration := time.Since(start)
	metrics.RecordAggregation(len(result.Listings), result.FailedSources, duration)
	slog.Info("aggregation completed",
		slog.String("query", req.Query),
		slog.Int("sources", len(adapters)),
		slog.Int("failed_sources", result.FailedSources),
		slog.Int("listings", len(result.Listings)),
		slog.Duration("duration", duration))

	return result, nil
}

// fetchAll launches every adapter in its own goroutine, each under its own
// timeout, and collects results into one slot per adapter so the merge order
// matches invocation order regardless of completion order. Board adapters
// share one session, created before launch and released after all settle.
func (s *Service) fetchAll(ctx context.Context, adapters []source.Adapter, query string, days int) ([][]normalize.Record, int) {
	var session *source.BoardSession
	var sessionErr error
	for _, ad := range adapters {
		if ad.Group() == source.GroupBoard {
			session, sessionErr = source.NewBoardSession(s.boardTimeout(), s.boardRate())
			if sessionErr != nil {
				slog.Warn("board session unavailable", slog.Any("error", sessionErr))
			}
			break
		}
	}
	if session != nil {
		defer session.Release()
	}

	results := make([][]normalize.Record, len(adapters))
	var failed int32
	var wg sync.WaitGroup

	for i, adapter := range adapters {
		// Without a session every board adapter counts as failed; feed and
		// API adapters are unaffected.
		if adapter.Group() == source.GroupBoard && sessionErr != nil {
			atomic.AddInt32(&failed, 1)
			metrics.RecordSourceError(adapter.Name(), "session_failed")
			continue
		}
		wg.Add(1)
		go func(i int, ad source.Adapter) {
			defer wg.Done()

			timeout := s.sourceTimeout()
			fctx := ctx
			if ad.Group() == source.GroupBoard {
				timeout = s.boardTimeout()
				fctx = source.WithSession(fctx, session)
			}
			fctx, cancel := context.WithTimeout(fctx, timeout)
			defer cancel()

			fetchStart := time.Now()
			records, err := ad.Fetch(fctx, query, days)
			if err != nil {
				atomic.AddInt32(&failed, 1)
				metrics.RecordSourceError(ad.Name(), "fetch_failed")
				slog.Warn("source fetch failed",
					slog.String("source", ad.Name()),
					slog.String("group", ad.Group()),
					slog.Any("error", err))
				return
			}
			metrics.RecordSourceFetch(ad.Name(), len(records), time.Since(fetchStart))
			results[i] = records
		}(i, adapter)
	}

	wg.Wait()
	return results, int(atomic.LoadInt32(&failed))
}

type survivor struct {
	rec    normalize.Record
	source string
}

// mergeRecords walks fetched records in invocation order, dropping duplicate
// URLs (first occurrence wins) and records older than the recency window.
// Records without a posting date pass the window.
func (s *Service) mergeRecords(adapters []source.Adapter, fetched [][]normalize.Record, days int) []*survivor {
	cutoff := time.Now().AddDate(0, 0, -days)
	seen := make(map[string]struct{})
	var survivors []*survivor

	for i, records := range fetched {
		name := adapters[i].Name()
		for _, rec := range records {
			if url := normalize.ResolveURL(rec); url != "" {
				if _, dup := seen[url]; dup {
					continue
				}
				seen[url] = struct{}{}
			}
			if postedAt := rec.PostedAt(); postedAt != nil && postedAt.Before(cutoff) {
				continue
			}
			survivors = append(survivors, &survivor{rec: rec, source: name})
		}
	}
	return survivors
}

// enrichDescriptions fetches the listing page for survivors whose description
// is below the threshold, bounded by a semaphore. Fetch failures keep the
// source description; enrichment never fails the aggregation.
func (s *Service) enrichDescriptions(ctx context.Context, survivors []*survivor) {
	if s.ContentFetcher == nil || s.Enrich.Threshold <= 0 {
		return
	}
	parallelism := s.Enrich.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	sem := semaphore.NewWeighted(int64(parallelism))
	var wg sync.WaitGroup

	for _, sv := range survivors {
		url := normalize.ResolveURL(sv.rec)
		if url == "" || len(sv.rec.Description()) >= s.Enrich.Threshold {
			continue
		}

		wg.Add(1)
		go func(sv *survivor, url string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			content, err := s.ContentFetcher.FetchContent(ctx, url)
			if err != nil {
				slog.Debug("description enrichment failed, keeping source description",
					slog.String("url", url),
					slog.Any("error", err))
				return
			}
			if len(content) > len(sv.rec.Description()) {
				sv.rec.SetDescription(content)
			}
		}(sv, url)
	}

	wg.Wait()
}

func (s *Service) sourceTimeout() time.Duration {
	if s.SourceTimeout > 0 {
		return s.SourceTimeout
	}
	return defaultSourceTimeout
}

func (s *Service) boardTimeout() time.Duration {
	if s.BoardTimeout > 0 {
		return s.BoardTimeout
	}
	return defaultBoardTimeout
}

func (s *Service) boardRate() float64 {
	if s.BoardRequestsPerSec > 0 {
		return s.BoardRequestsPerSec
	}
	return defaultBoardRate
}
