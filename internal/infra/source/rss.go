package source

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"github.com/Sumit-SC/job-search-api/internal/normalize"
	"github.com/Sumit-SC/job-search-api/internal/resilience/circuitbreaker"
	"github.com/Sumit-SC/job-search-api/internal/resilience/retry"
)

// FeedAdapter fetches job listings from an RSS/Atom feed using gofeed.
// It includes circuit breaker and retry logic for improved reliability.
type FeedAdapter struct {
	name           string
	feedURL        string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFeedAdapter creates a FeedAdapter for a single configured feed.
// It automatically configures circuit breaker and retry logic.
func NewFeedAdapter(name, feedURL string, client *http.Client) *FeedAdapter {
	return &FeedAdapter{
		name:           name,
		feedURL:        feedURL,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

func (f *FeedAdapter) Name() string  { return f.name }
func (f *FeedAdapter) Group() string { return GroupFeed }

// Fetch retrieves and parses the feed, keeping items that loosely match the
// query. RSS feeds have no server-side search, so days is ignored here and
// recency is filtered after normalization.
func (f *FeedAdapter) Fetch(ctx context.Context, query string, days int) ([]normalize.Record, error) {
	var records []normalize.Record

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("feed fetch circuit breaker open, request rejected",
					slog.String("source", f.name),
					slog.String("url", f.feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
			}
			return err
		}

		records = cbResult.([]normalize.Record)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}

	if query == "" {
		return records, nil
	}
	matched := make([]normalize.Record, 0, len(records))
	for _, rec := range records {
		if matchesQuery(query, rec.StringField([]string{"title"}), rec.StringField([]string{"description"})) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *FeedAdapter) doFetch(ctx context.Context) ([]normalize.Record, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, err
	}

	records := make([]normalize.Record, 0, len(feed.Items))
	for _, it := range feed.Items {
		description := it.Content
		if description == "" {
			description = it.Description
		}

		rec := normalize.Record{
			"title":       it.Title,
			"link":        it.Link,
			"description": description,
		}
		if it.PublishedParsed != nil {
			rec["published"] = *it.PublishedParsed
		} else if it.Published != "" {
			rec["published"] = it.Published
		}
		if len(it.Categories) > 0 {
			rec["tags"] = it.Categories
		}
		// Job feeds commonly put the company in the author field.
		if len(it.Authors) > 0 && it.Authors[0] != nil && it.Authors[0].Name != "" {
			rec["company"] = it.Authors[0].Name
		}
		records = append(records, rec)
	}

	return records, nil
}
