package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/Sumit-SC/job-search-api/internal/normalize"
	"github.com/Sumit-SC/job-search-api/internal/resilience/circuitbreaker"
	"github.com/Sumit-SC/job-search-api/internal/resilience/retry"
)

// maxAPIBodySize caps API response bodies to prevent memory exhaustion.
const maxAPIBodySize = 10 << 20 // 10 MiB

// APIAdapter fetches job listings from a Remotive-style JSON API.
// The endpoint is expected to return {"jobs": [ {..}, {..} ]} and to accept
// a "search" query parameter for server-side matching.
type APIAdapter struct {
	name           string
	baseURL        string
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewAPIAdapter creates an APIAdapter for a single configured endpoint.
func NewAPIAdapter(name, baseURL string, client *http.Client) *APIAdapter {
	return &APIAdapter{
		name:           name,
		baseURL:        baseURL,
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

func (a *APIAdapter) Name() string  { return a.name }
func (a *APIAdapter) Group() string { return GroupFeed }

// Fetch queries the API. The query is forwarded as the "search" parameter;
// days is forwarded as "days" for endpoints that honor it.
func (a *APIAdapter) Fetch(ctx context.Context, query string, days int) ([]normalize.Record, error) {
	var records []normalize.Record

	retryErr := retry.WithBackoff(ctx, a.retryConfig, func() error {
		cbResult, err := a.circuitBreaker.Execute(func() (interface{}, error) {
			return a.doFetch(ctx, query, days)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("api fetch circuit breaker open, request rejected",
					slog.String("source", a.name),
					slog.String("url", a.baseURL),
					slog.String("state", a.circuitBreaker.State().String()))
			}
			return err
		}

		records = cbResult.([]normalize.Record)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}
	return records, nil
}

func (a *APIAdapter) doFetch(ctx context.Context, query string, days int) ([]normalize.Record, error) {
	reqURL, err := a.buildURL(query, days)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	var payload struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxAPIBodySize)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	records := make([]normalize.Record, 0, len(payload.Jobs))
	for _, job := range payload.Jobs {
		records = append(records, normalize.Record(job))
	}
	return records, nil
}

func (a *APIAdapter) buildURL(query string, days int) (string, error) {
	u, err := url.Parse(a.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	q := u.Query()
	if query != "" {
		q.Set("search", query)
	}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
