package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/Sumit-SC/job-search-api/internal/resilience/circuitbreaker"
)

// ReadabilityFetcher fetches a listing's page and extracts readable text
// using the Mozilla Readability algorithm. It is used to enrich listings
// whose source description is too short to be useful.
//
// Safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	config         EnrichConfig
}

// NewReadabilityFetcher creates a fetcher with its own HTTP client and a
// dedicated circuit breaker. Redirect targets are re-validated for SSRF on
// every hop.
func NewReadabilityFetcher(config EnrichConfig) *ReadabilityFetcher {
	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "content-fetch",
		MaxRequests:      5,
		Interval:         60 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	})

	fetcher := &ReadabilityFetcher{
		circuitBreaker: cb,
		config:         config,
	}

	fetcher.client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= fetcher.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			if err := validateURL(req.URL.String(), fetcher.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return fetcher
}

// FetchContent fetches urlStr and returns the extracted text. The URL is
// validated before any request, and the fetch runs through the circuit
// breaker so a failing site cannot drag down aggregation.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
		return f.doFetch(ctx, urlStr)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", "job-search-api/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: request exceeded %v", ErrTimeout, f.config.Timeout)
		}
		// Redirect validation errors come back wrapped in *url.Error.
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return "", fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			ErrBodyTooLarge, len(htmlBytes), f.config.MaxBodySize)
	}

	// Use the final URL after redirects so relative links resolve correctly.
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		parsedURL = nil
	}
	if resp.Request != nil && resp.Request.URL != nil {
		parsedURL = resp.Request.URL
	}

	article, err := readability.FromReader(io.NopCloser(bytes.NewReader(htmlBytes)), parsedURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	if article.TextContent == "" {
		if article.Content == "" {
			return "", fmt.Errorf("%w: no readable content found", ErrExtractFailed)
		}
		slog.Debug("using article Content instead of TextContent",
			slog.String("url", urlStr),
			slog.Int("content_length", len(article.Content)))
		return article.Content, nil
	}
	return article.TextContent, nil
}
