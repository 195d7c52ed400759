package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/sony/gobreaker"

	"github.com/Sumit-SC/job-search-api/internal/normalize"
	"github.com/Sumit-SC/job-search-api/internal/resilience/circuitbreaker"
	"github.com/Sumit-SC/job-search-api/internal/resilience/retry"
)

// maxBoardBodySize caps board page bodies to prevent memory exhaustion.
const maxBoardBodySize = 5 << 20 // 5 MiB

// BoardSelectors holds the CSS selectors that locate listing fields on a
// board page. Item is required; the rest are resolved relative to each item.
type BoardSelectors struct {
	Item     string `yaml:"item"`
	Title    string `yaml:"title"`
	Company  string `yaml:"company"`
	Location string `yaml:"location"`
	Link     string `yaml:"link"`
	Date     string `yaml:"date"`
}

// BoardAdapter scrapes job listings from a board page with goquery.
// It fetches through the shared BoardSession carried on the context.
type BoardAdapter struct {
	name           string
	pageURL        string
	selectors      BoardSelectors
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewBoardAdapter creates a BoardAdapter for a single configured board.
func NewBoardAdapter(name, pageURL string, selectors BoardSelectors) *BoardAdapter {
	return &BoardAdapter{
		name:           name,
		pageURL:        pageURL,
		selectors:      selectors,
		circuitBreaker: circuitbreaker.New(circuitbreaker.BoardFetchConfig()),
		retryConfig:    retry.BoardFetchConfig(),
	}
}

func (b *BoardAdapter) Name() string  { return b.name }
func (b *BoardAdapter) Group() string { return GroupBoard }

// Fetch scrapes the board page and keeps rows loosely matching the query.
// Boards have no server-side search or recency parameters, so days is
// ignored and filtering happens after normalization.
func (b *BoardAdapter) Fetch(ctx context.Context, query string, days int) ([]normalize.Record, error) {
	session := SessionFromContext(ctx)
	if session == nil {
		return nil, errors.New("board session not found in context")
	}

	var records []normalize.Record

	retryErr := retry.WithBackoff(ctx, b.retryConfig, func() error {
		cbResult, err := b.circuitBreaker.Execute(func() (interface{}, error) {
			return b.doFetch(ctx, session)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("board fetch circuit breaker open, request rejected",
					slog.String("source", b.name),
					slog.String("url", b.pageURL),
					slog.String("state", b.circuitBreaker.State().String()))
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
		if matchesQuery(query,
			rec.StringField([]string{"title"}),
			rec.StringField([]string{"company"}),
			rec.StringField([]string{"location"})) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (b *BoardAdapter) doFetch(ctx context.Context, session *BoardSession) ([]normalize.Record, error) {
	doc, err := b.fetchDocument(ctx, session)
	if err != nil {
		return nil, err
	}
	return b.extractRecords(doc), nil
}

func (b *BoardAdapter) fetchDocument(ctx context.Context, session *BoardSession) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := session.Do(req)
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

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxBoardBodySize))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}

func (b *BoardAdapter) extractRecords(doc *goquery.Document) []normalize.Record {
	var records []normalize.Record

	doc.Find(b.selectors.Item).Each(func(i int, item *goquery.Selection) {
		title := strings.TrimSpace(item.Find(b.selectors.Title).Text())
		if title == "" {
			slog.Debug("skipping board row with empty title",
				slog.String("source", b.name), slog.Int("index", i))
			return
		}

		link := b.resolveLink(item)
		if link == "" {
			slog.Debug("skipping board row with no link",
				slog.String("source", b.name), slog.String("title", title))
			return
		}

		rec := normalize.Record{
			"title": title,
			"link":  link,
		}
		if b.selectors.Company != "" {
			if company := strings.TrimSpace(item.Find(b.selectors.Company).Text()); company != "" {
				rec["company"] = company
			}
		}
		if b.selectors.Location != "" {
			if location := strings.TrimSpace(item.Find(b.selectors.Location).Text()); location != "" {
				rec["location"] = location
			}
		}
		if b.selectors.Date != "" {
			if dateText := strings.TrimSpace(item.Find(b.selectors.Date).Text()); dateText != "" {
				if parsed, err := dateparse.ParseAny(dateText); err == nil {
					rec["date"] = parsed
				}
			}
		}
		records = append(records, rec)
	})

	return records
}

func (b *BoardAdapter) resolveLink(item *goquery.Selection) string {
	sel := item
	if b.selectors.Link != "" {
		sel = item.Find(b.selectors.Link)
	}
	href, ok := sel.Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return ""
	}
	return b.makeAbsolute(strings.TrimSpace(href))
}

// makeAbsolute resolves relative board links against the page URL.
func (b *BoardAdapter) makeAbsolute(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return href
	}
	base, err := url.Parse(b.pageURL)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
