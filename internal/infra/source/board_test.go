package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/infra/source"
)

const boardPage = `<!DOCTYPE html>
<html><body>
<div class="jobs">
  <div class="job-listing">
    <h3><a href="/jobs/101-go-developer">Go Developer</a></h3>
    <span class="company">Acme</span>
    <span class="location">Berlin, Germany</span>
    <span class="posted">2026-08-19</span>
  </div>
  <div class="job-listing">
    <h3><a href="https://other.example/jobs/202">Platform Engineer</a></h3>
    <span class="company">Widgets</span>
    <span class="location">Remote</span>
  </div>
  <div class="job-listing">
    <h3><a href="/jobs/303-no-title"></a></h3>
  </div>
</div>
</body></html>`

var boardSelectors = source.BoardSelectors{
	Item:     "div.job-listing",
	Title:    "h3 a",
	Company:  "span.company",
	Location: "span.location",
	Link:     "h3 a",
	Date:     "span.posted",
}

func newTestSession(t *testing.T) *source.BoardSession {
	t.Helper()
	session, err := source.NewBoardSession(10*time.Second, 100)
	if err != nil {
		t.Fatalf("NewBoardSession() error = %v", err)
	}
	t.Cleanup(session.Release)
	return session
}

func TestBoardAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(boardPage))
	}))
	defer server.Close()

	adapter := source.NewBoardAdapter("testboard", server.URL, boardSelectors)
	ctx := source.WithSession(context.Background(), newTestSession(t))

	records, err := adapter.Fetch(ctx, "", 7)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	// The titleless row is skipped.
	if len(records) != 2 {
		t.Fatalf("records length = %d, want 2", len(records))
	}

	first := records[0]
	if got := first["title"]; got != "Go Developer" {
		t.Errorf("title = %q", got)
	}
	link, _ := first["link"].(string)
	if !strings.HasPrefix(link, server.URL) || !strings.HasSuffix(link, "/jobs/101-go-developer") {
		t.Errorf("relative link not resolved: %q", link)
	}
	if got := first["company"]; got != "Acme" {
		t.Errorf("company = %q", got)
	}
	if _, ok := first["date"].(time.Time); !ok {
		t.Errorf("date = %T, want time.Time", first["date"])
	}

	if got := records[1]["link"]; got != "https://other.example/jobs/202" {
		t.Errorf("absolute link altered: %q", got)
	}
}

func TestBoardAdapter_Fetch_QueryFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(boardPage))
	}))
	defer server.Close()

	adapter := source.NewBoardAdapter("testboard", server.URL, boardSelectors)
	ctx := source.WithSession(context.Background(), newTestSession(t))

	records, err := adapter.Fetch(ctx, "platform", 7)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records length = %d, want 1", len(records))
	}
	if got := records[0]["title"]; got != "Platform Engineer" {
		t.Errorf("title = %q", got)
	}
}

func TestBoardAdapter_Fetch_NoSession(t *testing.T) {
	adapter := source.NewBoardAdapter("testboard", "https://example.com/jobs", boardSelectors)

	_, err := adapter.Fetch(context.Background(), "", 7)
	if err == nil || !strings.Contains(err.Error(), "board session") {
		t.Fatalf("expected missing-session error, got %v", err)
	}
}

func TestBoardAdapter_Fetch_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer server.Close()

	adapter := source.NewBoardAdapter("testboard", server.URL, boardSelectors)
	ctx := source.WithSession(context.Background(), newTestSession(t))

	if _, err := adapter.Fetch(ctx, "", 7); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestBoardAdapter_Metadata(t *testing.T) {
	adapter := source.NewBoardAdapter("golangprojects", "https://example.com", boardSelectors)

	if adapter.Name() != "golangprojects" {
		t.Errorf("Name() = %q", adapter.Name())
	}
	if adapter.Group() != source.GroupBoard {
		t.Errorf("Group() = %q, want %q", adapter.Group(), source.GroupBoard)
	}
}
