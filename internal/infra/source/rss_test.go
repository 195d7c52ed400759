package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/infra/source"
)

const jobsFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Remote Programming Jobs</title>
    <link>https://example.com</link>
    <description>Test feed</description>
    <item>
      <title>Senior Go Engineer</title>
      <link>https://example.com/jobs/go-engineer</link>
      <description>Build backend services. 3-5 years experience required.</description>
      <pubDate>Mon, 17 Aug 2026 00:00:00 +0000</pubDate>
      <author>hiring@acme.example (Acme)</author>
      <category>golang</category>
      <category>remote</category>
    </item>
    <item>
      <title>Product Designer</title>
      <link>https://example.com/jobs/designer</link>
      <description>Figma wizardry.</description>
      <pubDate>Tue, 18 Aug 2026 00:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func TestFeedAdapter_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(jobsFeed))
	}))
	defer server.Close()

	adapter := source.NewFeedAdapter("testfeed", server.URL, &http.Client{Timeout: 10 * time.Second})

	records, err := adapter.Fetch(context.Background(), "", 7)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records length = %d, want 2", len(records))
	}

	first := records[0]
	if got := first["title"]; got != "Senior Go Engineer" {
		t.Errorf("title = %q, want %q", got, "Senior Go Engineer")
	}
	if got := first["link"]; got != "https://example.com/jobs/go-engineer" {
		t.Errorf("link = %q", got)
	}
	if got := first["company"]; got != "Acme" {
		t.Errorf("company = %q, want %q", got, "Acme")
	}
	if _, ok := first["published"].(time.Time); !ok {
		t.Errorf("published = %T, want time.Time", first["published"])
	}
	tags, ok := first["tags"].([]string)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v, want 2 categories", first["tags"])
	}
}

func TestFeedAdapter_Fetch_QueryFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(jobsFeed))
	}))
	defer server.Close()

	adapter := source.NewFeedAdapter("testfeed", server.URL, &http.Client{Timeout: 10 * time.Second})

	records, err := adapter.Fetch(context.Background(), "golang backend", 7)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records length = %d, want 1 (designer row filtered)", len(records))
	}
	if got := records[0]["title"]; got != "Senior Go Engineer" {
		t.Errorf("title = %q", got)
	}
}

func TestFeedAdapter_Fetch_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	adapter := source.NewFeedAdapter("testfeed", server.URL, &http.Client{Timeout: 10 * time.Second})

	if _, err := adapter.Fetch(context.Background(), "", 7); err == nil {
		t.Fatal("expected error for 404 feed")
	}
}

func TestFeedAdapter_Metadata(t *testing.T) {
	adapter := source.NewFeedAdapter("weworkremotely", "https://example.com/feed", http.DefaultClient)

	if adapter.Name() != "weworkremotely" {
		t.Errorf("Name() = %q", adapter.Name())
	}
	if adapter.Group() != source.GroupFeed {
		t.Errorf("Group() = %q, want %q", adapter.Group(), source.GroupFeed)
	}
}
