package source_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/infra/source"
)

func TestAPIAdapter_Fetch(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"jobs": [
				{
					"title": "Backend Engineer",
					"company_name": "Acme",
					"candidate_required_location": "Worldwide",
					"url": "https://example.com/remote-jobs/1",
					"publication_date": "2026-08-18T09:00:00",
					"salary": "$90k - $120k",
					"description": "Go and Postgres.",
					"tags": ["golang", "postgresql"],
					"job_type": "full_time"
				},
				{
					"title": "Data Analyst",
					"company_name": "Widgets",
					"url": "https://example.com/remote-jobs/2",
					"description": "SQL dashboards."
				}
			]
		}`))
	}))
	defer server.Close()

	adapter := source.NewAPIAdapter("remotive", server.URL, &http.Client{Timeout: 10 * time.Second})

	records, err := adapter.Fetch(context.Background(), "golang", 7)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotQuery != "golang" {
		t.Errorf("search param = %q, want %q", gotQuery, "golang")
	}
	if len(records) != 2 {
		t.Fatalf("records length = %d, want 2", len(records))
	}
	if got := records[0]["title"]; got != "Backend Engineer" {
		t.Errorf("title = %q", got)
	}
	if got := records[0]["company_name"]; got != "Acme" {
		t.Errorf("company_name = %q", got)
	}
}

func TestAPIAdapter_Fetch_DaysParam(t *testing.T) {
	var gotDays string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotDays = r.URL.Query().Get("days")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs": []}`))
	}))
	defer server.Close()

	adapter := source.NewAPIAdapter("remotive", server.URL, &http.Client{Timeout: 10 * time.Second})

	records, err := adapter.Fetch(context.Background(), "", 14)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if gotDays != "14" {
		t.Errorf("days param = %q, want %q", gotDays, "14")
	}
	if len(records) != 0 {
		t.Errorf("records length = %d, want 0", len(records))
	}
}

func TestAPIAdapter_Fetch_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"jobs": [`))
	}))
	defer server.Close()

	adapter := source.NewAPIAdapter("remotive", server.URL, &http.Client{Timeout: 10 * time.Second})

	if _, err := adapter.Fetch(context.Background(), "", 7); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestAPIAdapter_Fetch_ClientError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	adapter := source.NewAPIAdapter("remotive", server.URL, &http.Client{Timeout: 10 * time.Second})

	if _, err := adapter.Fetch(context.Background(), "", 7); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestAPIAdapter_Metadata(t *testing.T) {
	adapter := source.NewAPIAdapter("remotive", "https://example.com/api", http.DefaultClient)

	if adapter.Name() != "remotive" {
		t.Errorf("Name() = %q", adapter.Name())
	}
	if adapter.Group() != source.GroupFeed {
		t.Errorf("Group() = %q, want %q", adapter.Group(), source.GroupFeed)
	}
}
