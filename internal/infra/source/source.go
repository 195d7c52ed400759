// Package source provides job listing source adapters. Adapters fetch raw
// records from external feeds, APIs, and job boards; they apply loose
// source-side matching only, with real filtering done after normalization.
package source

import (
	"context"

	"github.com/Sumit-SC/job-search-api/internal/normalize"
)

// Adapter groups. Feed adapters are HTTP-cheap (RSS, JSON APIs); board
// adapters scrape DOM pages and share a politeness-limited session.
const (
	GroupFeed  = "feed"
	GroupBoard = "board"
)

// userAgent identifies our fetches to the upstream sources.
const userAgent = "job-search-api/1.0"

// Adapter fetches raw listing records from one external source.
type Adapter interface {
	// Name is the stable source identifier used for IDs, filters, and metrics.
	Name() string
	// Group returns GroupFeed or GroupBoard.
	Group() string
	// Fetch returns raw records loosely matching the query. days is a hint
	// for sources that support server-side recency filtering; others ignore
	// it and rely on post-normalization filtering.
	Fetch(ctx context.Context, query string, days int) ([]normalize.Record, error)
}

// Registry holds the configured adapters in their configured order.
// The order is significant: the orchestrator merges results in it.
type Registry struct {
	adapters []Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// All returns every configured adapter.
func (r *Registry) All() []Adapter {
	return r.adapters
}

// ByGroup returns the adapters belonging to the given group.
func (r *Registry) ByGroup(group string) []Adapter {
	out := make([]Adapter, 0, len(r.adapters))
	for _, a := range r.adapters {
		if a.Group() == group {
			out = append(out, a)
		}
	}
	return out
}

// Select returns adapters filtered by group membership and, when sites is
// non-empty, by source name. Unknown site names are ignored.
func (r *Registry) Select(groups []string, sites []string) []Adapter {
	groupSet := make(map[string]bool, len(groups))
	for _, g := range groups {
		groupSet[g] = true
	}
	siteSet := make(map[string]bool, len(sites))
	for _, s := range sites {
		siteSet[s] = true
	}

	out := make([]Adapter, 0, len(r.adapters))
	for _, a := range r.adapters {
		if len(groupSet) > 0 && !groupSet[a.Group()] {
			continue
		}
		if len(siteSet) > 0 && !siteSet[a.Name()] {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Names returns the adapter names in configured order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for _, a := range r.adapters {
		names = append(names, a.Name())
	}
	return names
}
