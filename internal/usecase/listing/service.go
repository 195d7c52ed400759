package listing

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	"github.com/Sumit-SC/job-search-api/internal/repository"
)

// Filter narrows stored listings. Zero values mean "no restriction".
type Filter struct {
	Query  string
	Days   int
	Limit  int
	Source string
}

// Service answers queries over the stored listing snapshot.
type Service struct {
	Store repository.ListingStore
	Clock func() time.Time
}

// NewService creates a query service over the given store.
func NewService(store repository.ListingStore) *Service {
	return &Service{Store: store, Clock: time.Now}
}

// List returns stored listings matching the filter, sorted by posting date
// descending with unknown dates last.
func (s *Service) List(ctx context.Context, f Filter) ([]*entity.Listing, error) {
	listings, err := s.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load listings: %w", err)
	}

	filtered := s.filter(listings, f)
	sortByPostedAt(filtered)

	if f.Limit > 0 && len(filtered) > f.Limit {
		filtered = filtered[:f.Limit]
	}
	return filtered, nil
}

// GroupedByCurrency buckets stored listings matching the filter by their
// salary currency. Listings without salary data land in the "unspecified"
// bucket. Listings inside each bucket keep the posting-date order.
func (s *Service) GroupedByCurrency(ctx context.Context, f Filter) (map[string][]*entity.Listing, error) {
	listings, err := s.List(ctx, f)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*entity.Listing)
	for _, l := range listings {
		currency := l.Currency
		if currency == "" {
			currency = "unspecified"
		}
		groups[currency] = append(groups[currency], l)
	}
	return groups, nil
}

func (s *Service) filter(listings []*entity.Listing, f Filter) []*entity.Listing {
	var cutoff time.Time
	if f.Days > 0 {
		cutoff = s.now().AddDate(0, 0, -f.Days)
	}

	out := make([]*entity.Listing, 0, len(listings))
	for _, l := range listings {
		if f.Source != "" && !strings.EqualFold(l.Source, f.Source) {
			continue
		}
		if !cutoff.IsZero() && l.PostedAt != nil && l.PostedAt.Before(cutoff) {
			continue
		}
		if !matchesQuery(f.Query, l.Title, l.Company, l.Location, l.Description) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// matchesQuery reports whether any lowercase query token appears in the
// joined listing text. An empty query matches everything.
func matchesQuery(query string, texts ...string) bool {
	tokens := strings.Fields(strings.ToLower(query))
	if len(tokens) == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join(texts, " "))
	for _, tok := range tokens {
		if strings.Contains(haystack, tok) {
			return true
		}
	}
	return false
}

// sortByPostedAt orders newest first; listings without a posting date sort
// last, keeping their relative order.
func sortByPostedAt(listings []*entity.Listing) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i].PostedAt, listings[j].PostedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}
