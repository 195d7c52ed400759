// Package repository defines persistence interfaces for the aggregation service.
package repository

import (
	"context"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
)

// ListingStore persists snapshots of aggregated listings.
//
// The store holds exactly one snapshot: Save replaces the previous contents
// and Load returns the most recently saved set. The worker refreshes the
// snapshot on a schedule and the read endpoints serve from it.
type ListingStore interface {
	// Load returns all listings in the current snapshot.
	// An empty store returns an empty slice, not an error.
	Load(ctx context.Context) ([]*entity.Listing, error)
	// Save atomically replaces the snapshot with the given listings.
	Save(ctx context.Context, listings []*entity.Listing) error
}
