// Package file implements the listing store as a JSON snapshot on disk.
// It is the default store when no DATABASE_URL is configured.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	"github.com/Sumit-SC/job-search-api/internal/repository"
)

const snapshotFile = "listings.json"

type snapshot struct {
	SavedAt  time.Time         `json:"saved_at"`
	Listings []*entity.Listing `json:"listings"`
}

type ListingStore struct {
	dir string
	mu  sync.Mutex
	now func() time.Time
}

func NewListingStore(dir string) repository.ListingStore {
	return &ListingStore{dir: dir, now: time.Now}
}

func (s *ListingStore) Load(ctx context.Context) ([]*entity.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, snapshotFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*entity.Listing{}, nil
		}
		return nil, fmt.Errorf("Load: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("Load: decode snapshot: %w", err)
	}
	if snap.Listings == nil {
		return []*entity.Listing{}, nil
	}
	return snap.Listings, nil
}

func (s *ListingStore) Save(ctx context.Context, listings []*entity.Listing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	snap := snapshot{SavedAt: s.now().UTC(), Listings: listings}
	if snap.Listings == nil {
		snap.Listings = []*entity.Listing{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("Save: encode snapshot: %w", err)
	}

	// Write to a temp file and rename so readers never see a torn snapshot.
	tmp, err := os.CreateTemp(s.dir, snapshotFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("Save: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, snapshotFile)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}
