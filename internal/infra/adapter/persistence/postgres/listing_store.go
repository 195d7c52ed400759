// Package postgres implements the listing store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
	"github.com/Sumit-SC/job-search-api/internal/repository"
)

type ListingStore struct {
	db *sql.DB
}

func NewListingStore(db *sql.DB) repository.ListingStore {
	return &ListingStore{db: db}
}

const listingColumns = `id, title, company, location, url, description, source, posted_at, tags,
match_score, experience_min, experience_max, salary_min, salary_max, currency, visa_sponsorship, job_type`

func (s *ListingStore) Load(ctx context.Context) ([]*entity.Listing, error) {
	query := `
SELECT ` + listingColumns + `
FROM listings
ORDER BY posted_at DESC NULLS LAST, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	defer func() { _ = rows.Close() }()

	listings := make([]*entity.Listing, 0, 100)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("Load: %w", err)
		}
		listings = append(listings, listing)
	}
	return listings, rows.Err()
}

func (s *ListingStore) Save(ctx context.Context, listings []*entity.Listing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Save: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// The store holds a single snapshot, so a refresh replaces everything.
	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return fmt.Errorf("Save: clear: %w", err)
	}

	query := `
INSERT INTO listings (` + listingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("Save: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, listing := range listings {
		tags, err := json.Marshal(tagsOrEmpty(listing.Tags))
		if err != nil {
			return fmt.Errorf("Save: marshal tags: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			listing.ID, listing.Title, listing.Company, listing.Location,
			listing.URL, listing.Description, listing.Source,
			nullTime(listing.PostedAt), tags,
			nullFloat(listing.MatchScore),
			nullInt(listing.ExperienceMin), nullInt(listing.ExperienceMax),
			nullFloat(listing.SalaryMin), nullFloat(listing.SalaryMax),
			listing.Currency, nullBool(listing.VisaSponsorship), listing.JobType,
		); err != nil {
			return fmt.Errorf("Save: insert %s: %w", listing.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}
	return nil
}

func scanListing(rows *sql.Rows) (*entity.Listing, error) {
	var (
		listing   entity.Listing
		postedAt  sql.NullTime
		tags      []byte
		score     sql.NullFloat64
		expMin    sql.NullInt64
		expMax    sql.NullInt64
		salaryMin sql.NullFloat64
		salaryMax sql.NullFloat64
		visa      sql.NullBool
	)
	if err := rows.Scan(&listing.ID, &listing.Title, &listing.Company, &listing.Location,
		&listing.URL, &listing.Description, &listing.Source, &postedAt, &tags,
		&score, &expMin, &expMax, &salaryMin, &salaryMax,
		&listing.Currency, &visa, &listing.JobType); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	if postedAt.Valid {
		t := postedAt.Time
		listing.PostedAt = &t
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &listing.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if score.Valid {
		v := score.Float64
		listing.MatchScore = &v
	}
	if expMin.Valid {
		v := int(expMin.Int64)
		listing.ExperienceMin = &v
	}
	if expMax.Valid {
		v := int(expMax.Int64)
		listing.ExperienceMax = &v
	}
	if salaryMin.Valid {
		v := salaryMin.Float64
		listing.SalaryMin = &v
	}
	if salaryMax.Valid {
		v := salaryMax.Float64
		listing.SalaryMax = &v
	}
	if visa.Valid {
		v := visa.Bool
		listing.VisaSponsorship = &v
	}
	return &listing, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
