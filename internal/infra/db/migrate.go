package db

import (
	"context"
	"database/sql"
)

// MigrateUp creates the listings schema if it does not exist.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS listings (
    id               TEXT PRIMARY KEY,
    title            TEXT NOT NULL,
    company          TEXT NOT NULL,
    location         TEXT NOT NULL,
    url              TEXT NOT NULL,
    description      TEXT NOT NULL DEFAULT '',
    source           TEXT NOT NULL,
    posted_at        TIMESTAMPTZ,
    tags             JSONB NOT NULL DEFAULT '[]',
    match_score      DOUBLE PRECISION,
    experience_min   INTEGER,
    experience_max   INTEGER,
    salary_min       DOUBLE PRECISION,
    salary_max       DOUBLE PRECISION,
    currency         TEXT NOT NULL DEFAULT '',
    visa_sponsorship BOOLEAN,
    job_type         TEXT NOT NULL DEFAULT '',
    saved_at         TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ORDER BY posted_at DESC is the dominant read pattern
		`CREATE INDEX IF NOT EXISTS idx_listings_posted_at ON listings(posted_at DESC NULLS LAST)`,
		// per-source filtering on /jobs
		`CREATE INDEX IF NOT EXISTS idx_listings_source ON listings(source)`,
		// currency grouping
		`CREATE INDEX IF NOT EXISTS idx_listings_currency ON listings(currency)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}

	return nil
}
