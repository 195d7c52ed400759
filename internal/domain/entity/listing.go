// Package entity defines the core domain entities and validation logic for the application.
// It contains the canonical Listing entity produced by the normalizer, along with
// its validation rules and domain-specific errors.
package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Listing represents a canonical, normalized job posting aggregated from an
// external source. A Listing is constructed once per raw record, enriched and
// scored once, and is immutable for the remainder of the aggregation call.
type Listing struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	Source      string     `json:"source"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Tags        []string   `json:"tags,omitempty"`

	// Enrichment metadata extracted by the normalizer.
	MatchScore      *float64 `json:"match_score,omitempty"`
	ExperienceMin   *int     `json:"experience_min,omitempty"`
	ExperienceMax   *int     `json:"experience_max,omitempty"`
	SalaryMin       *float64 `json:"salary_min,omitempty"`
	SalaryMax       *float64 `json:"salary_max,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	VisaSponsorship *bool    `json:"visa_sponsorship,omitempty"`
	JobType         string   `json:"job_type,omitempty"`
}

// NewListingID derives the stable identifier for a listing from its source
// name and canonical URL. The same (source, url) pair always yields the same
// ID across runs.
func NewListingID(source, url string) string {
	sum := sha256.Sum256([]byte(source + "|" + url))
	return source + "_" + hex.EncodeToString(sum[:])[:12]
}

// Validate checks the Listing invariants. It returns a ValidationError for
// the first violated field.
func (l *Listing) Validate() error {
	if l.URL == "" {
		return &ValidationError{Field: "url", Message: "url is required"}
	}
	if l.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if l.Source == "" {
		return &ValidationError{Field: "source", Message: "source is required"}
	}
	if l.ExperienceMin != nil && *l.ExperienceMin < 0 {
		return &ValidationError{Field: "experience_min", Message: "must be non-negative"}
	}
	if l.ExperienceMax != nil && *l.ExperienceMax < 0 {
		return &ValidationError{Field: "experience_max", Message: "must be non-negative"}
	}
	if l.ExperienceMin != nil && l.ExperienceMax != nil && *l.ExperienceMin > *l.ExperienceMax {
		return &ValidationError{Field: "experience_min", Message: "must not exceed experience_max"}
	}
	if l.MatchScore != nil && (*l.MatchScore < 0 || *l.MatchScore > 100) {
		return &ValidationError{Field: "match_score", Message: "must be within [0,100]"}
	}
	return nil
}
