// Package normalize maps raw source records into the canonical Listing entity.
// Raw records are unordered key/value bags with no fixed schema; each field is
// resolved from an ordered list of candidate key names, first non-empty match
// wins. Enrichment metadata (experience range, salary range, visa signal) is
// extracted from the record text via heuristic rules.
package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Record is a raw listing record as produced by a source adapter.
// Keys and value types vary per source; the candidate-key tables below cope
// with the inconsistent naming and casing.
type Record map[string]any

// Candidate keys per canonical field, tried in priority order.
var (
	titleKeys       = []string{"title", "TITLE", "job_title", "name"}
	companyKeys     = []string{"company", "COMPANY", "company_name", "employer"}
	urlKeys         = []string{"url", "job_url", "JOB_URL", "link", "href"}
	locationKeys    = []string{"location", "LOCATION", "candidate_required_location"}
	cityKeys        = []string{"city", "CITY"}
	stateKeys       = []string{"state", "STATE"}
	descriptionKeys = []string{"description", "DESCRIPTION", "summary", "snippet"}
	dateKeys        = []string{"date_posted", "DATE_POSTED", "posted_at", "published", "publication_date", "pub_date", "date"}
	currencyKeys    = []string{"currency", "CURRENCY"}
	salaryMinKeys   = []string{"min_amount", "MIN_AMOUNT", "salary_min"}
	salaryMaxKeys   = []string{"max_amount", "MAX_AMOUNT", "salary_max"}
	jobTypeKeys     = []string{"job_type", "JOB_TYPE"}
	salaryTextKeys  = []string{"salary", "SALARY", "compensation"}
	remoteKeys      = []string{"is_remote", "IS_REMOTE", "remote"}
)

// StringField resolves the first candidate key holding a non-empty string.
func (r Record) StringField(keys []string) string {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// FloatField resolves the first candidate key holding a numeric value.
func (r Record) FloatField(keys []string) (float64, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case float32:
			return float64(n), true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		}
	}
	return 0, false
}

// BoolField resolves the first candidate key holding a boolean value.
func (r Record) BoolField(keys []string) (bool, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if b, ok := v.(bool); ok {
				return b, true
			}
		}
	}
	return false, false
}

// TimeField resolves the first candidate key holding a parseable timestamp.
// Values may be time.Time, *time.Time, or free-form date strings.
func (r Record) TimeField(keys []string) *time.Time {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case time.Time:
			if !t.IsZero() {
				tt := t
				return &tt
			}
		case *time.Time:
			if t != nil && !t.IsZero() {
				tt := *t
				return &tt
			}
		case string:
			if t == "" {
				continue
			}
			if parsed, err := dateparse.ParseAny(t); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

// Tags returns the provenance labels carried by the record, if any.
func (r Record) Tags() []string {
	v, ok := r["tags"]
	if !ok {
		return nil
	}
	switch tags := v.(type) {
	case []string:
		return tags
	case []any:
		out := make([]string, 0, len(tags))
		for _, t := range tags {
			if s, ok := t.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// ResolveURL extracts the canonical URL used as the global dedup key.
// It is exposed separately so the orchestrator can deduplicate raw records
// before paying the full normalization cost.
func ResolveURL(r Record) string {
	return r.StringField(urlKeys)
}

// Description resolves the record's description text, if any.
func (r Record) Description() string {
	return r.StringField(descriptionKeys)
}

// SetDescription overrides the record's description. "description" is the
// highest-priority candidate key, so the override wins on the next read.
func (r Record) SetDescription(text string) {
	r["description"] = text
}

// PostedAt resolves the record's posting date, if any.
func (r Record) PostedAt() *time.Time {
	return r.TimeField(dateKeys)
}
