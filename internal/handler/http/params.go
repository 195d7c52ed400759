package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
)

const (
	maxDays  = 30
	maxLimit = 400
)

// searchParams are the validated query parameters shared by the aggregation
// endpoints.
type searchParams struct {
	Query string
	Days  int
	Limit int
	Sites []string
	Fresh bool
}

// parseSearchParams validates q, days, limit, sites, preset, and fresh from
// the request query. Zero Days/Limit mean "use orchestrator defaults".
func (a *API) parseSearchParams(r *http.Request) (searchParams, error) {
	q := r.URL.Query()
	p := searchParams{Query: strings.TrimSpace(q.Get("q"))}

	var err error
	if p.Days, err = parseBoundedInt(q.Get("days"), "days", 1, maxDays); err != nil {
		return p, err
	}
	if p.Limit, err = parseBoundedInt(q.Get("limit"), "limit", 1, maxLimit); err != nil {
		return p, err
	}

	p.Sites = splitCSV(q.Get("sites"))
	if preset := strings.TrimSpace(q.Get("preset")); preset != "" {
		sites, ok := a.Presets[preset]
		if !ok {
			return p, fmt.Errorf("%w: unknown preset %q", entity.ErrInvalidInput, preset)
		}
		if len(p.Sites) == 0 {
			p.Sites = sites
		}
	}

	p.Fresh = q.Get("fresh") == "true" || q.Get("fresh") == "1"
	return p, nil
}

// parseBoundedInt returns 0 for an absent value, or the parsed value when it
// lies within [min, max].
func parseBoundedInt(raw, name string, min, max int) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", entity.ErrInvalidInput, name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%w: %s must be between %d and %d", entity.ErrInvalidInput, name, min, max)
	}
	return v, nil
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
