package normalize

import (
	"log/slog"
	"strings"

	"github.com/Sumit-SC/job-search-api/internal/domain/entity"
)

// unknownCurrency is assigned when a salary amount is present but no
// currency indicator was detected.
const unknownCurrency = "unknown"

// Normalize maps a raw source record into a canonical Listing. It never
// panics on malformed input; ok is false when an unrecoverable field (URL or
// title) is missing or the assembled listing fails validation, and the
// caller should skip the record.
func Normalize(r Record, source string) (*entity.Listing, bool) {
	url := ResolveURL(r)
	title := r.StringField(titleKeys)
	if url == "" || title == "" {
		return nil, false
	}

	company := r.StringField(companyKeys)
	if company == "" {
		company = "Unknown"
	}

	location := r.StringField(locationKeys)
	if location == "" {
		parts := make([]string, 0, 2)
		if city := r.StringField(cityKeys); city != "" {
			parts = append(parts, city)
		}
		if state := r.StringField(stateKeys); state != "" {
			parts = append(parts, state)
		}
		location = strings.Join(parts, ", ")
	}
	if location == "" {
		if remote, ok := r.BoolField(remoteKeys); ok && remote {
			location = "Remote"
		} else {
			location = "Unknown"
		}
	}

	description := r.StringField(descriptionKeys)

	listing := &entity.Listing{
		ID:          entity.NewListingID(source, url),
		Title:       title,
		Company:     company,
		Location:    location,
		URL:         url,
		Description: description,
		Source:      source,
		PostedAt:    r.TimeField(dateKeys),
		Tags:        r.Tags(),
		JobType:     r.StringField(jobTypeKeys),
	}

	text := title + " " + description + " " + location
	if salaryText := r.StringField(salaryTextKeys); salaryText != "" {
		text += " " + salaryText
	}
	listing.ExperienceMin, listing.ExperienceMax = ExtractExperience(text)

	// Structured salary fields win over text heuristics.
	if lo, ok := r.FloatField(salaryMinKeys); ok {
		listing.SalaryMin = &lo
	}
	if hi, ok := r.FloatField(salaryMaxKeys); ok {
		listing.SalaryMax = &hi
	}
	if listing.SalaryMin != nil || listing.SalaryMax != nil {
		listing.Currency = r.StringField(currencyKeys)
	} else {
		listing.SalaryMin, listing.SalaryMax, listing.Currency = ExtractSalary(text)
	}
	if listing.SalaryMin == nil && listing.SalaryMax == nil {
		listing.Currency = ""
	} else if listing.Currency == "" {
		listing.Currency = unknownCurrency
	}

	if DetectVisaSponsorship(text) {
		yes := true
		listing.VisaSponsorship = &yes
	}

	// Extraction heuristics must never emit a listing that breaks the
	// entity invariants; drop the record rather than store it broken.
	if err := listing.Validate(); err != nil {
		slog.Debug("dropping record with invalid fields",
			slog.String("source", source),
			slog.String("url", url),
			slog.Any("error", err))
		return nil, false
	}

	return listing, true
}
