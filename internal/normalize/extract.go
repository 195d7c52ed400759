package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Experience patterns, tried in order against lowercased text. Unit-qualified
// patterns come first (higher precision); the unit-less numeric range comes
// last, bounded by the <=10 guard to avoid misreading unrelated ranges.
var (
	expRangeRe     = regexp.MustCompile(`(\d+)\s*(?:-|–|—|to)\s*(\d+)\s*(?:years?|yrs?|yoe|experience)`)
	expMinimumRe   = regexp.MustCompile(`(?:minimum|min|at least|atleast)\s*(\d+)\s*(?:years?|yrs?|yoe|experience)`)
	expBareRangeRe = regexp.MustCompile(`(\d+)\s*(?:-|–|—|to)\s*(\d+)`)
	expPlusRe      = regexp.MustCompile(`(\d+)\+\s*(?:years?|yrs?|yoe|experience)`)
)

// bareRangeCeiling bounds the unit-less N-M pattern; both values must be at
// most this for the match to be accepted as an experience range.
const bareRangeCeiling = 10

// ExtractExperience extracts a years-of-experience range from free text.
// Returns (nil, nil) when no pattern matches, and discards a contradictory
// pair (min > max) as unparseable.
func ExtractExperience(text string) (*int, *int) {
	lower := strings.ToLower(text)

	if m := expRangeRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			return nil, nil
		}
		return &lo, &hi
	}

	if m := expMinimumRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.Atoi(m[1])
		return &lo, nil
	}

	if m := expBareRangeRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo <= bareRangeCeiling && hi <= bareRangeCeiling {
			if lo > hi {
				return nil, nil
			}
			return &lo, &hi
		}
	}

	if m := expPlusRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.Atoi(m[1])
		return &lo, nil
	}

	return nil, nil
}

// currencyTable maps currency indicators (symbols or codes) to ISO-style
// codes. Kept as an ordered slice for deterministic first-match-wins
// resolution; a single hit suffices.
var currencyTable = []struct {
	indicator string
	code      string
}{
	{"$", "USD"}, {"usd", "USD"}, {"dollar", "USD"},
	{"₹", "INR"}, {"rs", "INR"}, {"inr", "INR"}, {"rupee", "INR"}, {"lakh", "INR"}, {"lpa", "INR"},
	{"£", "GBP"}, {"gbp", "GBP"}, {"pound", "GBP"},
	{"€", "EUR"}, {"eur", "EUR"}, {"euro", "EUR"},
	{"sgd", "SGD"}, {"singapore", "SGD"},
	{"aed", "AED"}, {"dirham", "AED"},
}

var (
	salaryKRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*k\s*(?:-|–|—|to)?\s*(\d+(?:\.\d+)?)\s*k`)
	salaryLakhRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*l\s*(?:-|–|—|to)?\s*(\d+(?:\.\d+)?)\s*l`)
	salaryNumRe  = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s*(?:-|–|—|to)?\s*(\d{1,3}(?:,\d{3})*(?:\.\d+)?)`)
)

// minPlainSalary filters the generic numeric-range pattern; both values must
// exceed this to be treated as a salary (keeps out years, ratings and other
// small numeric ranges).
const minPlainSalary = 1000

// ExtractSalary extracts a salary range and currency code from free text.
// A currency indicator anywhere in the text wins; the k-notation pattern
// defaults to USD and the lakh pattern to INR when no indicator is present.
// Returns ("", nil, nil) when nothing salary-shaped is found; the currency
// code alone may still be returned when amounts are absent.
func ExtractSalary(text string) (min, max *float64, currency string) {
	lower := strings.ToLower(text)

	detected := ""
	for _, entry := range currencyTable {
		if strings.Contains(lower, entry.indicator) {
			detected = entry.code
			break
		}
	}

	if m := salaryKRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		lo, hi = lo*1_000, hi*1_000
		code := detected
		if code == "" {
			code = "USD"
		}
		return &lo, &hi, code
	}

	if m := salaryLakhRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		lo, hi = lo*100_000, hi*100_000
		code := detected
		if code == "" {
			code = "INR"
		}
		return &lo, &hi, code
	}

	if m := salaryNumRe.FindStringSubmatch(lower); m != nil {
		lo, _ := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		hi, _ := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", ""), 64)
		if lo > minPlainSalary && hi > minPlainSalary {
			return &lo, &hi, detected
		}
	}

	return nil, nil, detected
}

// visaKeywords are sponsorship phrases treated as a positive signal.
// There is deliberately no negation handling: "no visa sponsorship" still
// registers as a match. Tightening this changes observable output and needs
// a product decision first.
var visaKeywords = []string{
	"visa sponsorship", "sponsored visa", "visa sponsor", "relocation support",
	"relocation assistance", "work visa", "sponsor visa", "visa available",
	"will sponsor", "can sponsor", "sponsorship available",
}

// DetectVisaSponsorship reports whether the text mentions visa sponsorship.
func DetectVisaSponsorship(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range visaKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
