// Package score computes the 0-100 relevance score for a listing from
// role-tier, location, and experience-fit heuristics. Scoring is a pure
// function of its inputs: the same listing and target always produce the
// same score.
package score

import "strings"

// DefaultTargetExperience is the years-of-experience target used when the
// caller does not configure one.
const DefaultTargetExperience = 2

// Role tiers, in priority order. Tier-1 titles are the primary match set;
// tier-2 titles are adjacent roles worth surfacing at a lower weight.
var (
	tier1Roles = []string{
		"data analyst", "senior data analyst", "senior analyst", "business analyst",
		"product analyst", "decision scientist", "bi developer", "analytics engineer",
		"bi analyst", "financial analyst", "marketing analyst", "operations analyst",
	}

	tier2Roles = []string{
		"junior data scientist", "associate data scientist", "data scientist",
		"ml engineer", "machine learning engineer", "junior ml engineer",
		"associate ml engineer", "junior data engineer", "associate data engineer",
	}

	skillKeywords = []string{
		"python", "sql", "tableau", "power bi", "looker", "visualization",
		"machine learning", "ml modeling", "statistics", "a/b testing",
		"experimentation", "analytics", "reporting", "dashboards", "etl",
		"data pipeline", "pandas", "numpy", "scikit-learn", "tensorflow",
		"pytorch", "r language", "excel", "spreadsheet",
	}
)

// Location preference keywords, in priority order.
var (
	remoteKeywords       = []string{"remote", "work from home", "wfh", "distributed", "anywhere"}
	remoteRegionKeywords = []string{"remote india", "india remote", "work from india"}
	preferredCities      = []string{
		"pune", "hyderabad", "mumbai", "thane", "navi mumbai", "bangalore",
		"chennai", "delhi", "ncr", "gurgaon", "noida",
	}
)

// Sub-score weights.
const (
	roleTier1Points  = 40
	roleTier2Points  = 30
	roleSkillPoints  = 20
	locRemotePoints  = 30
	locRegionPoints  = 25
	locCityPoints    = 20
	locFloorPoints   = 10
	expUnknownPoints = 15
	seniorCutoff     = 5
)

// Score computes the match score for a listing. All three sub-scores are
// evaluated before summation; the final value is clamped to [0,100].
// expMin/expMax are the listing's extracted experience bounds (nil =
// unspecified); target is the caller's years of experience.
func Score(title, description, location string, expMin, expMax *int, target int) float64 {
	text := strings.ToLower(title + " " + description + " " + location)
	titleLower := strings.ToLower(title)
	locationLower := strings.ToLower(location)

	total := roleScore(titleLower, text) +
		locationScore(locationLower) +
		experienceScore(expMin, expMax, target)

	// The additive design tops out at exactly 100; the clamp is a safety net.
	if total > 100 {
		return 100
	}
	if total < 0 {
		return 0
	}
	return total
}

func roleScore(titleLower, text string) float64 {
	if containsAny(titleLower, tier1Roles) {
		return roleTier1Points
	}
	if containsAny(titleLower, tier2Roles) {
		return roleTier2Points
	}
	if containsAny(text, skillKeywords) {
		return roleSkillPoints
	}
	return 0
}

func locationScore(locationLower string) float64 {
	switch {
	case containsAny(locationLower, remoteKeywords):
		return locRemotePoints
	case containsAny(locationLower, remoteRegionKeywords):
		return locRegionPoints
	case containsAny(locationLower, preferredCities):
		return locCityPoints
	default:
		// Flat floor: no listing scores zero on location alone.
		return locFloorPoints
	}
}

func experienceScore(expMin, expMax *int, target int) float64 {
	if expMin == nil && expMax == nil {
		return expUnknownPoints
	}

	switch {
	case expMin != nil && expMax != nil:
		switch {
		case *expMin <= target && target <= *expMax:
			return 30
		case *expMin <= target+1 && target+1 <= *expMax:
			return 20
		case *expMax >= seniorCutoff:
			return 0 // hard exclusion signal for senior roles
		default:
			return 10
		}
	case expMin != nil:
		if *expMin > target {
			return 0
		}
		switch {
		case *expMin >= seniorCutoff:
			return 0
		case *expMin <= target+1:
			return 25
		default:
			return 10
		}
	default:
		if *expMax < target {
			return 0
		}
		if *expMax >= seniorCutoff {
			return 0
		}
		return 25
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
