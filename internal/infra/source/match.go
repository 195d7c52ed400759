package source

import "strings"

// matchesQuery applies the loose source-side filter: a record text matches
// when any whitespace-separated query token appears in it, case-insensitive.
// An empty query matches everything. Real filtering happens after
// normalization; this only trims obviously unrelated records early.
func matchesQuery(query string, texts ...string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}

	haystack := strings.ToLower(strings.Join(texts, " "))
	for _, token := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}
