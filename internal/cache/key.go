package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key derives a deterministic cache key from normalized request parameters.
// Nil values and empty strings are dropped, string values are trimmed and
// lowercased, and the remaining pairs are sorted by key before hashing, so
// two calls with the same semantic parameters hash identically regardless of
// argument order.
func Key(prefix string, params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if normalizeValue(params[k]) != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(normalizeValue(params[k]))
		b.WriteByte(';')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return prefix + ":" + hex.EncodeToString(sum[:])[:32]
}

// normalizeValue renders a parameter value in canonical form, or "" when the
// value should be dropped from the key.
func normalizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ToLower(strings.TrimSpace(val))
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case []string:
		if len(val) == 0 {
			return ""
		}
		parts := make([]string, len(val))
		for i, s := range val {
			parts[i] = strings.ToLower(strings.TrimSpace(s))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", val)
	}
}
