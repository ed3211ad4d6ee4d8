// internal/engine/placeholder/placeholder.go
package placeholder

import (
	"strings"

	"candidate-intake/pkg/lexicon"
)

// IsPlaceholder reports whether value carries no information: empty cells,
// "N/A"-style tokens, and non-answer phrases like "as per company norms" or
// "will share later". Values that pass this filter are treated as absent
// everywhere downstream and must never be classified or persisted as data.
func IsPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))

	if lexicon.PlaceholderTokens[v] {
		return true
	}

	for _, prefix := range lexicon.PlaceholderPrefixes {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}

	// "will discuss", "will let you know", "will share on call" and friends.
	if strings.HasPrefix(v, "will ") &&
		(strings.Contains(v, "share") || strings.Contains(v, "discuss") || strings.Contains(v, "tell") || strings.Contains(v, "confirm")) {
		return true
	}

	return false
}

// Clean trims a raw cell and collapses placeholders to "".
func Clean(value string) string {
	v := strings.TrimSpace(value)
	if IsPlaceholder(v) {
		return ""
	}
	return v
}
