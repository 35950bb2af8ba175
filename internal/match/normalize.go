package match

import (
	"strings"
	"unicode"
)

// strippedSuffixes are dropped by NormalizeStripped, longest first.
var strippedSuffixes = []string{"value", "text", "ids", "id"}

// Normalize folds an identifier for fuzzy matching: lower case, with
// underscores, dashes and spaces removed, so "DataContext", "data_context"
// and "data-context" all become "datacontext".
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// NormalizeStripped is Normalize with one common suffix removed, so that
// "UserID" and "user" compare equal. A name consisting only of the suffix
// is kept.
func NormalizeStripped(s string) string {
	normalized := Normalize(s)

	for _, suffix := range strippedSuffixes {
		if trimmed, ok := strings.CutSuffix(normalized, suffix); ok && trimmed != "" {
			return trimmed
		}
	}

	return normalized
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
