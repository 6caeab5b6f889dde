package types

import "strings"

// SuggestionKey is the canonical identity of a gift suggestion, used both for
// the dismissal ledger and for dedup against existing gifts. Derivation is a
// pure function of title and URL: identical inputs always produce identical
// keys.
type SuggestionKey string

// NewSuggestionKey derives the canonical key for a gift. The URL wins when
// present; the title is the fallback. Both are trimmed and lowercased so that
// differently-rendered duplicates collapse to the same key.
func NewSuggestionKey(title, url string) SuggestionKey {
	if u := strings.ToLower(strings.TrimSpace(url)); u != "" {
		return SuggestionKey("url:" + u)
	}
	return SuggestionKey("title:" + strings.ToLower(strings.TrimSpace(title)))
}

// String returns the string representation of the key
func (k SuggestionKey) String() string {
	return string(k)
}
