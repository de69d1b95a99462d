package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// FallbackName is returned when a description yields no usable tokens.
const FallbackName = "unknown_screenshot"

// maxNameTokens caps how many description words end up in a filename.
const maxNameTokens = 4

// stopWords are filler tokens removed from descriptions before naming.
// The set is closed: articles, prepositions, and generic nouns the vision
// model tends to lead with.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"image": {}, "of": {}, "screenshot": {}, "showing": {},
	"with": {}, "is": {}, "in": {}, "on": {}, "at": {}, "to": {}, "this": {},
}

// NameFromDescription derives a filesystem-safe snake_case name from a raw
// model description. The transform is deterministic: lowercase, strip
// everything that is not a word character or whitespace, drop stop words, keep
// the first four remaining tokens (or the first four raw tokens when the
// stop-word filter removes everything), and join with underscores. An input
// with no tokens at all maps to FallbackName. Every input yields a non-empty
// output free of path separators.
func NameFromDescription(description string) string {
	clean := stripNonAlphanumeric(strings.ToLower(norm.NFKC.String(description)))
	words := strings.Fields(clean)

	keywords := make([]string, 0, len(words))
	for _, word := range words {
		if _, ok := stopWords[word]; ok {
			continue
		}
		keywords = append(keywords, word)
	}

	chosen := keywords
	if len(chosen) == 0 {
		chosen = words
	}
	if len(chosen) > maxNameTokens {
		chosen = chosen[:maxNameTokens]
	}

	name := strings.Join(chosen, "_")
	if name == "" {
		return FallbackName
	}
	return name
}

func stripNonAlphanumeric(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	// Underscores count as word characters so already-derived names (the
	// fallback literal included) pass through unchanged.
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
