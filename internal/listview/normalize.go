package listview

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a string for matching: Unicode NFD decomposition,
// combining marks stripped, lowercased. "Novák" and "novak" normalize
// to the same value.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// newCollator builds the locale-aware text comparator for list sorting.
// Loose comparison ignores case, width and diacritic differences, which
// matches how the lists are filtered.
func newCollator() *collate.Collator {
	return collate.New(language.Czech, collate.Loose)
}
