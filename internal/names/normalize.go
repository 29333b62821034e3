// Package names owns display-name normalization.
//
// Ownership boundary:
// - diacritic and case folding for name comparison and ordering
//
// Folding is what makes anonymized ordering reproducible across runs and
// locales, and what the resolver uses for exact-name comparison.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s and strips combining diacritical marks.
// Transformers carry internal buffers, so a fresh chain is built per call
// rather than shared across goroutines.
func Fold(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(chain, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Equal reports whether two display names fold to the same string.
func Equal(a, b string) bool {
	return Fold(a) == Fold(b)
}
