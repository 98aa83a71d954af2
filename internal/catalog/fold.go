// File path: internal/catalog/fold.go
package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold transliterates text to plain ASCII: accented letters decompose to
// their base letter, combining marks and any character with no ASCII
// equivalent are dropped outright, never replaced. Lossy on purpose so the
// result survives encoding-sensitive rendering backends.
func Fold(s string) string {
	chain := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(chain, s)
	if err != nil {
		// Fall back to a plain strip; transform failures leave no
		// usable partial output.
		var b strings.Builder
		for _, r := range s {
			if r <= unicode.MaxASCII {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	return out
}
