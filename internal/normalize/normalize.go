// Package normalize produces the canonical comparison keys used by every
// matching and search operation over the reference dataset.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFD, drops combining marks, then drops any
// remaining non-ASCII runes, so accented characters fold to their base Latin
// letter. A fresh transformer per call: transform chains carry internal
// buffers and are not safe for concurrent reuse.
func foldTransformer() transform.Transformer {
	return transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
}

// Normalize converts arbitrary text to its canonical comparable form:
// diacritics stripped, whitespace trimmed, ASCII lower-cased. Idempotent.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(foldTransformer(), s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Fold is the lighter comparison key used by autocomplete: trim and
// lower-case only, no diacritic stripping.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
