package ppr

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dropFromSlug reports runes that cannot appear in a slug.
func dropFromSlug(r rune) bool {
	return r > unicode.MaxASCII || unicode.IsSpace(r) || unicode.IsControl(r) || r == '/' || r == '\\'
}

// Slug returns the file name stem for a fund name: lower case ASCII, without
// spaces. Accented letters lose their accent, other non ASCII runes are dropped.
//
// "SGF DR FINANÇAS" becomes "sgfdrfinancas".
func Slug(name string) string {
	// transformers are stateful, build one per call.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(dropFromSlug)))
	s, _, err := transform.String(t, name)
	if err != nil {
		// can only happen on invalid UTF-8, fallback to the slow path.
		s = strings.Map(func(r rune) rune {
			if dropFromSlug(r) {
				return -1
			}
			return r
		}, name)
	}
	return strings.ToLower(s)
}

// Filename returns the report file name for a fund name and format.
func Filename(name string, k Kind) string { return Slug(name) + k.Ext() }
