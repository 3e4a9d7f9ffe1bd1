package dataprocessing

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeColumn canonicalizes a raw column label for matching:
// lowercase, trimmed, internal whitespace runs collapsed to one space.
// Accents are preserved; use FoldColumn where a spelling-insensitive
// match is needed. The two operations are deliberately separate so that
// changing one matcher cannot silently change the other.
func NormalizeColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	return whitespaceRun.ReplaceAllString(s, " ")
}

// foldChain decomposes accented letters and strips the combining marks,
// turning e.g. "Ç" into "C" and "ö" into "o".
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldColumn is the strict normalization used for outcome-column and
// identifier-column matching: accented letters are folded to their base
// Latin letters, everything is lowercased, and all whitespace and
// punctuation is removed. "PÇ 4", "pc4" and "P.C. 4" all fold to "pc4".
func FoldColumn(name string) string {
	folded, _, err := transform.String(foldChain, name)
	if err != nil {
		folded = name
	}

	// Dotless ı does not decompose; İ loses its dot with the combining
	// marks and must map back to plain i.
	folded = strings.Map(func(r rune) rune {
		if r == 'ı' {
			return 'i'
		}
		return r
	}, folded)
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CollapseWhitespace trims a value and collapses internal whitespace
// runs to a single space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
