package semantic

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CaseFold returns the Unicode case-folded form of s.
// Hebrew has no case and passes through unchanged.
func CaseFold(s string) string {
	// cases.Caser keeps state between calls; one per call keeps it goroutine-safe
	return cases.Fold().String(s)
}

// normalizeSeparators turns hyphens into spaces and drops double quotes,
// so "בן-גוריון" compares as "בן גוריון" and ת"א as תא.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	return strings.ReplaceAll(s, "\"", "")
}

// StripMarks removes combining marks such as niqqud and Latin accents
func StripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// confusable letters folded onto one representative
var phoneticReplacements = map[rune]rune{
	'ט': 'ת',
	'כ': 'ק',
	'ס': 'ש',
	'ב': 'פ',
	'ו': 'פ',
	'צ': 'ז',
	'k': 'c',
	'q': 'c',
	'z': 's',
	'v': 'f',
	'w': 'f',
}

// silent letters and whitespace
var phoneticDrops = map[rune]bool{
	'א': true,
	'ה': true,
	'י': true,
	' ': true,
}

// PhoneticNormalize is a stricter single-pass alternative to phonetic codes:
// case-fold, strip marks, fold confusable letters and drop silent letters and
// spaces. The result is compared for plain string equality.
func PhoneticNormalize(text string) string {
	folded := StripMarks(CaseFold(text))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if phoneticDrops[r] {
			continue
		}
		if repl, ok := phoneticReplacements[r]; ok {
			r = repl
		}
		b.WriteRune(r)
	}
	return b.String()
}
