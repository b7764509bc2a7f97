// Package phonetic encodes Hebrew and Latin words into soundex-style codes.
//
// A code is an anchor letter followed by consonant-class digits, padded with
// '0' to a fixed length. Latin words produce exactly one code. Hebrew words
// produce a set of up to four codes because vav and ayin are sometimes
// consonants and sometimes vowel markers; two words "sound alike" when their
// code sets intersect.
package phonetic

import (
	"strings"
	"unicode"
)

// DefaultCodeLength is the code length used when none is configured
const DefaultCodeLength = 4

// Script is the writing system a word is encoded with
type Script int

const (
	ScriptLatin Script = iota
	ScriptHebrew
)

func (s Script) String() string {
	if s == ScriptHebrew {
		return "hebrew"
	}
	return "latin"
}

// DetectScript classifies a word as Hebrew if it contains any rune of the
// Hebrew block (U+0590-U+05FF, niqqud included), Latin otherwise.
func DetectScript(word string) Script {
	for _, r := range word {
		if r >= 0x0590 && r <= 0x05FF {
			return ScriptHebrew
		}
	}
	return ScriptLatin
}

// Coder produces phonetic codes of a fixed length.
// It holds no mutable state and is safe for concurrent use.
type Coder struct {
	length int
}

// NewCoder creates a coder; lengths below 1 fall back to DefaultCodeLength
func NewCoder(length int) *Coder {
	if length < 1 {
		length = DefaultCodeLength
	}
	return &Coder{length: length}
}

var defaultCoder = NewCoder(DefaultCodeLength)

// Default returns the shared coder with the default code length
func Default() *Coder {
	return defaultCoder
}

// Length returns the configured code length
func (c *Coder) Length() int {
	return c.length
}

// Code returns the primary code of a word: the Latin code, or the Hebrew
// code under the base class map. Words without letters yield "".
func (c *Coder) Code(word string) string {
	if word == "" {
		return ""
	}
	if DetectScript(word) == ScriptHebrew {
		return encode(hebrewLetters(word), hebrewVariants[0], anchorHebrew, c.length)
	}
	return encode(latinLetters(word), latinClasses, anchorLatin, c.length)
}

// CodesOf returns the set of codes for a word. Empty input, or input with
// no letters, yields an empty set.
func (c *Coder) CodesOf(word string) map[string]struct{} {
	codes := make(map[string]struct{})
	if word == "" {
		return codes
	}

	if DetectScript(word) != ScriptHebrew {
		if code := encode(latinLetters(word), latinClasses, anchorLatin, c.length); code != "" {
			codes[code] = struct{}{}
		}
		return codes
	}

	letters := hebrewLetters(word)
	for i, classes := range hebrewVariants {
		code := encode(letters, classes, anchorHebrew, c.length)
		if code == "" {
			continue
		}
		// Non-base readings that collapse to the bare anchor carry no information
		if i > 0 && !hasSignificantDigit(code) {
			continue
		}
		codes[code] = struct{}{}
	}
	return codes
}

// Matches reports whether the code sets of a and b intersect
func (c *Coder) Matches(a, b string) bool {
	codesA := c.CodesOf(a)
	if len(codesA) == 0 {
		return false
	}
	for code := range c.CodesOf(b) {
		if _, ok := codesA[code]; ok {
			return true
		}
	}
	return false
}

// CodesOf encodes with the default coder
func CodesOf(word string) map[string]struct{} {
	return defaultCoder.CodesOf(word)
}

// Matches compares with the default coder
func Matches(a, b string) bool {
	return defaultCoder.Matches(a, b)
}

// latinLetters upper-cases and keeps letters only. Punctuation and digits are
// dropped, not treated as separators, so "Tel-Aviv" encodes like "TelAviv".
func latinLetters(word string) []rune {
	upper := strings.ToUpper(word)
	letters := make([]rune, 0, len(upper))
	for _, r := range upper {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	return letters
}

// hebrewLetters normalizes final forms, strips a one-letter prefix and keeps
// letters only. Niqqud are dropped before the prefix check so a pointed word
// and its plain spelling agree on length.
func hebrewLetters(word string) []rune {
	runes := make([]rune, 0, len(word))
	for _, r := range word {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if regular, ok := hebrewFinals[r]; ok {
			r = regular
		}
		runes = append(runes, r)
	}
	if len(runes) > 2 && hebrewPrefixes[runes[0]] {
		runes = runes[1:]
	}

	letters := make([]rune, 0, len(runes))
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	return letters
}

func anchorLatin(first rune, _ classMap) rune {
	if a, ok := latinAnchors[first]; ok {
		return a
	}
	return first
}

func anchorHebrew(first rune, classes classMap) rune {
	d := classes.digit(first)
	if d == '0' {
		return first
	}
	if a, ok := hebrewAnchors[d]; ok {
		return a
	}
	return first
}

// encode builds the code: anchored first letter, then one digit per run of
// same-class letters. Class-0 letters emit nothing but still break a run, so
// two equal consonants separated by a vowel both count.
func encode(letters []rune, classes classMap, anchor func(rune, classMap) rune, length int) string {
	if len(letters) == 0 {
		return ""
	}

	first := anchor(letters[0], classes)
	code := make([]rune, 0, length+1)
	code = append(code, first)
	prev := classes.digit(first)

	for _, r := range letters[1:] {
		d := classes.digit(r)
		if d == prev {
			continue
		}
		if d != '0' {
			code = append(code, rune(d))
		}
		prev = d
	}

	if len(code) > length {
		code = code[:length]
	}
	for len(code) < length {
		code = append(code, '0')
	}
	return string(code)
}

func hasSignificantDigit(code string) bool {
	for i, r := range []rune(code) {
		if i > 0 && r != '0' {
			return true
		}
	}
	return false
}
