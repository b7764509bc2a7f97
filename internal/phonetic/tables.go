package phonetic

// classMap maps a letter to its consonant-class digit. Letters missing from
// the map are class '0' (vowel-like or silent).
type classMap map[rune]byte

func (m classMap) digit(r rune) byte {
	if d, ok := m[r]; ok {
		return d
	}
	return '0'
}

// Latin soundex classes
var latinClasses = classMap{
	'B': '1', 'F': '1', 'P': '1', 'V': '1',
	'C': '2', 'G': '2', 'J': '2', 'K': '2', 'Q': '2', 'S': '2', 'X': '2', 'Z': '2',
	'D': '3', 'T': '3',
	'L': '4',
	'M': '5', 'N': '5',
	'R': '6',
}

// latinAnchors replaces the first letter with its class representative so
// that class-equivalent words share the leading symbol (Cohen/Kohen, Fischer/Pischer).
var latinAnchors = map[rune]rune{
	'B': 'B', 'F': 'B', 'P': 'B', 'V': 'B',
	'C': 'C', 'G': 'C', 'J': 'C', 'K': 'C', 'Q': 'C', 'S': 'C', 'X': 'C', 'Z': 'C',
	'D': 'D', 'T': 'D',
	'L': 'L',
	'M': 'M', 'N': 'M',
	'R': 'R',
}

const (
	hebrewVav  = 'ו'
	hebrewAyin = 'ע'
)

// hebrewBase groups Hebrew consonants into seven classes:
// labials 1, velars/gutturals 2, dentals 3, sibilants 4, lateral 5, nasal 6, rhotic 7.
// Final forms are normalized before lookup so they are not listed.
var hebrewBase = classMap{
	'ב': '1', hebrewVav: '1', 'פ': '1', 'מ': '1',
	'ג': '2', 'ק': '2', 'כ': '2', 'ח': '2', hebrewAyin: '2',
	'ד': '3', 'ט': '3', 'ת': '3',
	'ז': '4', 'ס': '4', 'צ': '4', 'ש': '4',
	'ל': '5',
	'נ': '6',
	'ר': '7',
	'א': '0', 'ה': '0', 'י': '0',
}

// hebrewVariants holds the base map followed by the readings where vav,
// ayin, or both act as vowel markers. Index 0 is always the base map.
var hebrewVariants = []classMap{
	hebrewBase,
	withVowels(hebrewBase, hebrewVav),
	withVowels(hebrewBase, hebrewAyin),
	withVowels(hebrewBase, hebrewVav, hebrewAyin),
}

// hebrewAnchors maps a class digit to the letter that represents it in
// the first position of a code.
var hebrewAnchors = map[byte]rune{
	'1': 'ב',
	'2': 'כ',
	'3': 'ד',
	'4': 'ס',
	'5': 'ל',
	'6': 'נ',
	'7': 'ר',
}

var hebrewFinals = map[rune]rune{
	'ך': 'כ',
	'ם': 'מ',
	'ן': 'נ',
	'ף': 'פ',
	'ץ': 'צ',
}

// One-letter prefixes (and, the, in, to) stripped from words longer than two letters
var hebrewPrefixes = map[rune]bool{
	'ו': true,
	'ה': true,
	'ב': true,
	'ל': true,
}

func withVowels(base classMap, letters ...rune) classMap {
	out := make(classMap, len(base))
	for r, d := range base {
		out[r] = d
	}
	for _, r := range letters {
		out[r] = '0'
	}
	return out
}
