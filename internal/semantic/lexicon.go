package semantic

import (
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	lcierrors "github.com/standardbeagle/idlocator/internal/errors"
)

// Lexicon holds the curated equivalence tables: nickname to full name and
// abbreviation to full form. Both relations are symmetric and are indexed in
// both directions at construction; a Lexicon is read-only afterwards.
type Lexicon struct {
	Nicknames     map[string][]string // יוסי → [יוסף]
	Abbreviations map[string][]string // ת"א → [תל אביב]

	// pre-built pair indexes, keyed on normalized forms in both directions
	nicknamePairs     map[string]map[string]struct{}
	abbreviationPairs map[string]map[string]struct{}
}

var defaultNicknames = map[string][]string{
	"אבי":     {"אברהם"},
	"איציק":   {"יצחק", "יחזקאל"},
	"אלי":     {"אליהו", "אליעזר", "אלחנן"},
	"אפי":     {"אפרים", "אפרת"},
	"בני":     {"בנימין"},
	"גבי":     {"גבריאל"},
	"דודי":    {"דוד"},
	"דני":     {"דניאל"},
	"חיים":    {"יחיאל"},
	"יענקל'ה": {"יעקב"},
	"יריב":    {"ירמיהו"},
	"יוסי":    {"יוסף"},
	"מיקי":    {"מיכאל", "מיכל"},
	"מוטי":    {"מרדכי"},
	"מושיקו":  {"משה"},
	"צחי":     {"יצחק"},
	"רפי":     {"רפאל"},
	"שוקי":    {"יהושע"},
	"שי":      {"ישעיהו"},
	"שמוליק":  {"שמואל"},
}

var defaultAbbreviations = map[string][]string{
	`ת"א`: {"תל אביב"},
	`ר"ג`: {"רמת גן"},
	"דר":  {"דרך"},
	"י-ם": {"ירושלים"},
}

// NewLexicon builds a lexicon from nickname and abbreviation tables.
// The input maps are copied.
func NewLexicon(nicknames, abbreviations map[string][]string) *Lexicon {
	lx := &Lexicon{
		Nicknames:     copyTable(nicknames),
		Abbreviations: copyTable(abbreviations),
	}
	lx.buildReverseIndexes()
	return lx
}

var (
	defaultLexicon     *Lexicon
	defaultLexiconOnce sync.Once
)

// DefaultLexicon returns the built-in Hebrew tables, built once
func DefaultLexicon() *Lexicon {
	defaultLexiconOnce.Do(func() {
		defaultLexicon = NewLexicon(defaultNicknames, defaultAbbreviations)
	})
	return defaultLexicon
}

// lexiconFile is the TOML shape of a lexicon override:
//
//	[nicknames]
//	"שוקי" = ["יהושע"]
//
//	[abbreviations]
//	"פ\"ת" = ["פתח תקווה"]
type lexiconFile struct {
	Nicknames     map[string][]string `toml:"nicknames"`
	Abbreviations map[string][]string `toml:"abbreviations"`
}

// LoadLexicon reads a TOML file and merges its entries over the built-in
// tables into a new Lexicon. An empty path returns DefaultLexicon.
func LoadLexicon(path string) (*Lexicon, error) {
	if path == "" {
		return DefaultLexicon(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lcierrors.NewFileError("read", path, err)
	}

	var file lexiconFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, lcierrors.NewConfigError("lexicon.path", path, fmt.Errorf("invalid lexicon file: %w", err))
	}

	return NewLexicon(
		mergeTables(defaultNicknames, file.Nicknames),
		mergeTables(defaultAbbreviations, file.Abbreviations),
	), nil
}

// IsNickname reports whether a and b are a nickname/full-name pair in
// either direction. Comparison is case-folded.
func (lx *Lexicon) IsNickname(a, b string) bool {
	return hasPair(lx.nicknamePairs, CaseFold(a), CaseFold(b))
}

// IsAbbreviation reports whether a and b are an abbreviation/full-form pair
// in either direction, comparing after hyphen and quote normalization.
func (lx *Lexicon) IsAbbreviation(a, b string) bool {
	return hasPair(lx.abbreviationPairs, abbreviationKey(a), abbreviationKey(b))
}

// Stats returns the number of nickname and abbreviation keys
func (lx *Lexicon) Stats() (nicknames, abbreviations int) {
	return len(lx.Nicknames), len(lx.Abbreviations)
}

func (lx *Lexicon) buildReverseIndexes() {
	lx.nicknamePairs = make(map[string]map[string]struct{})
	for short, fulls := range lx.Nicknames {
		for _, full := range fulls {
			addPair(lx.nicknamePairs, CaseFold(short), CaseFold(full))
		}
	}

	lx.abbreviationPairs = make(map[string]map[string]struct{})
	for short, fulls := range lx.Abbreviations {
		for _, full := range fulls {
			addPair(lx.abbreviationPairs, abbreviationKey(short), abbreviationKey(full))
		}
	}
}

func abbreviationKey(s string) string {
	return normalizeSeparators(CaseFold(s))
}

func addPair(index map[string]map[string]struct{}, a, b string) {
	if a == "" || b == "" {
		return
	}
	link := func(from, to string) {
		set, ok := index[from]
		if !ok {
			set = make(map[string]struct{})
			index[from] = set
		}
		set[to] = struct{}{}
	}
	link(a, b)
	link(b, a)
}

func hasPair(index map[string]map[string]struct{}, a, b string) bool {
	set, ok := index[a]
	if !ok {
		return false
	}
	_, ok = set[b]
	return ok
}

func copyTable(src map[string][]string) map[string][]string {
	dst := make(map[string][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}

// mergeTables unions extra into a copy of base, skipping duplicate values
func mergeTables(base, extra map[string][]string) map[string][]string {
	merged := copyTable(base)
	for k, values := range extra {
		for _, v := range values {
			if !containsString(merged[k], v) {
				merged[k] = append(merged[k], v)
			}
		}
	}
	return merged
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
