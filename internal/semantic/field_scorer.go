package semantic

import (
	"strings"
	"sync"
	"unicode"

	"github.com/standardbeagle/idlocator/internal/phonetic"
)

// cascadeStep is one detector in tier order
type cascadeStep struct {
	detector     MatchDetector
	phoneticOnly bool
}

// FieldScorer scores a query value against a record value.
// It holds only immutable state and is safe for concurrent use.
type FieldScorer struct {
	config  ScoreLayers
	lexicon *Lexicon
	coder   *phonetic.Coder
	steps   []cascadeStep
}

// NewFieldScorer creates a scorer. A nil lexicon uses DefaultLexicon, a nil
// coder uses the default phonetic coder.
func NewFieldScorer(config ScoreLayers, lexicon *Lexicon, coder *phonetic.Coder) *FieldScorer {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	if coder == nil {
		coder = phonetic.Default()
	}

	steps := []cascadeStep{
		{detector: &ExactMatcher{}},
		{detector: NewNicknameMatcher(lexicon)},
		{detector: NewAbbreviationMatcher(lexicon)},
		{detector: &PrefixMatcher{}},
		{detector: NewEditDistanceMatcher(NewFuzzyMatcher(config.EditDistanceThreshold))},
		{detector: NewPhoneticMatcher(coder), phoneticOnly: true},
		{detector: &SubstringMatcher{}},
		{detector: &PhoneticNormalizedMatcher{}, phoneticOnly: true},
	}

	return &FieldScorer{
		config:  config,
		lexicon: lexicon,
		coder:   coder,
		steps:   steps,
	}
}

var (
	defaultScorer     *FieldScorer
	defaultScorerOnce sync.Once
)

// DefaultFieldScorer returns a scorer with DefaultScoreLayers and the built-in lexicon
func DefaultFieldScorer() *FieldScorer {
	defaultScorerOnce.Do(func() {
		defaultScorer = NewFieldScorer(DefaultScoreLayers, nil, nil)
	})
	return defaultScorer
}

// Lexicon returns the equivalence tables in use
func (fs *FieldScorer) Lexicon() *Lexicon {
	return fs.lexicon
}

// ScoreText runs the text cascade. The first tier that fires wins.
func (fs *FieldScorer) ScoreText(query, value string, usePhonetic bool) FieldMatch {
	query = strings.TrimSpace(query)
	value = strings.TrimSpace(value)
	if query == "" || value == "" {
		return noMatch
	}

	c := newComparison(query, value)
	for _, step := range fs.steps {
		if step.phoneticOnly && !usePhonetic {
			continue
		}
		if matched, score := step.detector.Detect(c, fs.config); matched {
			return FieldMatch{Score: score, Tier: step.detector.Tier()}
		}
	}
	return noMatch
}

// ScoreHouseNumber compares house numbers such as "12" and "12א".
// A prefix in either direction scores slightly lower when exactly one side
// is purely numeric, since that usually means an entrance letter is missing.
func (fs *FieldScorer) ScoreHouseNumber(query, value string) FieldMatch {
	query = strings.TrimSpace(query)
	value = strings.TrimSpace(value)
	if query == "" || value == "" {
		return noMatch
	}

	if query == value {
		return FieldMatch{Score: houseExactScore, Tier: TierExact}
	}

	if strings.HasPrefix(value, query) || strings.HasPrefix(query, value) {
		if isAllDigits(query) != isAllDigits(value) {
			return FieldMatch{Score: houseMixedPrefixScore, Tier: TierHouseMixedPrefix}
		}
		return FieldMatch{Score: housePrefixScore, Tier: TierHousePrefix}
	}

	return noMatch
}

// ScoreText scores with DefaultFieldScorer
func ScoreText(query, value string, usePhonetic bool) FieldMatch {
	return DefaultFieldScorer().ScoreText(query, value, usePhonetic)
}

// ScoreHouseNumber scores with DefaultFieldScorer
func ScoreHouseNumber(query, value string) FieldMatch {
	return DefaultFieldScorer().ScoreHouseNumber(query, value)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
