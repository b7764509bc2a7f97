package semantic

import (
	"strings"

	"github.com/standardbeagle/idlocator/internal/phonetic"
)

// comparison carries the pre-normalized forms of one query/value pair so
// each detector does not redo the work.
type comparison struct {
	query, value           string // trimmed input
	queryLower, valueLower string // case-folded
	queryNorm, valueNorm   string // case-folded, hyphen/quote normalized
}

func newComparison(query, value string) *comparison {
	c := &comparison{
		query: query,
		value: value,
	}
	c.queryLower = CaseFold(query)
	c.valueLower = CaseFold(value)
	c.queryNorm = normalizeSeparators(c.queryLower)
	c.valueNorm = normalizeSeparators(c.valueLower)
	return c
}

// MatchDetector detects one tier of the text cascade
type MatchDetector interface {
	Tier() MatchTier
	// Detect returns whether the tier fires and the score it assigns
	Detect(c *comparison, config ScoreLayers) (bool, float64)
}

// ExactMatcher detects case-folded equality
type ExactMatcher struct{}

func (em *ExactMatcher) Tier() MatchTier { return TierExact }

func (em *ExactMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	if c.queryLower == c.valueLower {
		return true, config.ExactWeight
	}
	return false, 0
}

// NicknameMatcher detects nickname/full-name pairs
type NicknameMatcher struct {
	lexicon *Lexicon
}

func NewNicknameMatcher(lexicon *Lexicon) *NicknameMatcher {
	return &NicknameMatcher{lexicon: lexicon}
}

func (nm *NicknameMatcher) Tier() MatchTier { return TierNickname }

func (nm *NicknameMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	if nm.lexicon == nil {
		return false, 0
	}
	if nm.lexicon.IsNickname(c.queryLower, c.valueLower) {
		return true, config.NicknameWeight
	}
	return false, 0
}

// AbbreviationMatcher detects abbreviation/full-form pairs
type AbbreviationMatcher struct {
	lexicon *Lexicon
}

func NewAbbreviationMatcher(lexicon *Lexicon) *AbbreviationMatcher {
	return &AbbreviationMatcher{lexicon: lexicon}
}

func (am *AbbreviationMatcher) Tier() MatchTier { return TierAbbreviation }

func (am *AbbreviationMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	if am.lexicon == nil {
		return false, 0
	}
	if am.lexicon.IsAbbreviation(c.queryNorm, c.valueNorm) {
		return true, config.AbbreviationWeight
	}
	return false, 0
}

// PrefixMatcher detects a value that starts with the query
type PrefixMatcher struct{}

func (pm *PrefixMatcher) Tier() MatchTier { return TierPrefix }

func (pm *PrefixMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	if strings.HasPrefix(c.valueNorm, c.queryNorm) {
		return true, config.PrefixWeight
	}
	return false, 0
}

// EditDistanceMatcher detects typos via normalized Levenshtein similarity
type EditDistanceMatcher struct {
	matcher *FuzzyMatcher
}

func NewEditDistanceMatcher(matcher *FuzzyMatcher) *EditDistanceMatcher {
	return &EditDistanceMatcher{matcher: matcher}
}

func (em *EditDistanceMatcher) Tier() MatchTier { return TierEditDistance }

func (em *EditDistanceMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	if em.matcher == nil {
		return false, 0
	}
	// the tier constant is returned, not the similarity
	if em.matcher.Match(c.queryNorm, c.valueNorm) {
		return true, config.EditDistanceWeight
	}
	return false, 0
}

// PhoneticMatcher detects intersecting phonetic code sets of the raw inputs
type PhoneticMatcher struct {
	coder *phonetic.Coder
}

func NewPhoneticMatcher(coder *phonetic.Coder) *PhoneticMatcher {
	return &PhoneticMatcher{coder: coder}
}

func (pm *PhoneticMatcher) Tier() MatchTier { return TierPhonetic }

func (pm *PhoneticMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	if pm.coder == nil {
		return false, 0
	}
	if pm.coder.Matches(c.query, c.value) {
		return true, config.PhoneticWeight
	}
	return false, 0
}

// SubstringMatcher detects the query inside the value
type SubstringMatcher struct{}

func (sm *SubstringMatcher) Tier() MatchTier { return TierSubstring }

func (sm *SubstringMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	if strings.Contains(c.valueNorm, c.queryNorm) {
		return true, config.SubstringWeight
	}
	return false, 0
}

// PhoneticNormalizedMatcher detects equality after PhoneticNormalize
type PhoneticNormalizedMatcher struct{}

func (pn *PhoneticNormalizedMatcher) Tier() MatchTier { return TierPhoneticNormalized }

func (pn *PhoneticNormalizedMatcher) Detect(c *comparison, config ScoreLayers) (bool, float64) {
	q := PhoneticNormalize(c.queryLower)
	v := PhoneticNormalize(c.valueLower)
	if q != "" && q == v {
		return true, config.PhoneticNormalizedWeight
	}
	return false, 0
}
