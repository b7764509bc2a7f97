package semantic

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// NormalizedEditDistance returns the Levenshtein similarity of a and b:
// 1 - distance / length of the longer string, counted in runes.
// Two empty strings score 1.0, exactly one empty string scores 0.0.
func NormalizedEditDistance(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}

	distance := edlib.LevenshteinDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

// FuzzyMatcher applies a similarity threshold to NormalizedEditDistance
type FuzzyMatcher struct {
	threshold float64
}

// NewFuzzyMatcher creates a matcher; thresholds outside (0, 1] fall back to 0.8
func NewFuzzyMatcher(threshold float64) *FuzzyMatcher {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultScoreLayers.EditDistanceThreshold
	}
	return &FuzzyMatcher{threshold: threshold}
}

// Match checks if two strings are similar within the configured threshold
func (fm *FuzzyMatcher) Match(a, b string) bool {
	return NormalizedEditDistance(a, b) >= fm.threshold
}
