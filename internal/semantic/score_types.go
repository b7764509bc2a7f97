package semantic

import "fmt"

// MatchTier names the cascade rule that produced a field score
type MatchTier string

const (
	TierExact              MatchTier = "exact"
	TierNickname           MatchTier = "nickname"
	TierAbbreviation       MatchTier = "abbreviation"
	TierPrefix             MatchTier = "prefix"
	TierEditDistance       MatchTier = "edit_distance"
	TierPhonetic           MatchTier = "phonetic"
	TierSubstring          MatchTier = "substring"
	TierPhoneticNormalized MatchTier = "phonetic_normalized"
	TierHousePrefix        MatchTier = "house_prefix"
	TierHouseMixedPrefix   MatchTier = "house_prefix_mixed"
	TierNone               MatchTier = "none"
)

// FieldMatch is the confidence (0.0-1.0) of one field comparison and the
// tier that produced it.
type FieldMatch struct {
	Score float64
	Tier  MatchTier
}

var noMatch = FieldMatch{Score: 0, Tier: TierNone}

// Matched reports whether the field contributes to a candidate
func (m FieldMatch) Matched() bool {
	return m.Score > 0
}

func (m FieldMatch) String() string {
	return fmt.Sprintf("FieldMatch{Score: %.2f, Tier: %s}", m.Score, m.Tier)
}

// ScoreLayers holds the fixed score of each text tier
type ScoreLayers struct {
	ExactWeight              float64
	NicknameWeight           float64
	AbbreviationWeight       float64
	PrefixWeight             float64
	EditDistanceWeight       float64
	PhoneticWeight           float64
	SubstringWeight          float64
	PhoneticNormalizedWeight float64

	// Minimum normalized edit-distance similarity for the edit distance tier
	EditDistanceThreshold float64
}

// DefaultScoreLayers is the canonical cascade. Scores strictly decrease with
// tier order, so a weaker rule can never outrank a stronger one.
var DefaultScoreLayers = ScoreLayers{
	ExactWeight:              1.0,
	NicknameWeight:           0.9,
	AbbreviationWeight:       0.9,
	PrefixWeight:             0.85,
	EditDistanceWeight:       0.8,
	PhoneticWeight:           0.75,
	SubstringWeight:          0.65,
	PhoneticNormalizedWeight: 0.60,

	EditDistanceThreshold: 0.8,
}

// House number scores are not configurable
const (
	houseExactScore       = 1.0
	housePrefixScore      = 0.95
	houseMixedPrefixScore = 0.90
)

// Validate checks every tier score and the threshold lie in (0, 1]
func (l ScoreLayers) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"exact", l.ExactWeight},
		{"nickname", l.NicknameWeight},
		{"abbreviation", l.AbbreviationWeight},
		{"prefix", l.PrefixWeight},
		{"edit_distance", l.EditDistanceWeight},
		{"phonetic", l.PhoneticWeight},
		{"substring", l.SubstringWeight},
		{"phonetic_normalized", l.PhoneticNormalizedWeight},
		{"edit_distance_threshold", l.EditDistanceThreshold},
	}
	for _, c := range checks {
		if c.value <= 0 || c.value > 1 {
			return fmt.Errorf("scoring %s must be in (0, 1], got %.3f", c.name, c.value)
		}
	}
	return nil
}
