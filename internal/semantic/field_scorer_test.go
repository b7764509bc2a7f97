package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/idlocator/internal/phonetic"
)

func TestScoreText_Cascade(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		value       string
		usePhonetic bool
		wantScore   float64
		wantTier    MatchTier
	}{
		{"exact case-folded", "Cohen", "cohen", true, 1.0, TierExact},
		{"exact hebrew", "כהן", " כהן ", false, 1.0, TierExact},
		{"nickname forward", "יוסי", "יוסף", false, 0.9, TierNickname},
		{"nickname reverse", "יוסף", "יוסי", false, 0.9, TierNickname},
		{"abbreviation with quotes", `ת"א`, "תל אביב", false, 0.9, TierAbbreviation},
		{"abbreviation reverse", "תל-אביב", `ת"א`, false, 0.9, TierAbbreviation},
		{"abbreviation with hyphen", "י-ם", "ירושלים", false, 0.9, TierAbbreviation},
		{"abbreviation before prefix", "דר", "דרך", false, 0.9, TierAbbreviation},
		{"prefix", "הרצ", "הרצל", false, 0.85, TierPrefix},
		{"hyphen normalized prefix", "בן-גוריון", "בן גוריון", false, 0.85, TierPrefix},
		{"edit distance", "Cohem", "Cohen", false, 0.8, TierEditDistance},
		{"phonetic", "שמעון", "סימון", true, 0.75, TierPhonetic},
		{"phonetic disabled", "שמעון", "סימון", false, 0, TierNone},
		{"substring", "ביב", "תל אביב", true, 0.65, TierSubstring},
		{"phonetic normalized", "הלוי", "לוי", true, 0.60, TierPhoneticNormalized},
		{"phonetic normalized disabled", "הלוי", "לוי", false, 0, TierNone},
		{"no match", "לוי", "כהן", true, 0, TierNone},
		{"empty query", "", "כהן", true, 0, TierNone},
		{"blank value", "כהן", "   ", true, 0, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ScoreText(tt.query, tt.value, tt.usePhonetic)
			assert.InDelta(t, tt.wantScore, m.Score, 1e-9)
			assert.Equal(t, tt.wantTier, m.Tier)
			assert.Equal(t, tt.wantScore > 0, m.Matched())
		})
	}
}

func TestScoreText_AlwaysInRange(t *testing.T) {
	inputs := []string{"", "a", "Cohen", "כהן", "מֹשֶׁה", `ת"א`, "12", "תל אביב", "---"}
	for _, q := range inputs {
		for _, v := range inputs {
			for _, phon := range []bool{true, false} {
				m := ScoreText(q, v, phon)
				assert.GreaterOrEqual(t, m.Score, 0.0)
				assert.LessOrEqual(t, m.Score, 1.0)
			}
		}
	}
}

func TestScoreHouseNumber(t *testing.T) {
	tests := []struct {
		query, value string
		want         float64
		tier         MatchTier
	}{
		{"12", "12", 1.0, TierExact},
		{" 5 ", "5", 1.0, TierExact},
		{"12", "12א", 0.90, TierHouseMixedPrefix},
		{"12א", "12", 0.90, TierHouseMixedPrefix},
		{"12א", "12אב", 0.95, TierHousePrefix},
		{"1", "12", 0.95, TierHousePrefix},
		{"7", "99", 0, TierNone},
		{"", "1", 0, TierNone},
		{"1", "", 0, TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.value, func(t *testing.T) {
			m := ScoreHouseNumber(tt.query, tt.value)
			assert.InDelta(t, tt.want, m.Score, 1e-9)
			assert.Equal(t, tt.tier, m.Tier)
		})
	}
}

func TestFieldScorer_CustomLayers(t *testing.T) {
	layers := DefaultScoreLayers
	layers.EditDistanceThreshold = 0.9
	require.NoError(t, layers.Validate())

	scorer := NewFieldScorer(layers, nil, phonetic.NewCoder(4))

	// similarity 0.8 no longer reaches the edit distance tier, phonetic catches it
	m := scorer.ScoreText("Cohem", "Cohen", true)
	assert.Equal(t, TierPhonetic, m.Tier)
	assert.InDelta(t, 0.75, m.Score, 1e-9)
	assert.Same(t, DefaultLexicon(), scorer.Lexicon())
}

func TestScoreLayers_Validate(t *testing.T) {
	assert.NoError(t, DefaultScoreLayers.Validate())

	bad := DefaultScoreLayers
	bad.PrefixWeight = 0
	assert.Error(t, bad.Validate())

	bad = DefaultScoreLayers
	bad.EditDistanceThreshold = 1.5
	assert.Error(t, bad.Validate())
}

func TestDefaultScoreLayers_Decreasing(t *testing.T) {
	l := DefaultScoreLayers
	ordered := []float64{
		l.ExactWeight,
		l.NicknameWeight,
		l.PrefixWeight,
		l.EditDistanceWeight,
		l.PhoneticWeight,
		l.SubstringWeight,
		l.PhoneticNormalizedWeight,
	}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i], ordered[i-1], "tier %d must score below tier %d", i, i-1)
	}
	assert.Equal(t, l.NicknameWeight, l.AbbreviationWeight)
}
