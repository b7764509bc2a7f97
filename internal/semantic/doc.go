// Package semantic scores how well a query value matches a record field.
//
// Text fields go through an ordered cascade of match tiers. The first tier
// that fires decides the confidence; its fixed score is returned, never the
// raw similarity that triggered it.
//
// # Match Tiers
//
//  1. Exact - case-folded equality
//  2. Nickname - curated nickname/full-name pairs, both directions
//  3. Abbreviation - curated abbreviation/full-form pairs, after hyphen and quote normalization
//  4. Prefix - the value starts with the query
//  5. Edit distance - normalized Levenshtein similarity above a threshold
//  6. Phonetic - intersecting phonetic code sets (see package phonetic)
//  7. Substring - the query occurs inside the value
//  8. Phonetic normalized - equality after folding confusable letters and dropping silent ones
//
// Tiers 6 and 8 only run when phonetic matching is requested.
//
// House numbers use their own scorer: exact, or prefix in either direction
// with a small penalty when only one side is purely numeric.
//
// # Core Components
//
// FieldScorer: runs the cascade with a ScoreLayers configuration and a Lexicon.
//
// FuzzyMatcher: rune-based Levenshtein similarity (go-edlib).
//
// Lexicon: immutable nickname and abbreviation tables with precomputed
// reverse indexes, optionally extended from a TOML file.
//
// # Usage Example
//
//	scorer := semantic.NewFieldScorer(semantic.DefaultScoreLayers, semantic.DefaultLexicon(), nil)
//	m := scorer.ScoreText("יוסי", "יוסף", true)
//	// m.Score == 0.9, m.Tier == semantic.TierNickname
package semantic
