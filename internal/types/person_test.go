package types

import (
	"encoding/json"
	"testing"
)

func TestPersonFromMap(t *testing.T) {
	p := PersonFromMap(map[string]string{
		"id_number":  " 200000001 ",
		"first_name": "אור",
		"last_name":  "כהן ",
		"city":       "תל אביב",
	})

	if p.ID != "200000001" {
		t.Errorf("Expected trimmed ID, got %q", p.ID)
	}
	if p.LastName != "כהן" {
		t.Errorf("Expected trimmed last name, got %q", p.LastName)
	}
	if p.Street != "" || p.HouseNumber != "" {
		t.Errorf("Expected missing keys to be empty, got street=%q house=%q", p.Street, p.HouseNumber)
	}
	if p.Field(FieldCity) != "תל אביב" {
		t.Errorf("Field(city) = %q", p.Field(FieldCity))
	}
	if p.Field(FieldName("unknown")) != "" {
		t.Errorf("Expected unknown field to be empty")
	}
}

func TestPersonDerivedFields(t *testing.T) {
	tests := []struct {
		name    string
		p       PersonRecord
		full    string
		address string
	}{
		{
			name:    "complete",
			p:       PersonRecord{FirstName: "אור", LastName: "כהן", Street: "הרצל", HouseNumber: "12", City: "תל אביב"},
			full:    "אור כהן",
			address: "הרצל 12, תל אביב",
		},
		{
			name:    "no city",
			p:       PersonRecord{FirstName: "Tal", Street: "Bialik", HouseNumber: "5"},
			full:    "Tal",
			address: "Bialik 5",
		},
		{
			name:    "city only",
			p:       PersonRecord{LastName: "Levi", City: "Haifa"},
			full:    "Levi",
			address: "Haifa",
		},
		{
			name:    "empty",
			p:       PersonRecord{},
			full:    "",
			address: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.FullName(); got != tt.full {
				t.Errorf("FullName() = %q, want %q", got, tt.full)
			}
			if got := tt.p.FullAddress(); got != tt.address {
				t.Errorf("FullAddress() = %q, want %q", got, tt.address)
			}
		})
	}
}

func TestQuerySpec(t *testing.T) {
	q := NewQuerySpec(map[string]string{"last_name": "  כהן ", "city": "   "}, true)

	if q.LastName != "כהן" {
		t.Errorf("Expected trimmed last name, got %q", q.LastName)
	}
	if q.City != "" {
		t.Errorf("Expected blank city to be absent, got %q", q.City)
	}
	if !q.UsePhonetic {
		t.Errorf("Expected UsePhonetic to be kept")
	}
	if !q.HasAnyField() {
		t.Errorf("Expected HasAnyField to be true")
	}

	blank := QuerySpec{FirstName: "  ", UsePhonetic: true}
	if blank.HasAnyField() {
		t.Errorf("Expected whitespace-only query to have no fields")
	}
	if blank.Normalized().FirstName != "" {
		t.Errorf("Expected Normalized to trim fields")
	}
}

func TestMatchResultOrderedFieldScores(t *testing.T) {
	m := MatchResult{
		FieldScores: map[FieldName]FieldScore{
			FieldCity:      {Field: FieldCity, Score: 100},
			FieldFirstName: {Field: FieldFirstName, Score: 90},
			FieldStreet:    {Field: FieldStreet, Score: 85},
		},
	}

	ordered := m.OrderedFieldScores()
	want := []FieldName{FieldFirstName, FieldStreet, FieldCity}
	if len(ordered) != len(want) {
		t.Fatalf("Expected %d scores, got %d", len(want), len(ordered))
	}
	for i, f := range want {
		if ordered[i].Field != f {
			t.Errorf("position %d: expected %s, got %s", i, f, ordered[i].Field)
		}
	}
}

func TestMatchResultJSON(t *testing.T) {
	m := MatchResult{
		Person:      PersonRecord{ID: "1", FirstName: "Or"},
		Score:       87.5,
		FieldScores: map[FieldName]FieldScore{FieldFirstName: {Field: FieldFirstName, Score: 87.5, Tier: "prefix"}},
	}

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"record", "score", "field_scores"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in JSON output", key)
		}
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{87.5, 87.5},
		{88.888888, 88.89},
		{0, 0},
		{100, 100},
		{66.666, 66.67},
	}
	for _, tt := range tests {
		if got := RoundScore(tt.in); got != tt.want {
			t.Errorf("RoundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
