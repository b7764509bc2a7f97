package types

import (
	"math"
	"strings"
)

// FieldName identifies one searchable attribute of a person record.
// The string values double as the keys of the flat CSV/JSON row format.
type FieldName string

const (
	FieldID          FieldName = "id_number"
	FieldFirstName   FieldName = "first_name"
	FieldLastName    FieldName = "last_name"
	FieldStreet      FieldName = "street"
	FieldCity        FieldName = "city"
	FieldHouseNumber FieldName = "house_number"
)

// FieldOrder is the canonical evaluation and display order of record fields
var FieldOrder = []FieldName{
	FieldID,
	FieldFirstName,
	FieldLastName,
	FieldStreet,
	FieldCity,
	FieldHouseNumber,
}

// PersonRecord is an immutable person entry. Absent attributes are empty strings.
type PersonRecord struct {
	ID          string `json:"id_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	HouseNumber string `json:"house_number"`
}

// PersonFromMap builds a record from a flat string-keyed row.
// Missing keys become empty fields; values are trimmed.
func PersonFromMap(row map[string]string) PersonRecord {
	get := func(f FieldName) string {
		return strings.TrimSpace(row[string(f)])
	}
	return PersonRecord{
		ID:          get(FieldID),
		FirstName:   get(FieldFirstName),
		LastName:    get(FieldLastName),
		Street:      get(FieldStreet),
		City:        get(FieldCity),
		HouseNumber: get(FieldHouseNumber),
	}
}

// Field returns the value of the named field, or "" for unknown names
func (p PersonRecord) Field(name FieldName) string {
	switch name {
	case FieldID:
		return p.ID
	case FieldFirstName:
		return p.FirstName
	case FieldLastName:
		return p.LastName
	case FieldStreet:
		return p.Street
	case FieldCity:
		return p.City
	case FieldHouseNumber:
		return p.HouseNumber
	}
	return ""
}

// FullName joins first and last name
func (p PersonRecord) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// FullAddress formats "street house, city", dropping dangling separators
// when parts are missing.
func (p PersonRecord) FullAddress() string {
	return strings.Trim(p.Street+" "+p.HouseNumber+", "+p.City, ", ")
}

// QuerySpec holds the optional query fields of a search.
// An empty field is absent and imposes no constraint.
type QuerySpec struct {
	ID          string `json:"id_number,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	UsePhonetic bool   `json:"use_phonetic"`
}

// NewQuerySpec builds a trimmed query from a flat row using the record field keys
func NewQuerySpec(fields map[string]string, usePhonetic bool) QuerySpec {
	p := PersonFromMap(fields)
	return QuerySpec{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Street:      p.Street,
		City:        p.City,
		HouseNumber: p.HouseNumber,
		UsePhonetic: usePhonetic,
	}
}

// Normalized returns a copy with every field trimmed
func (q QuerySpec) Normalized() QuerySpec {
	return QuerySpec{
		ID:          strings.TrimSpace(q.ID),
		FirstName:   strings.TrimSpace(q.FirstName),
		LastName:    strings.TrimSpace(q.LastName),
		Street:      strings.TrimSpace(q.Street),
		City:        strings.TrimSpace(q.City),
		HouseNumber: strings.TrimSpace(q.HouseNumber),
		UsePhonetic: q.UsePhonetic,
	}
}

// Field returns the trimmed query value for the named field
func (q QuerySpec) Field(name FieldName) string {
	switch name {
	case FieldID:
		return strings.TrimSpace(q.ID)
	case FieldFirstName:
		return strings.TrimSpace(q.FirstName)
	case FieldLastName:
		return strings.TrimSpace(q.LastName)
	case FieldStreet:
		return strings.TrimSpace(q.Street)
	case FieldCity:
		return strings.TrimSpace(q.City)
	case FieldHouseNumber:
		return strings.TrimSpace(q.HouseNumber)
	}
	return ""
}

// HasAnyField reports whether at least one query field is present
func (q QuerySpec) HasAnyField() bool {
	for _, f := range FieldOrder {
		if q.Field(f) != "" {
			return true
		}
	}
	return false
}

// FieldScore is the confidence (0-100) a single field contributed to a match
type FieldScore struct {
	Field FieldName `json:"field"`
	Score float64   `json:"score"`
	Tier  string    `json:"tier,omitempty"`
}

// MatchResult is one ranked candidate. It is never mutated after creation.
type MatchResult struct {
	Person      PersonRecord             `json:"record"`
	Score       float64                  `json:"score"`
	FieldScores map[FieldName]FieldScore `json:"field_scores"`
}

// OrderedFieldScores returns the field scores in FieldOrder
func (m MatchResult) OrderedFieldScores() []FieldScore {
	out := make([]FieldScore, 0, len(m.FieldScores))
	for _, f := range FieldOrder {
		if fs, ok := m.FieldScores[f]; ok {
			out = append(out, fs)
		}
	}
	return out
}

// RoundScore rounds to two decimals, the precision of all reported scores
func RoundScore(v float64) float64 {
	return math.Round(v*100) / 100
}
