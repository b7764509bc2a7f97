package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/standardbeagle/idlocator/internal/types"
)

// SearchPersonParams are the arguments of the search_person tool
type SearchPersonParams struct {
	IDNumber    string `json:"id_number,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Street      string `json:"street,omitempty"`
	City        string `json:"city,omitempty"`
	HouseNumber string `json:"house_number,omitempty"`
	UsePhonetic *bool  `json:"use_phonetic,omitempty"`
	Max         int    `json:"max,omitempty"`
}

// UnmarshalJSON accepts numbers where strings are expected; clients routinely
// send id_number and house_number as JSON numbers. Key names are matched
// case-insensitively and "-" is treated as "_".
func (p *SearchPersonParams) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// "id" is an alias; id_number wins when both are sent
	var idAlias string
	text := map[string]*string{
		"id_number":    &p.IDNumber,
		"id":           &idAlias,
		"first_name":   &p.FirstName,
		"last_name":    &p.LastName,
		"street":       &p.Street,
		"city":         &p.City,
		"house_number": &p.HouseNumber,
	}

	for key, value := range raw {
		key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
		if target, ok := text[key]; ok {
			s, err := stringValue(value)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*target = s
			continue
		}

		switch key {
		case "use_phonetic":
			var b bool
			if err := json.Unmarshal(value, &b); err != nil {
				return fmt.Errorf("use_phonetic: expected boolean")
			}
			p.UsePhonetic = &b
		case "max":
			if err := json.Unmarshal(value, &p.Max); err != nil {
				return fmt.Errorf("max: expected integer")
			}
		default:
			// unknown keys are ignored
		}
	}

	if p.IDNumber == "" {
		p.IDNumber = idAlias
	}
	return nil
}

func stringValue(value json.RawMessage) (string, error) {
	value = bytes.TrimSpace(value)
	if len(value) == 0 || bytes.Equal(value, []byte("null")) {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s, nil
	}

	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	if err := dec.Decode(&n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("expected string or number, got %s", string(value))
}

// Query converts the parameters to a query; phonetic matching defaults on
func (p SearchPersonParams) Query() types.QuerySpec {
	usePhonetic := true
	if p.UsePhonetic != nil {
		usePhonetic = *p.UsePhonetic
	}
	return types.QuerySpec{
		ID:          p.IDNumber,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Street:      p.Street,
		City:        p.City,
		HouseNumber: p.HouseNumber,
		UsePhonetic: usePhonetic,
	}.Normalized()
}
