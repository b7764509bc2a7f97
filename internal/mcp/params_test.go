package mcp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchPersonParams_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want SearchPersonParams
	}{
		{
			name: "strings",
			json: `{"first_name": "אור", "city": "תל אביב", "house_number": "12א"}`,
			want: SearchPersonParams{FirstName: "אור", City: "תל אביב", HouseNumber: "12א"},
		},
		{
			name: "numbers become strings",
			json: `{"id_number": 200000001, "house_number": 12}`,
			want: SearchPersonParams{IDNumber: "200000001", HouseNumber: "12"},
		},
		{
			name: "key variants",
			json: `{"First-Name": "Dan", "id": "5", "LAST_NAME": "Cohen"}`,
			want: SearchPersonParams{FirstName: "Dan", LastName: "Cohen", IDNumber: "5"},
		},
		{
			name: "id_number wins over id",
			json: `{"id": "5", "id_number": "200000001"}`,
			want: SearchPersonParams{IDNumber: "200000001"},
		},
		{
			name: "id_number wins over id in either order",
			json: `{"id_number": "200000001", "id": "5"}`,
			want: SearchPersonParams{IDNumber: "200000001"},
		},
		{
			name: "null and unknown keys",
			json: `{"street": null, "shoe_size": 44, "max": 3}`,
			want: SearchPersonParams{Max: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SearchPersonParams
			require.NoError(t, json.Unmarshal([]byte(tt.json), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchPersonParams_UnmarshalErrors(t *testing.T) {
	for _, input := range []string{
		`[]`,
		`{"city": true}`,
		`{"use_phonetic": 1}`,
		`{"max": "ten"}`,
	} {
		var p SearchPersonParams
		assert.Error(t, json.Unmarshal([]byte(input), &p), input)
	}
}

func TestSearchPersonParams_Query(t *testing.T) {
	q := SearchPersonParams{FirstName: "  אור ", City: "חיפה"}.Query()
	assert.Equal(t, "אור", q.FirstName)
	assert.Equal(t, "חיפה", q.City)
	assert.True(t, q.UsePhonetic, "phonetic defaults on")

	off := false
	q = SearchPersonParams{LastName: "Levi", UsePhonetic: &off}.Query()
	assert.False(t, q.UsePhonetic)
}
