package engine

import (
	"fmt"

	"github.com/standardbeagle/idlocator/internal/types"
)

// Weights sets how much each field counts in the aggregate score
type Weights struct {
	FirstName   float64
	LastName    float64
	Street      float64
	City        float64
	HouseNumber float64
}

// DefaultWeights favors names over address parts
var DefaultWeights = Weights{
	FirstName:   3.0,
	LastName:    3.0,
	Street:      2.0,
	City:        1.5,
	HouseNumber: 1.5,
}

// For returns the weight of a scored field; id_number is never aggregated
func (w Weights) For(field types.FieldName) float64 {
	switch field {
	case types.FieldFirstName:
		return w.FirstName
	case types.FieldLastName:
		return w.LastName
	case types.FieldStreet:
		return w.Street
	case types.FieldCity:
		return w.City
	case types.FieldHouseNumber:
		return w.HouseNumber
	}
	return 0
}

// Validate requires every weight to be positive
func (w Weights) Validate() error {
	for _, f := range scoredFields {
		if v := w.For(f); v <= 0 {
			return fmt.Errorf("weight for %s must be positive, got %.2f", f, v)
		}
	}
	return nil
}
