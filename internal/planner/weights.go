package planner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Weights multiplies each scoring component before it is added to the total.
// The snow weight covers both the snow points and the extra snow bonus.
type Weights struct {
	Flight       float64 `json:"flightWeight" validate:"gte=0,lte=10"`
	Cold         float64 `json:"coldWeight" validate:"gte=0,lte=10"`
	Destination  float64 `json:"destinationWeight" validate:"gte=0,lte=10"`
	Snow         float64 `json:"snowWeight" validate:"gte=0,lte=10"`
	BeforeSevere float64 `json:"beforeSevereWeight" validate:"gte=0,lte=10"`
}

// DefaultWeights weighs every component equally.
func DefaultWeights() Weights {
	return Weights{
		Flight:       1.0,
		Cold:         1.0,
		Destination:  1.0,
		Snow:         1.0,
		BeforeSevere: 1.0,
	}
}

// Validate reports a weight outside [0, 10].
func (w Weights) Validate() error {
	return validate.Struct(w)
}

// LoadWeightsFromFile overlays weights from a JSON file on base. Keys missing
// from the file keep their base value.
func LoadWeightsFromFile(path string, base Weights) (Weights, error) {
	w := base
	b, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read weights file: %w", err)
	}
	if err := json.Unmarshal(b, &w); err != nil {
		return base, fmt.Errorf("unmarshal weights: %w", err)
	}
	return w, nil
}
