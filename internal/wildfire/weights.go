package wildfire

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrNegativeWeight is returned when a configured weight is below zero.
var ErrNegativeWeight = errors.New("wildfire weight must not be negative")

// Weights are the coefficients of the wildfire composite. They are applied
// as given and need not sum to one.
type Weights struct {
	BurnProbability       float64 `json:"burn_probability"`
	HousingUnitRisk       float64 `json:"housing_unit_risk"`
	FireDensity           float64 `json:"fire_density"`
	SuppressionDifficulty float64 `json:"suppression_difficulty"`
}

// DefaultWeights returns the production coefficients.
func DefaultWeights() Weights {
	return Weights{
		BurnProbability:       0.25,
		HousingUnitRisk:       0.30,
		FireDensity:           0.30,
		SuppressionDifficulty: 0.15,
	}
}

// LoadWeightsFromFile overlays the JSON object in path onto DefaultWeights.
// Keys absent from the file keep their default. On error the defaults are
// returned alongside it.
func LoadWeightsFromFile(path string) (Weights, error) {
	w := DefaultWeights()
	b, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read weights file: %w", err)
	}
	loaded := w
	if err := json.Unmarshal(b, &loaded); err != nil {
		return w, fmt.Errorf("unmarshal weights: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return w, err
	}
	return loaded, nil
}

// Validate rejects negative coefficients.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"burn_probability":       w.BurnProbability,
		"housing_unit_risk":      w.HousingUnitRisk,
		"fire_density":           w.FireDensity,
		"suppression_difficulty": w.SuppressionDifficulty,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s=%g", ErrNegativeWeight, name, v)
		}
	}
	return nil
}
