package hazard

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoComponents is returned when a composite is requested over nothing.
var ErrNoComponents = errors.New("composite has no components")

// Component is one weighted input of a composite score.
type Component struct {
	Name   string
	Score  Value
	Weight float64
}

// MissingComponentError reports the first component without data. A missing
// sub-score fails the whole composite; nothing is renormalized.
type MissingComponentError struct {
	Name string
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("missing hazard component %q", e.Name)
}

// WeightedSum returns Σ score·weight. Weights are used as given and need not
// sum to 1.
func WeightedSum(components ...Component) (float64, error) {
	if len(components) == 0 {
		return 0, ErrNoComponents
	}
	var total float64
	for _, c := range components {
		v, ok := c.Score.Get()
		if !ok {
			return 0, &MissingComponentError{Name: c.Name}
		}
		total += v * c.Weight
	}
	return total, nil
}

// SqrtMean returns the mean of the square roots of the component scores.
// Weights are ignored. Negative scores count as 0.
func SqrtMean(components ...Component) (float64, error) {
	if len(components) == 0 {
		return 0, ErrNoComponents
	}
	var total float64
	for _, c := range components {
		v, ok := c.Score.Get()
		if !ok {
			return 0, &MissingComponentError{Name: c.Name}
		}
		total += math.Sqrt(math.Max(v, 0))
	}
	return total / float64(len(components)), nil
}

// IsMissingComponent reports whether err is a MissingComponentError.
func IsMissingComponent(err error) bool {
	var mc *MissingComponentError
	return errors.As(err, &mc)
}
