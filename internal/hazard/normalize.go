package hazard

import "math"

// Cutoff bounds for the quantile/cutoff normalizer.
type Cutoff struct {
	// High is the raw value at or above which the score saturates at 1.
	High float64
	// Floor is the raw value at or below which the score is 0.
	Floor float64
}

// Bounds used by the wildfire pipeline.
var (
	BurnProbabilityCutoff = Cutoff{High: 1000, Floor: 50}
	HousingUnitRiskCutoff = Cutoff{High: 700, Floor: 0}
	SuppressionCutoff     = Cutoff{High: 40, Floor: 0}
)

// NormalizeCutoff floors raw at minBound and scales it so that highCutoff
// maps to 1. Only the top is clamped: flooring already keeps the result
// non-negative while highCutoff > minBound.
func NormalizeCutoff(raw Value, highCutoff, minBound float64) Value {
	v, ok := raw.Get()
	if !ok {
		return Missing()
	}
	v = math.Max(minBound, v)
	normalized := (v - minBound) / (highCutoff - minBound)
	return Present(math.Min(normalized, 1.0))
}

// Normalize applies NormalizeCutoff with the receiver's bounds.
func (c Cutoff) Normalize(raw Value) Value {
	return NormalizeCutoff(raw, c.High, c.Floor)
}

// NormalizeSDI scales a suppression difficulty index with the default bounds.
func NormalizeSDI(sdi Value) Value {
	return SuppressionCutoff.Normalize(sdi)
}

// DensityParams configures NormalizeDensity.
type DensityParams struct {
	// RadiusKm is the radius of the circular search area.
	RadiusKm float64
	// Years is the observation window the count covers.
	Years float64
	// MinDensity and MaxDensity bound the annual density per km².
	MinDensity float64
	MaxDensity float64
}

// DefaultDensityParams matches the historical fire perimeter query: a 60 km
// radius over five years.
func DefaultDensityParams() DensityParams {
	return DensityParams{
		RadiusKm:   60,
		Years:      5,
		MinDensity: 0,
		MaxDensity: 0.00049,
	}
}

// Area returns the search area in km².
func (p DensityParams) Area() float64 {
	return math.Pi * p.RadiusKm * p.RadiusKm
}

// NormalizeDensity converts an event count within the search radius into an
// annualized density and min-max scales it into [0,1]. Degenerate parameters
// yield Missing rather than a division by zero.
func NormalizeDensity(count Value, p DensityParams) Value {
	c, ok := count.Get()
	if !ok {
		return Missing()
	}
	if p.RadiusKm <= 0 || p.Years <= 0 || p.MaxDensity <= p.MinDensity {
		return Missing()
	}
	density := c / (p.Area() * p.Years)
	normalized := (density - p.MinDensity) / (p.MaxDensity - p.MinDensity)
	return Present(math.Max(0, math.Min(normalized, 1)))
}
