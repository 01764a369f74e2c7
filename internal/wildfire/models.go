// Package wildfire scores wildfire exposure at a location from USFS raster
// and fire-occurrence layers.
package wildfire

import (
	"context"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// Component names used in composite errors.
const (
	ComponentBurnProbability       = "burn probability"
	ComponentHousingUnitRisk       = "housing unit risk"
	ComponentFireDensity           = "fire density"
	ComponentSuppressionDifficulty = "suppression difficulty"
)

// Provider fetches the raw wildfire indicators for a single point.
type Provider interface {
	// BurnProbability returns the wildfire hazard potential pixel value.
	BurnProbability(ctx context.Context, p geo.Point) (hazard.Value, error)

	// HousingUnitRisk returns the housing unit risk pixel value.
	HousingUnitRisk(ctx context.Context, p geo.Point) (hazard.Value, error)

	// SuppressionDifficulty returns the 90th percentile suppression
	// difficulty index near p.
	SuppressionDifficulty(ctx context.Context, p geo.Point) (hazard.Value, error)

	// FireCount returns the number of recorded fires within radiusKm of p.
	FireCount(ctx context.Context, p geo.Point, radiusKm float64) (int, error)
}

// Raw holds the indicators as reported upstream.
type Raw struct {
	BurnProbability       hazard.Value `json:"burnProbability"`
	HousingUnitRisk       hazard.Value `json:"housingUnitRisk"`
	SuppressionDifficulty hazard.Value `json:"suppressionDifficulty"`
	FireCount             int          `json:"fireCount"`
}

// Assessment is the normalized wildfire picture at a location.
type Assessment struct {
	Location geo.Point
	Raw      Raw

	BurnProbability       hazard.Value
	HousingUnitRisk       hazard.Value
	SuppressionDifficulty hazard.Value
	FireDensity           hazard.Value

	// Weighted is the composite; set only when every component is present.
	Weighted float64
}
