// Package flood classifies river flood risk from forecast discharge.
package flood

import (
	"context"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// Provider reports the forecast river discharge (m³/s) for today at a point.
type Provider interface {
	RiverDischarge(ctx context.Context, p geo.Point) (hazard.Value, error)
}

// Level is a coarse flood risk label.
type Level string

const (
	LevelUnknown  Level = "Unknown"
	LevelLow      Level = "Low"
	LevelModerate Level = "Moderate"
	LevelHigh     Level = "High"
)

// Discharge thresholds in m³/s. Both are exclusive.
const (
	ModerateDischarge = 100.0
	HighDischarge     = 200.0
)

// Classify maps a river discharge to a flood level.
func Classify(discharge hazard.Value) Level {
	v, ok := discharge.Get()
	switch {
	case !ok:
		return LevelUnknown
	case v > HighDischarge:
		return LevelHigh
	case v > ModerateDischarge:
		return LevelModerate
	default:
		return LevelLow
	}
}
