// Package earthquake estimates seismic risk from site soil conditions,
// design ground motion, fault proximity and landslide susceptibility.
package earthquake

import (
	"context"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// Component names used in composite errors.
const (
	ComponentVs30           = "vs30"
	ComponentFaultProximity = "fault proximity"
	ComponentGroundMotion   = "peak ground acceleration"
	ComponentLandslide      = "landslide"
)

// SiteProvider reports the shear-wave velocity of the top 30 m of soil.
type SiteProvider interface {
	Vs30(ctx context.Context, p geo.Point) (hazard.Value, error)
}

// GroundMotionProvider reports uniform-hazard peak ground acceleration
// values (g) for a site.
type GroundMotionProvider interface {
	PGA(ctx context.Context, p geo.Point, site SiteClass, risk RiskCategory) ([]hazard.Value, error)
}

// FaultProvider reports the distance from a point to the nearest mapped fault.
type FaultProvider interface {
	NearestFaultKm(ctx context.Context, p geo.Point) (hazard.Value, error)
}

// BuildingProvider reports the building tag of the structure at a point,
// or "" when none is mapped.
type BuildingProvider interface {
	BuildingTag(ctx context.Context, p geo.Point) (string, error)
}

// LandslideSource reports landslide susceptibility in [0,1] at a point.
type LandslideSource interface {
	Value(ctx context.Context, p geo.Point) (hazard.Value, error)
}

// Assessment is the seismic picture at a location.
type Assessment struct {
	Location geo.Point

	Vs30         hazard.Value
	SiteClass    SiteClass
	BuildingTag  string
	RiskCategory RiskCategory

	FaultDistanceKm hazard.Value
	PGAValues       []hazard.Value

	FaultProximity hazard.Value
	GroundMotion   hazard.Value
	Landslide      hazard.Value

	// LandslideIncluded reports whether a landslide source contributed.
	LandslideIncluded bool

	// Risk is the composite; set only when every component is present.
	Risk float64
}
