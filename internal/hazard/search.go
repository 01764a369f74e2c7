package hazard

import (
	"context"
	"math"

	"github.com/hazardscope/hazardscope/internal/geo"
)

// KmPerDegree is the rough length of one degree used to turn a search radius
// into coordinate offsets.
const KmPerDegree = 111.0

// ProbeFunc looks up the raw hazard value at a single point.
type ProbeFunc func(ctx context.Context, p geo.Point) (Value, error)

// Offset is a latitude/longitude displacement in degrees.
type Offset struct {
	DLat float64
	DLon float64
}

// NeighborhoodOffsets returns the nine probe offsets in search order:
// center, N, S, E, W, NE, NW, SE, SW.
func NeighborhoodOffsets(radiusKm float64) []Offset {
	d := radiusKm / KmPerDegree
	diag := d / math.Sqrt2
	return []Offset{
		{0, 0},
		{d, 0},
		{-d, 0},
		{0, d},
		{0, -d},
		{diag, diag},
		{diag, -diag},
		{-diag, diag},
		{-diag, -diag},
	}
}

// SearchNearby probes the center and a fixed ring of eight points around it
// and returns the first present value. It stops at the first hit, returns
// Missing when every probe is empty and aborts on the first probe error.
// This is a nearest-valid-pixel heuristic over one ring only.
func SearchNearby(ctx context.Context, center geo.Point, radiusKm float64, probe ProbeFunc) (Value, error) {
	for _, o := range NeighborhoodOffsets(radiusKm) {
		if err := ctx.Err(); err != nil {
			return Missing(), err
		}
		v, err := probe(ctx, center.Offset(o.DLat, o.DLon))
		if err != nil {
			return Missing(), err
		}
		if !v.IsMissing() {
			return v, nil
		}
	}
	return Missing(), nil
}
