// Package geo provides geographic points and the map projections used to
// query raster and vector hazard services.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPoint is returned when a coordinate falls outside the WGS84 range.
var ErrInvalidPoint = errors.New("invalid geographic point")

// Point is a WGS84 (EPSG:4326) coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Validate checks that the point lies within [-90,90] x [-180,180].
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) {
		return fmt.Errorf("%w: NaN coordinate", ErrInvalidPoint)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %f out of range", ErrInvalidPoint, p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %f out of range", ErrInvalidPoint, p.Lon)
	}
	return nil
}

// Offset returns the point shifted by the given number of degrees.
func (p Point) Offset(dLat, dLon float64) Point {
	return Point{Lat: p.Lat + dLat, Lon: p.Lon + dLon}
}

// String formats the point as "lat,lon".
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// Projected is a planar coordinate in metres.
type Projected struct {
	X float64
	Y float64
}

// Extent is an axis-aligned planar bounding box.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

// Envelope returns the square extent of the given half width around center.
func Envelope(center Projected, halfWidth float64) Extent {
	return Extent{
		MinX: center.X - halfWidth,
		MinY: center.Y - halfWidth,
		MaxX: center.X + halfWidth,
		MaxY: center.Y + halfWidth,
	}
}

// String formats the extent as "minx,miny,maxx,maxy", the ArcGIS mapExtent form.
func (e Extent) String() string {
	return fmt.Sprintf("%f,%f,%f,%f", e.MinX, e.MinY, e.MaxX, e.MaxY)
}
