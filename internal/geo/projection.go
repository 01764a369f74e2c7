package geo

import (
	"math"

	"github.com/go-spatial/proj"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// ToWebMercator projects a WGS84 point to EPSG:3857.
func ToWebMercator(p Point) Projected {
	m := project.WGS84.ToMercator(orb.Point{p.Lon, p.Lat})
	return Projected{X: m[0], Y: m[1]}
}

// FromWebMercator converts an EPSG:3857 coordinate back to WGS84.
func FromWebMercator(m Projected) Point {
	g := project.Mercator.ToWGS84(orb.Point{m.X, m.Y})
	return Point{Lat: g[1], Lon: g[0]}
}

// EPSG:3310 is NAD83 / California Albers. The NAD83/WGS84 datum shift is
// below a metre and is ignored.
const californiaAlbersCode proj.EPSGCode = 3310

func init() {
	proj.CustomProjection(californiaAlbersCode,
		"+proj=aea +lat_1=34 +lat_2=40.5 +lat_0=0 +lon_0=-120 +x_0=0 +y_0=-4000000 +ellps=GRS80 +units=m +no_defs")
}

// ToCaliforniaAlbers projects a WGS84 point to EPSG:3310. A point the
// projection rejects comes back as NaN coordinates.
func ToCaliforniaAlbers(p Point) Projected {
	xy, err := proj.Convert(californiaAlbersCode, []float64{p.Lon, p.Lat})
	if err != nil || len(xy) < 2 {
		return Projected{X: math.NaN(), Y: math.NaN()}
	}
	return Projected{X: xy[0], Y: xy[1]}
}

// FromCaliforniaAlbers converts an EPSG:3310 coordinate back to WGS84.
func FromCaliforniaAlbers(xy Projected) Point {
	ll, err := proj.Inverse(californiaAlbersCode, []float64{xy.X, xy.Y})
	if err != nil || len(ll) < 2 {
		return Point{Lat: math.NaN(), Lon: math.NaN()}
	}
	return Point{Lat: ll[1], Lon: ll[0]}
}

// CaliforniaAlbers is ToCaliforniaAlbers as an orb.Projection for use with
// project.Geometry. orb points are [lon, lat].
var CaliforniaAlbers orb.Projection = func(p orb.Point) orb.Point {
	xy := ToCaliforniaAlbers(Point{Lat: p[1], Lon: p[0]})
	return orb.Point{xy.X, xy.Y}
}
