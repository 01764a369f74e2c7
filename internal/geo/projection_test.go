package geo_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardscope/hazardscope/internal/geo"
)

var testPoints = []geo.Point{
	{Lat: 37.77, Lon: -122.42},
	{Lat: 34.05, Lon: -118.24},
	{Lat: 41.9, Lon: -124.2},
	{Lat: 32.7, Lon: -114.6},
	{Lat: 0, Lon: 0},
	{Lat: -33.87, Lon: 151.21},
}

func TestWebMercator_KnownValues(t *testing.T) {
	origin := geo.ToWebMercator(geo.Point{Lat: 0, Lon: 0})
	assert.InDelta(t, 0, origin.X, 1e-9)
	assert.InDelta(t, 0, origin.Y, 1e-9)

	// lon 180 maps to half the equatorial circumference.
	edge := geo.ToWebMercator(geo.Point{Lat: 0, Lon: 180})
	assert.InDelta(t, 20037508.342789244, edge.X, 1e-6)

	sf := geo.ToWebMercator(geo.Point{Lat: 37.77, Lon: -122.42})
	assert.InDelta(t, -13627732.06, sf.X, 1)
	assert.InDelta(t, 4546985.28, sf.Y, 1)
}

func TestWebMercator_RoundTrip(t *testing.T) {
	for _, p := range testPoints {
		got := geo.FromWebMercator(geo.ToWebMercator(p))
		assert.InDelta(t, p.Lat, got.Lat, 1e-6, "lat for %s", p)
		assert.InDelta(t, p.Lon, got.Lon, 1e-6, "lon for %s", p)
	}
}

func TestCaliforniaAlbers_Origin(t *testing.T) {
	xy := geo.ToCaliforniaAlbers(geo.Point{Lat: 0, Lon: -120})
	assert.InDelta(t, 0, xy.X, 1e-3)
	assert.InDelta(t, -4000000, xy.Y, 1e-3)
}

func TestCaliforniaAlbers_SanFrancisco(t *testing.T) {
	xy := geo.ToCaliforniaAlbers(geo.Point{Lat: 37.77, Lon: -122.42})
	assert.InDelta(t, -212858.67, xy.X, 0.5)
	assert.InDelta(t, -24670.90, xy.Y, 0.5)
}

func TestCaliforniaAlbers_RoundTrip(t *testing.T) {
	for _, p := range testPoints[:4] {
		got := geo.FromCaliforniaAlbers(geo.ToCaliforniaAlbers(p))
		assert.InDelta(t, p.Lat, got.Lat, 1e-6, "lat for %s", p)
		assert.InDelta(t, p.Lon, got.Lon, 1e-6, "lon for %s", p)
	}
}

func TestCaliforniaAlbers_IsMetric(t *testing.T) {
	a := geo.ToCaliforniaAlbers(geo.Point{Lat: 37.2, Lon: -120})
	b := geo.ToCaliforniaAlbers(geo.Point{Lat: 37.3, Lon: -120})

	// A tenth of a degree of latitude is roughly 11.1 km.
	d := math.Hypot(b.X-a.X, b.Y-a.Y)
	assert.InDelta(t, 11116, d, 10)
	assert.InDelta(t, 0, a.X, 1e-3, "central meridian has x=0")
}

func TestCaliforniaAlbers_OrbProjectionMatches(t *testing.T) {
	p := geo.Point{Lat: 37.77, Lon: -122.42}
	want := geo.ToCaliforniaAlbers(p)
	got := geo.CaliforniaAlbers(orb.Point{p.Lon, p.Lat})
	assert.Equal(t, want.X, got[0])
	assert.Equal(t, want.Y, got[1])
}

func TestPoint_Validate(t *testing.T) {
	require.NoError(t, geo.Point{Lat: 90, Lon: -180}.Validate())

	for _, p := range []geo.Point{
		{Lat: 91, Lon: 0},
		{Lat: -90.1, Lon: 0},
		{Lat: 0, Lon: 180.5},
		{Lat: math.NaN(), Lon: 0},
	} {
		assert.ErrorIs(t, p.Validate(), geo.ErrInvalidPoint, "point %v", p)
	}
}

func TestEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		center geo.Projected
		want   geo.Extent
		str    string
	}{
		{
			name:   "positive center",
			center: geo.Projected{X: 10, Y: 20},
			want:   geo.Extent{MinX: -90, MinY: -80, MaxX: 110, MaxY: 120},
			str:    "-90.000000,-80.000000,110.000000,120.000000",
		},
		{
			name:   "negative northing",
			center: geo.Projected{X: 1000, Y: -500},
			want:   geo.Extent{MinX: 900, MinY: -600, MaxX: 1100, MaxY: -400},
			str:    "900.000000,-600.000000,1100.000000,-400.000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := geo.Envelope(tt.center, 100)
			assert.Equal(t, tt.want, e)
			assert.Equal(t, tt.str, e.String())
		})
	}
}
