package hazard_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardscope/hazardscope/internal/hazard"
)

func TestNormalizeCutoff_SaturatesAtCutoff(t *testing.T) {
	for _, raw := range []float64{1000, 1000.5, 5000, math.MaxFloat64} {
		got, ok := hazard.NormalizeCutoff(hazard.Present(raw), 1000, 50).Get()
		require.True(t, ok)
		assert.Equal(t, 1.0, got, "raw %v", raw)
	}
}

func TestNormalizeCutoff_ZeroAtOrBelowFloor(t *testing.T) {
	for _, raw := range []float64{50, 49.9, 0, -300} {
		got, ok := hazard.NormalizeCutoff(hazard.Present(raw), 1000, 50).Get()
		require.True(t, ok)
		assert.Equal(t, 0.0, got, "raw %v", raw)
	}
}

func TestNormalizeCutoff_Monotonic(t *testing.T) {
	prev := -1.0
	for raw := 0.0; raw <= 1200; raw += 7.5 {
		got, ok := hazard.NormalizeCutoff(hazard.Present(raw), 1000, 50).Get()
		require.True(t, ok)
		assert.GreaterOrEqual(t, got, prev, "raw %v", raw)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
		prev = got
	}
}

func TestNormalizeCutoff_Missing(t *testing.T) {
	assert.True(t, hazard.NormalizeCutoff(hazard.Missing(), 1000, 50).IsMissing())
	assert.True(t, hazard.NormalizeCutoff(hazard.ParseRaw(nil), 1000, 50).IsMissing())
	assert.True(t, hazard.NormalizeCutoff(hazard.ParseRaw("NoData"), 1000, 50).IsMissing())
	assert.True(t, hazard.NormalizeCutoff(hazard.ParseRaw("abc"), 1000, 50).IsMissing())
}

func TestNormalizeCutoff_WildfireConstants(t *testing.T) {
	burn, _ := hazard.BurnProbabilityCutoff.Normalize(hazard.Present(500)).Get()
	assert.InDelta(t, 0.4737, burn, 1e-4)

	hu, _ := hazard.HousingUnitRiskCutoff.Normalize(hazard.Present(350)).Get()
	assert.InDelta(t, 0.5, hu, 1e-12)

	sdi, _ := hazard.NormalizeSDI(hazard.Present(20)).Get()
	assert.InDelta(t, 0.5, sdi, 1e-12)
}

func TestNormalizeCutoff_NumericString(t *testing.T) {
	got, ok := hazard.NormalizeSDI(hazard.ParseRaw("30")).Get()
	require.True(t, ok)
	assert.InDelta(t, 0.75, got, 1e-12)
}

func TestNormalizeDensity_ZeroCount(t *testing.T) {
	got, ok := hazard.NormalizeDensity(hazard.Present(0), hazard.DefaultDensityParams()).Get()
	require.True(t, ok)
	assert.Equal(t, 0.0, got)
}

func TestNormalizeDensity_Saturates(t *testing.T) {
	p := hazard.DefaultDensityParams()
	saturating := p.MaxDensity * p.Area() * p.Years

	got, ok := hazard.NormalizeDensity(hazard.Present(saturating), p).Get()
	require.True(t, ok)
	assert.InDelta(t, 1.0, got, 1e-12)

	got, _ = hazard.NormalizeDensity(hazard.Present(saturating*3), p).Get()
	assert.Equal(t, 1.0, got)
}

func TestNormalizeDensity_Formula(t *testing.T) {
	got, ok := hazard.NormalizeDensity(hazard.Present(10), hazard.DefaultDensityParams()).Get()
	require.True(t, ok)
	want := 10 / (math.Pi * 60 * 60 * 5) / 0.00049
	assert.InDelta(t, want, got, 1e-12)
	assert.InDelta(t, 0.3609, got, 1e-4)
}

func TestNormalizeDensity_NegativeCountClampsToZero(t *testing.T) {
	got, ok := hazard.NormalizeDensity(hazard.Present(-4), hazard.DefaultDensityParams()).Get()
	require.True(t, ok)
	assert.Equal(t, 0.0, got)
}

func TestNormalizeDensity_DegenerateParams(t *testing.T) {
	cases := map[string]hazard.DensityParams{
		"zero radius": {RadiusKm: 0, Years: 5, MaxDensity: 0.00049},
		"zero years":  {RadiusKm: 60, Years: 0, MaxDensity: 0.00049},
		"flat range":  {RadiusKm: 60, Years: 5, MinDensity: 0.1, MaxDensity: 0.1},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, hazard.NormalizeDensity(hazard.Present(10), p).IsMissing())
		})
	}
}

func TestNormalizeDensity_Missing(t *testing.T) {
	assert.True(t, hazard.NormalizeDensity(hazard.Missing(), hazard.DefaultDensityParams()).IsMissing())
}
