package earthquake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hazardscope/hazardscope/internal/earthquake"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

func TestClassifySite(t *testing.T) {
	tests := []struct {
		vs30 float64
		want earthquake.SiteClass
	}{
		{1600, earthquake.SiteClassA},
		{1500.1, earthquake.SiteClassA},
		{1500, earthquake.SiteClassB},
		{760, earthquake.SiteClassB},
		{759.9, earthquake.SiteClassC},
		{360, earthquake.SiteClassC},
		{359, earthquake.SiteClassD},
		{180, earthquake.SiteClassD},
		{179.9, earthquake.SiteClassE},
		{120, earthquake.SiteClassE},
		{100, earthquake.SiteClassF},
		{0, earthquake.SiteClassF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, earthquake.ClassifySite(tt.vs30), "vs30 %v", tt.vs30)
	}
}

func TestClassifyBuilding(t *testing.T) {
	tests := map[string]earthquake.RiskCategory{
		"hospital":     earthquake.RiskCategoryIV,
		"Fire_Station": earthquake.RiskCategoryIV,
		"police":       earthquake.RiskCategoryIV,
		"school":       earthquake.RiskCategoryIII,
		"industrial":   earthquake.RiskCategoryIII,
		"GOVERNMENT":   earthquake.RiskCategoryIII,
		"yes":          earthquake.RiskCategoryII,
		"office":       earthquake.RiskCategoryII,
		"house":        earthquake.RiskCategoryI,
		" apartments ": earthquake.RiskCategoryI,
		"greenhouse":   earthquake.RiskCategoryI,
		"":             earthquake.RiskCategoryI,
	}

	for tag, want := range tests {
		assert.Equal(t, want, earthquake.ClassifyBuilding(tag), "tag %q", tag)
	}
}

func TestFaultProximity(t *testing.T) {
	assert.Equal(t, 1.0, earthquake.FaultProximity(hazard.Present(0)).Or(-1))
	assert.Equal(t, 1.0, earthquake.FaultProximity(hazard.Present(0.4)).Or(-1))
	assert.Equal(t, 0.25, earthquake.FaultProximity(hazard.Present(4)).Or(-1))
	assert.True(t, earthquake.FaultProximity(hazard.Missing()).IsMissing())
}

func TestUnitScore(t *testing.T) {
	assert.Equal(t, 1.0, earthquake.UnitScore(hazard.Present(1.7)).Or(-1))
	assert.Equal(t, 0.0, earthquake.UnitScore(hazard.Present(-0.2)).Or(-1))
	assert.Equal(t, 0.3, earthquake.UnitScore(hazard.Present(0.3)).Or(-1))
	assert.True(t, earthquake.UnitScore(hazard.Missing()).IsMissing())
}
