package earthquake

import (
	"strings"

	"github.com/hazardscope/hazardscope/internal/hazard"
)

// SiteClass is the ASCE 7 soil site class derived from vs30.
type SiteClass string

// Site classes from hard rock (A) to soft soil (F).
const (
	SiteClassA SiteClass = "A"
	SiteClassB SiteClass = "B"
	SiteClassC SiteClass = "C"
	SiteClassD SiteClass = "D"
	SiteClassE SiteClass = "E"
	SiteClassF SiteClass = "F"
)

// ClassifySite maps a vs30 shear-wave velocity (m/s) to a site class.
func ClassifySite(vs30 float64) SiteClass {
	switch {
	case vs30 > 1500:
		return SiteClassA
	case vs30 >= 760:
		return SiteClassB
	case vs30 >= 360:
		return SiteClassC
	case vs30 >= 180:
		return SiteClassD
	case vs30 >= 120:
		return SiteClassE
	default:
		return SiteClassF
	}
}

// RiskCategory is the ASCE 7 building risk category, I (lowest) to IV.
type RiskCategory string

const (
	RiskCategoryI   RiskCategory = "I"
	RiskCategoryII  RiskCategory = "II"
	RiskCategoryIII RiskCategory = "III"
	RiskCategoryIV  RiskCategory = "IV"
)

var buildingCategories = map[string]RiskCategory{
	"hospital":     RiskCategoryIV,
	"fire_station": RiskCategoryIV,
	"police":       RiskCategoryIV,

	"school":     RiskCategoryIII,
	"public":     RiskCategoryIII,
	"government": RiskCategoryIII,
	"industrial": RiskCategoryIII,

	"commercial": RiskCategoryII,
	"retail":     RiskCategoryII,
	"warehouse":  RiskCategoryII,
	"hotel":      RiskCategoryII,
	"office":     RiskCategoryII,
	"yes":        RiskCategoryII,

	"residential": RiskCategoryI,
	"house":       RiskCategoryI,
	"detached":    RiskCategoryI,
	"apartments":  RiskCategoryI,
}

// ClassifyBuilding maps an OpenStreetMap building tag to a risk category.
// Unknown and empty tags are category I.
func ClassifyBuilding(tag string) RiskCategory {
	if c, ok := buildingCategories[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return c
	}
	return RiskCategoryI
}

// FaultProximity turns a distance to the nearest fault into a score:
// 1 at or within one kilometre, 1/d beyond.
func FaultProximity(distanceKm hazard.Value) hazard.Value {
	d, ok := distanceKm.Get()
	if !ok {
		return hazard.Missing()
	}
	if d <= 1 {
		return hazard.Present(1)
	}
	return hazard.Present(1 / d)
}

// UnitScore clamps a present value into [0,1].
func UnitScore(v hazard.Value) hazard.Value {
	f, ok := v.Get()
	if !ok {
		return v
	}
	return hazard.Present(min(1, max(0, f)))
}
