// Package airquality describes the current US AQI at a location.
package airquality

import (
	"context"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// Provider reports the current US AQI at a point.
type Provider interface {
	CurrentUSAQI(ctx context.Context, p geo.Point) (hazard.Value, error)
}

// Category is the EPA descriptor for a US AQI reading.
type Category string

const (
	CategoryUnknown                     Category = "Unknown"
	CategoryGood                        Category = "Good"
	CategoryModerate                    Category = "Moderate"
	CategoryUnhealthyForSensitiveGroups Category = "Unhealthy for Sensitive Groups"
	CategoryUnhealthy                   Category = "Unhealthy"
	CategoryVeryUnhealthy               Category = "Very Unhealthy"
	CategoryHazardous                   Category = "Hazardous"
)

// Categorize maps a US AQI value to its EPA category.
func Categorize(aqi hazard.Value) Category {
	v, ok := aqi.Get()
	if !ok {
		return CategoryUnknown
	}
	switch {
	case v <= 50:
		return CategoryGood
	case v <= 100:
		return CategoryModerate
	case v <= 150:
		return CategoryUnhealthyForSensitiveGroups
	case v <= 200:
		return CategoryUnhealthy
	case v <= 300:
		return CategoryVeryUnhealthy
	default:
		return CategoryHazardous
	}
}
