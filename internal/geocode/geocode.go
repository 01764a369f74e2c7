// Package geocode resolves free-form addresses to coordinates.
package geocode

import (
	"context"
	"errors"

	"github.com/hazardscope/hazardscope/internal/geo"
)

// ErrAddressNotFound is returned when the geocoder has no match for an address.
var ErrAddressNotFound = errors.New("address not found")

// Location is a geocoded address.
type Location struct {
	Point       geo.Point
	DisplayName string
}

// Geocoder resolves an address to its best match.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*Location, error)
}
