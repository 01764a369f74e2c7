// Package landslide reads landslide susceptibility from a configured raster,
// either a local ESRI ASCII grid or a remote ArcGIS ImageServer.
//
// The NASA LHASA nowcast is published as a GeoTIFF. To use it as the local
// source, export it to a WGS84 ASCII grid first and point
// LANDSLIDE_RASTER_PATH at the result:
//
//	gdal_translate -of AAIGrid today.tif lhasa.asc
package landslide

import (
	"context"
	"fmt"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
	"github.com/hazardscope/hazardscope/internal/provider/arcgis"
)

// ProviderName identifies the remote raster provider.
const ProviderName = "landslide-raster"

// Source reports the landslide raster value at a point. Cells without data
// read as 0; points outside the raster read as Missing.
type Source interface {
	Value(ctx context.Context, p geo.Point) (hazard.Value, error)
}

// ImageServer reads the raster through ArcGIS identify.
type ImageServer struct {
	client *arcgis.Client
	url    string
}

// NewImageServer creates a Source backed by the ImageServer at serviceURL.
func NewImageServer(serviceURL string, httpClient arcgis.HTTPDoer) *ImageServer {
	return &ImageServer{client: arcgis.NewClient(httpClient), url: serviceURL}
}

// Value returns the pixel value under p. The service reports both empty
// cells and points off the raster as NoData, which reads as 0.
func (s *ImageServer) Value(ctx context.Context, p geo.Point) (hazard.Value, error) {
	result, err := s.client.Identify(ctx, s.url, arcgis.IdentifyRequest{Point: p, HalfWidth: 100})
	if err != nil {
		return hazard.Missing(), fmt.Errorf("landslide identify: %w", err)
	}
	v := result.First()
	if v.IsMissing() {
		return hazard.Present(0), nil
	}
	return v, nil
}
