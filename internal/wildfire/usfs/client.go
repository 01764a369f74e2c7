// Package usfs reads wildfire indicators from the USDA Forest Service
// Wildfire Risk to Communities and fire occurrence ArcGIS services.
package usfs

import (
	"context"
	"fmt"
	"strings"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
	"github.com/hazardscope/hazardscope/internal/provider/arcgis"
)

const (
	// ProviderName identifies the raster image services.
	ProviderName = "usfs-wildfire"

	// FireOccurrenceProviderName identifies the fire occurrence layer, which
	// is served from a different host than the rasters.
	FireOccurrenceProviderName = "usfs-fire-occurrence"

	// DefaultRasterBaseURL hosts the Wildfire Risk to Communities image services.
	DefaultRasterBaseURL = "https://apps.fs.usda.gov/fsgisx01/rest/services/RDW_Wildfire"

	// DefaultFireOccurrenceURL is the fire occurrence point layer.
	DefaultFireOccurrenceURL = "https://apps.fs.usda.gov/arcx/rest/services/EDW/EDW_FireOccurrenceAndPerimeter_01/MapServer/8"

	burnProbabilityService       = "RMRS_WRC_WildfireHazardPotential"
	housingUnitRiskService       = "RMRS_WRC_HousingUnitRisk"
	suppressionDifficultyService = "RMRS_Wildfire_Suppression_Difficulty_Index_90thPercentile"

	// pixelHalfWidth is the identify window around a point, in metres.
	pixelHalfWidth = 100.0

	// DefaultSuppressionRadiusKm is the window searched for the highest SDI.
	DefaultSuppressionRadiusKm = 60.0
)

// ClientConfig holds configuration for the USFS client.
type ClientConfig struct {
	// RasterBaseURL defaults to DefaultRasterBaseURL.
	RasterBaseURL string

	// FireOccurrenceURL defaults to DefaultFireOccurrenceURL.
	FireOccurrenceURL string

	// SuppressionRadiusKm defaults to DefaultSuppressionRadiusKm.
	SuppressionRadiusKm float64

	// HTTPClient executes raster requests; http.DefaultClient when nil.
	HTTPClient arcgis.HTTPDoer

	// FireOccurrenceHTTPClient executes fire occurrence queries. Defaults to
	// HTTPClient.
	FireOccurrenceHTTPClient arcgis.HTTPDoer
}

// Client implements wildfire.Provider against the USFS services.
type Client struct {
	arcgis              *arcgis.Client
	fires               *arcgis.Client
	rasterBaseURL       string
	fireOccurrenceURL   string
	suppressionRadiusKm float64
}

// NewClient creates a new USFS client.
func NewClient(cfg ClientConfig) *Client {
	rasterBaseURL := cfg.RasterBaseURL
	if rasterBaseURL == "" {
		rasterBaseURL = DefaultRasterBaseURL
	}
	fireURL := cfg.FireOccurrenceURL
	if fireURL == "" {
		fireURL = DefaultFireOccurrenceURL
	}
	radius := cfg.SuppressionRadiusKm
	if radius <= 0 {
		radius = DefaultSuppressionRadiusKm
	}

	fireHTTP := cfg.FireOccurrenceHTTPClient
	if fireHTTP == nil {
		fireHTTP = cfg.HTTPClient
	}

	return &Client{
		arcgis:              arcgis.NewClient(cfg.HTTPClient),
		fires:               arcgis.NewClient(fireHTTP),
		rasterBaseURL:       strings.TrimSuffix(rasterBaseURL, "/"),
		fireOccurrenceURL:   fireURL,
		suppressionRadiusKm: radius,
	}
}

func (c *Client) imageServer(name string) string {
	return c.rasterBaseURL + "/" + name + "/ImageServer"
}

// BurnProbability returns the wildfire hazard potential at p.
func (c *Client) BurnProbability(ctx context.Context, p geo.Point) (hazard.Value, error) {
	return c.pixel(ctx, burnProbabilityService, p)
}

// HousingUnitRisk returns the housing unit risk at p.
func (c *Client) HousingUnitRisk(ctx context.Context, p geo.Point) (hazard.Value, error) {
	return c.pixel(ctx, housingUnitRiskService, p)
}

func (c *Client) pixel(ctx context.Context, service string, p geo.Point) (hazard.Value, error) {
	result, err := c.arcgis.Identify(ctx, c.imageServer(service), arcgis.IdentifyRequest{
		Point:     p,
		HalfWidth: pixelHalfWidth,
	})
	if err != nil {
		return hazard.Missing(), fmt.Errorf("%s: %w", service, err)
	}
	return result.First(), nil
}

// SuppressionDifficulty returns the highest suppression difficulty index
// reported in a window around p.
func (c *Client) SuppressionDifficulty(ctx context.Context, p geo.Point) (hazard.Value, error) {
	result, err := c.arcgis.Identify(ctx, c.imageServer(suppressionDifficultyService), arcgis.IdentifyRequest{
		Point:          p,
		HalfWidth:      c.suppressionRadiusKm * 1000,
		AllPixelValues: true,
	})
	if err != nil {
		return hazard.Missing(), fmt.Errorf("%s: %w", suppressionDifficultyService, err)
	}
	return result.Max(), nil
}

// FireCount returns the number of recorded fires within radiusKm of p.
func (c *Client) FireCount(ctx context.Context, p geo.Point, radiusKm float64) (int, error) {
	n, err := c.fires.Count(ctx, c.fireOccurrenceURL, arcgis.CountRequest{
		Point:        p,
		RadiusMeters: radiusKm * 1000,
	})
	if err != nil {
		return 0, fmt.Errorf("fire occurrence: %w", err)
	}
	return n, nil
}
