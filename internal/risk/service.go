// Package risk assembles per-address hazard summaries from the individual
// hazard services.
package risk

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hazardscope/hazardscope/internal/airquality"
	"github.com/hazardscope/hazardscope/internal/earthquake"
	"github.com/hazardscope/hazardscope/internal/flood"
	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/geocode"
	"github.com/hazardscope/hazardscope/internal/hazard"
	"github.com/hazardscope/hazardscope/internal/wildfire"
)

// ErrEmptyAddress is returned when a summary is requested without an address.
var ErrEmptyAddress = errors.New("address is required")

// Recommendations are returned with every full summary.
var Recommendations = []string{
	"Install smoke detectors",
	"Consider flood insurance",
	"Install a security system",
	"Use air purifiers",
}

// WildfireAssessor scores wildfire exposure at a point.
type WildfireAssessor interface {
	Assess(ctx context.Context, p geo.Point) (*wildfire.Assessment, error)
}

// EarthquakeAssessor scores seismic exposure at a point.
type EarthquakeAssessor interface {
	Assess(ctx context.Context, p geo.Point) (*earthquake.Assessment, error)
}

// ServiceConfig holds the collaborators of the summary service.
type ServiceConfig struct {
	Geocoder   geocode.Geocoder
	Wildfire   WildfireAssessor
	Earthquake EarthquakeAssessor
	AirQuality airquality.Provider
	Flood      flood.Provider
	Logger     zerolog.Logger
}

// Service builds hazard summaries for addresses.
type Service struct {
	geocoder   geocode.Geocoder
	wildfire   WildfireAssessor
	earthquake EarthquakeAssessor
	airQuality airquality.Provider
	flood      flood.Provider
	logger     zerolog.Logger
}

// NewService creates a new summary service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		geocoder:   cfg.Geocoder,
		wildfire:   cfg.Wildfire,
		earthquake: cfg.Earthquake,
		airQuality: cfg.AirQuality,
		flood:      cfg.Flood,
		logger:     cfg.Logger.With().Str("component", "risk").Logger(),
	}
}

// FireSummary is the wildfire breakdown for one address.
type FireSummary struct {
	Location geocode.Location
	Wildfire *wildfire.Assessment
}

// Summary is the multi-hazard picture for one address.
type Summary struct {
	Location geocode.Location

	AirQualityIndex    hazard.Value
	AirQualityCategory airquality.Category

	RiverDischarge hazard.Value
	FloodLevel     flood.Level

	Earthquake *earthquake.Assessment

	Recommendations []string
}

// FireRiskSummary geocodes address and scores its wildfire exposure.
func (s *Service) FireRiskSummary(ctx context.Context, address string) (*FireSummary, error) {
	loc, err := s.locate(ctx, address)
	if err != nil {
		return nil, err
	}

	assessment, err := s.wildfire.Assess(ctx, loc.Point)
	if err != nil {
		return nil, fmt.Errorf("wildfire risk: %w", err)
	}

	return &FireSummary{Location: *loc, Wildfire: assessment}, nil
}

// RiskSummary geocodes address and gathers air quality, flood and
// earthquake risk concurrently. Any failure fails the whole summary; no data
// for air quality or flood is reported as such rather than failing.
func (s *Service) RiskSummary(ctx context.Context, address string) (*Summary, error) {
	loc, err := s.locate(ctx, address)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Location: *loc}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		aqi, err := s.airQuality.CurrentUSAQI(gctx, loc.Point)
		if err != nil {
			return fmt.Errorf("air quality: %w", err)
		}
		summary.AirQualityIndex = aqi
		summary.AirQualityCategory = airquality.Categorize(aqi)
		return nil
	})
	g.Go(func() error {
		discharge, err := s.flood.RiverDischarge(gctx, loc.Point)
		if err != nil {
			return fmt.Errorf("flood risk: %w", err)
		}
		summary.RiverDischarge = discharge
		summary.FloodLevel = flood.Classify(discharge)
		return nil
	})
	g.Go(func() error {
		assessment, err := s.earthquake.Assess(gctx, loc.Point)
		if err != nil {
			return fmt.Errorf("earthquake risk: %w", err)
		}
		summary.Earthquake = assessment
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary.Recommendations = append([]string(nil), Recommendations...)

	s.logger.Debug().
		Stringer("location", loc.Point).
		Str("flood", string(summary.FloodLevel)).
		Stringer("aqi", summary.AirQualityIndex).
		Float64("earthquake", summary.Earthquake.Risk).
		Msg("risk summary built")

	return summary, nil
}

func (s *Service) locate(ctx context.Context, address string) (*geocode.Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}

	loc, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		if !errors.Is(err, geocode.ErrAddressNotFound) {
			s.logger.Error().Err(err).Msg("geocoding failed")
		}
		return nil, err
	}
	return loc, nil
}
