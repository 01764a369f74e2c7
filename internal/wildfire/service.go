package wildfire

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// DefaultBurnSearchRadiusKm is the reach of the burn probability neighborhood search.
const DefaultBurnSearchRadiusKm = 20.0

// ServiceConfig holds configuration for the wildfire service.
type ServiceConfig struct {
	Provider Provider
	Logger   zerolog.Logger

	// Weights defaults to DefaultWeights when zero.
	Weights Weights

	// BurnSearchRadiusKm defaults to DefaultBurnSearchRadiusKm.
	BurnSearchRadiusKm float64

	// Density defaults to hazard.DefaultDensityParams.
	Density hazard.DensityParams
}

// Service assesses wildfire risk.
type Service struct {
	provider     Provider
	logger       zerolog.Logger
	weights      Weights
	searchRadius float64
	density      hazard.DensityParams
}

// NewService creates a new wildfire service.
func NewService(cfg ServiceConfig) *Service {
	weights := cfg.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights()
	}
	radius := cfg.BurnSearchRadiusKm
	if radius <= 0 {
		radius = DefaultBurnSearchRadiusKm
	}
	density := cfg.Density
	if density == (hazard.DensityParams{}) {
		density = hazard.DefaultDensityParams()
	}

	return &Service{
		provider:     cfg.Provider,
		logger:       cfg.Logger.With().Str("component", "wildfire").Logger(),
		weights:      weights,
		searchRadius: radius,
		density:      density,
	}
}

// Weights returns the coefficients in use.
func (s *Service) Weights() Weights {
	return s.weights
}

// Assess fetches the four wildfire indicators concurrently and combines them.
// When an indicator has no data the partial assessment is returned together
// with a *hazard.MissingComponentError.
func (s *Service) Assess(ctx context.Context, p geo.Point) (*Assessment, error) {
	a := &Assessment{Location: p}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := hazard.SearchNearby(gctx, p, s.searchRadius, s.provider.BurnProbability)
		if err != nil {
			return fmt.Errorf("burn probability: %w", err)
		}
		a.Raw.BurnProbability = v
		return nil
	})
	g.Go(func() error {
		v, err := s.provider.HousingUnitRisk(gctx, p)
		if err != nil {
			return fmt.Errorf("housing unit risk: %w", err)
		}
		a.Raw.HousingUnitRisk = v
		return nil
	})
	g.Go(func() error {
		v, err := s.provider.SuppressionDifficulty(gctx, p)
		if err != nil {
			return fmt.Errorf("suppression difficulty: %w", err)
		}
		a.Raw.SuppressionDifficulty = v
		return nil
	})
	g.Go(func() error {
		n, err := s.provider.FireCount(gctx, p, s.density.RadiusKm)
		if err != nil {
			return fmt.Errorf("fire count: %w", err)
		}
		a.Raw.FireCount = n
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Stringer("location", p).Msg("wildfire fetch failed")
		return nil, err
	}

	a.BurnProbability = hazard.BurnProbabilityCutoff.Normalize(a.Raw.BurnProbability)
	a.HousingUnitRisk = hazard.HousingUnitRiskCutoff.Normalize(a.Raw.HousingUnitRisk)
	a.SuppressionDifficulty = hazard.NormalizeSDI(a.Raw.SuppressionDifficulty)
	a.FireDensity = hazard.NormalizeDensity(hazard.Present(float64(a.Raw.FireCount)), s.density)

	weighted, err := hazard.WeightedSum(
		hazard.Component{Name: ComponentBurnProbability, Score: a.BurnProbability, Weight: s.weights.BurnProbability},
		hazard.Component{Name: ComponentHousingUnitRisk, Score: a.HousingUnitRisk, Weight: s.weights.HousingUnitRisk},
		hazard.Component{Name: ComponentFireDensity, Score: a.FireDensity, Weight: s.weights.FireDensity},
		hazard.Component{Name: ComponentSuppressionDifficulty, Score: a.SuppressionDifficulty, Weight: s.weights.SuppressionDifficulty},
	)
	if err != nil {
		s.logger.Warn().Err(err).Stringer("location", p).Msg("wildfire composite incomplete")
		return a, err
	}
	a.Weighted = weighted

	s.logger.Debug().
		Stringer("location", p).
		Float64("weighted", weighted).
		Msg("wildfire assessed")

	return a, nil
}
