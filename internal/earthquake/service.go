package earthquake

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// ServiceConfig holds configuration for the earthquake service.
type ServiceConfig struct {
	Sites        SiteProvider
	GroundMotion GroundMotionProvider
	Faults       FaultProvider
	Buildings    BuildingProvider

	// Landslide is optional; without it the composite uses fault proximity
	// and ground motion only.
	Landslide LandslideSource

	Logger zerolog.Logger
}

// Service assesses earthquake risk.
type Service struct {
	sites        SiteProvider
	groundMotion GroundMotionProvider
	faults       FaultProvider
	buildings    BuildingProvider
	landslide    LandslideSource
	logger       zerolog.Logger
}

// NewService creates a new earthquake service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		sites:        cfg.Sites,
		groundMotion: cfg.GroundMotion,
		faults:       cfg.Faults,
		buildings:    cfg.Buildings,
		landslide:    cfg.Landslide,
		logger:       cfg.Logger.With().Str("component", "earthquake").Logger(),
	}
}

// Assess gathers the seismic indicators at p and combines them with
// hazard.SqrtMean. The site class and risk category feed the ground motion
// lookup, so those run first; fault and landslide lookups run alongside.
// When an indicator has no data the partial assessment is returned together
// with a *hazard.MissingComponentError.
func (s *Service) Assess(ctx context.Context, p geo.Point) (*Assessment, error) {
	a := &Assessment{Location: p, LandslideIncluded: s.landslide != nil}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.groundMotionAt(gctx, p, a)
	})
	g.Go(func() error {
		d, err := s.faults.NearestFaultKm(gctx, p)
		if err != nil {
			return fmt.Errorf("fault distance: %w", err)
		}
		a.FaultDistanceKm = d
		return nil
	})
	if s.landslide != nil {
		g.Go(func() error {
			v, err := s.landslide.Value(gctx, p)
			if err != nil {
				return fmt.Errorf("landslide: %w", err)
			}
			a.Landslide = UnitScore(v)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if hazard.IsMissingComponent(err) {
			s.logger.Warn().Err(err).Stringer("location", p).Msg("earthquake indicators incomplete")
			return a, err
		}
		s.logger.Error().Err(err).Stringer("location", p).Msg("earthquake fetch failed")
		return nil, err
	}

	a.FaultProximity = FaultProximity(a.FaultDistanceKm)
	a.GroundMotion = UnitScore(hazard.MaxPresent(a.PGAValues))

	components := []hazard.Component{
		{Name: ComponentFaultProximity, Score: a.FaultProximity},
		{Name: ComponentGroundMotion, Score: a.GroundMotion},
	}
	if a.LandslideIncluded {
		components = append(components, hazard.Component{Name: ComponentLandslide, Score: a.Landslide})
	}

	risk, err := hazard.SqrtMean(components...)
	if err != nil {
		s.logger.Warn().Err(err).Stringer("location", p).Msg("earthquake composite incomplete")
		return a, err
	}
	a.Risk = risk

	s.logger.Debug().
		Stringer("location", p).
		Str("site_class", string(a.SiteClass)).
		Str("risk_category", string(a.RiskCategory)).
		Float64("risk", risk).
		Msg("earthquake assessed")

	return a, nil
}

func (s *Service) groundMotionAt(ctx context.Context, p geo.Point, a *Assessment) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.sites.Vs30(gctx, p)
		if err != nil {
			return fmt.Errorf("vs30: %w", err)
		}
		a.Vs30 = v
		return nil
	})
	g.Go(func() error {
		tag, err := s.buildings.BuildingTag(gctx, p)
		if err != nil {
			return fmt.Errorf("building type: %w", err)
		}
		a.BuildingTag = tag
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	vs30, ok := a.Vs30.Get()
	if !ok {
		return &hazard.MissingComponentError{Name: ComponentVs30}
	}
	a.SiteClass = ClassifySite(vs30)
	a.RiskCategory = ClassifyBuilding(a.BuildingTag)

	values, err := s.groundMotion.PGA(ctx, p, a.SiteClass, a.RiskCategory)
	if err != nil {
		return fmt.Errorf("ground motion: %w", err)
	}
	a.PGAValues = values
	return nil
}
