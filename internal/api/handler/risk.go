package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/hazardscope/hazardscope/internal/api/middleware"
	"github.com/hazardscope/hazardscope/internal/api/models"
	"github.com/hazardscope/hazardscope/internal/api/response"
	"github.com/hazardscope/hazardscope/internal/geocode"
	"github.com/hazardscope/hazardscope/internal/hazard"
	"github.com/hazardscope/hazardscope/internal/risk"
)

const maxRequestBody = 1 << 16

// Summarizer builds the hazard summaries served by RiskHandler.
type Summarizer interface {
	FireRiskSummary(ctx context.Context, address string) (*risk.FireSummary, error)
	RiskSummary(ctx context.Context, address string) (*risk.Summary, error)
}

// RiskHandler handles the per-address summary endpoints.
type RiskHandler struct {
	summaries Summarizer
	logger    zerolog.Logger
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(summaries Summarizer, logger zerolog.Logger) *RiskHandler {
	return &RiskHandler{
		summaries: summaries,
		logger:    logger.With().Str("component", "risk_handler").Logger(),
	}
}

// FireRiskSummary handles POST /fire-risk-summary.
func (h *RiskHandler) FireRiskSummary(w http.ResponseWriter, r *http.Request) {
	address, ok := h.decodeAddress(w, r)
	if !ok {
		return
	}

	summary, err := h.summaries.FireRiskSummary(r.Context(), address)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, fireRiskResponse(summary))
}

// RiskSummary handles POST /risk-summary.
func (h *RiskHandler) RiskSummary(w http.ResponseWriter, r *http.Request) {
	address, ok := h.decodeAddress(w, r)
	if !ok {
		return
	}

	summary, err := h.summaries.RiskSummary(r.Context(), address)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, riskResponse(summary))
}

func (h *RiskHandler) decodeAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.AddressRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid JSON body")
		return "", false
	}
	return req.Address, true
}

func (h *RiskHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, risk.ErrEmptyAddress) || errors.Is(err, geocode.ErrAddressNotFound) {
		response.BadRequest(w, r, err.Error())
		return
	}

	h.logger.Error().
		Err(err).
		Str("request_id", middleware.GetRequestID(r.Context())).
		Str("path", r.URL.Path).
		Bool("missing_component", hazard.IsMissingComponent(err)).
		Msg("summary failed")
	response.InternalError(w, r, err.Error())
}

func fireRiskResponse(s *risk.FireSummary) models.FireRiskSummary {
	a := s.Wildfire
	return models.FireRiskSummary{
		BurnProbability:       a.BurnProbability.Or(0),
		HousingUnitRisk:       a.HousingUnitRisk.Or(0),
		SuppressionDifficulty: a.SuppressionDifficulty.Or(0),
		FireDensity:           a.FireDensity.Or(0),
		WeightedRisk:          a.Weighted,
		Latitude:              s.Location.Point.Lat,
		Longitude:             s.Location.Point.Lon,
		Address:               s.Location.DisplayName,
		Raw: models.FireRawIndicators{
			BurnProbability:       a.Raw.BurnProbability.Ptr(),
			HousingUnitRisk:       a.Raw.HousingUnitRisk.Ptr(),
			SuppressionDifficulty: a.Raw.SuppressionDifficulty.Ptr(),
			FireCount:             a.Raw.FireCount,
		},
	}
}

func riskResponse(s *risk.Summary) models.RiskSummary {
	eq := s.Earthquake

	pga := make([]float64, 0, len(eq.PGAValues))
	for _, v := range eq.PGAValues {
		if f, ok := v.Get(); ok {
			pga = append(pga, f)
		}
	}

	out := models.RiskSummary{
		WildfireRisk:    models.MockWildfireRisk,
		FloodRisk:       string(s.FloodLevel),
		CrimeRate:       models.MockCrimeRate,
		AirQualityIndex: s.AirQualityIndex.Ptr(),
		EarthquakeRisk:  eq.Risk,
		Recommendations: s.Recommendations,

		Latitude:           s.Location.Point.Lat,
		Longitude:          s.Location.Point.Lon,
		Address:            s.Location.DisplayName,
		AirQualityCategory: string(s.AirQualityCategory),
		RiverDischarge:     s.RiverDischarge.Ptr(),
		Earthquake: models.EarthquakeDetails{
			Vs30:            eq.Vs30.Or(0),
			SiteClass:       string(eq.SiteClass),
			BuildingTag:     eq.BuildingTag,
			RiskCategory:    string(eq.RiskCategory),
			FaultDistanceKm: eq.FaultDistanceKm.Ptr(),
			FaultProximity:  eq.FaultProximity.Or(0),
			PGA:             pga,
			GroundMotion:    eq.GroundMotion.Or(0),
		},
	}
	if eq.LandslideIncluded {
		out.LandslideRisk = eq.Landslide.Ptr()
	}
	return out
}
