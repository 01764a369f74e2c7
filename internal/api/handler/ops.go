// Package handler provides HTTP handlers for the hazard API.
package handler

import (
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/hazardscope/hazardscope/internal/api/models"
	"github.com/hazardscope/hazardscope/internal/api/response"
	"github.com/hazardscope/hazardscope/internal/provider/resilience"
)

// OpsConfig holds the dependencies of OpsHandler.
type OpsConfig struct {
	Version   string
	BuildTime string

	// Registry reports upstream provider health. Defaults to
	// resilience.GlobalRegistry.
	Registry *resilience.Registry

	// Clock stamps responses. Defaults to the real clock.
	Clock clockwork.Clock
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
	clock     clockwork.Clock
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(cfg OpsConfig) *OpsHandler {
	if cfg.Registry == nil {
		cfg.Registry = resilience.GlobalRegistry
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &OpsHandler{
		version:   cfg.Version,
		buildTime: cfg.BuildTime,
		registry:  cfg.Registry,
		clock:     cfg.Clock,
	}
}

// HealthCheck handles GET /ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.clock.Now()),
		Details: map[string]any{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	})
}

// ReadinessCheck handles GET /ops/ready. The service is not ready when every
// registered provider has an open circuit, since no summary can succeed.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	all := h.registry.GetAllHealth()

	open := 0
	for _, p := range all {
		if p.IsUnhealthy() {
			open++
		}
	}

	if len(all) > 0 && open == len(all) {
		response.JSON(w, r, http.StatusServiceUnavailable, models.Health{
			Status: models.HealthStatusFail,
			Time:   models.Timestamp(h.clock.Now()),
		})
		return
	}

	response.JSON(w, r, http.StatusOK, models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(h.clock.Now()),
	})
}

// SystemStatus handles GET /ops/status - per-provider circuit and call history.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	all := h.registry.GetAllHealth()

	status := models.SystemStatus{
		Status:    models.HealthStatusOK,
		Time:      models.Timestamp(h.clock.Now()),
		Providers: make([]models.ProviderStatus, 0, len(all)),
	}

	for _, p := range all {
		ps := models.ProviderStatus{
			Provider:            p.Name,
			Status:              providerStatus(p),
			CircuitState:        p.CircuitState.String(),
			Requests:            p.Counts.Requests,
			ConsecutiveFailures: p.Counts.ConsecutiveFailures,
			LastSuccessAt:       models.TimestampPtr(p.LastSuccessAt),
			LastFailureAt:       models.TimestampPtr(p.LastFailureAt),
		}
		if p.LastError != "" {
			msg := p.LastError
			ps.Message = &msg
		}
		if !p.IsHealthy() {
			status.Status = models.HealthStatusDegraded
		}
		status.Providers = append(status.Providers, ps)
	}

	response.JSON(w, r, http.StatusOK, status)
}

func providerStatus(p *resilience.ProviderHealth) models.HealthStatus {
	switch {
	case p.IsUnhealthy():
		return models.HealthStatusFail
	case p.IsDegraded():
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusOK
	}
}
