// Package api provides the HTTP API of the hazard summary service.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/hazardscope/hazardscope/internal/api/handler"
	"github.com/hazardscope/hazardscope/internal/api/middleware"
	"github.com/hazardscope/hazardscope/internal/api/response"
	"github.com/hazardscope/hazardscope/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics

	Summaries handler.Summarizer
	Registry  *resilience.Registry
	Clock     clockwork.Clock

	// RateLimitPerMinute caps summary requests per client IP. Zero uses
	// middleware.SummaryRateLimit.
	RateLimitPerMinute int

	// RequestTimeout bounds each request. Zero disables the deadline.
	RequestTimeout time.Duration

	RequireTLS bool

	// CORSAllowedOrigins are the browser origins allowed to call the API.
	// Empty disables cross-origin access.
	CORSAllowedOrigins []string
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "hazardscope-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))         // Structured logging
	r.Use(middleware.Recovery(cfg.Logger))       // Panic recovery
	r.Use(chimiddleware.RealIP)                  // Real IP extraction
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSAllowedOrigins)) // Browser frontend, answers preflights
	}
	r.Use(middleware.SecurityHeaders)            // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS(cfg.RequireTLS)) // TLS enforcement
	r.Use(middleware.ContentTypeJSON)            // JSON content type
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		response.Error(w, req, http.StatusMethodNotAllowed, "method not allowed")
	})

	opsHandler := handler.NewOpsHandler(handler.OpsConfig{
		Version:   cfg.Version,
		BuildTime: cfg.BuildTime,
		Registry:  cfg.Registry,
		Clock:     cfg.Clock,
	})
	riskHandler := handler.NewRiskHandler(cfg.Summaries, cfg.Logger)

	summaryLimit := middleware.SummaryRateLimit
	if cfg.RateLimitPerMinute > 0 {
		summaryLimit = middleware.PerMinute(cfg.RateLimitPerMinute)
	}

	// Summary endpoints fan out to every upstream; strict rate limiting
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(summaryLimit))
		r.Use(middleware.RequireJSON)
		r.Post("/fire-risk-summary", riskHandler.FireRiskSummary)
		r.Post("/risk-summary", riskHandler.RiskSummary)
	})

	r.Route("/ops", func(r chi.Router) {
		r.Use(middleware.RateLimitByIP(middleware.OpsRateLimit))
		r.Get("/health", opsHandler.HealthCheck)
		r.Get("/ready", opsHandler.ReadinessCheck)
		r.Get("/status", opsHandler.SystemStatus)
	})

	return r
}
