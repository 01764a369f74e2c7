// Package main provides the entrypoint for the hazard summary API server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazardscope/hazardscope/internal/airquality/openmeteo"
	"github.com/hazardscope/hazardscope/internal/api"
	"github.com/hazardscope/hazardscope/internal/api/middleware"
	"github.com/hazardscope/hazardscope/internal/config"
	"github.com/hazardscope/hazardscope/internal/earthquake"
	"github.com/hazardscope/hazardscope/internal/earthquake/usgs"
	floodmeteo "github.com/hazardscope/hazardscope/internal/flood/openmeteo"
	"github.com/hazardscope/hazardscope/internal/geocode/nominatim"
	"github.com/hazardscope/hazardscope/internal/landslide"
	"github.com/hazardscope/hazardscope/internal/osm/overpass"
	"github.com/hazardscope/hazardscope/internal/provider/resilience"
	"github.com/hazardscope/hazardscope/internal/risk"
	"github.com/hazardscope/hazardscope/internal/telemetry"
	"github.com/hazardscope/hazardscope/internal/wildfire"
	"github.com/hazardscope/hazardscope/internal/wildfire/usfs"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "hazardscope-api"

	cfg := config.FromEnv()

	log := zerolog.New(os.Stdout).
		Level(cfg.LogLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Info().
		Str("build_time", BuildTime).
		Str("env", cfg.Environment).
		Msg("starting hazard summary API")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTelEnabled,
		SampleRatio:    cfg.OTelSampleRatio,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if tp.Enabled() {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Float64("sample_ratio", cfg.OTelSampleRatio).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}
	providerMetrics, err := resilience.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize provider metrics")
		os.Exit(1)
	}

	registry := resilience.GlobalRegistry
	newClient := func(name string) *resilience.Client {
		cb := resilience.DefaultCircuitBreakerConfig(name)
		cb.OnStateChange = resilience.LogStateChanges(log)
		return resilience.NewClient(resilience.ClientConfig{
			Name:           name,
			Timeout:        cfg.ProviderTimeout,
			MaxRetries:     cfg.ProviderMaxRetries,
			CircuitBreaker: &cb,
			Registry:       registry,
			Metrics:        providerMetrics,
			UserAgent:      cfg.GeocoderUserAgent,
		})
	}

	geocoder := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL:    cfg.NominatimURL,
		UserAgent:  cfg.GeocoderUserAgent,
		HTTPClient: newClient(nominatim.ProviderName),
	})

	weights := wildfire.DefaultWeights()
	if cfg.WildfireWeightsFile != "" {
		weights, err = wildfire.LoadWeightsFromFile(cfg.WildfireWeightsFile)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.WildfireWeightsFile).Msg("using default wildfire weights")
		}
	}

	wildfireService := wildfire.NewService(wildfire.ServiceConfig{
		Provider: usfs.NewClient(usfs.ClientConfig{
			RasterBaseURL:            cfg.WildfireRasterURL,
			FireOccurrenceURL:        cfg.FireOccurrenceURL,
			HTTPClient:               newClient(usfs.ProviderName),
			FireOccurrenceHTTPClient: newClient(usfs.FireOccurrenceProviderName),
		}),
		Logger:             log,
		Weights:            weights,
		BurnSearchRadiusKm: cfg.BurnSearchRadiusKm,
	})

	usgsClient := usgs.NewClient(usgs.ClientConfig{
		DesignMapsURL: cfg.DesignMapsURL,
		FaultLayerURL: cfg.FaultLayerURL,
		HTTPClient:    newClient(usgs.ProviderName),
	})

	earthquakeCfg := earthquake.ServiceConfig{
		Sites:        usgsClient,
		GroundMotion: usgsClient,
		Faults:       usgsClient,
		Buildings: overpass.NewClient(overpass.ClientConfig{
			BaseURL:    cfg.OverpassURL,
			HTTPClient: newClient(overpass.ProviderName),
		}),
		Logger: log,
	}
	switch {
	case cfg.LandslideRasterPath != "":
		grid, err := landslide.LoadGrid(cfg.LandslideRasterPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.LandslideRasterPath).Msg("failed to load landslide raster")
		}
		earthquakeCfg.Landslide = grid
		log.Info().
			Str("path", cfg.LandslideRasterPath).
			Int("cols", grid.NCols).
			Int("rows", grid.NRows).
			Msg("landslide raster loaded")
	case cfg.LandslideRasterURL != "":
		earthquakeCfg.Landslide = landslide.NewImageServer(cfg.LandslideRasterURL, newClient(landslide.ProviderName))
		log.Info().Str("url", cfg.LandslideRasterURL).Msg("landslide image service configured")
	default:
		log.Warn().Msg("no landslide raster configured, earthquake risk excludes landslide")
	}

	summaries := risk.NewService(risk.ServiceConfig{
		Geocoder:   geocoder,
		Wildfire:   wildfireService,
		Earthquake: earthquake.NewService(earthquakeCfg),
		AirQuality: openmeteo.NewClient(openmeteo.ClientConfig{
			BaseURL:    cfg.AirQualityURL,
			HTTPClient: newClient(openmeteo.ProviderName),
		}),
		Flood: floodmeteo.NewClient(floodmeteo.ClientConfig{
			BaseURL:    cfg.FloodURL,
			HTTPClient: newClient(floodmeteo.ProviderName),
		}),
		Logger: log,
	})

	log.Info().
		Strs("providers", registry.GetProviderNames()).
		Msg("hazard providers registered")

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            httpMetrics,
		Summaries:          summaries,
		Registry:           registry,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		RequestTimeout:     cfg.RequestTimeout,
		RequireTLS:         cfg.RequireTLS,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
