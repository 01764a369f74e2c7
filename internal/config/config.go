// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hazardscope/hazardscope/internal/airquality/openmeteo"
	"github.com/hazardscope/hazardscope/internal/earthquake/usgs"
	floodmeteo "github.com/hazardscope/hazardscope/internal/flood/openmeteo"
	"github.com/hazardscope/hazardscope/internal/geocode/nominatim"
	"github.com/hazardscope/hazardscope/internal/osm/overpass"
	"github.com/hazardscope/hazardscope/internal/wildfire"
	"github.com/hazardscope/hazardscope/internal/wildfire/usfs"
)

// Configuration errors.
var (
	ErrInvalidTimeout       = errors.New("timeout must be positive")
	ErrConflictingLandslide = errors.New("set only one of LANDSLIDE_RASTER_PATH and LANDSLIDE_RASTER_URL")
	ErrInvalidRadius        = errors.New("burn search radius must be positive")
)

// Config is the runtime configuration of the API server.
type Config struct {
	Port        string
	Environment string
	LogLevel    zerolog.Level

	OTelEnabled     bool
	OTLPEndpoint    string
	OTelSampleRatio float64

	ProviderTimeout    time.Duration
	ProviderMaxRetries uint64

	NominatimURL      string
	GeocoderUserAgent string

	WildfireRasterURL  string
	FireOccurrenceURL  string
	DesignMapsURL      string
	FaultLayerURL      string
	OverpassURL        string
	AirQualityURL      string
	FloodURL           string
	BurnSearchRadiusKm float64

	// Exactly one of these may be set; neither disables the landslide factor.
	LandslideRasterPath string
	LandslideRasterURL  string

	// WildfireWeightsFile optionally overrides wildfire.DefaultWeights.
	WildfireWeightsFile string

	// RateLimitPerMinute caps summary requests per client IP.
	RateLimitPerMinute int

	// RequestTimeout bounds one inbound request including every upstream call.
	RequestTimeout time.Duration
	RequireTLS     bool

	// CORSAllowedOrigins lists the browser origins allowed to call the API.
	CORSAllowedOrigins []string
}

// DefaultCORSOrigin is the hosted frontend of the service.
const DefaultCORSOrigin = "https://cga19.netlify.app"

// FromEnv creates a Config from environment variables.
func FromEnv() Config {
	level, err := zerolog.ParseLevel(strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	timeout, _ := time.ParseDuration(getEnvOrDefault("PROVIDER_TIMEOUT", "10s"))
	retries, _ := strconv.ParseUint(getEnvOrDefault("PROVIDER_MAX_RETRIES", "2"), 10, 64)
	radius, _ := strconv.ParseFloat(getEnvOrDefault("BURN_SEARCH_RADIUS_KM", strconv.FormatFloat(wildfire.DefaultBurnSearchRadiusKm, 'f', -1, 64)), 64)
	rate, _ := strconv.Atoi(getEnvOrDefault("RATE_LIMIT_PER_MINUTE", "30"))
	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("OTEL_SAMPLE_RATIO", "1"), 64)
	if err != nil {
		sampleRatio = 1
	}
	requestTimeout, _ := time.ParseDuration(getEnvOrDefault("REQUEST_TIMEOUT", "60s"))

	return Config{
		Port:        getEnvOrDefault("APP_PORT", "8080"),
		Environment: getEnvOrDefault("APP_ENV", "development"),
		LogLevel:    level,

		OTelEnabled:     os.Getenv("OTEL_ENABLED") == "true",
		OTLPEndpoint:    getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelSampleRatio: sampleRatio,

		ProviderTimeout:    timeout,
		ProviderMaxRetries: retries,

		NominatimURL:      getEnvOrDefault("NOMINATIM_URL", nominatim.DefaultBaseURL),
		GeocoderUserAgent: getEnvOrDefault("GEOCODER_USER_AGENT", nominatim.DefaultUserAgent),

		WildfireRasterURL:  getEnvOrDefault("USFS_RASTER_URL", usfs.DefaultRasterBaseURL),
		FireOccurrenceURL:  getEnvOrDefault("USFS_FIRE_OCCURRENCE_URL", usfs.DefaultFireOccurrenceURL),
		DesignMapsURL:      getEnvOrDefault("USGS_DESIGNMAPS_URL", usgs.DefaultDesignMapsURL),
		FaultLayerURL:      getEnvOrDefault("USGS_FAULTS_URL", usgs.DefaultFaultLayerURL),
		OverpassURL:        getEnvOrDefault("OVERPASS_URL", overpass.DefaultBaseURL),
		AirQualityURL:      getEnvOrDefault("OPEN_METEO_AIR_QUALITY_URL", openmeteo.DefaultBaseURL),
		FloodURL:           getEnvOrDefault("OPEN_METEO_FLOOD_URL", floodmeteo.DefaultBaseURL),
		BurnSearchRadiusKm: radius,

		LandslideRasterPath: os.Getenv("LANDSLIDE_RASTER_PATH"),
		LandslideRasterURL:  os.Getenv("LANDSLIDE_RASTER_URL"),
		WildfireWeightsFile: os.Getenv("WILDFIRE_WEIGHTS_FILE"),

		RateLimitPerMinute: rate,
		RequestTimeout:     requestTimeout,
		RequireTLS:         os.Getenv("REQUIRE_TLS") == "true",
		CORSAllowedOrigins: splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", DefaultCORSOrigin)),
	}
}

// splitList parses a comma-separated setting, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate reports the first setting that cannot work.
func (c Config) Validate() error {
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.ProviderTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request timeout %s", ErrInvalidTimeout, c.RequestTimeout)
	}
	if c.BurnSearchRadiusKm <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidRadius, c.BurnSearchRadiusKm)
	}
	if c.LandslideRasterPath != "" && c.LandslideRasterURL != "" {
		return ErrConflictingLandslide
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
