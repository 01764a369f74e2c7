// Package openmeteo provides a client for the Open-Meteo air quality API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

const (
	// DefaultBaseURL is the base URL for the Open-Meteo air quality API.
	DefaultBaseURL = "https://air-quality-api.open-meteo.com/v1"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo-air-quality"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Open-Meteo air quality client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient executes requests; http.DefaultClient when nil.
	HTTPClient HTTPDoer
}

// Client is an Open-Meteo air quality client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Open-Meteo air quality client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type airQualityResponse struct {
	Hourly *struct {
		Time  []string       `json:"time"`
		USAQI []hazard.Value `json:"us_aqi"`
	} `json:"hourly"`
}

// CurrentUSAQI returns the first hourly US AQI value of the forecast, or
// Missing when the response carries no hourly series.
func (c *Client) CurrentUSAQI(ctx context.Context, p geo.Point) (hazard.Value, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	params.Set("hourly", "us_aqi")

	reqURL := c.baseURL + "/air-quality?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return hazard.Missing(), fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return hazard.Missing(), fmt.Errorf("fetch air quality: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return hazard.Missing(), fmt.Errorf("unexpected status %d from air quality endpoint", resp.StatusCode)
	}

	var result airQualityResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return hazard.Missing(), fmt.Errorf("decode air quality response: %w", err)
	}

	if result.Hourly == nil || len(result.Hourly.USAQI) == 0 {
		return hazard.Missing(), nil
	}
	return result.Hourly.USAQI[0], nil
}
