// Package openmeteo provides a client for the Open-Meteo flood API.
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
	// DefaultBaseURL is the base URL for the Open-Meteo flood API.
	DefaultBaseURL = "https://flood-api.open-meteo.com/v1"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo-flood"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Open-Meteo flood client.
type ClientConfig struct {
	BaseURL    string
	HTTPClient HTTPDoer
}

// Client is an Open-Meteo flood client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new Open-Meteo flood client.
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

type floodResponse struct {
	Daily *struct {
		Time           []string       `json:"time"`
		RiverDischarge []hazard.Value `json:"river_discharge"`
	} `json:"daily"`
}

// RiverDischarge returns the first daily river discharge of the forecast.
// Points away from a modelled river come back as Missing.
func (c *Client) RiverDischarge(ctx context.Context, p geo.Point) (hazard.Value, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	params.Set("daily", "river_discharge")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/flood?"+params.Encode(), http.NoBody)
	if err != nil {
		return hazard.Missing(), fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return hazard.Missing(), fmt.Errorf("fetch flood forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return hazard.Missing(), fmt.Errorf("unexpected status %d from flood endpoint", resp.StatusCode)
	}

	var result floodResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return hazard.Missing(), fmt.Errorf("decode flood response: %w", err)
	}

	if result.Daily == nil || len(result.Daily.RiverDischarge) == 0 {
		return hazard.Missing(), nil
	}
	return result.Daily.RiverDischarge[0], nil
}
