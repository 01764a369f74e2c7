// Package overpass looks up OpenStreetMap building tags through the
// Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/hazardscope/hazardscope/internal/geo"
)

const (
	// DefaultBaseURL is the public Overpass interpreter endpoint.
	DefaultBaseURL = "https://overpass-api.de/api/interpreter"

	// ProviderName identifies this provider.
	ProviderName = "osm-overpass"

	// DefaultSearchMargin is the half side, in degrees, of the box searched
	// for a building around a point (roughly ten metres).
	DefaultSearchMargin = 0.000085
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Overpass client.
type ClientConfig struct {
	BaseURL      string
	SearchMargin float64
	HTTPClient   HTTPDoer
}

// Client queries the Overpass API.
type Client struct {
	baseURL    string
	margin     float64
	httpClient HTTPDoer
}

// NewClient creates a new Overpass client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	margin := cfg.SearchMargin
	if margin <= 0 {
		margin = DefaultSearchMargin
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, margin: margin, httpClient: httpClient}
}

type interpreterResponse struct {
	Elements []element `json:"elements"`
}

type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Tags map[string]string `json:"tags"`
}

// BuildingQuery returns the Overpass QL that lists building ways in the box
// around p.
func (c *Client) BuildingQuery(p geo.Point) string {
	s, w := p.Lat-c.margin, p.Lon-c.margin
	n, e := p.Lat+c.margin, p.Lon+c.margin
	return fmt.Sprintf("[out:json];way[\"building\"](%f,%f,%f,%f);out tags center;", s, w, n, e)
}

// BuildingTag returns the building tag of the first way found around p, or
// "" when no building is mapped there.
func (c *Client) BuildingTag(ctx context.Context, p geo.Point) (string, error) {
	form := url.Values{}
	form.Set("data", c.BuildingQuery(p))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("query overpass: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d from overpass", resp.StatusCode)
	}

	var result interpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode overpass response: %w", err)
	}

	for _, el := range result.Elements {
		if el.Type != "way" {
			continue
		}
		return el.Tags["building"], nil
	}
	return "", nil
}
