// Package usgs reads seismic design data and fault geometry from the USGS
// design maps web services and the NSHM fault source layer.
package usgs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"

	"github.com/hazardscope/hazardscope/internal/earthquake"
	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
	"github.com/hazardscope/hazardscope/internal/provider/arcgis"
)

const (
	// ProviderName identifies this provider.
	ProviderName = "usgs"

	// DefaultDesignMapsURL is the design maps web service root.
	DefaultDesignMapsURL = "https://earthquake.usgs.gov/ws/designmaps"

	// DefaultFaultLayerURL is the NSHM fault source layer.
	DefaultFaultLayerURL = "https://earthquake.usgs.gov/arcgis/rest/services/haz/NSHM_Fault_Sources/MapServer/0"

	metadataReferenceDocument = "ASCE7-16"
	designTitle               = "Risk"

	// errorBodyLimit is how much of an unexpected body is quoted in errors.
	errorBodyLimit = 200
)

// ErrUnexpectedStatus is returned when a design maps endpoint answers with a
// non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected status from usgs")

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the USGS client.
type ClientConfig struct {
	DesignMapsURL string
	FaultLayerURL string

	// HTTPClient executes requests; http.DefaultClient when nil.
	HTTPClient HTTPDoer
}

// Client implements the earthquake site, ground motion and fault providers.
type Client struct {
	designMapsURL string
	faultLayerURL string
	httpClient    HTTPDoer
	arcgis        *arcgis.Client
}

// NewClient creates a new USGS client.
func NewClient(cfg ClientConfig) *Client {
	designMapsURL := cfg.DesignMapsURL
	if designMapsURL == "" {
		designMapsURL = DefaultDesignMapsURL
	}
	faultLayerURL := cfg.FaultLayerURL
	if faultLayerURL == "" {
		faultLayerURL = DefaultFaultLayerURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		designMapsURL: strings.TrimSuffix(designMapsURL, "/"),
		faultLayerURL: faultLayerURL,
		httpClient:    httpClient,
		arcgis:        arcgis.NewClient(httpClient),
	}
}

type metadataResponse struct {
	Response struct {
		Data struct {
			Vs30 hazard.Value `json:"vs30"`
		} `json:"data"`
	} `json:"response"`
}

// Vs30 returns the site shear-wave velocity from metadata.json.
func (c *Client) Vs30(ctx context.Context, p geo.Point) (hazard.Value, error) {
	params := locationParams(p)
	params.Set("referenceDocument", metadataReferenceDocument)

	var result metadataResponse
	if err := c.getJSON(ctx, "metadata.json", params, &result); err != nil {
		return hazard.Missing(), err
	}
	return result.Response.Data.Vs30, nil
}

type designResponse struct {
	Response struct {
		Data struct {
			UnderlyingData struct {
				PGAUH json.RawMessage `json:"pgauh"`
			} `json:"underlyingData"`
		} `json:"data"`
	} `json:"response"`
}

// PGA returns the uniform-hazard peak ground acceleration values for the
// site from asce7-22.json. The service reports either one number or a list.
func (c *Client) PGA(ctx context.Context, p geo.Point, site earthquake.SiteClass, risk earthquake.RiskCategory) ([]hazard.Value, error) {
	params := locationParams(p)
	params.Set("siteClass", string(site))
	params.Set("riskCategory", string(risk))
	params.Set("title", designTitle)

	var result designResponse
	if err := c.getJSON(ctx, "asce7-22.json", params, &result); err != nil {
		return nil, err
	}
	return decodePGAUH(result.Response.Data.UnderlyingData.PGAUH)
}

func decodePGAUH(raw json.RawMessage) ([]hazard.Value, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode pgauh: %w", err)
	}
	if list, ok := decoded.([]any); ok {
		return hazard.ParseRawList(list), nil
	}
	return []hazard.Value{hazard.ParseRaw(decoded)}, nil
}

// NearestFaultKm returns the planar distance in kilometres from p to the
// closest fault trace, measured in California Albers. Missing when the layer
// holds no geometry.
func (c *Client) NearestFaultKm(ctx context.Context, p geo.Point) (hazard.Value, error) {
	fc, err := c.arcgis.QueryGeoJSON(ctx, c.faultLayerURL, "1=1")
	if err != nil {
		return hazard.Missing(), fmt.Errorf("fault sources: %w", err)
	}

	xy := geo.ToCaliforniaAlbers(p)
	origin := orb.Point{xy.X, xy.Y}

	best := math.Inf(1)
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		g := project.Geometry(f.Geometry, geo.CaliforniaAlbers)
		if d := planar.DistanceFrom(g, origin); d < best {
			best = d
		}
	}
	if math.IsInf(best, 1) {
		return hazard.Missing(), nil
	}

	meters := math.Round(best*100) / 100
	return hazard.Present(meters / 1000), nil
}

func locationParams(p geo.Point) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(p.Lon, 'f', -1, 64))
	return params
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.designMapsURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		snippet := body
		if len(snippet) > errorBodyLimit {
			snippet = snippet[:errorBodyLimit]
		}
		return fmt.Errorf("%w: HTTP %d returned for %s: %s", ErrUnexpectedStatus, resp.StatusCode, endpoint, snippet)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
