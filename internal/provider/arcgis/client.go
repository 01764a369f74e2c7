// Package arcgis is a small client for the ArcGIS REST endpoints that serve
// hazard rasters (ImageServer identify) and vector layers (MapServer query).
package arcgis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geojson"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/hazard"
)

// ErrUnexpectedStatus is returned when an endpoint answers with a non-200 status.
var ErrUnexpectedStatus = errors.New("unexpected status from arcgis endpoint")

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ServiceError is the error object ArcGIS embeds in a 200 response.
type ServiceError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

func (e *ServiceError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("arcgis error %d: %s (%s)", e.Code, e.Message, strings.Join(e.Details, "; "))
	}
	return fmt.Sprintf("arcgis error %d: %s", e.Code, e.Message)
}

// Client issues identify and query requests against ArcGIS services.
type Client struct {
	httpClient HTTPDoer
}

// NewClient creates a client that sends requests through httpClient.
func NewClient(httpClient HTTPDoer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// IdentifyRequest describes a single-pixel identify against an ImageServer.
type IdentifyRequest struct {
	Point geo.Point

	// HalfWidth is the half side, in Web Mercator metres, of the mapExtent window.
	HalfWidth float64

	// AllPixelValues asks the service for every pixel value under the point.
	AllPixelValues bool
}

// IdentifyResult holds the pixel value(s) reported for a point.
type IdentifyResult struct {
	Value  hazard.Value
	Values []hazard.Value
}

// First returns Value when present, otherwise the first present entry of Values.
func (r *IdentifyResult) First() hazard.Value {
	if !r.Value.IsMissing() {
		return r.Value
	}
	return hazard.FirstPresent(r.Values)
}

// Max returns the largest present entry of Values, falling back to Value.
func (r *IdentifyResult) Max() hazard.Value {
	if m := hazard.MaxPresent(r.Values); !m.IsMissing() {
		return m
	}
	return r.Value
}

type identifyResponse struct {
	Value      hazard.Value `json:"value"`
	Properties *struct {
		Values []hazard.Value `json:"Values"`
	} `json:"properties"`
	Error *ServiceError `json:"error"`
}

// Identify asks an ImageServer for the pixel value at req.Point. serviceURL is
// the ImageServer root, e.g. ".../ImageServer".
func (c *Client) Identify(ctx context.Context, serviceURL string, req IdentifyRequest) (*IdentifyResult, error) {
	center := geo.ToWebMercator(req.Point)
	geometry, err := json.Marshal(map[string]float64{"x": center.X, "y": center.Y})
	if err != nil {
		return nil, fmt.Errorf("encode geometry: %w", err)
	}

	params := url.Values{}
	params.Set("geometry", string(geometry))
	params.Set("geometryType", "esriGeometryPoint")
	params.Set("sr", "3857")
	params.Set("tolerance", "2")
	params.Set("mapExtent", geo.Envelope(center, req.HalfWidth).String())
	params.Set("imageDisplay", "400,400,96")
	params.Set("returnGeometry", "false")
	if req.AllPixelValues {
		params.Set("returnAllPixelValues", "true")
	}
	params.Set("f", "json")

	var resp identifyResponse
	if err := c.getJSON(ctx, strings.TrimSuffix(serviceURL, "/")+"/identify", params, &resp); err != nil {
		return nil, fmt.Errorf("identify: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("identify: %w", resp.Error)
	}

	result := &IdentifyResult{Value: resp.Value}
	if resp.Properties != nil {
		result.Values = resp.Properties.Values
	}
	return result, nil
}

// CountRequest counts features within a radius of a WGS84 point.
type CountRequest struct {
	Point        geo.Point
	RadiusMeters float64
	Where        string
}

type countResponse struct {
	Count *int          `json:"count"`
	Error *ServiceError `json:"error"`
}

// Count runs a returnCountOnly query against a MapServer or FeatureServer
// layer. A response without a count is read as zero features.
func (c *Client) Count(ctx context.Context, layerURL string, req CountRequest) (int, error) {
	where := req.Where
	if where == "" {
		where = "1=1"
	}

	params := url.Values{}
	params.Set("where", where)
	params.Set("geometry", formatFloat(req.Point.Lon)+","+formatFloat(req.Point.Lat))
	params.Set("geometryType", "esriGeometryPoint")
	params.Set("inSR", "4326")
	params.Set("spatialRel", "esriSpatialRelIntersects")
	params.Set("distance", formatFloat(req.RadiusMeters))
	params.Set("units", "esriSRUnit_Meter")
	params.Set("returnCountOnly", "true")
	params.Set("f", "json")

	var resp countResponse
	if err := c.getJSON(ctx, strings.TrimSuffix(layerURL, "/")+"/query", params, &resp); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	if resp.Error != nil {
		return 0, fmt.Errorf("count query: %w", resp.Error)
	}
	if resp.Count == nil {
		return 0, nil
	}
	return *resp.Count, nil
}

// QueryGeoJSON fetches every feature of a layer matching where as GeoJSON.
func (c *Client) QueryGeoJSON(ctx context.Context, layerURL, where string) (*geojson.FeatureCollection, error) {
	if where == "" {
		where = "1=1"
	}

	params := url.Values{}
	params.Set("where", where)
	params.Set("outFields", "*")
	params.Set("f", "geojson")

	body, err := c.get(ctx, strings.TrimSuffix(layerURL, "/")+"/query", params)
	if err != nil {
		return nil, fmt.Errorf("geojson query: %w", err)
	}

	var probe struct {
		Error *ServiceError `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && probe.Error != nil {
		return nil, fmt.Errorf("geojson query: %w", probe.Error)
	}

	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}
	return fc, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return body, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
