package usgs_test

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardscope/hazardscope/internal/earthquake"
	"github.com/hazardscope/hazardscope/internal/earthquake/usgs"
	"github.com/hazardscope/hazardscope/internal/geo"
)

var (
	_ earthquake.SiteProvider         = (*usgs.Client)(nil)
	_ earthquake.GroundMotionProvider = (*usgs.Client)(nil)
	_ earthquake.FaultProvider        = (*usgs.Client)(nil)
)

var sanJose = geo.Point{Lat: 37.2399, Lon: -121.8972}

func newClient(t *testing.T, handler http.HandlerFunc) *usgs.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return usgs.NewClient(usgs.ClientConfig{
		DesignMapsURL: server.URL + "/ws/designmaps",
		FaultLayerURL: server.URL + "/faults/MapServer/0",
		HTTPClient:    http.DefaultClient,
	})
}

func TestClient_Vs30(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/designmaps/metadata.json", r.URL.Path)
		assert.Equal(t, "37.2399", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-121.8972", r.URL.Query().Get("longitude"))
		assert.Equal(t, "ASCE7-16", r.URL.Query().Get("referenceDocument"))
		_, _ = w.Write([]byte(`{"request":{},"response":{"data":{"vs30":260}}}`))
	})

	vs30, err := client.Vs30(context.Background(), sanJose)
	require.NoError(t, err)
	assert.Equal(t, 260.0, vs30.Or(-1))
	assert.Equal(t, earthquake.SiteClassD, earthquake.ClassifySite(vs30.Or(-1)))
}

func TestClient_Vs30_Non200QuotesBody(t *testing.T) {
	body := strings.Repeat("x", 250)
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(body))
	})

	_, err := client.Vs30(context.Background(), sanJose)
	require.ErrorIs(t, err, usgs.ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "HTTP 400 returned for metadata.json")
	assert.Contains(t, err.Error(), strings.Repeat("x", 200))
	assert.NotContains(t, err.Error(), strings.Repeat("x", 201))
}

func TestClient_PGA(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []float64
	}{
		{name: "list", body: `[0.61, 0.74, 0.69]`, want: []float64{0.61, 0.74, 0.69}},
		{name: "scalar", body: `0.52`, want: []float64{0.52}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/ws/designmaps/asce7-22.json", r.URL.Path)
				assert.Equal(t, "D", r.URL.Query().Get("siteClass"))
				assert.Equal(t, "III", r.URL.Query().Get("riskCategory"))
				_, _ = w.Write([]byte(`{"response":{"data":{"underlyingData":{"pgauh":` + tt.body + `}}}}`))
			})

			values, err := client.PGA(context.Background(), sanJose, earthquake.SiteClassD, earthquake.RiskCategoryIII)
			require.NoError(t, err)
			require.Len(t, values, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w, values[i].Or(-1))
			}
		})
	}
}

func TestClient_PGA_Absent(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"data":{"underlyingData":{}}}}`))
	})

	values, err := client.PGA(context.Background(), sanJose, earthquake.SiteClassC, earthquake.RiskCategoryI)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestClient_NearestFaultKm(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/faults/MapServer/0/query", r.URL.Path)
		assert.Equal(t, "geojson", r.URL.Query().Get("f"))
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{"name":"far"},"geometry":{"type":"LineString","coordinates":[[-118,34],[-117,35]]}},
			{"type":"Feature","properties":{"name":"meridian"},"geometry":{"type":"LineString","coordinates":[[-120,36],[-120,38]]}}
		]}`))
	})

	p := geo.Point{Lat: 37, Lon: -119.9}
	got, err := client.NearestFaultKm(context.Background(), p)
	require.NoError(t, err)

	// The central meridian projects onto x = 0.
	want := math.Abs(geo.ToCaliforniaAlbers(p).X) / 1000
	assert.InDelta(t, want, got.Or(-1), 1e-4)
	assert.InDelta(t, 8.9, got.Or(-1), 0.1)
}

func TestClient_NearestFaultKm_OnFault(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","properties":{},"geometry":{"type":"MultiLineString","coordinates":[[[-121.9,37.0],[-121.9,37.5]]]}}
		]}`))
	})

	got, err := client.NearestFaultKm(context.Background(), geo.Point{Lat: 37.2, Lon: -121.9})
	require.NoError(t, err)
	assert.InDelta(t, 0, got.Or(-1), 1e-3)
	assert.Equal(t, 1.0, earthquake.FaultProximity(got).Or(-1))
}

func TestClient_NearestFaultKm_NoFeatures(t *testing.T) {
	client := newClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	})

	got, err := client.NearestFaultKm(context.Background(), sanJose)
	require.NoError(t, err)
	assert.True(t, got.IsMissing())
}
