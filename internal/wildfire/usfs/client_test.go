package usfs_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardscope/hazardscope/internal/geo"
	"github.com/hazardscope/hazardscope/internal/wildfire"
	"github.com/hazardscope/hazardscope/internal/wildfire/usfs"
)

var _ wildfire.Provider = (*usfs.Client)(nil)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/RDW_Wildfire/RMRS_WRC_WildfireHazardPotential/ImageServer/identify", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value":"500"}`))
	})
	mux.HandleFunc("/RDW_Wildfire/RMRS_WRC_HousingUnitRisk/ImageServer/identify", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"value":"NoData","properties":{"Values":["350"]}}`))
	})
	mux.HandleFunc("/RDW_Wildfire/RMRS_Wildfire_Suppression_Difficulty_Index_90thPercentile/ImageServer/identify", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("returnAllPixelValues"))
		_, _ = w.Write([]byte(`{"value":"3","properties":{"Values":["12","20","NoData"]}}`))
	})
	mux.HandleFunc("/fires/query", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "60000", r.URL.Query().Get("distance"))
		_, _ = w.Write([]byte(`{"count":10}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient_Indicators(t *testing.T) {
	server := newServer(t)
	client := usfs.NewClient(usfs.ClientConfig{
		RasterBaseURL:     server.URL + "/RDW_Wildfire",
		FireOccurrenceURL: server.URL + "/fires",
		HTTPClient:        http.DefaultClient,
	})
	ctx := context.Background()
	p := geo.Point{Lat: 37.77, Lon: -122.42}

	burn, err := client.BurnProbability(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 500.0, burn.Or(-1))

	hu, err := client.HousingUnitRisk(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 350.0, hu.Or(-1))

	sdi, err := client.SuppressionDifficulty(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, 20.0, sdi.Or(-1))

	count, err := client.FireCount(ctx, p, 60)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestClient_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := usfs.NewClient(usfs.ClientConfig{
		RasterBaseURL: server.URL,
		HTTPClient:    http.DefaultClient,
	})

	v, err := client.BurnProbability(context.Background(), geo.Point{Lat: 37.77, Lon: -122.42})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RMRS_WRC_WildfireHazardPotential")
	assert.True(t, v.IsMissing())
}

type countingDoer struct {
	paths []string
}

func (d *countingDoer) Do(req *http.Request) (*http.Response, error) {
	d.paths = append(d.paths, req.URL.Path)
	return http.DefaultClient.Do(req)
}

func TestClient_FireOccurrenceUsesOwnClient(t *testing.T) {
	server := newServer(t)
	rasters := &countingDoer{}
	fires := &countingDoer{}
	client := usfs.NewClient(usfs.ClientConfig{
		RasterBaseURL:            server.URL + "/RDW_Wildfire",
		FireOccurrenceURL:        server.URL + "/fires",
		HTTPClient:               rasters,
		FireOccurrenceHTTPClient: fires,
	})
	ctx := context.Background()
	p := geo.Point{Lat: 37.77, Lon: -122.42}

	_, err := client.BurnProbability(ctx, p)
	require.NoError(t, err)
	_, err = client.FireCount(ctx, p, 60)
	require.NoError(t, err)

	assert.Equal(t, []string{"/RDW_Wildfire/RMRS_WRC_WildfireHazardPotential/ImageServer/identify"}, rasters.paths)
	assert.Equal(t, []string{"/fires/query"}, fires.paths)
}
