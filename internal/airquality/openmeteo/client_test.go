package openmeteo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardscope/hazardscope/internal/airquality"
	"github.com/hazardscope/hazardscope/internal/airquality/openmeteo"
	"github.com/hazardscope/hazardscope/internal/geo"
)

var _ airquality.Provider = (*openmeteo.Client)(nil)

var oakland = geo.Point{Lat: 37.8044, Lon: -122.2712}

func TestClient_CurrentUSAQI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/air-quality", r.URL.Path)
		assert.Equal(t, "37.8044", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-122.2712", r.URL.Query().Get("longitude"))
		assert.Equal(t, "us_aqi", r.URL.Query().Get("hourly"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude":37.8,"longitude":-122.3,"hourly_units":{"us_aqi":"USAQI"},
			"hourly":{"time":["2026-10-19T00:00","2026-10-19T01:00"],"us_aqi":[42,47]}}`))
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{BaseURL: server.URL, HTTPClient: http.DefaultClient})

	aqi, err := client.CurrentUSAQI(context.Background(), oakland)
	require.NoError(t, err)
	assert.Equal(t, 42.0, aqi.Or(-1))
	assert.Equal(t, airquality.CategoryGood, airquality.Categorize(aqi))
}

func TestClient_CurrentUSAQI_NoHourly(t *testing.T) {
	for name, body := range map[string]string{
		"absent":     `{"latitude":37.8}`,
		"null first": `{"hourly":{"time":["2026-10-19T00:00"],"us_aqi":[null]}}`,
		"empty":      `{"hourly":{"time":[],"us_aqi":[]}}`,
	} {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			client := openmeteo.NewClient(openmeteo.ClientConfig{BaseURL: server.URL})
			aqi, err := client.CurrentUSAQI(context.Background(), oakland)
			require.NoError(t, err)
			assert.True(t, aqi.IsMissing())
		})
	}
}

func TestClient_CurrentUSAQI_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`))
	}))
	defer server.Close()

	client := openmeteo.NewClient(openmeteo.ClientConfig{BaseURL: server.URL})
	_, err := client.CurrentUSAQI(context.Background(), oakland)
	assert.ErrorContains(t, err, "unexpected status 400")
}
