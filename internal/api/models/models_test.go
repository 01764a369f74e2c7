package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazardscope/hazardscope/internal/api/models"
)

func TestError_Write(t *testing.T) {
	rec := httptest.NewRecorder()
	models.NewError("address is required").Write(rec, http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"address is required"}`, rec.Body.String())
}

func TestTimestamp_RoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	out, err := json.Marshal(models.Timestamp(at))
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-14T09:30:00Z"`, string(out))

	var ts models.Timestamp
	require.NoError(t, json.Unmarshal(out, &ts))
	assert.True(t, at.Equal(ts.Time()))

	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
}

func TestTimestampPtr(t *testing.T) {
	assert.Nil(t, models.TimestampPtr(nil))

	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	got := models.TimestampPtr(&at)
	require.NotNil(t, got)
	assert.Equal(t, at, got.Time())
}

func TestRiskSummary_LandslideOmittedWhenNil(t *testing.T) {
	out, err := json.Marshal(models.RiskSummary{
		WildfireRisk:    models.MockWildfireRisk,
		CrimeRate:       models.MockCrimeRate,
		FloodRisk:       "Low",
		Recommendations: []string{},
	})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(out, &body))
	assert.NotContains(t, body, "landslideRisk")
	assert.Contains(t, body, "airQualityIndex")
	assert.Nil(t, body["airQualityIndex"])
	assert.Equal(t, "Mock", body["wildfireRisk"])
}
