package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	// Setup
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler("sqlite")

	// Assertions
	if assert.NoError(t, h.CheckHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "sqlite", body["backend"])
		assert.NotEmpty(t, body["time"])
	}
}

func TestGetWeather(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/weather", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &WeatherHandler{
		now: func() time.Time { return time.Date(2026, time.December, 30, 15, 0, 0, 0, time.UTC) },
	}

	require.NoError(t, h.GetWeather(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool            `json:"success"`
		Data    weatherResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Ideal", body.Data.Condition)
	assert.True(t, body.Data.SuitableForSpraying)

	require.Len(t, body.Data.Forecast, 3)
	assert.Equal(t, "2026-12-31", body.Data.Forecast[0].Date)
	assert.Equal(t, "2027-01-01", body.Data.Forecast[1].Date)
	assert.Equal(t, "2027-01-02", body.Data.Forecast[2].Date)
	assert.False(t, body.Data.Forecast[2].Suitable)
}
