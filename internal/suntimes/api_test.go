package suntimes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/sundial/internal/errors"
)

const sampleResponse = `{
  "results": {
    "date": "2025-08-17",
    "sunrise": "1755402810",
    "sunset": "1755455425",
    "first_light": "1755393963",
    "last_light": "1755464272",
    "dawn": "1755400509",
    "dusk": "1755457726",
    "solar_noon": "1755429118",
    "golden_hour": "1755452571",
    "day_length": "14:36:55",
    "timezone": "UTC",
    "utc_offset": 0
  },
  "status": "OK"
}`

var testLocation = Location{Latitude: 13.54, Longitude: 43.12}

func TestAPIProvider_SunTimes(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"lat":         q.Get("lat"),
			"lng":         q.Get("lng"),
			"date":        q.Get("date"),
			"time_format": q.Get("time_format"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	provider := NewAPIProvider(server.URL, 5*time.Second)
	date := time.Date(2025, 8, 17, 9, 0, 0, 0, time.Local)

	got, err := provider.SunTimes(context.Background(), testLocation, date)
	require.NoError(t, err)

	expected := SunTimes{
		Sunrise: TimeOfDayOf(time.Unix(1755402810, 0)),
		Sunset:  TimeOfDayOf(time.Unix(1755455425, 0)),
	}
	assert.Equal(t, expected, got)
	assert.Equal(t, "03:53:30", got.Sunrise.String())
	assert.Equal(t, map[string]string{
		"lat":         "13.54",
		"lng":         "43.12",
		"date":        "2025-08-17",
		"time_format": "unix",
	}, gotQuery)
}

func TestAPIProvider_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "malformed json", status: http.StatusOK, body: `{"results":`},
		{name: "non numeric sunrise", status: http.StatusOK, body: `{"results":{"sunrise":"6:00 AM","sunset":"1755455425"},"status":"OK"}`},
		{name: "non numeric sunset", status: http.StatusOK, body: `{"results":{"sunrise":"1755402810","sunset":""},"status":"OK"}`},
		{name: "api status", status: http.StatusOK, body: `{"results":{},"status":"INVALID_REQUEST"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := NewAPIProvider(server.URL, 5*time.Second)
			_, err := provider.SunTimes(context.Background(), testLocation, time.Now())
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrFetch), "expected fetch error, got %v", err)
		})
	}
}

func TestAPIProvider_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewAPIProvider(url, time.Second).SunTimes(context.Background(), testLocation, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrFetch)
}

func TestAPIProvider_BuildURL(t *testing.T) {
	provider := NewAPIProvider("https://example.test/", time.Second)
	date := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		"https://example.test/json?date=2025-01-02&lat=52.56&lng=13.39&time_format=unix",
		provider.BuildURL(Location{Latitude: 52.56, Longitude: 13.39}, date))
}

func TestNewAPIProvider_DefaultURL(t *testing.T) {
	assert.Equal(t, "https://api.sunrisesunset.io", NewAPIProvider("", time.Second).BaseURL)
}
