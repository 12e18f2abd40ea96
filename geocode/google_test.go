// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func googleServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "country:ZA", r.URL.Query().Get("components"))
		assert.Equal(t, "za", r.URL.Query().Get("region"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestGoogleMapsSearch(t *testing.T) {
	srv := googleServer(t, `{
		"status": "OK",
		"results": [
			{"formatted_address": "Hatfield, Pretoria, 0083, South Africa",
			 "geometry": {"location": {"lat": -25.746, "lng": 28.231}},
			 "address_components": [{"long_name": "Hatfield", "types": ["sublocality", "political"]}]},
			{"formatted_address": "Hatfield, Johannesburg",
			 "geometry": {"location": {"lat": -26.1, "lng": 28.0}}},
			{"formatted_address": "Hatfield Road",
			 "geometry": {"location": {"lat": -26.2, "lng": 28.1}}}
		]
	}`)

	g := NewGoogleMapsGeocoder(GoogleMapsOptions{APIKey: "secret", Endpoint: srv.URL})

	got, err := g.Search(context.Background(), "Hatfield", SearchOptions{
		Limit:          2,
		CountryCodes:   []string{"za"},
		AddressDetails: true,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, spatial.Point{Lat: -25.746, Lng: 28.231}, got[0].Point)
	assert.Equal(t, "Hatfield, Pretoria, 0083, South Africa", got[0].DisplayName)
	assert.Equal(t, map[string]string{"sublocality": "Hatfield"}, got[0].Address)
}

func TestGoogleMapsSearchStatuses(t *testing.T) {
	srv := googleServer(t, `{"status": "ZERO_RESULTS", "results": []}`)
	g := NewGoogleMapsGeocoder(GoogleMapsOptions{APIKey: "secret", Endpoint: srv.URL})

	got, err := g.Search(context.Background(), "nowhere", SearchOptions{CountryCodes: []string{"za"}})
	require.NoError(t, err)
	assert.Empty(t, got)

	srv = googleServer(t, `{"status": "OVER_QUERY_LIMIT", "error_message": "You have exceeded your daily request quota"}`)
	g = NewGoogleMapsGeocoder(GoogleMapsOptions{APIKey: "secret", Endpoint: srv.URL})

	_, err = g.Search(context.Background(), "x", SearchOptions{CountryCodes: []string{"za"}})
	require.Error(t, err)
	assert.True(t, IsQuotaExceededError(err))
	assert.Contains(t, err.Error(), "daily request quota")
}
