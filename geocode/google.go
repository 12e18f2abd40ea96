// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/jcodagnone/wardcheck/utils/httputils"
)

// DefaultGoogleMapsURL is the Google Geocoding API endpoint.
const DefaultGoogleMapsURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleMapsGeocoder uses Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// GoogleMapsOptions configures a GoogleMapsGeocoder.
type GoogleMapsOptions struct {
	APIKey    string
	Endpoint  string
	UserAgent string

	EnableHTTPTrace bool

	HTTPClient *http.Client
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder.
func NewGoogleMapsGeocoder(options GoogleMapsOptions) *GoogleMapsGeocoder {
	endpoint := options.Endpoint
	if endpoint == "" {
		endpoint = DefaultGoogleMapsURL
	}

	client := options.HTTPClient
	if client == nil {
		client = httputils.NewClient(httputils.ClientOptions{
			UserAgent:       options.UserAgent,
			EnableHTTPTrace: options.EnableHTTPTrace,
		})
	}

	return &GoogleMapsGeocoder{
		apiKey:     options.APIKey,
		endpoint:   endpoint,
		httpClient: client,
	}
}

type googleMapsResponse struct {
	Results []struct {
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

// Search implements Geocoder.
func (g *GoogleMapsGeocoder) Search(ctx context.Context, query string, opts SearchOptions) ([]Candidate, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)

	if len(opts.CountryCodes) > 0 {
		params.Set("region", strings.ToLower(opts.CountryCodes[0]))

		components := make([]string, 0, len(opts.CountryCodes))
		for _, cc := range opts.CountryCodes {
			components = append(components, "country:"+strings.ToUpper(cc))
		}

		params.Set("components", strings.Join(components, "|"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building google maps request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, ClassifyHTTPError(resp.StatusCode, string(body))
	}

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, &GeocodingError{Type: ErrorTypeBadResponse, Message: "decoding google maps response", Err: err}
	}

	switch gmResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, classifyGoogleStatus(gmResp.Status, gmResp.ErrorMessage)
	}

	results := gmResp.Results
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	candidates := make([]Candidate, 0, len(results))

	for _, r := range results {
		c := Candidate{
			Point: spatial.Point{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			DisplayName: r.FormattedAddress,
		}

		if opts.AddressDetails {
			c.Address = make(map[string]string, len(r.AddressComponents))

			for _, component := range r.AddressComponents {
				if len(component.Types) > 0 {
					c.Address[component.Types[0]] = component.LongName
				}
			}
		}

		candidates = append(candidates, c)
	}

	return candidates, nil
}

func classifyGoogleStatus(status, message string) *GeocodingError {
	e := &GeocodingError{Message: "google maps status: " + status}
	if message != "" {
		e.Message += " (" + message + ")"
	}

	switch status {
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		e.Type = ErrorTypeQuotaExceeded
	case "REQUEST_DENIED":
		e.Type = ErrorTypeQuotaExceeded
	case "INVALID_REQUEST":
		e.Type = ErrorTypeInvalidRequest
	default:
		e.Type = ErrorTypeUnknown
	}

	return e
}
