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
	"strconv"
	"strings"

	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/jcodagnone/wardcheck/utils/httputils"
	"golang.org/x/time/rate"
)

const (
	// DefaultNominatimURL is the public OpenStreetMap instance.
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies the tool to public geocoding services.
	DefaultUserAgent = "Ward-Boundary-Checker/1.0"
)

// NominatimOptions configures a NominatimGeocoder.
type NominatimOptions struct {
	// BaseURL of the Nominatim instance, DefaultNominatimURL when empty.
	BaseURL string

	// UserAgent sent with every request, DefaultUserAgent when empty.
	UserAgent string

	// RequestsPerSecond caps the request rate; zero disables the limiter.
	// The public instance allows one request per second.
	RequestsPerSecond float64

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool

	// HTTPClient overrides the client built from the options above.
	HTTPClient *http.Client
}

// NominatimGeocoder queries the OpenStreetMap Nominatim search API.
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewNominatimGeocoder creates a new Nominatim geocoder.
func NewNominatimGeocoder(options NominatimOptions) *NominatimGeocoder {
	baseURL := strings.TrimRight(options.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	client := options.HTTPClient
	if client == nil {
		client = httputils.NewClient(httputils.ClientOptions{
			UserAgent:           userAgent,
			EnableHTTPTrace:     options.EnableHTTPTrace,
			EnableHTTPBodyTrace: options.EnableHTTPBodyTrace,
		})
	}

	var limiter *rate.Limiter
	if options.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(options.RequestsPerSecond), 1)
	}

	return &NominatimGeocoder{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    limiter,
	}
}

type nominatimResult struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
}

// Search implements Geocoder.
func (g *NominatimGeocoder) Search(ctx context.Context, query string, opts SearchOptions) ([]Candidate, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)

	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}

	if len(opts.CountryCodes) > 0 {
		params.Set("countrycodes", strings.ToLower(strings.Join(opts.CountryCodes, ",")))
	}

	if opts.AddressDetails {
		params.Set("addressdetails", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building nominatim request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

		return nil, ClassifyHTTPError(resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, &GeocodingError{Type: ErrorTypeBadResponse, Message: "decoding nominatim response", Err: err}
	}

	candidates := make([]Candidate, 0, len(results))

	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			return nil, &GeocodingError{Type: ErrorTypeBadResponse, Message: fmt.Sprintf("invalid latitude %q", r.Lat), Err: err}
		}

		lng, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			return nil, &GeocodingError{Type: ErrorTypeBadResponse, Message: fmt.Sprintf("invalid longitude %q", r.Lon), Err: err}
		}

		candidates = append(candidates, Candidate{
			Point:       spatial.Point{Lat: lat, Lng: lng},
			DisplayName: r.DisplayName,
			Address:     r.Address,
		})
	}

	return candidates, nil
}
