// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"

	"github.com/jcodagnone/wardcheck/spatial"
)

// Candidate is one match returned by a geocoding provider.
type Candidate struct {
	Point       spatial.Point     `json:"point"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address,omitempty"`
}

// SearchOptions restricts a single provider query.
type SearchOptions struct {
	// Limit is the maximum number of candidates to return.
	Limit int

	// CountryCodes restricts results to ISO 3166-1 alpha-2 codes.
	CountryCodes []string

	// AddressDetails asks for the structured address breakdown.
	AddressDetails bool
}

// Geocoder resolves a free-text query into candidates, best first. An empty
// slice with a nil error means the provider found nothing.
type Geocoder interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Candidate, error)
}

// Location is the candidate picked by the Resolver.
type Location struct {
	Point       spatial.Point `json:"point"`
	DisplayName string        `json:"display_name"`

	// Query is the variation that produced the location and Attempt its
	// 1-based position.
	Query   string `json:"query"`
	Attempt int    `json:"attempt"`
}
