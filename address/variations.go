// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package address

import "strings"

// VariationCount is the number of queries produced for every address.
const VariationCount = 6

// Locality holds the suffixes appended to every query.
type Locality struct {
	City    string `toml:"city"`
	Region  string `toml:"region"`
	Country string `toml:"country"`
}

// DefaultLocality is the deployment the tool was built for.
var DefaultLocality = Locality{
	City:    "Pretoria",
	Region:  "Gauteng",
	Country: "South Africa",
}

// Names returns the non empty locality names.
func (l Locality) Names() []string {
	names := make([]string, 0, 3)

	for _, n := range []string{l.City, l.Region, l.Country} {
		if strings.TrimSpace(n) != "" {
			names = append(names, n)
		}
	}

	return names
}

// Normalizer returns a normalizer stripping this locality's names.
func (l Locality) Normalizer() *Normalizer {
	return NewNormalizer(l.Names()...)
}

// Variations expands a cleaned street and suburb into queries, most specific
// first. The order is fixed: the resolver stops at the first query that
// yields any candidate.
func (l Locality) Variations(street, suburb string) []string {
	join := func(parts ...string) string {
		return strings.Join(parts, ", ")
	}

	return []string{
		join(street, suburb, l.City, l.Region, l.Country),
		join(street, suburb, l.City, l.Country),
		join(street, suburb, l.Region, l.Country),
		join(suburb, l.City, l.Region, l.Country),
		join(suburb, l.City, l.Country),
		join(suburb, l.Region, l.Country),
	}
}
