// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"log"
	"time"

	"github.com/jcodagnone/wardcheck/address"
	"github.com/jcodagnone/wardcheck/metrics"
	"github.com/jcodagnone/wardcheck/utils/textutils"
)

// Resolver defaults.
const (
	DefaultLimit = 3
	DefaultDelay = time.Second
)

var (
	// DefaultCountryCodes restricts searches to South Africa.
	DefaultCountryCodes = []string{"za"}

	// DefaultLocalTokens mark a candidate as belonging to the deployment area.
	DefaultLocalTokens = []string{"gauteng", "pretoria", "tshwane"}
)

// ResolverOptions configures a Resolver. Zero values select the defaults.
type ResolverOptions struct {
	Locality     address.Locality
	CountryCodes []string
	Limit        int
	LocalTokens  []string

	// Delay is waited after a variation returns no candidates and before
	// the next one is tried. Nil selects DefaultDelay; zero disables it.
	Delay *time.Duration

	// Wait overrides how the delay is spent. Tests use it to record the
	// waits without sleeping.
	Wait func(ctx context.Context, d time.Duration) error
}

// Resolver turns a street and suburb into a single location by trying the
// query variations in order.
type Resolver struct {
	geocoder   Geocoder
	locality   address.Locality
	normalizer *address.Normalizer
	search     SearchOptions
	local      []string
	delay      time.Duration
	wait       func(ctx context.Context, d time.Duration) error
}

// NewResolver creates a resolver querying g.
func NewResolver(g Geocoder, opts ResolverOptions) *Resolver {
	if opts.Locality == (address.Locality{}) {
		opts.Locality = address.DefaultLocality
	}

	if len(opts.CountryCodes) == 0 {
		opts.CountryCodes = DefaultCountryCodes
	}

	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	if len(opts.LocalTokens) == 0 {
		opts.LocalTokens = DefaultLocalTokens
	}

	delay := DefaultDelay
	if opts.Delay != nil {
		delay = max(*opts.Delay, 0)
	}

	if opts.Wait == nil {
		opts.Wait = sleep
	}

	return &Resolver{
		geocoder:   g,
		locality:   opts.Locality,
		normalizer: opts.Locality.Normalizer(),
		search: SearchOptions{
			Limit:          opts.Limit,
			CountryCodes:   opts.CountryCodes,
			AddressDetails: true,
		},
		local: opts.LocalTokens,
		delay: delay,
		wait:  opts.Wait,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Resolve returns the first usable location, or nil when every variation
// came back empty or failed. Provider failures are logged and skipped; only
// a cancelled context is returned as an error.
func (r *Resolver) Resolve(ctx context.Context, street, suburb string) (*Location, error) {
	queries := r.locality.Variations(r.normalizer.Normalize(street), r.normalizer.Normalize(suburb))

	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Printf("[%d/%d] geocoding %q", i+1, len(queries), query)

		candidates, err := r.geocoder.Search(ctx, query, r.search)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			metrics.GeocodeAttempts.WithLabelValues(metrics.OutcomeError).Inc()
			log.Printf("[%d/%d] geocoding failed: %v", i+1, len(queries), err)

			continue
		}

		if len(candidates) == 0 {
			metrics.GeocodeAttempts.WithLabelValues(metrics.OutcomeEmpty).Inc()

			if i < len(queries)-1 && r.delay > 0 {
				if err := r.wait(ctx, r.delay); err != nil {
					return nil, err
				}
			}

			continue
		}

		metrics.GeocodeAttempts.WithLabelValues(metrics.OutcomeFound).Inc()

		best := r.pick(candidates)
		log.Printf("[%d/%d] found %s (%s)", i+1, len(queries), best.DisplayName, best.Point.Format())

		metrics.Resolutions.WithLabelValues("found").Inc()
		metrics.ResolutionAttempts.Observe(float64(i + 1))

		return &Location{
			Point:       best.Point,
			DisplayName: best.DisplayName,
			Query:       query,
			Attempt:     i + 1,
		}, nil
	}

	metrics.Resolutions.WithLabelValues("not_found").Inc()

	return nil, nil
}

// pick prefers the first candidate whose label mentions the local area.
func (r *Resolver) pick(candidates []Candidate) Candidate {
	for _, c := range candidates {
		if textutils.ContainsAny(c.DisplayName, r.local) {
			return c
		}
	}

	return candidates[0]
}
