// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/wardcheck/config"
	"github.com/jcodagnone/wardcheck/geocode"
	"github.com/jcodagnone/wardcheck/submission"
	"github.com/jcodagnone/wardcheck/utils/httputils"
	"github.com/jcodagnone/wardcheck/ward"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootOptions.ConfigPath, rootOptions.EnvFiles...)
	if err != nil {
		return nil, err
	}

	if rootOptions.Ward != "" {
		cfg.Ward = ward.NormalizeID(rootOptions.Ward)
	}

	if rootOptions.TraceHTTP {
		cfg.Geocoder.EnableHTTPTrace = true
	}

	return cfg, nil
}

func userAgent(cfg *config.Config) string {
	if cfg.Geocoder.UserAgent != "" {
		return cfg.Geocoder.UserAgent
	}

	return fmt.Sprintf("wardcheck/%s (+https://github.com/jcodagnone/wardcheck)", Version)
}

func buildGeocoder(ctx context.Context, cfg *config.Config) (geocode.Geocoder, error) {
	g := cfg.Geocoder

	switch g.Provider {
	case config.ProviderGoogle:
		key := g.GoogleAPIKey
		if key == "" {
			var err error

			key, err = geocode.APIKeyFromADC(ctx, g.GoogleProject, g.GoogleKeyName)
			if err != nil {
				return nil, fmt.Errorf("retrieving Google Maps API key: %w", err)
			}
		}

		return geocode.NewGoogleMapsGeocoder(geocode.GoogleMapsOptions{
			APIKey:          key,
			UserAgent:       userAgent(cfg),
			EnableHTTPTrace: g.EnableHTTPTrace,
		}), nil
	case config.ProviderNominatim, "":
		return geocode.NewNominatimGeocoder(geocode.NominatimOptions{
			BaseURL:             g.BaseURL,
			UserAgent:           userAgent(cfg),
			RequestsPerSecond:   g.RequestsPerSecond,
			EnableHTTPTrace:     g.EnableHTTPTrace,
			EnableHTTPBodyTrace: g.EnableHTTPBodyLog,
		}), nil
	default:
		return nil, fmt.Errorf("unknown geocoding provider %q", g.Provider)
	}
}

func buildResolver(ctx context.Context, cfg *config.Config) (*geocode.Resolver, error) {
	g, err := buildGeocoder(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return geocode.NewResolver(g, geocode.ResolverOptions{
		Locality:     cfg.Locality,
		CountryCodes: cfg.Geocoder.CountryCodes,
		Limit:        cfg.Geocoder.Limit,
		LocalTokens:  cfg.Geocoder.LocalTokens,
		Delay:        &cfg.Geocoder.Delay.Duration,
	}), nil
}

// loadBoundary returns the configured ward. An unknown ward or a missing
// boundaries file is logged and yields nil: checks then stay undetermined.
func loadBoundary(cfg *config.Config) (*ward.Registry, *ward.Boundary) {
	registry, err := ward.Load(cfg.Boundaries)
	if err != nil {
		log.Printf("Loading ward boundaries from %s failed - %s", cfg.Boundaries, err)

		return nil, nil
	}

	boundary, err := registry.Lookup(cfg.Ward)
	if err != nil {
		if errors.Is(err, ward.ErrWardNotFound) {
			log.Printf("No boundaries found for ward %s", cfg.Ward)
		} else {
			log.Printf("Looking up ward %s failed - %s", cfg.Ward, err)
		}

		return registry, nil
	}

	return registry, boundary
}

func openStore(path string) (*submission.DuckDBSink, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := submission.NewDuckDBSink(db)
	if err := store.CreateSchema(); err != nil {
		db.Close()

		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return store, nil
}

// buildSink combines the configured sinks. The returned close function
// releases the local store, if any.
func buildSink(cfg *config.Config) (submission.Sink, func() error, error) {
	var sinks submission.Tee

	closer := func() error { return nil }

	if cfg.Submission.FormURL != "" {
		client := httputils.NewClient(httputils.ClientOptions{
			UserAgent:       userAgent(cfg),
			EnableHTTPTrace: cfg.Geocoder.EnableHTTPTrace,
		})
		sinks = append(sinks, submission.NewFormSink(cfg.Submission.FormURL, cfg.Submission.Fields, client))
	}

	if cfg.Submission.DuckDBPath != "" {
		store, err := openStore(cfg.Submission.DuckDBPath)
		if err != nil {
			return nil, nil, err
		}

		sinks = append(sinks, store)
		closer = store.DB().Close
	}

	switch len(sinks) {
	case 0:
		log.Printf("No submission sink configured, checks will not be recorded")

		return submission.Discard, closer, nil
	case 1:
		return sinks[0], closer, nil
	default:
		return sinks, closer, nil
	}
}
