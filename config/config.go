// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the wardcheck settings from defaults, a TOML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jcodagnone/wardcheck/address"
	"github.com/jcodagnone/wardcheck/geocode"
	"github.com/jcodagnone/wardcheck/submission"
	"github.com/jcodagnone/wardcheck/ward"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "WARDCHECK_"

// Geocoding providers.
const (
	ProviderNominatim = "nominatim"
	ProviderGoogle    = "google"
)

// Duration is a time.Duration written as "1s" or "500ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}

	d.Duration = v

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Geocoder configures the provider and the resolver policy.
type Geocoder struct {
	Provider          string   `toml:"provider"`
	BaseURL           string   `toml:"base_url"`
	UserAgent         string   `toml:"user_agent"`
	CountryCodes      []string `toml:"country_codes"`
	LocalTokens       []string `toml:"local_tokens"`
	Limit             int      `toml:"limit"`
	Delay             Duration `toml:"delay"`
	RequestsPerSecond float64  `toml:"requests_per_second"`

	GoogleAPIKey      string `toml:"google_api_key"`
	GoogleProject     string `toml:"google_project"`
	GoogleKeyName     string `toml:"google_key_name"`
	EnableHTTPTrace   bool   `toml:"trace_http"`
	EnableHTTPBodyLog bool   `toml:"trace_http_body"`
}

// Submission configures where automatic checks are reported.
type Submission struct {
	FormURL    string              `toml:"form_url"`
	Fields     submission.FieldMap `toml:"fields"`
	DuckDBPath string              `toml:"duckdb_path"`
}

// Server configures the HTTP presentation layer.
type Server struct {
	Addr string `toml:"addr"`
}

// Config holds every setting.
type Config struct {
	Ward       string           `toml:"ward"`
	Boundaries string           `toml:"boundaries"`
	Locality   address.Locality `toml:"locality"`
	Geocoder   Geocoder         `toml:"geocoder"`
	Submission Submission       `toml:"submission"`
	Server     Server           `toml:"server"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		Ward:       ward.DefaultID,
		Boundaries: "wards.toml",
		Locality:   address.DefaultLocality,
		Geocoder: Geocoder{
			Provider:      ProviderNominatim,
			BaseURL:       geocode.DefaultNominatimURL,
			UserAgent:     geocode.DefaultUserAgent,
			CountryCodes:  append([]string(nil), geocode.DefaultCountryCodes...),
			LocalTokens:   append([]string(nil), geocode.DefaultLocalTokens...),
			Limit:         geocode.DefaultLimit,
			Delay:         Duration{geocode.DefaultDelay},
			GoogleKeyName: geocode.DefaultAPIKeyDisplayName,
		},
		Submission: Submission{
			Fields: submission.DefaultFieldMap,
		},
		Server: Server{
			Addr: ":8080",
		},
	}
}

// Load builds the configuration: defaults, then the TOML file at path (if
// not empty), then the env files (missing ones are skipped) and finally the
// WARDCHECK_* environment variables. The result is validated.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 - path is provided by the operator
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	for _, f := range envFiles {
		// Already set variables win over the file.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", f, err)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides settings from WARDCHECK_* variables read with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	strs := map[string]*string{
		"WARD":             &c.Ward,
		"BOUNDARIES":       &c.Boundaries,
		"CITY":             &c.Locality.City,
		"REGION":           &c.Locality.Region,
		"COUNTRY":          &c.Locality.Country,
		"GEOCODER":         &c.Geocoder.Provider,
		"NOMINATIM_URL":    &c.Geocoder.BaseURL,
		"USER_AGENT":       &c.Geocoder.UserAgent,
		"GOOGLE_API_KEY":   &c.Geocoder.GoogleAPIKey,
		"GOOGLE_PROJECT":   &c.Geocoder.GoogleProject,
		"FORM_URL":         &c.Submission.FormURL,
		"DUCKDB":           &c.Submission.DuckDBPath,
		"ADDR":             &c.Server.Addr,
		"GOOGLE_KEY_NAME":  &c.Geocoder.GoogleKeyName,
		"FIELD_FIRST_NAME": &c.Submission.Fields.FirstName,
		"FIELD_LAST_NAME":  &c.Submission.Fields.LastName,
		"FIELD_STREET":     &c.Submission.Fields.StreetAddress,
		"FIELD_SUBURB":     &c.Submission.Fields.Suburb,
		"FIELD_CELLPHONE":  &c.Submission.Fields.Cellphone,
		"FIELD_GPS_PIN":    &c.Submission.Fields.GPSPin,
	}

	for name, dst := range strs {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}

	if v := getenv(EnvPrefix + "LOCAL_TOKENS"); v != "" {
		c.Geocoder.LocalTokens = splitList(v)
	}

	if v := getenv(EnvPrefix + "COUNTRY_CODES"); v != "" {
		c.Geocoder.CountryCodes = splitList(v)
	}

	if v := getenv(EnvPrefix + "DELAY"); v != "" {
		if err := c.Geocoder.Delay.UnmarshalText([]byte(v)); err != nil {
			return &Error{Field: EnvPrefix + "DELAY", Reason: err.Error()}
		}
	}

	if v := getenv(EnvPrefix + "LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &Error{Field: EnvPrefix + "LIMIT", Reason: err.Error()}
		}

		c.Geocoder.Limit = n
	}

	return nil
}

func splitList(v string) []string {
	var out []string

	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// Error reports an invalid setting.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	check := func(ok bool, field, reason string) {
		if !ok {
			errs = append(errs, &Error{Field: field, Reason: reason})
		}
	}

	check(ward.NormalizeID(c.Ward) != "", "ward", "is required")
	check(c.Boundaries != "", "boundaries", "is required")
	check(c.Locality.City != "" && c.Locality.Region != "" && c.Locality.Country != "",
		"locality", "city, region and country are required")
	check(c.Geocoder.Provider == ProviderNominatim || c.Geocoder.Provider == ProviderGoogle,
		"geocoder.provider", fmt.Sprintf("unknown provider %q", c.Geocoder.Provider))
	check(c.Geocoder.Limit > 0, "geocoder.limit", "must be positive")
	check(c.Geocoder.Delay.Duration >= 0, "geocoder.delay", "must not be negative")
	check(c.Geocoder.RequestsPerSecond >= 0, "geocoder.requests_per_second", "must not be negative")

	return errors.Join(errs...)
}
