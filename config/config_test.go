// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jcodagnone/wardcheck/address"
	"github.com/jcodagnone/wardcheck/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "44", cfg.Ward)
	assert.Equal(t, time.Second, cfg.Geocoder.Delay.Duration)
	assert.Zero(t, cfg.Geocoder.RequestsPerSecond)
	assert.Equal(t, 3, cfg.Geocoder.Limit)
	assert.Equal(t, []string{"gauteng", "pretoria", "tshwane"}, cfg.Geocoder.LocalTokens)
	assert.Equal(t, "Ward-Boundary-Checker/1.0", cfg.Geocoder.UserAgent)
}

func TestLoadFile(t *testing.T) {
	t.Setenv("WARDCHECK_ADDR", "")
	t.Setenv("WARDCHECK_DUCKDB", "")

	cfg, err := Load(filepath.Join("testdata", "wardcheck.toml"))
	require.NoError(t, err)

	assert.Equal(t, "ward12", cfg.Ward)
	assert.Equal(t, "/etc/wardcheck/wards.geojson", cfg.Boundaries)
	assert.Equal(t, address.Locality{City: "Johannesburg", Region: "Gauteng", Country: "South Africa"}, cfg.Locality)
	assert.Equal(t, ProviderGoogle, cfg.Geocoder.Provider)
	assert.Equal(t, []string{"johannesburg", "joburg"}, cfg.Geocoder.LocalTokens)
	assert.Equal(t, 5, cfg.Geocoder.Limit)
	assert.Equal(t, 250*time.Millisecond, cfg.Geocoder.Delay.Duration)
	assert.Equal(t, "https://forms.example.org/submit", cfg.Submission.FormURL)

	want := submission.FieldMap{
		FirstName:     "entry.1",
		LastName:      "entry.2",
		StreetAddress: "entry.3",
		Suburb:        "entry.4",
		Cellphone:     "entry.5",
		GPSPin:        "entry.6",
	}
	if diff := cmp.Diff(want, cfg.Submission.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}

	// untouched defaults survive
	assert.Equal(t, []string{"za"}, cfg.Geocoder.CountryCodes)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("WARDCHECK_ADDR", ":7000")
	// registered for restoration, then removed so the env file can set it
	t.Setenv("WARDCHECK_DUCKDB", "")
	require.NoError(t, os.Unsetenv("WARDCHECK_DUCKDB"))

	cfg, err := Load("", filepath.Join("testdata", "test.env"), filepath.Join("testdata", "missing.env"))
	require.NoError(t, err)

	// the process environment wins over the env file
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "from-dotenv.duckdb", cfg.Submission.DuckDBPath)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.toml"))
	require.Error(t, err)

	t.Setenv("WARDCHECK_GEOCODER", "bing")

	_, err = Load("")

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "geocoder.provider", cfgErr.Field)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"WARDCHECK_WARD":          "7",
		"WARDCHECK_LOCAL_TOKENS":  " centurion, ,tshwane ",
		"WARDCHECK_COUNTRY_CODES": "za,ls",
		"WARDCHECK_DELAY":         "2s",
		"WARDCHECK_LIMIT":         "4",
		"WARDCHECK_FIELD_GPS_PIN": "entry.99",
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "7", cfg.Ward)
	assert.Equal(t, []string{"centurion", "tshwane"}, cfg.Geocoder.LocalTokens)
	assert.Equal(t, []string{"za", "ls"}, cfg.Geocoder.CountryCodes)
	assert.Equal(t, 2*time.Second, cfg.Geocoder.Delay.Duration)
	assert.Equal(t, 4, cfg.Geocoder.Limit)
	assert.Equal(t, "entry.99", cfg.Submission.Fields.GPSPin)

	env["WARDCHECK_DELAY"] = "soon"

	var cfgErr *Error
	require.ErrorAs(t, Default().ApplyEnv(func(k string) string { return env[k] }), &cfgErr)
	assert.Equal(t, "WARDCHECK_DELAY", cfgErr.Field)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := Default()
	cfg.Ward = ""
	cfg.Boundaries = ""
	cfg.Geocoder.Limit = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: ward: is required")
	assert.Contains(t, err.Error(), "config: boundaries: is required")
	assert.Contains(t, err.Error(), "config: geocoder.limit: must be positive")
}

func TestZeroDelayIsKept(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string {
		if k == EnvPrefix+"DELAY" {
			return "0s"
		}

		return ""
	}))
	require.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.Geocoder.Delay.Duration)
}
