// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jcodagnone/wardcheck/geocode"
	"github.com/jcodagnone/wardcheck/spatial"
)

var (
	// ErrBusy is returned when an automatic check is already in flight.
	ErrBusy = errors.New("an address check is already in progress")

	// ErrNotManual is returned for map clicks outside manual mode.
	ErrNotManual = errors.New("session is not in manual mode")

	// ErrSubmission wraps sink failures; the outcome is still valid.
	ErrSubmission = errors.New("submitting record")
)

// Eligibility is the tri-state result of a check.
type Eligibility int

const (
	// Undetermined means there was no location or no boundary to check.
	Undetermined Eligibility = iota
	Inside
	Outside
)

var eligibilityNames = map[Eligibility]string{
	Undetermined: "undetermined",
	Inside:       "inside",
	Outside:      "outside",
}

func (e Eligibility) String() string {
	if name, ok := eligibilityNames[e]; ok {
		return name
	}

	return fmt.Sprintf("Eligibility(%d)", int(e))
}

// MarshalText implements encoding.TextMarshaler.
func (e Eligibility) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Mode is the interaction mode of a session.
type Mode int

const (
	// AutomaticResult shows the outcome of the last address check.
	AutomaticResult Mode = iota
	// ManualProbe classifies the points the user clicks on the map.
	ManualProbe
)

func (m Mode) String() string {
	if m == ManualProbe {
		return "manual"
	}

	return "automatic"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// AddressInput is the form the user fills in.
type AddressInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	StreetAddress string `json:"streetAddress"`
	Suburb        string `json:"suburb"`
	Cellphone     string `json:"cellphone"`
}

// ValidationError lists the required fields left empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Validate checks every field is filled in.
func (in AddressInput) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"firstName", in.FirstName},
		{"lastName", in.LastName},
		{"streetAddress", in.StreetAddress},
		{"suburb", in.Suburb},
		{"cellphone", in.Cellphone},
	}

	var missing []string

	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}

	return nil
}

// Outcome is the result of one automatic check.
type Outcome struct {
	Input       AddressInput      `json:"input"`
	Location    *geocode.Location `json:"location,omitempty"`
	Eligibility Eligibility       `json:"eligibility"`
	Ward        string            `json:"ward"`
}

// Probe is the result of one manual map click.
type Probe struct {
	Point       spatial.Point `json:"point"`
	Eligibility Eligibility   `json:"eligibility"`
}
