// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package submission delivers eligibility records to their destinations.
package submission

import (
	"context"
	"errors"
	"time"

	"github.com/jcodagnone/wardcheck/spatial"
)

// NotFoundText replaces the coordinate of addresses that could not be
// located.
const NotFoundText = "Not found automatically"

// Record is one automatic eligibility check as reported to a sink.
type Record struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	StreetAddress string `json:"street_address"`
	Suburb        string `json:"suburb"`
	Cellphone     string `json:"cellphone"`

	// Location is nil when the address could not be resolved.
	Location    *spatial.Point `json:"location,omitempty"`
	DisplayName string         `json:"display_name,omitempty"`

	Ward   string `json:"ward"`
	Result string `json:"result"` // inside, outside, undetermined

	SubmittedAt time.Time `json:"submitted_at"`
}

// GPSPin renders the location as "lat, lng" with six decimals, or
// NotFoundText.
func (r *Record) GPSPin() string {
	if r.Location == nil {
		return NotFoundText
	}

	return r.Location.Format()
}

// Sink accepts records. Implementations must not retry on their own.
type Sink interface {
	Submit(ctx context.Context, rec *Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, rec *Record) error

// Submit implements Sink.
func (f SinkFunc) Submit(ctx context.Context, rec *Record) error {
	return f(ctx, rec)
}

// Tee delivers every record to all sinks, even when some of them fail.
type Tee []Sink

// Submit implements Sink.
func (t Tee) Submit(ctx context.Context, rec *Record) error {
	var errs []error

	for _, s := range t {
		if err := s.Submit(ctx, rec); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Discard accepts and drops every record.
var Discard Sink = SinkFunc(func(context.Context, *Record) error { return nil })
