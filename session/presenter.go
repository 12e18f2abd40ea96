// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"fmt"

	"github.com/jcodagnone/wardcheck/spatial"
)

// StatusKind drives how a status message is rendered.
type StatusKind string

// Status kinds.
const (
	StatusLoading StatusKind = "loading"
	StatusSuccess StatusKind = "success"
	StatusWarning StatusKind = "warning"
	StatusError   StatusKind = "error"
)

// Status is the one line status display. Action, when set, relabels the
// check button.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
	Action  string     `json:"action,omitempty"`
}

// Marker colours.
const (
	ColorInside  = "#4CAF50"
	ColorOutside = "#f44336"
)

// Marker pins a classified point on the map.
type Marker struct {
	Point       spatial.Point `json:"point"`
	Eligibility Eligibility   `json:"eligibility"`
	Color       string        `json:"color"`
	Title       string        `json:"title"`
	Label       string        `json:"label"`
	Manual      bool          `json:"manual"`
}

// MapView is the boundary overlay with its legend.
type MapView struct {
	Ward         string          `json:"ward"`
	Boundary     spatial.Polygon `json:"boundary"`
	Center       spatial.Point   `json:"center"`
	Bounds       spatial.Bounds  `json:"bounds"`
	Legend       []string        `json:"legend"`
	Instructions []string        `json:"instructions,omitempty"`
	Manual       bool            `json:"manual"`
}

// Result is the results panel shown after an automatic check.
type Result struct {
	Outcome      Outcome  `json:"outcome"`
	Title        string   `json:"title"`
	Lines        []string `json:"lines"`
	Instructions []string `json:"instructions"`
}

// Presenter renders the session. Calls are made with the session lock held:
// implementations must not call back into the session.
type Presenter interface {
	ShowStatus(Status)
	ShowResult(Result)
	ShowMarker(Marker)
	ShowMap(MapView)

	// Confirm raises the blocking confirmation dialog.
	Confirm(message string)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) ShowStatus(Status) {}
func (NopPresenter) ShowResult(Result) {}
func (NopPresenter) ShowMarker(Marker) {}
func (NopPresenter) ShowMap(MapView)   {}
func (NopPresenter) Confirm(string)    {}

func wardLabel(e Eligibility, ward string) string {
	switch e {
	case Inside:
		return "✅ Inside Ward " + ward
	case Outside:
		return "❌ Outside Ward " + ward
	default:
		return "❔ Ward " + ward + " not determined"
	}
}

func markerFor(p spatial.Point, e Eligibility, ward string, manual bool) Marker {
	m := Marker{
		Point:       p,
		Eligibility: e,
		Color:       ColorOutside,
		Title:       "🏠 Your Home Address",
		Label:       wardLabel(e, ward),
		Manual:      manual,
	}

	if e == Inside {
		m.Color = ColorInside
	}

	if manual {
		m.Title = "📍 Checked Location"
	}

	return m
}

func foundResult(o Outcome) Result {
	return Result{
		Outcome: o,
		Title:   "🏠 Home Address Found:",
		Lines: []string{
			o.Location.DisplayName,
			"Coordinates: " + o.Location.Point.Format(),
			"Ward Status: " + wardLabel(o.Eligibility, o.Ward),
		},
		Instructions: []string{
			fmt.Sprintf("The map shows Ward %s boundaries (green area)", o.Ward),
			"Click anywhere on the map to see if that location is inside or outside the ward",
			"Green markers = Inside Ward, Red markers = Outside Ward",
			"This is just for visual confirmation - no data is submitted",
		},
	}
}

func notFoundResult(o Outcome) Result {
	return Result{
		Outcome: o,
		Title:   "⚠️ Address Not Found Automatically",
		Lines: []string{
			fmt.Sprintf("We couldn't locate %q automatically.", o.Input.StreetAddress+", "+o.Input.Suburb),
			"📍 Address lookups are not always 100% accurate",
		},
		Instructions: []string{
			fmt.Sprintf("The map shows Ward %s boundaries (green area)", o.Ward),
			"Click anywhere on the map to see if that location is inside or outside the ward",
			"Green markers = Inside Ward, Red markers = Outside Ward",
			"Use this to visually confirm your eligibility",
		},
	}
}

func finalStatus(e Eligibility, ward string) Status {
	switch e {
	case Inside:
		return Status{Kind: StatusSuccess, Message: "✅ Eligibility confirmed!", Action: "✅ Eligible to Vote"}
	case Outside:
		return Status{Kind: StatusWarning, Message: "📝 Not Eligible", Action: "❌ Outside Ward " + ward}
	default:
		return Status{Kind: StatusWarning, Message: "📝 Address lookup failed - try visual check below", Action: "🗺️ Try Visual Check"}
	}
}

func confirmation(e Eligibility, ward string) string {
	switch e {
	case Inside:
		return fmt.Sprintf("🎉 Great news! Your home address is INSIDE Ward %s.\n\nYou ARE eligible to vote in this by-election!", ward)
	case Outside:
		return fmt.Sprintf("📍 Your home address is OUTSIDE Ward %s.\n\nYou are NOT eligible to vote in this by-election.", ward)
	default:
		return ""
	}
}

func probeStatus(e Eligibility, ward string) Status {
	switch e {
	case Inside:
		return Status{Kind: StatusSuccess, Message: fmt.Sprintf("✅ That location is INSIDE Ward %s! Click elsewhere to check other locations.", ward)}
	case Outside:
		return Status{Kind: StatusError, Message: fmt.Sprintf("❌ That location is OUTSIDE Ward %s. Click elsewhere to check other locations.", ward)}
	default:
		return Status{Kind: StatusError, Message: fmt.Sprintf("⚠️ No boundaries found for Ward %s.", ward)}
	}
}

var (
	validationStatus = Status{Kind: StatusError, Message: "Please fill in all required fields before submitting."}
	lookingUpStatus  = Status{Kind: StatusLoading, Message: "🔍 Looking up your home address...", Action: "⏳ Processing..."}
	manualStatus     = Status{Kind: StatusLoading, Message: "🎯 Click anywhere on the map to check eligibility for that location"}
)
