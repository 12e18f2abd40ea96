// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package session orchestrates an eligibility check: the automatic address
// flow and the manual map probe.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jcodagnone/wardcheck/geocode"
	"github.com/jcodagnone/wardcheck/metrics"
	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/jcodagnone/wardcheck/submission"
	"github.com/jcodagnone/wardcheck/ward"
)

// Resolver turns an address into a location; nil means not found.
type Resolver interface {
	Resolve(ctx context.Context, street, suburb string) (*geocode.Location, error)
}

// Options holds the collaborators of a Session.
type Options struct {
	Resolver  Resolver
	Presenter Presenter
	Sink      submission.Sink

	// Boundary may be nil when the configured ward is unknown; every
	// check is then Undetermined.
	Boundary *ward.Boundary

	// WardID labels messages and records; taken from Boundary when empty.
	WardID string

	Now func() time.Time
}

// Session is the state of one user interaction. It is safe for concurrent
// use; at most one automatic check runs at a time.
type Session struct {
	resolver  Resolver
	presenter Presenter
	sink      submission.Sink
	boundary  *ward.Boundary
	wardID    string
	now       func() time.Time

	mu     sync.Mutex
	mode   Mode
	busy   bool
	status Status
	last   *Outcome
	probe  *Probe
	marker *Marker
}

// New creates a session in automatic mode.
func New(opts Options) *Session {
	s := &Session{
		resolver:  opts.Resolver,
		presenter: opts.Presenter,
		sink:      opts.Sink,
		boundary:  opts.Boundary,
		wardID:    opts.WardID,
		now:       opts.Now,
	}

	if s.presenter == nil {
		s.presenter = NopPresenter{}
	}

	if s.sink == nil {
		s.sink = submission.Discard
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.wardID == "" {
		if s.boundary != nil {
			s.wardID = s.boundary.ID
		} else {
			s.wardID = ward.DefaultID
		}
	}

	return s
}

// WardID returns the ward checked by the session.
func (s *Session) WardID() string {
	return s.wardID
}

func (s *Session) classify(p *spatial.Point) Eligibility {
	if s.boundary == nil {
		log.Printf("No boundaries found for ward %s", s.wardID)

		return Undetermined
	}

	if s.boundary.Contains(p) {
		return Inside
	}

	return Outside
}

// showStatus must be called with mu held.
func (s *Session) showStatus(st Status) {
	s.status = st
	s.presenter.ShowStatus(st)
}

// automaticStatus shows st unless the session switched to manual mode.
// It must be called with mu held.
func (s *Session) automaticStatus(st Status) bool {
	if s.mode == ManualProbe {
		log.Printf("Skipping status %q in manual mode", st.Message)

		return false
	}

	s.showStatus(st)

	return true
}

// Submit runs the automatic check: resolve the address, classify it, show
// the result and report it to the sink exactly once. A sink failure is
// returned together with the outcome, which stays displayed.
func (s *Session) Submit(ctx context.Context, in AddressInput) (Outcome, error) {
	if err := in.Validate(); err != nil {
		s.mu.Lock()
		s.showStatus(validationStatus)
		s.mu.Unlock()

		return Outcome{}, err
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()

		return Outcome{}, ErrBusy
	}

	s.busy = true
	s.automaticStatus(lookingUpStatus)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	loc, err := s.resolver.Resolve(ctx, in.StreetAddress, in.Suburb)
	if err != nil {
		s.mu.Lock()
		s.automaticStatus(Status{Kind: StatusError, Message: "⚠️ Address lookup was interrupted. Please try again."})
		s.mu.Unlock()

		return Outcome{}, fmt.Errorf("resolving address: %w", err)
	}

	outcome := Outcome{Input: in, Location: loc, Ward: s.wardID}

	s.mu.Lock()
	if loc != nil {
		outcome.Eligibility = s.classify(&loc.Point)

		marker := markerFor(loc.Point, outcome.Eligibility, s.wardID, false)
		s.marker = &marker

		s.presenter.ShowResult(foundResult(outcome))
		s.presenter.ShowMap(s.mapView())
		s.presenter.ShowMarker(marker)
	} else {
		s.presenter.ShowResult(notFoundResult(outcome))
	}

	s.last = &outcome
	s.mu.Unlock()

	metrics.Eligibility.WithLabelValues(AutomaticResult.String(), outcome.Eligibility.String()).Inc()

	if err := s.sink.Submit(ctx, s.record(outcome)); err != nil {
		metrics.SubmissionFailures.Inc()

		return outcome, fmt.Errorf("%w: %w", ErrSubmission, err)
	}

	s.mu.Lock()
	if s.automaticStatus(finalStatus(outcome.Eligibility, s.wardID)) {
		if msg := confirmation(outcome.Eligibility, s.wardID); msg != "" {
			s.presenter.Confirm(msg)
		}
	}
	s.mu.Unlock()

	return outcome, nil
}

func (s *Session) record(o Outcome) *submission.Record {
	rec := &submission.Record{
		FirstName:     o.Input.FirstName,
		LastName:      o.Input.LastName,
		StreetAddress: o.Input.StreetAddress,
		Suburb:        o.Input.Suburb,
		Cellphone:     o.Input.Cellphone,
		Ward:          o.Ward,
		Result:        o.Eligibility.String(),
		SubmittedAt:   s.now(),
	}

	if o.Location != nil {
		p := o.Location.Point
		rec.Location = &p
		rec.DisplayName = o.Location.DisplayName
	}

	return rec
}

// EnterManualMode switches to map probing. The last automatic outcome is
// kept.
func (s *Session) EnterManualMode() MapView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = ManualProbe
	view := s.mapView()

	s.presenter.ShowMap(view)
	s.showStatus(manualStatus)

	return view
}

// ExitManualMode returns to automatic mode; status updates of automatic
// checks are shown again.
func (s *Session) ExitManualMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = AutomaticResult
}

// Click classifies a point chosen on the map. Manual probes are never
// reported to the sink.
func (s *Session) Click(p spatial.Point) (Eligibility, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ManualProbe {
		return Undetermined, ErrNotManual
	}

	e := s.classify(&p)
	marker := markerFor(p, e, s.wardID, true)

	s.probe = &Probe{Point: p, Eligibility: e}
	s.marker = &marker

	s.presenter.ShowMarker(marker)
	s.showStatus(probeStatus(e, s.wardID))

	metrics.Eligibility.WithLabelValues(ManualProbe.String(), e.String()).Inc()

	return e, nil
}

// mapView must be called with mu held.
func (s *Session) mapView() MapView {
	view := MapView{
		Ward:   s.wardID,
		Manual: s.mode == ManualProbe,
		Legend: []string{wardLabel(Inside, s.wardID), wardLabel(Outside, s.wardID)},
	}

	if s.boundary != nil {
		view.Boundary = s.boundary.Polygon
		view.Center = s.boundary.Polygon.Center()
		view.Bounds = s.boundary.Polygon.Bounds()
	}

	if view.Manual {
		view.Legend = append(view.Legend, "Click map to check any location")
		view.Instructions = []string{
			fmt.Sprintf("The map shows Ward %s boundaries (green area)", s.wardID),
			"Click anywhere on the map to see if that location is inside or outside the ward",
			"Green markers = Inside Ward, Red markers = Outside Ward",
		}
	}

	return view
}

// Snapshot is a copy of the session state for rendering.
type Snapshot struct {
	Ward    string   `json:"ward"`
	Mode    Mode     `json:"mode"`
	Busy    bool     `json:"busy"`
	Status  Status   `json:"status"`
	Outcome *Outcome `json:"outcome,omitempty"`
	Probe   *Probe   `json:"probe,omitempty"`
	Marker  *Marker  `json:"marker,omitempty"`
	Map     MapView  `json:"map"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Ward:   s.wardID,
		Mode:   s.mode,
		Busy:   s.busy,
		Status: s.status,
		Map:    s.mapView(),
	}

	if s.last != nil {
		o := *s.last
		snap.Outcome = &o
	}

	if s.probe != nil {
		p := *s.probe
		snap.Probe = &p
	}

	if s.marker != nil {
		m := *s.marker
		snap.Marker = &m
	}

	return snap
}

// IsValidation reports whether err is a form validation error.
func IsValidation(err error) bool {
	var vErr *ValidationError

	return errors.As(err, &vErr)
}
