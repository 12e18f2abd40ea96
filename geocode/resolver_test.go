// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResponse struct {
	candidates []Candidate
	err        error
}

// stubGeocoder replays one response per call and records the queries.
type stubGeocoder struct {
	responses []stubResponse
	queries   []string
	opts      []SearchOptions
}

func (s *stubGeocoder) Search(_ context.Context, query string, opts SearchOptions) ([]Candidate, error) {
	s.queries = append(s.queries, query)
	s.opts = append(s.opts, opts)

	i := len(s.queries) - 1
	if i >= len(s.responses) {
		return nil, nil
	}

	return s.responses[i].candidates, s.responses[i].err
}

type waitRecorder struct {
	waits []time.Duration
}

func (w *waitRecorder) wait(_ context.Context, d time.Duration) error {
	w.waits = append(w.waits, d)

	return nil
}

func newTestResolver(g Geocoder, w *waitRecorder) *Resolver {
	return NewResolver(g, ResolverOptions{Wait: w.wait})
}

var (
	pretoria = Candidate{
		Point:       spatial.Point{Lat: -25.746, Lng: 28.231},
		DisplayName: "Hatfield, City of Tshwane, Gauteng, South Africa",
	}
	capeTown = Candidate{
		Point:       spatial.Point{Lat: -33.92, Lng: 18.42},
		DisplayName: "Main Street, Cape Town, Western Cape, South Africa",
	}
)

func TestResolveStopsAtFirstNonEmpty(t *testing.T) {
	g := &stubGeocoder{responses: []stubResponse{
		{}, {}, {},
		{candidates: []Candidate{pretoria}},
	}}
	w := &waitRecorder{}

	loc, err := newTestResolver(g, w).Resolve(context.Background(), "1 church street", "hatfield")
	require.NoError(t, err)
	require.NotNil(t, loc)

	want := &Location{
		Point:       pretoria.Point,
		DisplayName: pretoria.DisplayName,
		Query:       "Hatfield, Pretoria, Gauteng, South Africa",
		Attempt:     4,
	}
	if diff := cmp.Diff(want, loc); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}

	assert.Len(t, g.queries, 4)
	assert.Equal(t, []time.Duration{DefaultDelay, DefaultDelay, DefaultDelay}, w.waits)
}

func TestResolveSearchOptions(t *testing.T) {
	g := &stubGeocoder{responses: []stubResponse{{candidates: []Candidate{pretoria}}}}

	_, err := newTestResolver(g, &waitRecorder{}).Resolve(context.Background(), "1 Church Street", "Hatfield")
	require.NoError(t, err)

	assert.Equal(t, []SearchOptions{{Limit: 3, CountryCodes: []string{"za"}, AddressDetails: true}}, g.opts)
	assert.Equal(t, []string{"1 Church Street, Hatfield, Pretoria, Gauteng, South Africa"}, g.queries)
}

func TestResolveNonLocalFirstResult(t *testing.T) {
	g := &stubGeocoder{responses: []stubResponse{{candidates: []Candidate{capeTown}}}}
	w := &waitRecorder{}

	loc, err := newTestResolver(g, w).Resolve(context.Background(), "Main Street", "Gardens")
	require.NoError(t, err)
	require.NotNil(t, loc)

	assert.Equal(t, capeTown.Point, loc.Point)
	assert.Equal(t, 1, loc.Attempt)
	assert.Len(t, g.queries, 1)
	assert.Empty(t, w.waits)
}

func TestResolvePrefersLocalCandidate(t *testing.T) {
	local := Candidate{
		Point:       spatial.Point{Lat: -25.75, Lng: 28.24},
		DisplayName: "Main Street, PRETORIA",
	}
	g := &stubGeocoder{responses: []stubResponse{{candidates: []Candidate{capeTown, local, pretoria}}}}

	loc, err := newTestResolver(g, &waitRecorder{}).Resolve(context.Background(), "Main Street", "Hatfield")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, local.Point, loc.Point)
}

func TestResolveErrorSkipsWithoutDelay(t *testing.T) {
	g := &stubGeocoder{responses: []stubResponse{
		{err: &GeocodingError{Type: ErrorTypeNetworkError, Message: "boom"}},
		{candidates: []Candidate{pretoria}},
	}}
	w := &waitRecorder{}

	loc, err := newTestResolver(g, w).Resolve(context.Background(), "1 Church Street", "Hatfield")
	require.NoError(t, err)
	require.NotNil(t, loc)

	assert.Equal(t, 2, loc.Attempt)
	assert.Empty(t, w.waits)
}

func TestResolveNothingFound(t *testing.T) {
	g := &stubGeocoder{}
	w := &waitRecorder{}

	loc, err := newTestResolver(g, w).Resolve(context.Background(), "1 Nowhere Lane", "Atlantis")
	require.NoError(t, err)
	assert.Nil(t, loc)

	assert.Len(t, g.queries, 6)
	assert.Len(t, w.waits, 5)
}

func TestResolveZeroDelayDisablesWait(t *testing.T) {
	g := &stubGeocoder{}
	w := &waitRecorder{}

	var delay time.Duration

	loc, err := NewResolver(g, ResolverOptions{Delay: &delay, Wait: w.wait}).
		Resolve(context.Background(), "1 Nowhere Lane", "Atlantis")
	require.NoError(t, err)
	assert.Nil(t, loc)
	assert.Len(t, g.queries, 6)
	assert.Empty(t, w.waits)
}

func TestResolveAllErrors(t *testing.T) {
	boom := errors.New("boom")
	g := &stubGeocoder{responses: []stubResponse{
		{err: boom}, {err: boom}, {err: boom}, {err: boom}, {err: boom}, {err: boom},
	}}
	w := &waitRecorder{}

	loc, err := newTestResolver(g, w).Resolve(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Nil(t, loc)
	assert.Len(t, g.queries, 6)
	assert.Empty(t, w.waits)
}

// cancelAfterSearch cancels the context once the first search returns.
type cancelAfterSearch struct {
	stubGeocoder
	cancel context.CancelFunc
}

func (c *cancelAfterSearch) Search(ctx context.Context, query string, opts SearchOptions) ([]Candidate, error) {
	defer c.cancel()

	return c.stubGeocoder.Search(ctx, query, opts)
}

func TestResolveCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g := &cancelAfterSearch{cancel: cancel}
	delay := time.Hour
	r := NewResolver(g, ResolverOptions{Delay: &delay})

	loc, err := r.Resolve(ctx, "a", "b")
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, loc)
	assert.Len(t, g.queries, 1)
}

func TestResolveCancelledBeforeStart(t *testing.T) {
	g := &stubGeocoder{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestResolver(g, &waitRecorder{}).Resolve(ctx, "a", "b")
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, g.queries)
}
