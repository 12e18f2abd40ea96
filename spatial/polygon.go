// Copyright 2025 The WardCheck Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"errors"
	"fmt"
	"math"
)

// MinVertices is the smallest number of vertices a polygon can have.
const MinVertices = 3

// ErrTooFewVertices is returned when a polygon has less than MinVertices.
var ErrTooFewVertices = errors.New("polygon needs at least 3 vertices")

// Polygon is an ordered ring of vertices. The ring is implicitly closed: the
// last vertex connects back to the first one. Self-intersections are not
// detected and produce undefined membership results.
type Polygon []Point

// Validate checks the vertex count and the coordinate ranges.
func (poly Polygon) Validate() error {
	if len(poly) < MinVertices {
		return fmt.Errorf("%w (got %d)", ErrTooFewVertices, len(poly))
	}

	for i, p := range poly {
		if err := p.Valid(); err != nil {
			return fmt.Errorf("vertex %d: %w", i, err)
		}
	}

	return nil
}

// Contains classifies p using the even-odd rule. The ray is cast along the
// longitude axis: an edge is counted when it straddles p's latitude and its
// crossing longitude lies east of p.
func (poly Polygon) Contains(p Point) bool {
	inside := false

	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		vi, vj := poly[i], poly[j]

		// A horizontal edge never satisfies the straddle test, so the
		// interpolation below never divides by zero.
		if (vi.Lat > p.Lat) != (vj.Lat > p.Lat) {
			crossLng := (vj.Lng-vi.Lng)*(p.Lat-vi.Lat)/(vj.Lat-vi.Lat) + vi.Lng
			if p.Lng < crossLng {
				inside = !inside
			}
		}
	}

	return inside
}

// IsInside reports whether p lies inside poly. An absent point or an empty
// polygon is reported as outside.
func IsInside(p *Point, poly Polygon) bool {
	if p == nil || len(poly) == 0 {
		return false
	}

	return poly.Contains(*p)
}

// Reversed returns a copy of the polygon with the vertex order inverted.
func (poly Polygon) Reversed() Polygon {
	out := make(Polygon, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}

	return out
}

// Bounds is an axis aligned bounding box.
type Bounds struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Bounds returns the bounding box of the polygon. The zero value is returned
// for an empty polygon.
func (poly Polygon) Bounds() Bounds {
	if len(poly) == 0 {
		return Bounds{}
	}

	b := Bounds{
		Min: Point{Lat: math.Inf(1), Lng: math.Inf(1)},
		Max: Point{Lat: math.Inf(-1), Lng: math.Inf(-1)},
	}

	for _, p := range poly {
		b.Min.Lat = math.Min(b.Min.Lat, p.Lat)
		b.Min.Lng = math.Min(b.Min.Lng, p.Lng)
		b.Max.Lat = math.Max(b.Max.Lat, p.Lat)
		b.Max.Lng = math.Max(b.Max.Lng, p.Lng)
	}

	return b
}

// Center returns the midpoint of the bounding box, used to centre map views.
func (poly Polygon) Center() Point {
	b := poly.Bounds()

	return Point{
		Lat: (b.Min.Lat + b.Max.Lat) / 2,
		Lng: (b.Min.Lng + b.Max.Lng) / 2,
	}
}
