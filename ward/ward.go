// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package ward loads the electoral ward boundaries eligibility is checked
// against.
package ward

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jcodagnone/wardcheck/spatial"
)

// DefaultID is the ward checked when none is configured.
const DefaultID = "44"

// ErrWardNotFound is returned when the registry has no boundary for a ward.
var ErrWardNotFound = errors.New("ward boundary not found")

// Boundary is the polygon of one ward. It is not modified after loading.
type Boundary struct {
	ID      string          `json:"id"`
	Name    string          `json:"name,omitempty"`
	Polygon spatial.Polygon `json:"polygon"`
}

// Label is the human readable ward name.
func (b *Boundary) Label() string {
	if b.Name != "" {
		return b.Name
	}

	return "Ward " + b.ID
}

// Contains reports whether p lies inside the ward. A nil boundary or point
// is reported as outside.
func (b *Boundary) Contains(p *spatial.Point) bool {
	if b == nil {
		return false
	}

	return spatial.IsInside(p, b.Polygon)
}

// NormalizeID accepts both "44" and "ward44".
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 4 && strings.EqualFold(id[:4], "ward") {
		id = strings.TrimSpace(id[4:])
	}

	return id
}

// Registry maps ward ids to their boundaries.
type Registry struct {
	wards map[string]*Boundary
}

// NewRegistry validates and indexes the boundaries. Duplicate ids are an
// error.
func NewRegistry(boundaries ...*Boundary) (*Registry, error) {
	r := &Registry{wards: make(map[string]*Boundary, len(boundaries))}

	for _, b := range boundaries {
		id := NormalizeID(b.ID)
		if id == "" {
			return nil, errors.New("ward boundary without id")
		}

		if err := b.Polygon.Validate(); err != nil {
			return nil, fmt.Errorf("ward %s: %w", id, err)
		}

		if _, dup := r.wards[id]; dup {
			return nil, fmt.Errorf("ward %s defined twice", id)
		}

		b.ID = id
		r.wards[id] = b
	}

	return r, nil
}

// Lookup returns the boundary of the ward identified by id.
func (r *Registry) Lookup(id string) (*Boundary, error) {
	id = NormalizeID(id)

	b, ok := r.wards[id]
	if !ok {
		return nil, fmt.Errorf("%w: ward %q", ErrWardNotFound, id)
	}

	return b, nil
}

// IDs returns the known ward ids in lexical order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.wards))
	for id := range r.wards {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Len returns the number of wards.
func (r *Registry) Len() int {
	return len(r.wards)
}

// Load reads a boundary file, picking the format by extension: .toml for
// TOML, .json and .geojson for GeoJSON.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("reading boundaries file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return ParseTOML(data)
	case ".json", ".geojson":
		return ParseGeoJSON(data)
	default:
		return nil, fmt.Errorf("unsupported boundaries file extension %q", ext)
	}
}
