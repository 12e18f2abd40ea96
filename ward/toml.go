// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package ward

import (
	"fmt"

	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/pelletier/go-toml/v2"
)

type tomlFile struct {
	Wards []struct {
		ID       string      `toml:"id"`
		Name     string      `toml:"name"`
		Vertices [][]float64 `toml:"vertices"` // [lat, lng]
	} `toml:"ward"`
}

// ParseTOML reads boundaries written as
//
//	[[ward]]
//	id = "44"
//	name = "Ward 44"
//	vertices = [[-25.74, 28.22], [-25.74, 28.24], [-25.76, 28.24]]
func ParseTOML(data []byte) (*Registry, error) {
	var f tomlFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing boundaries TOML: %w", err)
	}

	boundaries := make([]*Boundary, 0, len(f.Wards))

	for _, w := range f.Wards {
		poly := make(spatial.Polygon, 0, len(w.Vertices))
		for _, v := range w.Vertices {
			if len(v) != 2 {
				return nil, fmt.Errorf("ward %s: vertex %v is not a [lat, lng] pair", w.ID, v)
			}

			poly = append(poly, spatial.Point{Lat: v[0], Lng: v[1]})
		}

		boundaries = append(boundaries, &Boundary{ID: w.ID, Name: w.Name, Polygon: poly})
	}

	return NewRegistry(boundaries...)
}
