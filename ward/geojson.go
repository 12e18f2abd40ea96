// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package ward

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jcodagnone/wardcheck/spatial"
)

type geoJSONFile struct {
	Features []struct {
		Geometry struct {
			Type        string          `json:"type"`
			Coordinates json.RawMessage `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Ward json.RawMessage `json:"ward"`
			Name string          `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

// ParseGeoJSON reads a FeatureCollection of Polygon features. The ward id is
// taken from properties.ward (string or number); only the outer ring is used
// and its closing vertex is dropped.
func ParseGeoJSON(data []byte) (*Registry, error) {
	var f geoJSONFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing boundaries GeoJSON: %w", err)
	}

	boundaries := make([]*Boundary, 0, len(f.Features))

	for i, feature := range f.Features {
		id := strings.Trim(strings.TrimSpace(string(feature.Properties.Ward)), `"`)
		if id == "" || id == "null" {
			return nil, fmt.Errorf("feature %d: missing ward property", i)
		}

		if feature.Geometry.Type != "Polygon" {
			return nil, fmt.Errorf("feature %d (ward %s): unsupported geometry %q", i, id, feature.Geometry.Type)
		}

		var rings [][][]float64
		if err := json.Unmarshal(feature.Geometry.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("feature %d (ward %s): parsing coordinates: %w", i, id, err)
		}

		if len(rings) == 0 {
			return nil, fmt.Errorf("feature %d (ward %s): polygon without rings", i, id)
		}

		poly := make(spatial.Polygon, 0, len(rings[0]))

		for _, c := range rings[0] {
			if len(c) < 2 {
				return nil, fmt.Errorf("feature %d (ward %s): invalid position %v", i, id, c)
			}

			// GeoJSON positions are [lng, lat]
			poly = append(poly, spatial.Point{Lng: c[0], Lat: c[1]})
		}

		if n := len(poly); n > 1 && poly[0] == poly[n-1] {
			poly = poly[:n-1]
		}

		boundaries = append(boundaries, &Boundary{ID: id, Name: feature.Properties.Name, Polygon: poly})
	}

	return NewRegistry(boundaries...)
}
