// Copyright 2025 The WardCheck Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"database/sql/driver"
	"fmt"
)

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a WKT representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// Format renders the point as "lat, lng" with six decimals, the format used
// both in status messages and in submitted records.
func (p Point) Format() string {
	return fmt.Sprintf("%.6f, %.6f", p.Lat, p.Lng)
}

// Value implements the driver.Valuer interface for database serialization.
func (p Point) Value() (driver.Value, error) {
	return p.String(), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (p *Point) Scan(value interface{}) error {
	if value == nil {
		p.Lat, p.Lng = 0, 0

		return nil
	}

	switch v := value.(type) {
	case []byte:
		// The format from DuckDB is "POINT (lng lat)"
		_, err := fmt.Sscanf(string(v), "POINT (%f %f)", &p.Lng, &p.Lat)

		return err
	case string:
		_, err := fmt.Sscanf(v, "POINT (%f %f)", &p.Lng, &p.Lat)

		return err
	case map[string]interface{}:
		x, okX := v["x"].(float64)
		y, okY := v["y"].(float64)

		if !okX || !okY {
			return fmt.Errorf("spatial: invalid map for point: expected 'x' and 'y' float64 fields, got %+v", v)
		}

		p.Lng = x
		p.Lat = y

		return nil
	default:
		return fmt.Errorf("spatial: unsupported type for Point scan: %T", value)
	}
}

// Valid reports whether the point lies within the global coordinate ranges.
func (p Point) Valid() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90 (got %f)", p.Lat)
	}

	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude must be between -180 and 180 (got %f)", p.Lng)
	}

	return nil
}
