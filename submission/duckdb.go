// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/uber/h3-go/v4"
)

// H3Resolutions is the number of H3 resolutions stored with every located
// record, 1 through H3Resolutions.
const H3Resolutions = 8

// StoredRecord is a Record as kept by the DuckDBSink.
type StoredRecord struct {
	Record

	ID uuid.UUID `json:"id"`

	// H3 holds the cells of resolutions 1-8; zero when unlocated.
	H3 [H3Resolutions]int64 `json:"-"`
}

func computeH3(p *spatial.Point) ([H3Resolutions]int64, error) {
	var cells [H3Resolutions]int64

	if p == nil {
		return cells, nil
	}

	latLng := h3.NewLatLng(p.Lat, p.Lng)

	for res := 1; res <= H3Resolutions; res++ {
		cell, err := h3.LatLngToCell(latLng, res)
		if err != nil {
			return cells, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
		}

		cells[res-1] = int64(cell)
	}

	return cells, nil
}

// DuckDBSink keeps records in a DuckDB database, for checks run offline.
type DuckDBSink struct {
	db  *sql.DB
	now func() time.Time
}

// NewDuckDBSink creates a sink over db. CreateSchema must be called once.
func NewDuckDBSink(db *sql.DB) *DuckDBSink {
	return &DuckDBSink{db: db, now: time.Now}
}

// DB returns the underlying database connection.
func (s *DuckDBSink) DB() *sql.DB {
	return s.db
}

// CreateSchema creates the submissions table.
func (s *DuckDBSink) CreateSchema() error {
	// DuckDB needs to load the spatial extension
	if _, err := s.db.Exec(`INSTALL spatial; LOAD spatial;`); err != nil {
		return fmt.Errorf("loading spatial extension: %w", err)
	}

	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS submissions (
			id VARCHAR PRIMARY KEY,
			first_name VARCHAR NOT NULL,
			last_name VARCHAR NOT NULL,
			street_address VARCHAR NOT NULL,
			suburb VARCHAR NOT NULL,
			cellphone VARCHAR NOT NULL,
			point POINT_2D,
			display_name VARCHAR,
			gps_pin VARCHAR NOT NULL,
			ward VARCHAR NOT NULL,
			result VARCHAR NOT NULL,
			submitted_at TIMESTAMP NOT NULL,
			h3_res1 UBIGINT,
			h3_res2 UBIGINT,
			h3_res3 UBIGINT,
			h3_res4 UBIGINT,
			h3_res5 UBIGINT,
			h3_res6 UBIGINT,
			h3_res7 UBIGINT,
			h3_res8 UBIGINT
		);
	`)
	if err != nil {
		return fmt.Errorf("creating submissions table: %w", err)
	}

	return nil
}

// Submit implements Sink.
func (s *DuckDBSink) Submit(ctx context.Context, rec *Record) error {
	cells, err := computeH3(rec.Location)
	if err != nil {
		return err
	}

	submittedAt := rec.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = s.now()
	}

	var lng, lat, displayName any
	if rec.Location != nil {
		lng, lat = rec.Location.Lng, rec.Location.Lat
	}

	if rec.DisplayName != "" {
		displayName = rec.DisplayName
	}

	h3Args := make([]any, H3Resolutions)

	for i, c := range cells {
		if c != 0 {
			h3Args[i] = c
		}
	}

	args := []any{
		uuid.New().String(),
		rec.FirstName,
		rec.LastName,
		rec.StreetAddress,
		rec.Suburb,
		rec.Cellphone,
		lng,
		lat,
		displayName,
		rec.GPSPin(),
		rec.Ward,
		rec.Result,
		submittedAt,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO submissions(
			id, first_name, last_name, street_address, suburb, cellphone,
			point, display_name, gps_pin, ward, result, submitted_at,
			h3_res1, h3_res2, h3_res3, h3_res4, h3_res5, h3_res6, h3_res7, h3_res8
		)
		VALUES (?, ?, ?, ?, ?, ?, ST_Point(?, ?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, append(args, h3Args...)...)
	if err != nil {
		return fmt.Errorf("inserting submission: %w", err)
	}

	return nil
}

// List returns the most recent records first. A non positive limit returns
// all of them.
func (s *DuckDBSink) List(ctx context.Context, limit int) ([]*StoredRecord, error) {
	query := `
		SELECT id, first_name, last_name, street_address, suburb, cellphone,
		       ST_Y(point::GEOMETRY), ST_X(point::GEOMETRY), display_name, ward, result, submitted_at,
		       h3_res1, h3_res2, h3_res3, h3_res4, h3_res5, h3_res6, h3_res7, h3_res8
		FROM submissions
		ORDER BY submitted_at DESC
	`

	var args []any
	if limit > 0 {
		query += " LIMIT ?"

		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}
	defer rows.Close()

	var records []*StoredRecord

	for rows.Next() {
		rec := &StoredRecord{}

		var id string

		var lat, lng sql.NullFloat64

		var displayName sql.NullString

		var h3Cells [H3Resolutions]sql.NullInt64

		err := rows.Scan(
			&id, &rec.FirstName, &rec.LastName, &rec.StreetAddress, &rec.Suburb, &rec.Cellphone,
			&lat, &lng, &displayName, &rec.Ward, &rec.Result, &rec.SubmittedAt,
			&h3Cells[0], &h3Cells[1], &h3Cells[2], &h3Cells[3],
			&h3Cells[4], &h3Cells[5], &h3Cells[6], &h3Cells[7],
		)
		if err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}

		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing submission id: %w", err)
		}

		if lat.Valid && lng.Valid {
			rec.Location = &spatial.Point{Lat: lat.Float64, Lng: lng.Float64}
		}

		rec.DisplayName = displayName.String

		for i, c := range h3Cells {
			if c.Valid {
				rec.H3[i] = c.Int64
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// Count returns the number of stored records.
func (s *DuckDBSink) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM submissions").Scan(&count)

	return count, err
}
