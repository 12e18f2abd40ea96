// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DuckDBSink {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sink := NewDuckDBSink(db)
	require.NoError(t, sink.CreateSchema())

	return sink
}

func TestDuckDBSinkCreateSchema(t *testing.T) {
	sink := setupTestDB(t)

	var tableName string

	err := sink.DB().QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = 'submissions'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "submissions", tableName)

	// idempotent
	require.NoError(t, sink.CreateSchema())
}

func TestDuckDBSinkSubmitAndList(t *testing.T) {
	sink := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	located := sampleRecord(&spatial.Point{Lat: -25.746, Lng: 28.231})
	located.DisplayName = "Hatfield, Pretoria"
	located.SubmittedAt = base

	missing := sampleRecord(nil)
	missing.Result = "undetermined"
	missing.SubmittedAt = base.Add(time.Minute)

	require.NoError(t, sink.Submit(ctx, located))
	require.NoError(t, sink.Submit(ctx, missing))

	count, err := sink.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	records, err := sink.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// newest first
	assert.Nil(t, records[0].Location)
	assert.Equal(t, "undetermined", records[0].Result)
	assert.Equal(t, [H3Resolutions]int64{}, records[0].H3)

	require.NotNil(t, records[1].Location)
	assert.InDelta(t, -25.746, records[1].Location.Lat, 1e-9)
	assert.InDelta(t, 28.231, records[1].Location.Lng, 1e-9)
	assert.Equal(t, "Hatfield, Pretoria", records[1].DisplayName)

	want, err := computeH3(located.Location)
	require.NoError(t, err)
	assert.Equal(t, want, records[1].H3)
	assert.NotEqual(t, records[0].ID, records[1].ID)

	limited, err := sink.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestComputeH3(t *testing.T) {
	cells, err := computeH3(&spatial.Point{Lat: -25.746, Lng: 28.231})
	require.NoError(t, err)

	for i, c := range cells {
		assert.NotZero(t, c, "resolution %d", i+1)
	}

	empty, err := computeH3(nil)
	require.NoError(t, err)
	assert.Equal(t, [H3Resolutions]int64{}, empty)
}
