// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jcodagnone/wardcheck/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(loc *spatial.Point) *Record {
	return &Record{
		FirstName:     "Thandi",
		LastName:      "Mokoena",
		StreetAddress: "1 church street",
		Suburb:        "hatfield",
		Cellphone:     "0821234567",
		Location:      loc,
		Ward:          "44",
		Result:        "inside",
	}
}

func TestGPSPin(t *testing.T) {
	assert.Equal(t, "-25.746000, 28.231000", sampleRecord(&spatial.Point{Lat: -25.746, Lng: 28.231}).GPSPin())
	assert.Equal(t, NotFoundText, sampleRecord(nil).GPSPin())
}

func TestFormSinkSubmit(t *testing.T) {
	tests := []struct {
		name    string
		loc     *spatial.Point
		wantPin string
	}{
		{"located", &spatial.Point{Lat: -25.746, Lng: 28.231}, "-25.746000, 28.231000"},
		{"not found", nil, "Not found automatically"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got map[string][]string

			calls := 0

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++

				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, r.ParseMultipartForm(1<<20))

				got = r.MultipartForm.Value

				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			fields := FieldMap{
				FirstName:     "entry.1",
				LastName:      "entry.2",
				StreetAddress: "entry.3",
				Suburb:        "entry.4",
				Cellphone:     "entry.5",
				GPSPin:        "entry.6",
			}
			sink := NewFormSink(srv.URL, fields, srv.Client())

			require.NoError(t, sink.Submit(context.Background(), sampleRecord(tc.loc)))
			assert.Equal(t, 1, calls)
			assert.Equal(t, map[string][]string{
				"entry.1": {"Thandi"},
				"entry.2": {"Mokoena"},
				"entry.3": {"1 church street"},
				"entry.4": {"hatfield"},
				"entry.5": {"0821234567"},
				"entry.6": {tc.wantPin},
			}, got)
		})
	}
}

func TestFormSinkIgnoresResponseStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewFormSink(srv.URL, FieldMap{}, srv.Client())
	require.NoError(t, sink.Submit(context.Background(), sampleRecord(nil)))
}

func TestFormSinkTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	sink := NewFormSink(url, DefaultFieldMap, nil)
	require.Error(t, sink.Submit(context.Background(), sampleRecord(nil)))
}

func TestTee(t *testing.T) {
	var seen []string

	ok := SinkFunc(func(_ context.Context, rec *Record) error {
		seen = append(seen, rec.FirstName)

		return nil
	})
	boom := errors.New("boom")
	failing := SinkFunc(func(context.Context, *Record) error { return boom })

	err := Tee{failing, ok, Discard}.Submit(context.Background(), sampleRecord(nil))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"Thandi"}, seen)

	require.NoError(t, Tee{ok}.Submit(context.Background(), sampleRecord(nil)))
}
