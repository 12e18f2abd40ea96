// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package submission

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/jcodagnone/wardcheck/utils/httputils"
)

// FieldMap names the form field that receives each record value.
type FieldMap struct {
	FirstName     string `toml:"first_name"`
	LastName      string `toml:"last_name"`
	StreetAddress string `toml:"street_address"`
	Suburb        string `toml:"suburb"`
	Cellphone     string `toml:"cellphone"`
	GPSPin        string `toml:"gps_pin"`
}

// DefaultFieldMap uses the record attribute names.
var DefaultFieldMap = FieldMap{
	FirstName:     "firstName",
	LastName:      "lastName",
	StreetAddress: "streetAddress",
	Suburb:        "suburb",
	Cellphone:     "cellphone",
	GPSPin:        "gpsPin",
}

// FormSink posts each record as a multipart form to a collection endpoint.
type FormSink struct {
	url        string
	fields     FieldMap
	httpClient *http.Client
}

// NewFormSink creates a sink posting to url. A nil client selects the
// default one.
func NewFormSink(url string, fields FieldMap, client *http.Client) *FormSink {
	if client == nil {
		client = httputils.NewClient(httputils.ClientOptions{})
	}

	if fields == (FieldMap{}) {
		fields = DefaultFieldMap
	}

	return &FormSink{url: url, fields: fields, httpClient: client}
}

func (s *FormSink) encode(rec *Record) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	values := []struct{ name, value string }{
		{s.fields.FirstName, rec.FirstName},
		{s.fields.LastName, rec.LastName},
		{s.fields.StreetAddress, rec.StreetAddress},
		{s.fields.Suburb, rec.Suburb},
		{s.fields.Cellphone, rec.Cellphone},
		{s.fields.GPSPin, rec.GPSPin()},
	}

	for _, v := range values {
		if err := w.WriteField(v.name, v.value); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", v.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing form: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

// Submit implements Sink. The response is not inspected: collection
// endpoints answer with pages that carry no status of the submission.
func (s *FormSink) Submit(ctx context.Context, rec *Record) error {
	body, contentType, err := s.encode(rec)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, body)
	if err != nil {
		return fmt.Errorf("building form request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting form: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		log.Printf("form endpoint answered %s", resp.Status)
	}

	return nil
}
