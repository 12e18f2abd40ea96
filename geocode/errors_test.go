// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

type errorCheckTestCase struct {
	name string
	err  error
	want bool
}

func runErrorCheckTest(t *testing.T, tests []errorCheckTestCase, checkFunc func(error) bool) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFunc(tt.err); got != tt.want {
				t.Errorf("checkFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"typed", &GeocodingError{Type: ErrorTypeRateLimit, Message: "slow down"}, true},
		{"wrapped typed", fmt.Errorf("attempt 2: %w", &GeocodingError{Type: ErrorTypeRateLimit}), true},
		{"message too many requests", errors.New("too many requests"), true},
		{"message 429", errors.New("nominatim returned status 429"), true},
		{"other type", &GeocodingError{Type: ErrorTypeNotFound, Message: "not found"}, false},
		{"unrelated", errors.New("some other error"), false},
	}, IsRateLimitError)
}

func TestIsQuotaExceededError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"typed", &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: "quota"}, true},
		{"google status", errors.New("google maps status: OVER_QUERY_LIMIT"), true},
		{"other type", &GeocodingError{Type: ErrorTypeRateLimit, Message: "rate limit"}, false},
		{"unrelated", errors.New("some other error"), false},
	}, IsQuotaExceededError)
}

func TestIsTimeoutError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"typed", &GeocodingError{Type: ErrorTypeTimeout, Message: "timeout"}, true},
		{"message deadline", errors.New("context deadline exceeded"), true},
		{"transport deadline", classifyTransportError(context.DeadlineExceeded), true},
		{"transport refused", classifyTransportError(errors.New("connection refused")), false},
		{"unrelated", errors.New("some other error"), false},
	}, IsTimeoutError)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		statusCode int
		wantType   ErrorType
	}{
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusForbidden, ErrorTypeQuotaExceeded},
		{http.StatusBadRequest, ErrorTypeInvalidRequest},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusServiceUnavailable, ErrorTypeNetworkError},
		{http.StatusBadGateway, ErrorTypeNetworkError},
		{http.StatusGatewayTimeout, ErrorTypeNetworkError},
		{http.StatusInternalServerError, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.statusCode), func(t *testing.T) {
			got := ClassifyHTTPError(tt.statusCode, "")
			if got.Type != tt.wantType {
				t.Errorf("ClassifyHTTPError() type = %v, want %v", got.Type, tt.wantType)
			}

			if got.Err != nil {
				t.Errorf("ClassifyHTTPError() with empty body should not wrap, got %v", got.Err)
			}
		})
	}
}

func TestClassifyHTTPErrorKeepsBody(t *testing.T) {
	got := ClassifyHTTPError(http.StatusBadRequest, "  missing q parameter\n")
	if !strings.HasSuffix(got.Error(), ": missing q parameter") {
		t.Errorf("Error() = %q, want body suffix", got.Error())
	}

	long := ClassifyHTTPError(http.StatusBadRequest, strings.Repeat("x", 500))
	if !strings.HasSuffix(long.Error(), "…") {
		t.Errorf("long bodies should be truncated, got %d bytes", len(long.Error()))
	}
}

func TestGeocodingErrorUnwrap(t *testing.T) {
	innerErr := errors.New("inner error")
	geoErr := &GeocodingError{
		Type:    ErrorTypeNotFound,
		Message: "location not found",
		Err:     innerErr,
	}

	if !errors.Is(geoErr, innerErr) {
		t.Error("errors.Is should find wrapped error")
	}

	if geoErr.Error() != "location not found: inner error" {
		t.Errorf("Error() = %q", geoErr.Error())
	}
}

func TestErrorTypeString(t *testing.T) {
	if ErrorTypeRateLimit.String() != "rate_limit" {
		t.Errorf("String() = %q", ErrorTypeRateLimit.String())
	}

	if ErrorType(99).String() != "ErrorType(99)" {
		t.Errorf("String() = %q", ErrorType(99).String())
	}
}
