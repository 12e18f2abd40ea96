// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// GeocodingError describes a failed provider call.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding failures.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit the provider is throttling us.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded quota exhausted or access denied.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout the request did not complete in time.
	ErrorTypeTimeout
	// ErrorTypeNotFound the endpoint or location does not exist.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest the provider rejected the request.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError connection level failure or provider outage.
	ErrorTypeNetworkError
	// ErrorTypeBadResponse the response could not be decoded.
	ErrorTypeBadResponse
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeUnknown:        "unknown",
	ErrorTypeRateLimit:      "rate_limit",
	ErrorTypeQuotaExceeded:  "quota_exceeded",
	ErrorTypeTimeout:        "timeout",
	ErrorTypeNotFound:       "not_found",
	ErrorTypeInvalidRequest: "invalid_request",
	ErrorTypeNetworkError:   "network_error",
	ErrorTypeBadResponse:    "bad_response",
}

func (t ErrorType) String() string {
	if name, ok := errorTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("ErrorType(%d)", int(t))
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// IsRateLimitError reports whether err comes from provider throttling.
func IsRateLimitError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeRateLimit
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError reports whether err is a quota or access failure.
func IsQuotaExceededError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeQuotaExceeded
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError reports whether err is a timeout.
func IsTimeoutError(err error) bool {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == ErrorTypeTimeout
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps a non-success status code to a GeocodingError.
func ClassifyHTTPError(statusCode int, body string) *GeocodingError {
	var e *GeocodingError

	switch statusCode {
	case http.StatusTooManyRequests: // 429
		e = &GeocodingError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden: // 403
		e = &GeocodingError{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest: // 400
		e = &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound: // 404
		e = &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		e = &GeocodingError{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		e = &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}

	if body = strings.TrimSpace(body); body != "" {
		const maxBody = 200
		if len(body) > maxBody {
			body = body[:maxBody] + "…"
		}

		e.Err = errors.New(body)
	}

	return e
}

// classifyTransportError wraps an error returned by http.Client.Do.
func classifyTransportError(err error) *GeocodingError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &GeocodingError{Type: ErrorTypeTimeout, Message: "geocoding request timed out", Err: err}
	}

	return &GeocodingError{Type: ErrorTypeNetworkError, Message: "geocoding request failed", Err: err}
}
