// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package metrics holds the prometheus collectors shared by the packages.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a single geocoding attempt.
const (
	OutcomeFound = "found"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	// GeocodeAttempts counts provider calls by outcome.
	GeocodeAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardcheck",
		Subsystem: "geocode",
		Name:      "attempts_total",
		Help:      "Geocoding provider calls by outcome.",
	}, []string{"outcome"})

	// Resolutions counts resolver runs by whether a location was found.
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardcheck",
		Subsystem: "geocode",
		Name:      "resolutions_total",
		Help:      "Address resolutions by result.",
	}, []string{"result"})

	// ResolutionAttempts observes the 1-based variation that produced a
	// location.
	ResolutionAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wardcheck",
		Subsystem: "geocode",
		Name:      "resolution_attempt",
		Help:      "Variation index that produced a location.",
		Buckets:   prometheus.LinearBuckets(1, 1, 6),
	})

	// Eligibility counts classifications by mode and result.
	Eligibility = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wardcheck",
		Subsystem: "session",
		Name:      "eligibility_total",
		Help:      "Eligibility classifications by mode and result.",
	}, []string{"mode", "result"})

	// SubmissionFailures counts records the sink refused.
	SubmissionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wardcheck",
		Subsystem: "session",
		Name:      "submission_failures_total",
		Help:      "Records the submission sink failed to accept.",
	})
)
