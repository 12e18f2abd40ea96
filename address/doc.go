// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package address turns free-text street and suburb input into the ordered
// list of geocoding queries tried by the resolver.
//
// Cleaning happens in two steps: a trailing locality suffix (", Pretoria",
// ", Gauteng", …) is cut together with everything after it, then every word
// is re-cased. Directional and provincial abbreviations are upper-cased,
// ordinals such as "3rd" are left alone and the rest is title-cased.
package address
