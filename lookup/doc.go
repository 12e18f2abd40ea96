// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package lookup validates South African postal codes and province names
// against fixed tables. Matching is exact or alias based; there is no fuzzy
// matching beyond the substring suggestions.
package lookup
