// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils provides small text folding helpers shared by the address
// normalizer, the geocode relevance filter and the lookup tables.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// ContainsAny reports whether s contains any of the tokens, ignoring case and
// accents. Empty tokens never match.
func ContainsAny(s string, tokens []string) bool {
	folded := LowerASCIIFolding(s)

	for _, token := range tokens {
		token = LowerASCIIFolding(token)
		if token != "" && strings.Contains(folded, token) {
			return true
		}
	}

	return false
}

// OnlyDigits strips every non digit character.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, s)
}

var countPrinter = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators: 1234567 becomes
// "1,234,567".
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}
