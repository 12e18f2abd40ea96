// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerAsciiFolding(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello world"},
		{"  Spaces  ", "spaces"},
		{"Áéíóú", "aeiou"},
		{"Tshwané", "tshwane"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, LowerASCIIFolding(tc.input))
		})
	}
}

func TestContainsAny(t *testing.T) {
	tokens := []string{"gauteng", "pretoria", "tshwane"}

	assert.True(t, ContainsAny("1 Church Street, Hatfield, Tshwane, South Africa", tokens))
	assert.True(t, ContainsAny("PRETORIA Central", tokens))
	assert.False(t, ContainsAny("Church Street, Cape Town, Western Cape", tokens))
	assert.False(t, ContainsAny("anything", []string{""}))
	assert.False(t, ContainsAny("anything", nil))
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "0028", OnlyDigits(" 00-28 "))
	assert.Equal(t, "", OnlyDigits("abc"))
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, FormatCount(tc.input))
	}
}
