// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrProvinceRequired is returned for an empty province.
	ErrProvinceRequired = errors.New("province is required")
	// ErrInvalidProvince is wrapped by ProvinceError.
	ErrInvalidProvince = errors.New("invalid SA province")
)

// Province is one of the nine South African provinces.
type Province struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Capital string   `json:"capital"`
	Code    string   `json:"code"`
	Aliases []string `json:"-"`
}

var provinces = []Province{
	{
		Key: "western-cape", Name: "Western Cape", Capital: "Cape Town", Code: "WC",
		Aliases: []string{"western cape", "west cape", "wc", "cape town province"},
	},
	{
		Key: "eastern-cape", Name: "Eastern Cape", Capital: "Bhisho", Code: "EC",
		Aliases: []string{"eastern cape", "east cape", "ec"},
	},
	{
		Key: "northern-cape", Name: "Northern Cape", Capital: "Kimberley", Code: "NC",
		Aliases: []string{"northern cape", "north cape", "nc"},
	},
	{
		Key: "free-state", Name: "Free State", Capital: "Bloemfontein", Code: "FS",
		Aliases: []string{"free state", "freestate", "fs", "orange free state"},
	},
	{
		Key: "kwazulu-natal", Name: "KwaZulu-Natal", Capital: "Pietermaritzburg", Code: "KZN",
		Aliases: []string{"kwazulu natal", "kwazulu-natal", "kzn", "natal", "zulu natal"},
	},
	{
		Key: "north-west", Name: "North West", Capital: "Mahikeng", Code: "NW",
		Aliases: []string{"north west", "northwest", "nw", "north-west"},
	},
	{
		Key: "gauteng", Name: "Gauteng", Capital: "Johannesburg", Code: "GP",
		Aliases: []string{"gauteng", "gp", "pwv", "pretoria-witwatersrand-vereeniging"},
	},
	{
		Key: "mpumalanga", Name: "Mpumalanga", Capital: "Nelspruit", Code: "MP",
		Aliases: []string{"mpumalanga", "mp", "eastern transvaal"},
	},
	{
		Key: "limpopo", Name: "Limpopo", Capital: "Polokwane", Code: "LP",
		Aliases: []string{"limpopo", "lp", "northern province", "northern transvaal"},
	},
}

// ProvinceError reports an unknown province with the closest names.
type ProvinceError struct {
	Input       string
	Suggestions []string
}

func (e *ProvinceError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%s: %q", ErrInvalidProvince, e.Input)
	}

	return fmt.Sprintf("%s: %q (did you mean %s?)", ErrInvalidProvince, e.Input, strings.Join(e.Suggestions, ", "))
}

func (e *ProvinceError) Unwrap() error {
	return ErrInvalidProvince
}

// ValidateProvince matches input, case-insensitively, against the province
// keys, names, codes and aliases.
func ValidateProvince(input string) (Province, error) {
	if input == "" {
		return Province{}, ErrProvinceRequired
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	for _, p := range provinces {
		if p.Key == normalized ||
			strings.ToLower(p.Name) == normalized ||
			strings.ToLower(p.Code) == normalized ||
			slices.Contains(p.Aliases, normalized) {
			return p, nil
		}
	}

	return Province{}, &ProvinceError{Input: input, Suggestions: ProvinceSuggestions(normalized)}
}

// ProvinceSuggestions returns up to three province names whose name or
// aliases contain input, or are contained in it.
func ProvinceSuggestions(input string) []string {
	input = strings.ToLower(input)

	var suggestions []string

	for _, p := range provinces {
		name := strings.ToLower(p.Name)
		if strings.Contains(name, input) || strings.Contains(input, strings.Split(name, " ")[0]) {
			suggestions = append(suggestions, p.Name)
		}

		for _, alias := range p.Aliases {
			if (strings.Contains(alias, input) || strings.Contains(input, alias)) && !slices.Contains(suggestions, p.Name) {
				suggestions = append(suggestions, p.Name)
			}
		}
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}

	return suggestions
}

// ProvinceByCode finds a province by its two or three letter code.
func ProvinceByCode(code string) (Province, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	for _, p := range provinces {
		if p.Code == code {
			return p, true
		}
	}

	return Province{}, false
}

// NormalizeProvinceName returns the canonical name of a valid province.
func NormalizeProvinceName(input string) (string, bool) {
	p, err := ValidateProvince(input)
	if err != nil {
		return "", false
	}

	return p.Name, true
}

// Provinces returns all provinces in table order.
func Provinces() []Province {
	return slices.Clone(provinces)
}

// ProvinceCodes returns the province codes in table order.
func ProvinceCodes() []string {
	codes := make([]string, 0, len(provinces))
	for _, p := range provinces {
		codes = append(codes, p.Code)
	}

	return codes
}

// ProvinceNames returns the province names in table order.
func ProvinceNames() []string {
	names := make([]string, 0, len(provinces))
	for _, p := range provinces {
		names = append(names, p.Name)
	}

	return names
}
