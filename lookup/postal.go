// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jcodagnone/wardcheck/utils/textutils"
)

var (
	// ErrPostalCodeRequired is returned for an empty postal code.
	ErrPostalCodeRequired = errors.New("postal code is required")
	// ErrPostalCodeLength is returned when the code does not have 4 digits.
	ErrPostalCodeLength = errors.New("SA postal codes must be 4 digits")
	// ErrPostalCodeRange is returned when no province range holds the code.
	ErrPostalCodeRange = errors.New("invalid SA postal code range")
)

type postalRange struct {
	province string
	min, max int
}

// Checked in order; the first range holding a code wins.
var postalRanges = []postalRange{
	{"western-cape", 6500, 8999},
	{"eastern-cape", 5200, 6499},
	{"northern-cape", 8200, 8999},
	{"free-state", 9300, 9999},
	{"kwazulu-natal", 3200, 4999},
	{"north-west", 2500, 2999},
	{"gauteng", 1500, 2199},
	{"mpumalanga", 1200, 1499},
	{"limpopo", 700, 1199},
}

type majorCity struct {
	name  string
	codes []int
}

var majorCities = []majorCity{
	{"johannesburg", []int{2000, 2001, 2002, 2092, 2094, 2196}},
	{"cape-town", []int{8000, 8001, 8002, 8005, 8018}},
	{"durban", []int{4000, 4001, 4013, 4051, 4091}},
	{"pretoria", []int{1, 2, 7, 28, 81, 83, 84, 87}},
	{"port-elizabeth", []int{6000, 6001, 6006, 6013, 6020}},
	{"bloemfontein", []int{9300, 9301, 9306, 9320}},
	{"east-london", []int{5200, 5201, 5205, 5213, 5241}},
	{"pietermaritzburg", []int{3200, 3201, 3206, 3216}},
	{"nelspruit", []int{1200, 1201, 1206, 1210}},
	{"polokwane", []int{700, 701, 699}},
}

// label turns a table key into its display form: "north-west" becomes
// "NORTH WEST". Only the first hyphen is replaced.
func label(key string) string {
	return strings.ToUpper(strings.Replace(key, "-", " ", 1))
}

// PostalCode is a validated postal code.
type PostalCode struct {
	Code     string `json:"code"`
	Province string `json:"province"`
	Region   string `json:"region"`
}

// ValidatePostalCode strips every non digit and checks the remaining four
// digits against the province ranges.
func ValidatePostalCode(input string) (PostalCode, error) {
	if input == "" {
		return PostalCode{}, ErrPostalCodeRequired
	}

	cleaned := textutils.OnlyDigits(input)
	if len(cleaned) != 4 {
		return PostalCode{}, fmt.Errorf("%w (got %q)", ErrPostalCodeLength, cleaned)
	}

	code, err := strconv.Atoi(cleaned)
	if err != nil {
		return PostalCode{}, fmt.Errorf("parsing postal code: %w", err)
	}

	for _, r := range postalRanges {
		if code >= r.min && code <= r.max {
			return PostalCode{
				Code:     cleaned,
				Province: label(r.province),
				Region:   Region(code),
			}, nil
		}
	}

	return PostalCode{}, fmt.Errorf("%w: %s", ErrPostalCodeRange, cleaned)
}

// Region names the major city a code belongs to, or a broad region.
func Region(code int) string {
	for _, c := range majorCities {
		if slices.Contains(c.codes, code) {
			return label(c.name)
		}
	}

	switch {
	case code >= 1500 && code <= 2199:
		return "GAUTENG REGION"
	case code >= 1 && code <= 99:
		return "PRETORIA CENTRAL"
	case code >= 2000 && code <= 2199:
		// shadowed by the Gauteng range above
		return "JOHANNESBURG REGION"
	case code >= 8000 && code <= 8099:
		return "CAPE TOWN REGION"
	case code >= 4000 && code <= 4099:
		return "DURBAN REGION"
	}

	return "RURAL AREA"
}

// PostalCodeProvince returns the province label of a valid code, or false.
func PostalCodeProvince(input string) (string, bool) {
	pc, err := ValidatePostalCode(input)
	if err != nil {
		return "", false
	}

	return pc.Province, true
}

func provinceSlug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// IsValidForProvince reports whether a valid code belongs to province,
// given as a table key ("north-west") or a spaced name ("North West").
func IsValidForProvince(input, province string) bool {
	pc, err := ValidatePostalCode(input)
	if err != nil {
		return false
	}

	return provinceSlug(pc.Province) == provinceSlug(province)
}

// PostalCodeSuggestion is a nearby code inside a province range.
type PostalCodeSuggestion struct {
	Code     string `json:"code"`
	Province string `json:"province"`
	Reason   string `json:"reason"`
}

// SuggestPostalCodes proposes the closest range bound of every province
// whose range starts or ends within 100 of the code, at most three.
func SuggestPostalCodes(input string) []PostalCodeSuggestion {
	cleaned := textutils.OnlyDigits(input)
	if len(cleaned) != 4 {
		return nil
	}

	code, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}

	var suggestions []PostalCodeSuggestion

	for _, r := range postalRanges {
		if min(abs(code-r.min), abs(code-r.max)) > 100 {
			continue
		}

		bound := r.max
		if code < r.min {
			bound = r.min
		}

		suggestions = append(suggestions, PostalCodeSuggestion{
			Code:     fmt.Sprintf("%04d", bound),
			Province: label(r.province),
			Reason:   "Nearest valid code",
		})
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}

	return suggestions
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
