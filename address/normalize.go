// Copyright 2025 The WardCheck Authors
// SPDX-License-Identifier: Apache-2.0

package address

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// upperCaseWords are always rendered upper-case, wherever they appear.
var upperCaseWords = map[string]bool{
	"N": true, "S": true, "E": true, "W": true,
	"NE": true, "NW": true, "SE": true, "SW": true,
	"GP": true, "ZA": true,
}

var ordinalRe = regexp.MustCompile(`^\d+(st|nd|rd|th)$`)

// Fragment is a cleaned piece of an address together with its source text.
type Fragment struct {
	Original string `json:"original"`
	Cleaned  string `json:"cleaned"`
}

// Normalizer cleans address fragments for a given set of locality names.
type Normalizer struct {
	suffix *regexp.Regexp
}

// NewNormalizer returns a normalizer that strips any of the localities (and
// whatever follows them) when they appear after a comma.
func NewNormalizer(localities ...string) *Normalizer {
	n := &Normalizer{}

	quoted := make([]string, 0, len(localities))

	for _, l := range localities {
		if l = strings.TrimSpace(l); l != "" {
			quoted = append(quoted, regexp.QuoteMeta(l))
		}
	}

	if len(quoted) > 0 {
		n.suffix = regexp.MustCompile(`(?i), (` + strings.Join(quoted, "|") + `).*$`)
	}

	return n
}

var defaultNormalizer = NewNormalizer(DefaultLocality.Names()...)

// Normalize cleans text using the default Pretoria locality.
func Normalize(text string) string {
	return defaultNormalizer.Normalize(text)
}

// NewFragment cleans text using the default Pretoria locality.
func NewFragment(text string) Fragment {
	return defaultNormalizer.Fragment(text)
}

// Normalize strips the locality suffix and re-cases every word.
func (n *Normalizer) Normalize(text string) string {
	if n.suffix != nil {
		text = n.suffix.ReplaceAllString(text, "")
	}

	return n.recase(strings.TrimSpace(text))
}

// Fragment normalizes text and keeps the original next to the result.
func (n *Normalizer) Fragment(text string) Fragment {
	return Fragment{Original: text, Cleaned: n.Normalize(text)}
}

// Casers are stateful, so a new pair is built for every call.
func (n *Normalizer) recase(text string) string {
	lower, upper := cases.Lower(language.Und), cases.Upper(language.Und)
	words := strings.Split(lower.String(text), " ")

	for i, word := range words {
		switch {
		case upperCaseWords[upper.String(word)]:
			words[i] = upper.String(word)
		case ordinalRe.MatchString(word):
			// left as is
		default:
			words[i] = title(upper, word)
		}
	}

	return strings.Join(words, " ")
}

// title upper-cases the first rune; the remainder is already lower-case.
func title(upper cases.Caser, word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}

	return upper.String(string(r)) + word[size:]
}
