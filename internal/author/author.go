// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package author matches a free-text person name against the authors
// column of the dataset.
//
// Query names are written "First Last"; dataset entries are written
// "Last First ..." and separated by commas. A query matches an entry when
// the last names agree and, if the query has more than one word, the first
// initials agree too.
package author

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrEmptyName is returned for a blank query name.
var ErrEmptyName = errors.New("author name is empty: enter a first and last name")

// Name is a parsed query name.
type Name struct {
	// Display is the name as entered, trimmed.
	Display string

	// Last is the lowercased last name.
	Last string

	// Initial is the lowercased first initial. Empty for single-word names,
	// which skip the initial check.
	Initial string
}

// ParseName splits name on whitespace. With several words, the last word
// is the last name and the first rune of the first word is the initial.
// A single word is taken as the last name alone.
func ParseName(name string) (Name, error) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return Name{}, ErrEmptyName
	}
	n := Name{
		Display: strings.Join(parts, " "),
		Last:    strings.ToLower(parts[len(parts)-1]),
	}
	if len(parts) > 1 {
		n.Initial = firstRune(strings.ToLower(parts[0]))
	}
	return n, nil
}

// In reports whether any entry of the comma-separated authors list matches
// n. A nil list never matches. Entries with fewer than two words are
// ignored.
func (n Name) In(authors *string) bool {
	if authors == nil {
		return false
	}
	for _, entry := range strings.Split(strings.ToLower(*authors), ",") {
		parts := strings.Fields(entry)
		if len(parts) < 2 {
			continue
		}
		if parts[0] != n.Last {
			continue
		}
		if n.Initial == "" || firstRune(parts[1]) == n.Initial {
			return true
		}
	}
	return false
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return ""
	}
	return s[:size]
}
