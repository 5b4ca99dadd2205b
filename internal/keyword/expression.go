// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keyword parses user keyword lists into expressions and compiles
// them into case-insensitive matchers.
//
// A keyword list is comma-separated. Each entry is an expression; an entry
// may hold several alternative sub-patterns joined by the OR separator
// ("deep learning|neural networks"). A record matches an expression when
// any sub-pattern is found anywhere in the searched text.
package keyword

import (
	"strings"
)

const (
	// DefaultORSeparator joins alternative sub-patterns inside one entry.
	DefaultORSeparator = "|"

	listSeparator    = ","
	displaySeparator = " | "
)

// Expression is one keyword entry split into its OR sub-patterns.
type Expression struct {
	// Raw is the entry as the user typed it.
	Raw string `json:"raw" yaml:"raw"`

	// Patterns holds the trimmed, non-empty sub-patterns in input order.
	Patterns []string `json:"patterns" yaml:"patterns"`
}

// Parse splits token on orSep. An empty orSep uses DefaultORSeparator.
func Parse(token, orSep string) Expression {
	if orSep == "" {
		orSep = DefaultORSeparator
	}
	e := Expression{Raw: token}
	for _, p := range strings.Split(token, orSep) {
		if p = strings.TrimSpace(p); p != "" {
			e.Patterns = append(e.Patterns, p)
		}
	}
	return e
}

// ParseList parses a comma-separated keyword list. Blank entries are
// dropped. It returns an EmptyInputError when no usable entry remains.
func ParseList(input, orSep string) ([]Expression, error) {
	var exprs []Expression
	for _, token := range strings.Split(input, listSeparator) {
		e := Parse(token, orSep)
		if e.IsEmpty() {
			continue
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 0 {
		return nil, &EmptyInputError{Input: input}
	}
	return exprs, nil
}

// ParseAll parses each token separately, as when keywords arrive already
// split (repeated flags, a JSON array). Blank tokens are dropped.
func ParseAll(tokens []string, orSep string) ([]Expression, error) {
	var exprs []Expression
	for _, token := range tokens {
		e := Parse(token, orSep)
		if e.IsEmpty() {
			continue
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 0 {
		return nil, &EmptyInputError{Input: strings.Join(tokens, listSeparator)}
	}
	return exprs, nil
}

// IsEmpty reports whether the expression has no sub-pattern left after trimming.
func (e Expression) IsEmpty() bool {
	return len(e.Patterns) == 0
}

// Name returns the display name: the sub-patterns joined by " | ". It is
// used both as the match label and as the trend series key.
func (e Expression) Name() string {
	return strings.Join(e.Patterns, displaySeparator)
}

// Names returns the display names of exprs, skipping empty ones.
func Names(exprs []Expression) []string {
	var names []string
	for _, e := range exprs {
		if !e.IsEmpty() {
			names = append(names, e.Name())
		}
	}
	return names
}
