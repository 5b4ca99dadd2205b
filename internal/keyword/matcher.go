// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keyword

import (
	"encoding/json"
	"errors"
	"regexp"

	"github.com/pdiddy/landscape/pkg/types"
)

// NoMatchText is the display text for records no expression matched.
const NoMatchText = "No Keyword Match"

// Label is the per-record outcome of keyword matching. Index points into the
// compiled matcher list; NoMatch has Index -1. Comparing labels by Index
// keeps a keyword literally named "None" (or "No Keyword Match") distinct
// from the no-match sentinel.
type Label struct {
	Index int
	Name  string
}

// NoMatch is the label every record starts with.
var NoMatch = Label{Index: -1}

// Matched reports whether an expression matched.
func (l Label) Matched() bool { return l.Index >= 0 }

func (l Label) String() string {
	if !l.Matched() {
		return NoMatchText
	}
	return l.Name
}

// MarshalJSON encodes a label as its expression name, or null for NoMatch.
func (l Label) MarshalJSON() ([]byte, error) {
	if !l.Matched() {
		return []byte("null"), nil
	}
	return json.Marshal(l.Name)
}

// Matcher is a compiled Expression.
type Matcher struct {
	Expression Expression
	patterns   []*regexp.Regexp
}

// Name returns the expression's display name.
func (m *Matcher) Name() string { return m.Expression.Name() }

// Match reports whether any sub-pattern is found in text, ignoring case.
func (m *Matcher) Match(text string) bool {
	for _, re := range m.patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// MatchRecord reports whether r's field f matches. A record with no value
// for f never matches.
func (m *Matcher) MatchRecord(r types.Record, f types.Field) bool {
	text, ok := r.FieldText(f)
	if !ok {
		return false
	}
	return m.Match(text)
}

// Compile builds one Matcher per non-empty expression, in input order.
// Identical sub-patterns are compiled once per call. Every invalid
// sub-pattern is reported as a PatternError, joined into one error; no
// matchers are returned in that case. An input with no non-empty
// expression yields an EmptyInputError.
func Compile(exprs []Expression) ([]*Matcher, error) {
	cache := make(map[string]*regexp.Regexp)
	var (
		matchers []*Matcher
		errs     []error
	)

	for _, e := range exprs {
		if e.IsEmpty() {
			continue
		}
		m := &Matcher{Expression: e}
		for _, p := range e.Patterns {
			re, ok := cache[p]
			if !ok {
				var err error
				re, err = regexp.Compile("(?i)" + p)
				if err != nil {
					errs = append(errs, &PatternError{Expression: e.Name(), Pattern: p, Err: err})
					continue
				}
				cache[p] = re
			}
			m.patterns = append(m.patterns, re)
		}
		matchers = append(matchers, m)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(matchers) == 0 {
		return nil, &EmptyInputError{}
	}
	return matchers, nil
}
