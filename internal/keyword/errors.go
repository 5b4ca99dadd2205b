// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keyword

import "fmt"

// PatternError reports a sub-pattern that is not valid regular expression
// syntax. It aborts the current query only.
type PatternError struct {
	// Expression is the display name of the offending expression.
	Expression string

	// Pattern is the sub-pattern that failed to compile.
	Pattern string

	Err error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q in keyword %q: %v", e.Pattern, e.Expression, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// EmptyInputError reports a keyword list with no usable entry.
type EmptyInputError struct {
	Input string
}

func (e *EmptyInputError) Error() string {
	return "no keywords provided: enter one or more comma-separated keywords"
}

// PatternErrors collects every PatternError in err, including those joined
// with errors.Join or wrapped with %w.
func PatternErrors(err error) []*PatternError {
	var out []*PatternError
	var walk func(error)
	walk = func(err error) {
		switch x := err.(type) {
		case nil:
		case *PatternError:
			out = append(out, x)
		case interface{ Unwrap() []error }:
			for _, e := range x.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(x.Unwrap())
		}
	}
	walk(err)
	return out
}
