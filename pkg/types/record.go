// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the landscape explorer.
// Implements: Record (one row of the embedding table), Field (searchable
// text columns), and the configuration structs read by the CLI.
package types

import (
	"fmt"
	"strings"
)

// Field names a text column that keyword expressions search.
type Field string

const (
	FieldTitle    Field = "title"
	FieldAbstract Field = "abstract"
)

// FieldError reports a search field name that is neither title nor abstract.
type FieldError struct {
	Name string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown search field %q: use title or abstract", e.Name)
}

// ParseField validates a user-supplied field name. Matching is case-insensitive.
func ParseField(name string) (Field, error) {
	switch Field(strings.ToLower(strings.TrimSpace(name))) {
	case FieldTitle:
		return FieldTitle, nil
	case FieldAbstract:
		return FieldAbstract, nil
	}
	return "", &FieldError{Name: name}
}

// Record holds metadata and 2D embedding coordinates for one paper.
// Records are loaded once and never modified afterwards.
type Record struct {
	// ID is the row index in the source table.
	ID int `json:"id" yaml:"id"`

	// Category is the predicted research cluster label.
	Category string `json:"category" yaml:"category"`

	// PubYear is the publication year.
	PubYear int `json:"pub_year" yaml:"pub_year"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract. Nil when the source cell is empty.
	Abstract *string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors is a comma-separated list of "Lastname Firstname" entries.
	// Nil when the source cell is empty.
	Authors *string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Journal is the journal title, shown next to highlighted author papers.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// X and Y are the t-SNE embedding coordinates.
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// FieldText returns the text of f for this record. ok is false when the
// value is absent, in which case the record matches no expression on f.
func (r Record) FieldText(f Field) (text string, ok bool) {
	switch f {
	case FieldTitle:
		return r.Title, true
	case FieldAbstract:
		if r.Abstract == nil {
			return "", false
		}
		return *r.Abstract, true
	}
	return "", false
}

// AuthorList returns the raw authors string, or "" when absent.
func (r Record) AuthorList() string {
	if r.Authors == nil {
		return ""
	}
	return *r.Authors
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
