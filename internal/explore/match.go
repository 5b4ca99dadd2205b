// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package explore labels records by keyword, filters them by research
// cluster or author, and shapes the result for the scatter views.
//
// Every operation takes the records by value and returns new slices; the
// loaded dataset is never written to.
package explore

import (
	"github.com/pdiddy/landscape/internal/keyword"
	"github.com/pdiddy/landscape/pkg/types"
)

// Row pairs a record with its keyword label.
type Row struct {
	types.Record
	Label keyword.Label `json:"keyword"`
}

// MatchResult holds one label per input record, in input order.
type MatchResult struct {
	Field types.Field
	Names []string
	Rows  []Row
}

// Match labels every record against exprs on field. Labels start as
// keyword.NoMatch; expressions are applied in order and each one overwrites
// the label of every record it matches, so the last matching expression
// wins. Invalid patterns fail the whole call before any labelling.
func Match(records []types.Record, field types.Field, exprs []keyword.Expression) (MatchResult, error) {
	field, err := types.ParseField(string(field))
	if err != nil {
		return MatchResult{}, err
	}
	matchers, err := keyword.Compile(exprs)
	if err != nil {
		return MatchResult{}, err
	}

	res := MatchResult{
		Field: field,
		Names: make([]string, len(matchers)),
		Rows:  make([]Row, len(records)),
	}
	for i, r := range records {
		res.Rows[i] = Row{Record: r, Label: keyword.NoMatch}
	}

	for idx, m := range matchers {
		res.Names[idx] = m.Name()
		label := keyword.Label{Index: idx, Name: m.Name()}
		for i := range res.Rows {
			if m.MatchRecord(res.Rows[i].Record, field) {
				res.Rows[i].Label = label
			}
		}
	}
	return res, nil
}

// Partition splits the rows into matched and unmatched, each in input
// order. len(matched)+len(unmatched) equals len(Rows).
func (m MatchResult) Partition() (matched, unmatched []Row) {
	for _, r := range m.Rows {
		if r.Label.Matched() {
			matched = append(matched, r)
		} else {
			unmatched = append(unmatched, r)
		}
	}
	return matched, unmatched
}

// OnlyMatches returns a copy of m without the no-match rows.
func (m MatchResult) OnlyMatches() MatchResult {
	matched, _ := m.Partition()
	return MatchResult{Field: m.Field, Names: m.Names, Rows: matched}
}

// LabelCount is the number of rows carrying one label.
type LabelCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Counts returns the row count per expression, in expression order,
// followed by the no-match count. Expressions that lost every record to a
// later one report zero.
func (m MatchResult) Counts() []LabelCount {
	counts := make([]LabelCount, len(m.Names)+1)
	for i, n := range m.Names {
		counts[i].Name = n
	}
	none := len(m.Names)
	counts[none].Name = keyword.NoMatchText
	for _, r := range m.Rows {
		if r.Label.Matched() {
			counts[r.Label.Index].Count++
		} else {
			counts[none].Count++
		}
	}
	return counts
}

// YearRange returns the smallest and largest publication year among the
// rows. ok is false when there are no rows.
func (m MatchResult) YearRange() (lo, hi int, ok bool) {
	return yearRange(m.Rows)
}

func yearRange(rows []Row) (lo, hi int, ok bool) {
	for i, r := range rows {
		if i == 0 || r.PubYear < lo {
			lo = r.PubYear
		}
		if i == 0 || r.PubYear > hi {
			hi = r.PubYear
		}
	}
	return lo, hi, len(rows) > 0
}
