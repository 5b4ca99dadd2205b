// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trend computes per-year keyword prevalence for trend charts.
//
// For each keyword expression and each eligible publication year, the
// percentage of that year's records whose text matches the expression.
// Expressions are counted independently: unlike keyword labelling, one
// record can contribute to several series.
package trend

import (
	"slices"
	"sort"
	"time"

	"github.com/pdiddy/landscape/internal/keyword"
	"github.com/pdiddy/landscape/pkg/types"
)

// YearPolicy names publication years left out of trend series because
// their data is incomplete.
type YearPolicy struct {
	Excluded []int `json:"excluded,omitempty" yaml:"excluded,omitempty"`
}

// DefaultPolicy excludes the calendar year of now.
func DefaultPolicy(now time.Time) YearPolicy {
	return YearPolicy{Excluded: []int{now.Year()}}
}

// PolicyFromConfig builds the policy described by cfg, evaluated at now.
func PolicyFromConfig(cfg types.ExplorerConfig, now time.Time) YearPolicy {
	var p YearPolicy
	if cfg.ExcludeCurrentYear {
		p.Excluded = append(p.Excluded, now.Year())
	}
	for _, y := range cfg.ExcludeYears {
		if !slices.Contains(p.Excluded, y) {
			p.Excluded = append(p.Excluded, y)
		}
	}
	return p
}

// Eligible reports whether year is kept.
func (p YearPolicy) Eligible(year int) bool {
	return !slices.Contains(p.Excluded, year)
}

// Point is one year of a series.
type Point struct {
	Year    int     `json:"year" yaml:"year"`
	Percent float64 `json:"percent" yaml:"percent"`
	Matches int     `json:"matches" yaml:"matches"`
	Total   int     `json:"total" yaml:"total"`
}

// Series is the trend line of one expression, sorted by year ascending.
type Series struct {
	Name   string  `json:"name" yaml:"name"`
	Points []Point `json:"points" yaml:"points"`
}

// Percent returns the percentage for year and whether the year is in the series.
func (s Series) Percent(year int) (float64, bool) {
	for _, p := range s.Points {
		if p.Year == year {
			return p.Percent, true
		}
	}
	return 0, false
}

// Years returns the sorted distinct publication years of records that
// policy keeps.
func Years(records []types.Record, policy YearPolicy) []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range records {
		if seen[r.PubYear] || !policy.Eligible(r.PubYear) {
			continue
		}
		seen[r.PubYear] = true
		years = append(years, r.PubYear)
	}
	sort.Ints(years)
	return years
}

// Aggregate returns one series per non-empty expression, in expression
// order. Every series covers every eligible year, including years where
// nothing matched. Percent is 100*matches/total, or 0 when the year has no
// records. Invalid patterns abort the aggregation; the returned error
// lists every offending expression.
func Aggregate(records []types.Record, field types.Field, exprs []keyword.Expression, policy YearPolicy) ([]Series, error) {
	field, err := types.ParseField(string(field))
	if err != nil {
		return nil, err
	}
	matchers, err := keyword.Compile(exprs)
	if err != nil {
		return nil, err
	}

	years := Years(records, policy)
	pos := make(map[int]int, len(years))
	for i, y := range years {
		pos[y] = i
	}

	totals := make([]int, len(years))
	hits := make([][]int, len(matchers))
	for i := range hits {
		hits[i] = make([]int, len(years))
	}

	for _, r := range records {
		yi, ok := pos[r.PubYear]
		if !ok {
			continue
		}
		totals[yi]++
		for mi, m := range matchers {
			if m.MatchRecord(r, field) {
				hits[mi][yi]++
			}
		}
	}

	series := make([]Series, len(matchers))
	for mi, m := range matchers {
		points := make([]Point, len(years))
		for yi, y := range years {
			points[yi] = Point{
				Year:    y,
				Percent: percent(hits[mi][yi], totals[yi]),
				Matches: hits[mi][yi],
				Total:   totals[yi],
			}
		}
		series[mi] = Series{Name: m.Name(), Points: points}
	}
	return series, nil
}

func percent(matches, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(matches) / float64(total)
}
