// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explore

import (
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/landscape/internal/author"
	"github.com/pdiddy/landscape/internal/dataset"
	"github.com/pdiddy/landscape/internal/keyword"
	"github.com/pdiddy/landscape/internal/trend"
	"github.com/pdiddy/landscape/pkg/types"
)

// ErrUnknownCategory is returned for a research cluster not in the dataset.
var ErrUnknownCategory = errors.New("unknown research cluster")

// Explorer answers queries against one loaded dataset. It holds no
// per-query state, so a single Explorer serves any number of callers.
type Explorer struct {
	data *dataset.Dataset
	cfg  types.ExplorerConfig
	now  func() time.Time
}

// New returns an Explorer over data.
func New(data *dataset.Dataset, cfg types.ExplorerConfig) *Explorer {
	if cfg.ORSeparator == "" {
		cfg.ORSeparator = keyword.DefaultORSeparator
	}
	if cfg.DefaultField == "" {
		cfg.DefaultField = types.FieldAbstract
	}
	return &Explorer{data: data, cfg: cfg, now: time.Now}
}

// Dataset returns the underlying dataset.
func (e *Explorer) Dataset() *dataset.Dataset { return e.data }

// Categories lists the research clusters, with AllCategories first.
func (e *Explorer) Categories() []string {
	return append([]string{dataset.AllCategories}, e.data.Categories()...)
}

// ClusterQuery selects a research cluster and keywords to label it by.
type ClusterQuery struct {
	// Category is a research cluster or dataset.AllCategories.
	Category string `json:"category"`

	// Keywords is the comma-separated keyword list as entered.
	Keywords string `json:"keywords"`

	// Field is title or abstract. Empty uses the configured default.
	Field types.Field `json:"field"`

	// OnlyMatches drops records no keyword matched.
	OnlyMatches bool `json:"only_matches"`
}

// ClusterView is the data behind the year-colored and keyword-colored
// scatter plots.
type ClusterView struct {
	Category  string       `json:"category"`
	Field     types.Field  `json:"field"`
	Keywords  []string     `json:"keywords"`
	Rows      []Row        `json:"rows"`
	Counts    []LabelCount `json:"counts"`
	Total     int          `json:"total"`
	YearRange *YearRange   `json:"year_range,omitempty"`
}

// YearRange bounds the year color scale.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Matched and Unmatched split the view's rows for plotting.
func (v ClusterView) Matched() []Row {
	m, _ := MatchResult{Rows: v.Rows}.Partition()
	return m
}

func (v ClusterView) Unmatched() []Row {
	_, u := MatchResult{Rows: v.Rows}.Partition()
	return u
}

// ClusterByKeywords filters to q.Category and labels the records by
// q.Keywords. Counts always describe the whole cluster; Rows and YearRange
// describe what is shown after OnlyMatches.
func (e *Explorer) ClusterByKeywords(q ClusterQuery) (ClusterView, error) {
	exprs, field, err := e.prepare(q.Category, q.Keywords, q.Field)
	if err != nil {
		return ClusterView{}, err
	}

	records := e.data.Filter(q.Category)
	res, err := Match(records, field, exprs)
	if err != nil {
		return ClusterView{}, err
	}
	counts := res.Counts()
	if q.OnlyMatches {
		res = res.OnlyMatches()
	}

	view := ClusterView{
		Category: categoryName(q.Category),
		Field:    field,
		Keywords: res.Names,
		Rows:     res.Rows,
		Counts:   counts,
		Total:    len(records),
	}
	if lo, hi, ok := res.YearRange(); ok {
		view.YearRange = &YearRange{Min: lo, Max: hi}
	}
	return view, nil
}

// TrendQuery selects a research cluster and the keywords to chart.
type TrendQuery struct {
	Category string      `json:"category"`
	Keywords string      `json:"keywords"`
	Field    types.Field `json:"field"`
}

// TrendView holds one series per keyword expression.
type TrendView struct {
	Category string           `json:"category"`
	Field    types.Field      `json:"field"`
	Policy   trend.YearPolicy `json:"policy"`
	Records  int              `json:"records"`
	Series   []trend.Series   `json:"series"`
}

// Trends aggregates keyword prevalence per year for q.Category.
func (e *Explorer) Trends(q TrendQuery) (TrendView, error) {
	exprs, field, err := e.prepare(q.Category, q.Keywords, q.Field)
	if err != nil {
		return TrendView{}, err
	}

	records := e.data.Filter(q.Category)
	policy := trend.PolicyFromConfig(e.cfg, e.now())
	series, err := trend.Aggregate(records, field, exprs, policy)
	if err != nil {
		return TrendView{}, err
	}
	return TrendView{
		Category: categoryName(q.Category),
		Field:    field,
		Policy:   policy,
		Records:  len(records),
		Series:   series,
	}, nil
}

// AuthorQuery names a person to highlight.
type AuthorQuery struct {
	Name string `json:"name"`

	// OnlyAuthor leaves out the other papers.
	OnlyAuthor bool `json:"only_author"`
}

// AuthorView splits the dataset into the author's papers and the rest.
type AuthorView struct {
	Name        string         `json:"name"`
	Highlighted []types.Record `json:"highlighted"`
	Other       []types.Record `json:"other,omitempty"`
}

// HighlightAuthor finds the papers whose authors list matches q.Name.
func (e *Explorer) HighlightAuthor(q AuthorQuery) (AuthorView, error) {
	return HighlightAuthor(e.data.Records(), q.Name, q.OnlyAuthor)
}

// HighlightAuthor partitions records by author. Records with no authors
// value are never highlighted.
func HighlightAuthor(records []types.Record, name string, onlyAuthor bool) (AuthorView, error) {
	n, err := author.ParseName(name)
	if err != nil {
		return AuthorView{}, err
	}
	view := AuthorView{Name: n.Display, Highlighted: []types.Record{}}
	for _, r := range records {
		switch {
		case n.In(r.Authors):
			view.Highlighted = append(view.Highlighted, r)
		case !onlyAuthor:
			view.Other = append(view.Other, r)
		}
	}
	return view, nil
}

func (e *Explorer) prepare(category, keywords string, field types.Field) ([]keyword.Expression, types.Field, error) {
	if !e.data.HasCategory(category) {
		return nil, "", fmt.Errorf("%w %q", ErrUnknownCategory, category)
	}
	if field == "" {
		field = e.cfg.DefaultField
	}
	f, err := types.ParseField(string(field))
	if err != nil {
		return nil, "", err
	}
	exprs, err := keyword.ParseList(keywords, e.cfg.ORSeparator)
	if err != nil {
		return nil, "", err
	}
	return exprs, f, nil
}

func categoryName(c string) string {
	if c == "" {
		return dataset.AllCategories
	}
	return c
}
