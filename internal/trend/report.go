// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/landscape/pkg/types"
)

// Report is the on-disk form of one trend computation, handed to an
// external charting tool.
type Report struct {
	Params  ReportParams  `yaml:"params"`
	Series  []Series      `yaml:"series"`
	Summary ReportSummary `yaml:"summary"`
}

// ReportParams records the inputs that produced the series.
type ReportParams struct {
	Category      string      `yaml:"category,omitempty"`
	Field         types.Field `yaml:"field"`
	Keywords      []string    `yaml:"keywords"`
	ExcludedYears []int       `yaml:"excluded_years,omitempty"`
}

// ReportSummary stores the covered year span and a timestamp.
type ReportSummary struct {
	Records   int       `yaml:"records"`
	FirstYear int       `yaml:"first_year,omitempty"`
	LastYear  int       `yaml:"last_year,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// NewReport assembles a Report from a finished aggregation.
func NewReport(params ReportParams, records int, series []Series, now time.Time) Report {
	r := Report{
		Params: params,
		Series: series,
		Summary: ReportSummary{
			Records:   records,
			Timestamp: now,
		},
	}
	if len(series) > 0 && len(series[0].Points) > 0 {
		pts := series[0].Points
		r.Summary.FirstYear = pts[0].Year
		r.Summary.LastYear = pts[len(pts)-1].Year
	}
	return r
}

// WriteReport saves r to a YAML file.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling trend report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trend report: %w", err)
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing trend report: %w", err)
	}
	return &r, nil
}
