// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the paper embedding table into memory.
//
// The table is read once, from an xlsx workbook, a CSV file, or a SQLite
// snapshot written by the store package, and is read-only afterwards.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/pdiddy/landscape/internal/store"
	"github.com/pdiddy/landscape/pkg/types"
)

// AllCategories selects every record regardless of research cluster.
const AllCategories = "All embeddings"

// Dataset is the loaded table.
type Dataset struct {
	records []types.Record
	source  string
	skipped int
}

// New wraps records already in memory. The slice is copied.
func New(source string, records []types.Record) *Dataset {
	return &Dataset{source: source, records: slices.Clone(records)}
}

// Load reads the dataset named by cfg.Path, choosing the reader by file
// extension. A failed load leaves nothing to explore, so callers treat the
// error as fatal.
func Load(ctx context.Context, cfg types.DatasetConfig) (*Dataset, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("dataset path is empty: set dataset.path or --data")
	}
	cols := cfg.Columns.WithDefaults()

	var (
		records []types.Record
		skipped int
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(cfg.Path)); ext {
	case ".xlsx", ".xlsm":
		records, skipped, err = readXLSX(ctx, cfg.Path, cfg.Sheet, cols)
	case ".csv":
		records, skipped, err = readCSV(ctx, cfg.Path, cols)
	case ".db", ".sqlite", ".sqlite3":
		records, err = readStore(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q: use .xlsx, .csv, or .db", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", cfg.Path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("loading dataset %s: no usable rows", cfg.Path)
	}

	if skipped > 0 {
		slog.Warn("dataset rows skipped", "path", cfg.Path, "skipped", skipped)
	}
	slog.Info("dataset loaded", "path", cfg.Path, "records", len(records))

	return &Dataset{records: records, source: cfg.Path, skipped: skipped}, nil
}

func readStore(ctx context.Context, path string) ([]types.Record, error) {
	s, err := store.Open(types.StoreConfig{Path: path})
	if err != nil {
		return nil, err
	}
	defer s.Close()
	return s.Records(ctx)
}

// Source returns the path the dataset was loaded from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Skipped returns the number of source rows dropped during load.
func (d *Dataset) Skipped() int { return d.skipped }

// Records returns a copy of every record, in source order.
func (d *Dataset) Records() []types.Record {
	return slices.Clone(d.records)
}

// Filter returns a copy of the records in category, in source order.
// AllCategories and "" return every record.
func (d *Dataset) Filter(category string) []types.Record {
	if category == "" || category == AllCategories {
		return d.Records()
	}
	var out []types.Record
	for _, r := range d.records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns the distinct non-empty categories, sorted.
func (d *Dataset) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, r := range d.records {
		if r.Category == "" || seen[r.Category] {
			continue
		}
		seen[r.Category] = true
		cats = append(cats, r.Category)
	}
	sort.Strings(cats)
	return cats
}

// HasCategory reports whether category is AllCategories or present in the data.
func (d *Dataset) HasCategory(category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return slices.Contains(d.Categories(), category)
}
