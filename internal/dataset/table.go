// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/landscape/pkg/types"
)

// columnIndex holds the position of each mapped column in the header row;
// -1 marks an optional column that is absent.
type columnIndex struct {
	category, year, title, abstract, authors, journal, x, y int
}

func indexColumns(header []string, cols types.ColumnMap) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}
	find := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	idx := columnIndex{
		category: find(cols.Category),
		year:     find(cols.Year),
		title:    find(cols.Title),
		abstract: find(cols.Abstract),
		authors:  find(cols.Authors),
		journal:  find(cols.Journal),
		x:        find(cols.X),
		y:        find(cols.Y),
	}

	var missing []string
	for _, req := range []struct {
		name string
		i    int
	}{
		{cols.Title, idx.title},
		{cols.Year, idx.year},
		{cols.X, idx.x},
		{cols.Y, idx.y},
	} {
		if req.i < 0 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// parseRows converts data rows into records. Rows whose year or
// coordinates do not parse are skipped and counted.
func parseRows(ctx context.Context, header []string, rows [][]string, cols types.ColumnMap) ([]types.Record, int, error) {
	idx, err := indexColumns(header, cols)
	if err != nil {
		return nil, 0, err
	}

	records := make([]types.Record, 0, len(rows))
	skipped := 0
	for n, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		if blankRow(row) {
			continue
		}
		r, err := parseRecord(row, idx)
		if err != nil {
			// Row numbers are 1-based and count the header.
			slog.Debug("skipping dataset row", "row", n+2, "error", err)
			skipped++
			continue
		}
		r.ID = len(records)
		records = append(records, r)
	}
	return records, skipped, nil
}

func parseRecord(row []string, idx columnIndex) (types.Record, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	year, err := parseYear(cell(idx.year))
	if err != nil {
		return types.Record{}, err
	}
	x, err := parseCoord(cell(idx.x))
	if err != nil {
		return types.Record{}, fmt.Errorf("x: %w", err)
	}
	y, err := parseCoord(cell(idx.y))
	if err != nil {
		return types.Record{}, fmt.Errorf("y: %w", err)
	}

	return types.Record{
		Category: cell(idx.category),
		PubYear:  year,
		Title:    cell(idx.title),
		Abstract: types.StringPtr(cell(idx.abstract)),
		Authors:  types.StringPtr(cell(idx.authors)),
		Journal:  cell(idx.journal),
		X:        x,
		Y:        y,
	}, nil
}

// parseYear accepts "2019" and spreadsheet renderings such as "2019.0".
func parseYear(s string) (int, error) {
	if s == "" {
		return 0, errors.New("year is empty")
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return int(f), nil
}

func parseCoord(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}
	return f, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readXLSX(ctx context.Context, path, sheet string, cols types.ColumnMap) ([]types.Record, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("closing workbook", "path", path, "error", err)
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, 0, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, 0, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("sheet %q is empty", sheet)
	}
	return parseRows(ctx, rows[0], rows[1:], cols)
}

func readCSV(ctx context.Context, path string, cols types.ColumnMap) ([]types.Record, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, errors.New("csv file is empty")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading csv header: %w", err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading csv: %w", err)
		}
		rows = append(rows, row)
	}
	return parseRows(ctx, header, rows, cols)
}
