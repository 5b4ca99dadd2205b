// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explore

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/landscape/pkg/types"
)

// FormatClusterTable writes per-keyword counts followed by the matched
// rows as a human-readable table. maxRows limits the row listing; zero
// lists every matched row.
func FormatClusterTable(v ClusterView, maxRows int, w io.Writer) {
	fmt.Fprintf(w, "Cluster: %s  Field: %s  Records: %d", v.Category, v.Field, v.Total)
	if v.YearRange != nil {
		fmt.Fprintf(w, "  Years: %d-%d", v.YearRange.Min, v.YearRange.Max)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-40s  %s\n", "Keyword", "Papers")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, c := range v.Counts {
		fmt.Fprintf(w, "%-40s  %d\n", truncate(c.Name, 40), c.Count)
	}

	matched := v.Matched()
	if len(matched) == 0 {
		fmt.Fprintln(w, "\nNo keyword matches.")
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-4s  %-60s  %-4s  %s\n", "Row", "Title", "Year", "Keyword")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for i, r := range matched {
		if maxRows > 0 && i == maxRows {
			fmt.Fprintf(w, "... %d more\n", len(matched)-maxRows)
			break
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-4d  %s\n", r.ID, truncate(r.Title, 60), r.PubYear, r.Label)
	}
}

// FormatAuthorTable writes the highlighted papers of an author search.
func FormatAuthorTable(v AuthorView, w io.Writer) {
	if len(v.Highlighted) == 0 {
		fmt.Fprintf(w, "No papers found for %s.\n", v.Name)
		return
	}

	fmt.Fprintf(w, "%-60s  %-30s  %s\n", "Title", "Journal", "Year")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range v.Highlighted {
		fmt.Fprintf(w, "%-60s  %-30s  %d\n", truncate(r.Title, 60), truncate(r.Journal, 30), r.PubYear)
	}
	fmt.Fprintf(w, "\n%d papers by %s\n", len(v.Highlighted), v.Name)
}

// FormatCategories writes one category per line with its record count.
func FormatCategories(categories []string, records []types.Record, w io.Writer) {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Category]++
	}
	for _, c := range categories {
		n, ok := counts[c]
		if !ok {
			n = len(records)
		}
		fmt.Fprintf(w, "%-50s  %d\n", c, n)
	}
}

// FormatJSON writes v as indented JSON.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
