// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trend

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const nameWidth = 24

// FormatTable writes one row per year and one column per series.
func FormatTable(series []Series, w io.Writer) {
	if len(series) == 0 || len(series[0].Points) == 0 {
		fmt.Fprintln(w, "No trend data.")
		return
	}

	fmt.Fprintf(w, "%-6s", "Year")
	for _, s := range series {
		fmt.Fprintf(w, "  %*s", nameWidth, truncate(s.Name, nameWidth))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 6+len(series)*(nameWidth+2)))

	for yi, p := range series[0].Points {
		fmt.Fprintf(w, "%-6d", p.Year)
		for _, s := range series {
			fmt.Fprintf(w, "  %*.1f", nameWidth, s.Points[yi].Percent)
		}
		fmt.Fprintln(w)
	}
}

// FormatJSON writes series as indented JSON.
func FormatJSON(series []Series, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(series)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
