// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/landscape/internal/explore"
	"github.com/pdiddy/landscape/internal/trend"
	"github.com/pdiddy/landscape/pkg/types"
)

// --- match subcommand ---

var matchCmd = &cobra.Command{
	Use:   "match [keywords]",
	Short: "Label a research cluster's papers by keyword",
	Long: `Match labels each paper in a cluster with the last keyword whose pattern
occurs in the chosen field, and reports how many papers each keyword
labels. Papers no keyword matches are counted as "No Keyword Match".

Example:
  landscape match --category "NMR" "deep learning|neural networks, profiling"`,
	RunE: runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	ex, err := explorerFromFlags()
	if err != nil {
		return err
	}

	q := explore.ClusterQuery{
		Category:    flagString(cmd, "category"),
		Keywords:    keywordsArg(cmd, args),
		Field:       types.Field(flagString(cmd, "field")),
		OnlyMatches: flagBool(cmd, "only-matches"),
	}
	view, err := ex.ClusterByKeywords(q)
	if err != nil {
		return err
	}

	if flagBool(cmd, "json") {
		return explore.FormatJSON(view, os.Stdout)
	}
	maxRows, _ := cmd.Flags().GetInt("max-rows")
	explore.FormatClusterTable(view, maxRows, os.Stdout)
	return nil
}

// --- trends subcommand ---

var trendsCmd = &cobra.Command{
	Use:   "trends [keywords]",
	Short: "Chart keyword prevalence per publication year",
	Long: `Trends computes, for each keyword and each publication year, the
percentage of that year's papers whose field matches the keyword. Each
keyword is counted independently. The current year is left out as
incomplete unless explorer.exclude_current_year is false.

Use --report to save the series and their inputs as YAML.`,
	RunE: runTrends,
}

func runTrends(cmd *cobra.Command, args []string) error {
	ex, err := explorerFromFlags()
	if err != nil {
		return err
	}

	q := explore.TrendQuery{
		Category: flagString(cmd, "category"),
		Keywords: keywordsArg(cmd, args),
		Field:    types.Field(flagString(cmd, "field")),
	}
	view, err := ex.Trends(q)
	if err != nil {
		return err
	}

	if path := flagString(cmd, "report"); path != "" {
		params := trend.ReportParams{
			Category:      view.Category,
			Field:         view.Field,
			ExcludedYears: view.Policy.Excluded,
		}
		for _, s := range view.Series {
			params.Keywords = append(params.Keywords, s.Name)
		}
		report := trend.NewReport(params, view.Records, view.Series, time.Now().UTC())
		if err := trend.WriteReport(path, report); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote trend report to %s\n", path)
	}

	if flagBool(cmd, "json") {
		return trend.FormatJSON(view.Series, os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "Cluster: %s  Field: %s  Records: %d\n\n", view.Category, view.Field, view.Records)
	trend.FormatTable(view.Series, os.Stdout)
	return nil
}

// --- author subcommand ---

var authorCmd = &cobra.Command{
	Use:   "author [name]",
	Short: "Find papers by an author",
	Long: `Author lists the papers whose authors list contains the given person,
matched on last name and first initial.

Example:
  landscape author "Jeremy Nicholson"`,
	RunE: runAuthor,
}

func runAuthor(cmd *cobra.Command, args []string) error {
	ex, err := explorerFromFlags()
	if err != nil {
		return err
	}

	view, err := ex.HighlightAuthor(explore.AuthorQuery{
		Name:       strings.Join(args, " "),
		OnlyAuthor: true,
	})
	if err != nil {
		return err
	}

	if flagBool(cmd, "json") {
		return explore.FormatJSON(view, os.Stdout)
	}
	explore.FormatAuthorTable(view, os.Stdout)
	return nil
}

// --- categories subcommand ---

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List research clusters and their paper counts",
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	ex, err := explorerFromFlags()
	if err != nil {
		return err
	}
	if flagBool(cmd, "json") {
		return explore.FormatJSON(ex.Categories(), os.Stdout)
	}
	explore.FormatCategories(ex.Categories(), ex.Dataset().Records(), os.Stdout)
	return nil
}

// --- shared helpers ---

func explorerFromFlags() (*explore.Explorer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return openExplorer(context.Background(), cfg)
}

// keywordsArg prefers --keywords and otherwise joins the positional
// arguments back into one comma-separated list.
func keywordsArg(cmd *cobra.Command, args []string) string {
	if k := flagString(cmd, "keywords"); k != "" {
		return k
	}
	return strings.Join(args, " ")
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func flagBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func init() {
	// Query flags shared by match and trends.
	for _, c := range []*cobra.Command{matchCmd, trendsCmd} {
		c.Flags().String("category", "", "research cluster (default: all embeddings)")
		c.Flags().String("keywords", "", `comma-separated keywords; "|" separates alternatives`)
		c.Flags().String("field", "", "field to search: title or abstract (default from config)")
		c.Flags().Bool("json", false, "output results as JSON")
	}

	matchCmd.Flags().Bool("only-matches", false, "list only papers a keyword matched")
	matchCmd.Flags().Int("max-rows", 50, "maximum matched rows to print (0 = all)")

	trendsCmd.Flags().String("report", "", "write the trend series to a YAML report file")

	authorCmd.Flags().Bool("json", false, "output results as JSON")
	categoriesCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(authorCmd)
	rootCmd.AddCommand(categoriesCmd)
}
