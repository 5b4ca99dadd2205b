// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package explore

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/landscape/internal/author"
	"github.com/pdiddy/landscape/internal/dataset"
	"github.com/pdiddy/landscape/internal/keyword"
	"github.com/pdiddy/landscape/pkg/types"
)

// --- fixtures ---

func scenarioRecords() []types.Record {
	return []types.Record{
		{ID: 0, PubYear: 2001, Title: "deep learning model"},
		{ID: 1, PubYear: 2001, Title: "neural networks survey"},
		{ID: 2, PubYear: 2002, Title: "metabolite profiling"},
		{ID: 3, PubYear: 2002, Title: "plain text"},
	}
}

func sampleDataset() *dataset.Dataset {
	return dataset.New("mem", []types.Record{
		{ID: 0, Category: "NMR", PubYear: 2001, Title: "Quantitative NMR of urine",
			Abstract: types.StringPtr("We apply NMR spectroscopy."), Authors: types.StringPtr("Nicholson Jeremy, Lindon John"), Journal: "Anal Chem"},
		{ID: 1, Category: "NMR", PubYear: 2003, Title: "Plant metabolite NMR",
			Abstract: types.StringPtr("Plant tissue NMR and MS."), Authors: types.StringPtr("Fernie Alisdair")},
		{ID: 2, Category: "MS", PubYear: 2002, Title: "Untargeted LC-MS",
			Abstract: types.StringPtr("Mass spectrometry of serum."), Authors: types.StringPtr("Fiehn Oliver")},
		{ID: 3, Category: "MS", PubYear: 2024, Title: "Lipidomics with MS"},
	})
}

func testExplorer() *Explorer {
	e := New(sampleDataset(), types.ExplorerConfig{ExcludeCurrentYear: true})
	e.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func parse(t *testing.T, list string) []keyword.Expression {
	t.Helper()
	exprs, err := keyword.ParseList(list, "|")
	require.NoError(t, err)
	return exprs
}

func labels(res MatchResult) []string {
	out := make([]string, len(res.Rows))
	for i, r := range res.Rows {
		out[i] = r.Label.String()
	}
	return out
}

// --- Match ---

func TestMatchDeepLearningTitles(t *testing.T) {
	res, err := Match(scenarioRecords(), types.FieldTitle, parse(t, "deep learning|neural networks"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"deep learning | neural networks",
		"deep learning | neural networks",
		keyword.NoMatchText,
		keyword.NoMatchText,
	}, labels(res))
	assert.False(t, res.Rows[2].Label.Matched())
}

func TestMatchLastMatchWins(t *testing.T) {
	records := []types.Record{{Title: "alpha beta"}, {Title: "alpha"}, {Title: "beta"}}
	res, err := Match(records, types.FieldTitle, parse(t, "alpha, beta"))
	require.NoError(t, err)
	assert.Equal(t, []string{"beta", "alpha", "beta"}, labels(res))

	res, err = Match(records, types.FieldTitle, parse(t, "beta, alpha"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "alpha", "beta"}, labels(res))
}

func TestMatchEveryRecordHasOneLabel(t *testing.T) {
	records := scenarioRecords()
	res, err := Match(records, types.FieldTitle, parse(t, "zzz"))
	require.NoError(t, err)
	require.Len(t, res.Rows, len(records))
	for _, r := range res.Rows {
		assert.Equal(t, keyword.NoMatch, r.Label)
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	records := []types.Record{{Title: "1H nmr metabolomics"}}
	res, err := Match(records, types.FieldTitle, parse(t, "NMR"))
	require.NoError(t, err)
	assert.True(t, res.Rows[0].Label.Matched())
}

func TestMatchORGroup(t *testing.T) {
	records := []types.Record{{Title: "my dog"}}
	res, err := Match(records, types.FieldTitle, parse(t, "cat|dog"))
	require.NoError(t, err)
	assert.Equal(t, "cat | dog", res.Rows[0].Label.String())
}

func TestMatchNullAbstract(t *testing.T) {
	records := []types.Record{{Title: "nmr"}, {Abstract: types.StringPtr("nmr")}}
	res, err := Match(records, types.FieldAbstract, parse(t, "nmr"))
	require.NoError(t, err)
	assert.False(t, res.Rows[0].Label.Matched())
	assert.True(t, res.Rows[1].Label.Matched())
}

func TestMatchSkipsEmptyExpressions(t *testing.T) {
	exprs := []keyword.Expression{keyword.Parse("  ", ""), keyword.Parse("plain", ""), keyword.Parse("", "")}
	res, err := Match(scenarioRecords(), types.FieldTitle, exprs)
	require.NoError(t, err)
	assert.Equal(t, []string{"plain"}, res.Names)
	assert.Equal(t, keyword.Label{Index: 0, Name: "plain"}, res.Rows[3].Label)
}

func TestMatchNoneKeywordIsNotNoMatch(t *testing.T) {
	records := []types.Record{{Title: "None of the above"}, {Title: "other"}}
	res, err := Match(records, types.FieldTitle, parse(t, "None"))
	require.NoError(t, err)
	assert.True(t, res.Rows[0].Label.Matched())
	assert.Equal(t, "None", res.Rows[0].Label.String())
	matched, unmatched := res.Partition()
	assert.Len(t, matched, 1)
	assert.Len(t, unmatched, 1)
}

func TestMatchInvalidPattern(t *testing.T) {
	res, err := Match(scenarioRecords(), types.FieldTitle, parse(t, "deep, model(, [x"))
	require.Error(t, err)
	assert.Empty(t, res.Rows, "no partial result")

	pes := keyword.PatternErrors(err)
	require.Len(t, pes, 2)
	assert.Equal(t, "model(", pes[0].Expression)
	assert.Equal(t, "[x", pes[1].Expression)
}

func TestMatchUnknownField(t *testing.T) {
	_, err := Match(scenarioRecords(), types.Field("authors"), parse(t, "a"))
	var fe *types.FieldError
	assert.ErrorAs(t, err, &fe)
}

func TestMatchDoesNotMutateInput(t *testing.T) {
	records := scenarioRecords()
	before := scenarioRecords()
	first, err := Match(records, types.FieldTitle, parse(t, "model, survey"))
	require.NoError(t, err)
	second, err := Match(records, types.FieldTitle, parse(t, "model, survey"))
	require.NoError(t, err)

	assert.Equal(t, before, records)
	assert.Equal(t, first, second)
}

func TestPartitionAndOnlyMatches(t *testing.T) {
	res, err := Match(scenarioRecords(), types.FieldTitle, parse(t, "model, text"))
	require.NoError(t, err)

	matched, unmatched := res.Partition()
	assert.Equal(t, len(res.Rows), len(matched)+len(unmatched))
	assert.Equal(t, 0, matched[0].ID)
	assert.Equal(t, 3, matched[1].ID)
	assert.Equal(t, 1, unmatched[0].ID)
	assert.Equal(t, 2, unmatched[1].ID)

	only := res.OnlyMatches()
	assert.Equal(t, matched, only.Rows)
	assert.Len(t, res.Rows, 4, "OnlyMatches returns a copy")
}

func TestCounts(t *testing.T) {
	records := []types.Record{{Title: "a b"}, {Title: "a"}, {Title: "c"}}
	res, err := Match(records, types.FieldTitle, parse(t, "a, b"))
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{
		{Name: "a", Count: 1},
		{Name: "b", Count: 1},
		{Name: keyword.NoMatchText, Count: 1},
	}, res.Counts())
}

func TestYearRange(t *testing.T) {
	res, err := Match(scenarioRecords(), types.FieldTitle, parse(t, "profiling"))
	require.NoError(t, err)

	lo, hi, ok := res.YearRange()
	require.True(t, ok)
	assert.Equal(t, 2001, lo)
	assert.Equal(t, 2002, hi)

	lo, hi, ok = res.OnlyMatches().YearRange()
	require.True(t, ok)
	assert.Equal(t, [2]int{2002, 2002}, [2]int{lo, hi})

	_, _, ok = MatchResult{}.YearRange()
	assert.False(t, ok)
}

func TestRowJSON(t *testing.T) {
	res, err := Match(scenarioRecords()[:1], types.FieldTitle, parse(t, "deep"))
	require.NoError(t, err)
	data, err := json.Marshal(res.Rows[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"keyword":"deep"`)
	assert.Contains(t, string(data), `"title":"deep learning model"`)
}

// --- Explorer ---

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{dataset.AllCategories, "MS", "NMR"}, testExplorer().Categories())
}

func TestClusterByKeywords(t *testing.T) {
	e := testExplorer()

	v, err := e.ClusterByKeywords(ClusterQuery{Category: "NMR", Keywords: "nmr, plant"})
	require.NoError(t, err)
	assert.Equal(t, types.FieldAbstract, v.Field, "default field")
	assert.Equal(t, 2, v.Total)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "nmr", v.Rows[0].Label.String())
	assert.Equal(t, "plant", v.Rows[1].Label.String())
	assert.Equal(t, &YearRange{Min: 2001, Max: 2003}, v.YearRange)
}

func TestClusterByKeywordsOnlyMatches(t *testing.T) {
	e := testExplorer()

	v, err := e.ClusterByKeywords(ClusterQuery{
		Category:    dataset.AllCategories,
		Keywords:    "lc-ms|lipid",
		Field:       types.FieldTitle,
		OnlyMatches: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, v.Total)
	require.Len(t, v.Rows, 2)
	assert.Empty(t, v.Unmatched())
	assert.Len(t, v.Matched(), 2)
	assert.Equal(t, &YearRange{Min: 2002, Max: 2024}, v.YearRange)
	assert.Equal(t, []LabelCount{{Name: "lc-ms | lipid", Count: 2}, {Name: keyword.NoMatchText, Count: 2}}, v.Counts)

	v, err = e.ClusterByKeywords(ClusterQuery{Keywords: "zzz", Field: types.FieldTitle, OnlyMatches: true})
	require.NoError(t, err)
	assert.Empty(t, v.Rows)
	assert.Nil(t, v.YearRange)
	assert.Equal(t, dataset.AllCategories, v.Category)
}

func TestClusterByKeywordsErrors(t *testing.T) {
	e := testExplorer()

	_, err := e.ClusterByKeywords(ClusterQuery{Keywords: " , "})
	var empty *keyword.EmptyInputError
	assert.ErrorAs(t, err, &empty)

	_, err = e.ClusterByKeywords(ClusterQuery{Keywords: "a", Category: "Genomics"})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = e.ClusterByKeywords(ClusterQuery{Keywords: "a", Field: "journal"})
	var fe *types.FieldError
	assert.ErrorAs(t, err, &fe)

	_, err = e.ClusterByKeywords(ClusterQuery{Keywords: "a("})
	var pe *keyword.PatternError
	assert.ErrorAs(t, err, &pe)
}

func TestTrends(t *testing.T) {
	e := testExplorer()

	v, err := e.Trends(TrendQuery{Keywords: "ms, nmr", Field: types.FieldTitle})
	require.NoError(t, err)
	assert.Equal(t, []int{2024}, v.Policy.Excluded)
	assert.Equal(t, 4, v.Records)
	require.Len(t, v.Series, 2)

	ms := v.Series[0]
	assert.Equal(t, "ms", ms.Name)
	require.Len(t, ms.Points, 3, "2024 is excluded")
	assert.Equal(t, 0.0, ms.Points[0].Percent)
	assert.Equal(t, 100.0, ms.Points[1].Percent)
	assert.Equal(t, 0.0, ms.Points[2].Percent)

	nmr := v.Series[1]
	assert.Equal(t, 100.0, nmr.Points[0].Percent)
	assert.Equal(t, 100.0, nmr.Points[2].Percent)
}

func TestTrendsCategory(t *testing.T) {
	v, err := testExplorer().Trends(TrendQuery{Category: "NMR", Keywords: "plant"})
	require.NoError(t, err)
	require.Len(t, v.Series, 1)
	assert.Equal(t, 2, len(v.Series[0].Points))
	assert.Equal(t, 0.0, v.Series[0].Points[0].Percent)
	assert.Equal(t, 100.0, v.Series[0].Points[1].Percent)
}

func TestHighlightAuthor(t *testing.T) {
	e := testExplorer()

	v, err := e.HighlightAuthor(AuthorQuery{Name: "Jeremy Nicholson"})
	require.NoError(t, err)
	require.Len(t, v.Highlighted, 1)
	assert.Equal(t, "Quantitative NMR of urine", v.Highlighted[0].Title)
	assert.Len(t, v.Other, 3)

	v, err = e.HighlightAuthor(AuthorQuery{Name: "Fiehn", OnlyAuthor: true})
	require.NoError(t, err)
	require.Len(t, v.Highlighted, 1)
	assert.Empty(t, v.Other)

	v, err = e.HighlightAuthor(AuthorQuery{Name: "Nobody Here", OnlyAuthor: true})
	require.NoError(t, err)
	assert.Empty(t, v.Highlighted)
	assert.NotNil(t, v.Highlighted)

	_, err = e.HighlightAuthor(AuthorQuery{Name: " "})
	assert.ErrorIs(t, err, author.ErrEmptyName)
}

// --- formatting ---

func TestFormatClusterTable(t *testing.T) {
	v, err := testExplorer().ClusterByKeywords(ClusterQuery{Keywords: "nmr, serum"})
	require.NoError(t, err)

	var buf bytes.Buffer
	FormatClusterTable(v, 1, &buf)
	out := buf.String()
	assert.Contains(t, out, "Cluster: All embeddings")
	assert.Contains(t, out, "Years: 2001-2024")
	assert.Contains(t, out, "Quantitative NMR of urine")
	assert.Contains(t, out, "... 2 more")

	v, err = testExplorer().ClusterByKeywords(ClusterQuery{Keywords: "zzz"})
	require.NoError(t, err)
	buf.Reset()
	FormatClusterTable(v, 0, &buf)
	assert.Contains(t, buf.String(), "No keyword matches.")
}

func TestFormatAuthorTable(t *testing.T) {
	v, err := testExplorer().HighlightAuthor(AuthorQuery{Name: "Jeremy Nicholson"})
	require.NoError(t, err)

	var buf bytes.Buffer
	FormatAuthorTable(v, &buf)
	assert.Contains(t, buf.String(), "Anal Chem")
	assert.Contains(t, buf.String(), "1 papers by Jeremy Nicholson")

	buf.Reset()
	FormatAuthorTable(AuthorView{Name: "X"}, &buf)
	assert.Equal(t, "No papers found for X.\n", buf.String())
}

func TestFormatCategories(t *testing.T) {
	e := testExplorer()
	var buf bytes.Buffer
	FormatCategories(e.Categories(), e.Dataset().Records(), &buf)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], dataset.AllCategories))
	assert.True(t, strings.HasSuffix(lines[0], "4"))
	assert.True(t, strings.HasSuffix(lines[1], "2"))
}
