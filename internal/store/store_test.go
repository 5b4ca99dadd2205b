// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/landscape/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	s, err := Open(types.StoreConfig{Path: filepath.Join(tmpDir, "data", "landscape.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	source := filepath.Join(tmpDir, "landscape.xlsx")
	require.NoError(t, os.WriteFile(source, []byte("placeholder"), 0o644))
	return s, source
}

func sampleRecords() []types.Record {
	return []types.Record{
		{
			Category: "NMR", PubYear: 2001, Title: "Quantitative NMR",
			Abstract: types.StringPtr("nmr of urine"), Authors: types.StringPtr("Nicholson Jeremy, Lindon John"),
			Journal: "Anal Chem", X: 1.5, Y: -2.25,
		},
		{Category: "MS", PubYear: 2002, Title: "Untargeted LC-MS", X: 0, Y: 3},
		{Category: "NMR", PubYear: 2003, Title: "Plant NMR", Authors: types.StringPtr("Fernie Alisdair"), X: -1, Y: 1},
	}
}

// --- schema tests ---

func TestOpenCreatesSchema(t *testing.T) {
	s, _ := testSetup(t)

	for _, table := range []string{"records", "import_status"} {
		var count int
		err := s.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(types.StoreConfig{})
	assert.Error(t, err)
}

// --- import tests ---

func TestImportRoundTrip(t *testing.T) {
	s, source := testSetup(t)
	ctx := context.Background()

	var buf strings.Builder
	summary, err := s.Import(ctx, source, sampleRecords(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Records)
	assert.Contains(t, buf.String(), "imported 3 records")

	got, err := s.Records(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	want := sampleRecords()
	for i := range want {
		want[i].ID = i
	}
	assert.Equal(t, want, got)
	assert.Nil(t, got[1].Abstract, "NULL abstract stays nil")
	assert.Nil(t, got[1].Authors)
}

func TestImportReplacesSnapshot(t *testing.T) {
	s, source := testSetup(t)
	ctx := context.Background()

	_, err := s.Import(ctx, source, sampleRecords(), &strings.Builder{})
	require.NoError(t, err)
	_, err = s.Import(ctx, source, sampleRecords()[:1], &strings.Builder{})
	require.NoError(t, err)

	got, err := s.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpToDate(t *testing.T) {
	s, source := testSetup(t)
	ctx := context.Background()

	ok, err := s.UpToDate(ctx, source)
	require.NoError(t, err)
	assert.False(t, ok, "nothing imported yet")

	_, err = s.Import(ctx, source, sampleRecords(), &strings.Builder{})
	require.NoError(t, err)

	ok, err = s.UpToDate(ctx, source)
	require.NoError(t, err)
	assert.True(t, ok)

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(source, later, later))
	ok, err = s.UpToDate(ctx, source)
	require.NoError(t, err)
	assert.False(t, ok, "source changed since import")

	_, err = s.UpToDate(ctx, filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

// --- export tests ---

func TestExportYAML(t *testing.T) {
	s, source := testSetup(t)
	ctx := context.Background()
	_, err := s.Import(ctx, source, sampleRecords(), &strings.Builder{})
	require.NoError(t, err)

	path, err := s.ExportYAML(ctx, "NMR")
	require.NoError(t, err)
	assert.Equal(t, "export.yaml", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []types.Record
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Quantitative NMR", got[0].Title)
	assert.Equal(t, "Plant NMR", got[1].Title)
}

func TestExportJSON(t *testing.T) {
	s, source := testSetup(t)
	ctx := context.Background()
	_, err := s.Import(ctx, source, sampleRecords(), &strings.Builder{})
	require.NoError(t, err)

	path, err := s.ExportJSON(ctx, "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got []types.Record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 3)

	path, err = s.ExportJSON(ctx, "no such category")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
