// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/landscape/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults(types.DefaultConfig())

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "data/landscape.xlsx", cfg.Dataset.Path)
	assert.Equal(t, types.DefaultColumns(), cfg.Dataset.Columns)
	assert.Equal(t, types.FieldAbstract, cfg.Explorer.DefaultField)
	assert.True(t, cfg.Explorer.ExcludeCurrentYear)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	setDefaults(types.DefaultConfig())
	viper.Set("explorer.default_field", "title")
	viper.Set("server.read_timeout", "2s")
	viper.Set("dataset.columns.title", "paper_title")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.FieldTitle, cfg.Explorer.DefaultField)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "paper_title", cfg.Dataset.Columns.Title)
	assert.Equal(t, "pub_year", cfg.Dataset.Columns.Year)
}

func TestKeywordsArg(t *testing.T) {
	_ = matchCmd.Flags().Set("keywords", "")
	assert.Equal(t, "nmr, mass spec", keywordsArg(matchCmd, []string{"nmr,", "mass", "spec"}))

	require.NoError(t, matchCmd.Flags().Set("keywords", "lipid"))
	t.Cleanup(func() { _ = matchCmd.Flags().Set("keywords", "") })
	assert.Equal(t, "lipid", keywordsArg(matchCmd, nil))
}
