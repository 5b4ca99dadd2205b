// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the landscape CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/landscape/internal/dataset"
	"github.com/pdiddy/landscape/internal/explore"
	"github.com/pdiddy/landscape/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the landscape CLI.
var rootCmd = &cobra.Command{
	Use:   "landscape",
	Short: "Explore a research-paper embedding landscape by keyword",
	Long: `landscape loads a table of papers with 2D embedding coordinates and a
predicted research cluster, then labels clusters by keyword and charts how
often keywords appear per publication year.

Keywords are comma-separated; within one keyword, "|" separates alternative
patterns. Patterns are case-insensitive regular expressions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		setupLogging(cfg.LogLevel, false)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./landscape.yaml or ~/.config/landscape/landscape.yaml)")
	rootCmd.PersistentFlags().String("data", "", "dataset file: .xlsx, .csv, or a SQLite snapshot")
	rootCmd.PersistentFlags().String("db", "", "SQLite snapshot path")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	_ = viper.BindPFlag("dataset.path", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("store.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// A missing .env is normal; anything else is worth a warning.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	setDefaults(types.DefaultConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("landscape")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "landscape"))
		}
	}

	viper.SetEnvPrefix("LANDSCAPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so that environment variables and
// Unmarshal see it even without a config file.
func setDefaults(d types.Config) {
	viper.SetDefault("log_level", d.LogLevel)
	viper.SetDefault("dataset.path", d.Dataset.Path)
	viper.SetDefault("dataset.sheet", d.Dataset.Sheet)
	viper.SetDefault("dataset.columns.category", d.Dataset.Columns.Category)
	viper.SetDefault("dataset.columns.year", d.Dataset.Columns.Year)
	viper.SetDefault("dataset.columns.title", d.Dataset.Columns.Title)
	viper.SetDefault("dataset.columns.abstract", d.Dataset.Columns.Abstract)
	viper.SetDefault("dataset.columns.authors", d.Dataset.Columns.Authors)
	viper.SetDefault("dataset.columns.journal", d.Dataset.Columns.Journal)
	viper.SetDefault("dataset.columns.x", d.Dataset.Columns.X)
	viper.SetDefault("dataset.columns.y", d.Dataset.Columns.Y)
	viper.SetDefault("store.path", d.Store.Path)
	viper.SetDefault("explorer.or_separator", d.Explorer.ORSeparator)
	viper.SetDefault("explorer.default_field", string(d.Explorer.DefaultField))
	viper.SetDefault("explorer.exclude_current_year", d.Explorer.ExcludeCurrentYear)
	viper.SetDefault("explorer.exclude_years", d.Explorer.ExcludeYears)
	viper.SetDefault("server.addr", d.Server.Addr)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)
}

// loadConfig decodes the merged flag, env, file, and default settings.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Dataset.Columns = cfg.Dataset.Columns.WithDefaults()
	return cfg, nil
}

// setupLogging installs the default slog logger on stderr. JSON output is
// used for the long-running server.
func setupLogging(level string, asJSON bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if asJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// openExplorer loads the configured dataset and wraps it in an Explorer.
func openExplorer(ctx context.Context, cfg types.Config) (*explore.Explorer, error) {
	data, err := dataset.Load(ctx, cfg.Dataset)
	if err != nil {
		return nil, err
	}
	return explore.New(data, cfg.Explorer), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
