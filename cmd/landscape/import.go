// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/landscape/internal/dataset"
	"github.com/pdiddy/landscape/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the dataset file into a SQLite snapshot",
	Long: `Import reads the configured .xlsx or .csv dataset and replaces the
SQLite snapshot with its records. Later commands can point --data at the
snapshot to skip spreadsheet parsing. An unchanged source file is skipped
unless --force is given.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().Bool("force", false, "re-import even if the snapshot is up to date")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	ctx := context.Background()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	if !force {
		ok, err := st.UpToDate(ctx, cfg.Dataset.Path)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(os.Stdout, "%s is up to date\n", cfg.Store.Path)
			return nil
		}
	}

	data, err := dataset.Load(ctx, cfg.Dataset)
	if err != nil {
		return err
	}
	if _, err := st.Import(ctx, cfg.Dataset.Path, data.Records(), os.Stdout); err != nil {
		return err
	}
	if data.Skipped() > 0 {
		fmt.Fprintf(os.Stdout, "skipped %d malformed rows\n", data.Skipped())
	}
	return nil
}
