// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/landscape/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the SQLite snapshot to YAML or JSON",
	Long: `Export writes the imported records, or one research cluster of them,
to export.yaml or export.json next to the snapshot database.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	exportCmd.Flags().String("category", "", "export only this research cluster")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format := flagString(cmd, "format")
	category := flagString(cmd, "category")

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = st.ExportYAML(context.Background(), category)
	case "json":
		path, err = st.ExportJSON(context.Background(), category)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", path)
	return nil
}
