// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/landscape/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the explorer as a JSON HTTP API",
	Long: `Serve loads the dataset once and answers cluster, trend, and author
queries over HTTP until interrupted. Logs are written as JSON.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg.LogLevel, true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ex, err := openExplorer(ctx, cfg)
	if err != nil {
		return err
	}
	return server.New(ex, cfg.Server, slog.Default()).ListenAndServe(ctx)
}
