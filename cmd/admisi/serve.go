// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/admisi-dashboard/admisi/internal/config"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/server"
)

// Serve-specific flag values.
var (
	serveAddr       string
	serveTop        int
	serveSplitTrend bool
)

// serveCmd runs the HTTP dashboard.
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve the dashboard over HTTP",
	Long: `Load the workbook once and serve the interactive dashboard at / and the
JSON API under /api. The workbook is read before the listener starts, so
a missing or malformed file fails immediately. POST /api/reload re-reads
it without restarting.

Examples:
  admisi serve
  admisi serve data/snmptn_all.xlsx --addr 127.0.0.1:9000`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default "+config.DefaultAddr+")")
	serveCmd.Flags().IntVar(&serveTop, "top", 0, "default groups shown by ranked sections")
	serveCmd.Flags().BoolVar(&serveSplitTrend, "split-trend", false, "draw the trend per education level by default")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSettings(args, config.Config{
		TopN:       serveTop,
		SplitTrend: serveSplitTrend,
		Server:     config.ServerConfig{Addr: serveAddr},
	})
	if err != nil {
		return err
	}

	// Text responses go to clients, not a terminal.
	color.NoColor = true

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(dataset.NewCache(cfg.DataFile, cfg.Columns), server.Options{
		TopN:       cfg.TopN,
		SplitTrend: cfg.SplitTrend,
		Columns:    cfg.Columns,
		Logger:     slog.Default(),
	})
	slog.Info("starting dashboard", "addr", cfg.Server.Addr, "data_file", cfg.DataFile)
	return wrapErr(srv.ListenAndServe(ctx, cfg.Server.Addr))
}
