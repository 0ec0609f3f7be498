// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	admisilog "github.com/admisi-dashboard/admisi/internal/log"
)

// Global flag values.
var (
	verbose    bool
	quiet      bool
	noColor    bool
	configPath string
)

// rootCmd is the base command for admisi.
var rootCmd = &cobra.Command{
	Use:   "admisi",
	Short: "University admissions dashboard",
	Long: `Admisi reads a multi-year admissions workbook (one sheet per year),
filters it by year, region, province, education level, institution and
study program, and reports total applicants, total quota, the
quota-to-applicant ratio and Top-N rankings as terminal tables, files,
an HTTP dashboard, or MCP tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		admisilog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./.admisi.yaml)")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
