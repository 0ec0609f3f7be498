// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/fatih/color"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/admisi-dashboard/admisi/internal/config"
	"github.com/admisi-dashboard/admisi/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running admisi as an MCP server, exposing the dashboard's KPIs, rankings, filter options, reports and charts to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing admisi's tools:
  - kpis:           Total applicants, total quota and ratio for a filtered view
  - top_n:          Top-N groups by applicants or quota
  - filter_options: Candidate values per filter dimension
  - report:         A full dashboard page as JSON, markdown or text
  - chart:          One section's chart as SVG

The workbook is loaded on the first tool call and kept for the session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveSettings(args, config.Config{})
		if err != nil {
			return err
		}
		// Text results go to the client, not a terminal.
		color.NoColor = true

		cache, err := mcpserver.Open(cfg.DataFile, cfg.Columns)
		if err != nil {
			return wrapErr(err)
		}
		return mcpserver.Run(cmd.Context(), Version, cache, mcpserver.Options{TopN: cfg.TopN}, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
