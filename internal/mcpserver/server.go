// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// Options tunes the tools.
type Options struct {
	// TopN is the default n for top_n and ranked report sections.
	TopN int
}

// New creates a new MCP server with the dashboard tools registered over
// the dataset in cache.
func New(version string, cache *dataset.Cache, opts Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "admisi",
		Title:   "Admisi: higher-education admissions dashboard",
		Version: version,
	}, nil)

	registerTools(server, &tools{cache: cache, opts: opts})
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, cache *dataset.Cache, opts Options, transport mcp.Transport) error {
	return New(version, cache, opts).Run(ctx, transport)
}
