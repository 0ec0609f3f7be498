// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

// Package report assembles dashboard pages from a registry of sections.
// Each section analyzes one filtered view and renders a focused summary:
// a KPI block, a ranked table, or a chart-backed breakdown.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// ErrDataNotAvailable indicates a section has nothing to show for the
// current view, e.g. no rows match or a trend needs more than one year.
var ErrDataNotAvailable = errors.New("data not available")

// View is the input every section analyzes.
type View struct {
	// Records is the filtered view. Sections must not modify it.
	Records []dataset.Record

	// TopN bounds ranked sections.
	TopN int

	// SplitTrend draws one trend series per education level instead of
	// the combined applicants/quota pair.
	SplitTrend bool
}

// Section is a pluggable report section.
type Section interface {
	// Name returns the unique identifier for this section (e.g., "quota-by-year").
	Name() string

	// Description returns a short human-readable description.
	Description() string

	// Analyze prepares internal state from the view. Returns
	// ErrDataNotAvailable (wrapped) when there is nothing to show.
	Analyze(v *View) error

	// Title is the dashboard heading for the analyzed section.
	Title() string

	// Render writes the section as terminal text to w.
	Render(w io.Writer) error

	// Table returns the analyzed data as a header and string rows.
	Table() (header []string, rows [][]string)

	// Chart returns the chart for the analyzed data, or nil.
	Chart() *chart.Spec
}

// Factory creates a fresh Section. Sections hold per-view state, so every
// report build gets its own instances.
type Factory func() Section

var (
	mu       sync.RWMutex
	registry = make(map[string]Factory)
	order    []string // insertion order for deterministic listing
)

// Register adds a section factory to the global registry.
// It panics if a section with the same name is already registered.
func Register(f Factory) {
	mu.Lock()
	defer mu.Unlock()
	name := f().Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("report section already registered: %s", name))
	}
	registry[name] = f
	order = append(order, name)
}

// Get returns a new instance of the named section, or nil if not found.
func Get(name string) Section {
	mu.RLock()
	f := registry[name]
	mu.RUnlock()
	if f == nil {
		return nil
	}
	return f()
}

// List returns the names of all registered sections in registration order.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// resetForTesting clears the registry. Only for use in tests.
func resetForTesting() {
	mu.Lock()
	defer mu.Unlock()
	registry = make(map[string]Factory)
	order = nil
}
