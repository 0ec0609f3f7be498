// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package report

import (
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorCyan   = color.New(color.FgCyan)
	colorBold   = color.New(color.Bold)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorRatio colors a "1:N" quota ratio by competitiveness: up to 5 seats
// per hundred applicants is red, up to 20 is yellow, anything looser green.
// The zero sentinel and unparseable values are left as they are.
func ColorRatio(val string) string {
	n, ok := ratioSeats(val)
	if !ok {
		return val
	}
	switch {
	case n <= 5:
		return colorRed.Sprint(val)
	case n <= 20:
		return colorYellow.Sprint(val)
	default:
		return colorGreen.Sprint(val)
	}
}

// ColorValue highlights a KPI value.
func ColorValue(val string) string {
	return colorCyan.Sprint(val)
}

// colorCount colors a count: 0 is yellow, >0 is left plain.
func colorCount(val string) string {
	if val == "0" {
		return colorYellow.Sprint(val)
	}
	return val
}

func ratioSeats(val string) (int64, bool) {
	rest, ok := strings.CutPrefix(val, "1:")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
