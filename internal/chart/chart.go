// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

// Package chart turns ranked groups into bar, pie and area images using
// go-chart.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/admisi-dashboard/admisi/internal/rank"
)

// ErrNoData is returned when a chart has nothing to draw.
var ErrNoData = errors.New("chart: no data to draw")

// Kind selects the chart type.
type Kind string

// Supported chart kinds.
const (
	KindBar  Kind = "bar"
	KindPie  Kind = "pie"
	KindArea Kind = "area"
)

// Format is an image encoding.
type Format string

// Supported image formats.
const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unknown chart format %q (use svg or png)", s)
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Point is one labelled value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a named run of points. Bar and pie charts draw only the first
// series.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Spec describes a chart independently of how it is drawn.
type Spec struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
	Series []Series `json:"series"`

	// Width and Height default to 1024x512.
	Width  int `json:"-"`
	Height int `json:"-"`
}

// FromGroups converts rank groups to a series, preserving order.
func FromGroups(name string, groups []rank.Group) Series {
	pts := make([]Point, len(groups))
	for i, g := range groups {
		pts[i] = Point{Label: g.Key, Value: float64(g.Value)}
	}
	return Series{Name: name, Points: pts}
}

// Empty reports whether no series has a point.
func (s Spec) Empty() bool {
	for _, ser := range s.Series {
		if len(ser.Points) > 0 {
			return false
		}
	}
	return true
}

// Render draws spec to w in format f. Specs without data yield ErrNoData.
func Render(w io.Writer, spec Spec, f Format) error {
	var provider gochart.RendererProvider
	switch f {
	case FormatSVG, "":
		provider = gochart.SVG
	case FormatPNG:
		provider = gochart.PNG
	default:
		return fmt.Errorf("unknown chart format %q", f)
	}

	if spec.Empty() {
		return ErrNoData
	}

	switch spec.Kind {
	case KindBar:
		return renderBar(w, spec, provider)
	case KindPie:
		return renderPie(w, spec, provider)
	case KindArea:
		return renderArea(w, spec, provider)
	}
	return fmt.Errorf("unknown chart kind %q", spec.Kind)
}

// RenderBytes is Render into a buffer.
func RenderBytes(spec Spec, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, spec, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s Spec) size() (int, int) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = 1024
	}
	if h <= 0 {
		h = 512
	}
	return w, h
}
