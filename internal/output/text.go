// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/admisi-dashboard/admisi/internal/kpi"
	"github.com/admisi-dashboard/admisi/internal/report"
)

func init() {
	RegisterFormatter(NewTextFormatter())
}

// TextFormatter writes a terminal-friendly dashboard.
type TextFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*TextFormatter)(nil)

// NewTextFormatter returns a new TextFormatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Name returns the format name.
func (t *TextFormatter) Name() string {
	return "text"
}

// Format writes the header block followed by every section's text.
func (t *TextFormatter) Format(res *report.Result, w io.Writer) error {
	if res == nil {
		return fmt.Errorf("text: nil report")
	}

	_, _ = fmt.Fprintf(w, "%s\n", res.Title)
	_, _ = fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len([]rune(res.Title))))
	if res.Heading != "" {
		_, _ = fmt.Fprintf(w, "%s\n\n", report.SectionTitle(res.Heading))
	}
	_, _ = fmt.Fprintf(w, "Source:    %s\n", res.Source)
	_, _ = fmt.Fprintf(w, "Page:      %s\n", res.Page)
	_, _ = fmt.Fprintf(w, "Generated: %s\n", res.Generated.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Filters:   %s\n", filterLabel(res))
	_, _ = fmt.Fprintf(w, "Rows:      %s of %s\n",
		kpi.FormatThousands(int64(res.ViewRows)), kpi.FormatThousands(int64(res.TotalRows)))
	if res.Rejected > 0 {
		_, _ = fmt.Fprintf(w, "Rejected:  %d rows failed validation at load\n", res.Rejected)
	}
	_, _ = fmt.Fprintln(w)

	for i := range res.Sections {
		if err := res.Sections[i].Render(w); err != nil {
			return fmt.Errorf("section %s: %w", res.Sections[i].Name, err)
		}
	}
	return nil
}

// filterLabel renders the active filters, or "none".
func filterLabel(res *report.Result) string {
	if s := res.Filters.String(); s != "" {
		return s
	}
	return "none"
}
