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
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes the report as a Markdown document.
type MarkdownFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*MarkdownFormatter)(nil)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes the report to w.
//
// The output includes:
//   - A title heading and a metadata line
//   - The KPI metrics table
//   - One heading per section with its table, or a note when skipped
func (m *MarkdownFormatter) Format(res *report.Result, w io.Writer) error {
	if res == nil {
		return fmt.Errorf("markdown: nil report")
	}

	if err := writeHeader(w, res); err != nil {
		return err
	}

	for _, sec := range res.Sections {
		if err := writeSection(w, sec); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w io.Writer, res *report.Result) error {
	if _, err := fmt.Fprintf(w, "# %s\n\n", res.Title); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if res.Heading != "" {
		_, _ = fmt.Fprintf(w, "**%s**\n\n", escapeCell(res.Heading))
	}
	_, _ = fmt.Fprintf(w, "Generated %s from `%s` · page `%s` · %s of %s rows\n\n",
		res.Generated.UTC().Format(time.RFC3339), res.Source, res.Page,
		kpi.FormatThousands(int64(res.ViewRows)), kpi.FormatThousands(int64(res.TotalRows)))
	_, _ = fmt.Fprintf(w, "Filters: %s\n\n", escapeCell(filterLabel(res)))

	_, _ = fmt.Fprintf(w, "| Metric | Value |\n|--------|------:|\n")
	for _, m := range res.Metrics {
		_, _ = fmt.Fprintf(w, "| %s | %s |\n", m.Label, m.Value)
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

func writeSection(w io.Writer, sec report.SectionResult) error {
	if _, err := fmt.Fprintf(w, "## %s\n\n", sec.Title); err != nil {
		return fmt.Errorf("write section %s: %w", sec.Name, err)
	}
	if sec.Status != report.StatusOK {
		_, _ = fmt.Fprintf(w, "_Skipped: %s_\n\n", escapeCell(sec.Reason))
		return nil
	}
	if len(sec.Header) == 0 {
		return nil
	}

	cells := make([]string, len(sec.Header))
	aligns := make([]string, len(sec.Header))
	for i, h := range sec.Header {
		cells[i] = escapeCell(h)
		aligns[i] = "---"
		if len(sec.Rows) > 0 && i < len(sec.Rows[0]) && numericCell(sec.Rows[0][i]) {
			aligns[i] = "---:"
		}
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	_, _ = fmt.Fprintf(w, "|%s|\n", strings.Join(aligns, "|"))
	for _, row := range sec.Rows {
		out := make([]string, len(row))
		for i, c := range row {
			out[i] = escapeCell(c)
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(out, " | "))
	}
	_, _ = fmt.Fprintln(w)
	return nil
}

// escapeCell keeps pipes and newlines from breaking table rows.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// numericCell reports whether a display value is a formatted number, share
// or ratio such as "1.234", "65.2%" or "1:13".
func numericCell(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '%' && r != ':' {
			return false
		}
	}
	return true
}
