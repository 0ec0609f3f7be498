package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/text/width"
)

// Alignment controls how a column's content is justified.
type Alignment int

const (
	// AlignLeft pads on the right (default).
	AlignLeft Alignment = iota
	// AlignRight pads on the left.
	AlignRight
)

// ColorFunc maps a cell value to a colored string. If nil, no color is applied.
type ColorFunc func(value string) string

// Column describes a single table column.
type Column struct {
	Header string
	Align  Alignment
	Color  ColorFunc // optional per-cell color function

	// MaxWidth truncates longer cells with an ellipsis when > 0.
	MaxWidth int
}

// Table renders aligned text tables to an io.Writer.
type Table struct {
	columns []Column
	rows    [][]string
}

// NewTable creates a table with the given column definitions.
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// AddRow appends a row. Values beyond the column count are silently ignored;
// missing values are treated as empty strings.
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.columns))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Data returns the headers and a copy of the raw (untruncated) rows.
func (t *Table) Data() ([]string, [][]string) {
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Header
	}
	rows := make([][]string, len(t.rows))
	for i, r := range t.rows {
		rows[i] = append([]string(nil), r...)
	}
	return header, rows
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Render writes the table to w, two spaces between columns. Column widths
// are measured in terminal cells, so wide runes count double.
func (t *Table) Render(w io.Writer) error {
	if len(t.columns) == 0 {
		return nil
	}

	cells := make([][]string, len(t.rows))
	widths := make([]int, len(t.columns))
	for i, col := range t.columns {
		widths[i] = cellWidth(col.Header)
	}
	for r, row := range t.rows {
		cells[r] = make([]string, len(row))
		for i, v := range row {
			cells[r][i] = truncate(v, t.columns[i].MaxWidth)
			widths[i] = max(widths[i], cellWidth(cells[r][i]))
		}
	}

	bold := color.New(color.Bold)
	header := make([]string, len(t.columns))
	rule := make([]string, len(t.columns))
	for i, col := range t.columns {
		header[i] = align(col.Header, bold.Sprint(col.Header), widths[i], col.Align)
		rule[i] = strings.Repeat("-", widths[i])
	}
	if err := writeLine(w, header); err != nil {
		return err
	}
	if err := writeLine(w, rule); err != nil {
		return err
	}

	line := make([]string, len(t.columns))
	for _, row := range cells {
		for i, col := range t.columns {
			shown := row[i]
			if col.Color != nil {
				shown = col.Color(row[i])
			}
			line[i] = align(row[i], shown, widths[i], col.Align)
		}
		if err := writeLine(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, parts []string) error {
	if _, err := fmt.Fprintf(w, "  %s\n", strings.TrimRight(strings.Join(parts, "  "), " ")); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}

// align pads shown to width using the width of raw, which is shown minus
// any ANSI color codes.
func align(raw, shown string, width int, a Alignment) string {
	n := width - cellWidth(raw)
	if n <= 0 {
		return shown
	}
	if a == AlignRight {
		return strings.Repeat(" ", n) + shown
	}
	return shown + strings.Repeat(" ", n)
}

// cellWidth is the number of terminal cells s occupies.
func cellWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string([]rune(s)[:limit-1]) + "…"
}
