package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/report"
)

func init() {
	RegisterFormatter(NewDirFormatter())
}

// Files written by DirFormatter.
const (
	IndexFile    = "index.html"
	ReportFile   = "report.json"
	WorkbookFile = "filtered.xlsx"
	ChartsDir    = "charts"
)

// DirFormatter exports a report as a directory: index.html referencing
// chart images under charts/, report.json, and the filtered rows as
// filtered.xlsx.
type DirFormatter struct {
	// ChartFormat selects chart image encoding (default SVG).
	ChartFormat chart.Format

	// Columns names the header row of filtered.xlsx.
	Columns dataset.Columns
}

// Compile-time interface checks.
var (
	_ Formatter          = (*DirFormatter)(nil)
	_ DirectoryFormatter = (*DirFormatter)(nil)
)

// NewDirFormatter returns a DirFormatter with SVG charts and default columns.
func NewDirFormatter() *DirFormatter {
	return &DirFormatter{ChartFormat: chart.FormatSVG, Columns: dataset.DefaultColumns()}
}

// Name returns the format name.
func (d *DirFormatter) Name() string {
	return "dir"
}

// Format returns an error directing users to use --output (-o) with dir.
func (d *DirFormatter) Format(_ *report.Result, _ io.Writer) error {
	return fmt.Errorf("dir format requires --output (-o) flag to specify output directory")
}

// FormatDir writes the export into dir, creating it if needed.
func (d *DirFormatter) FormatDir(res *report.Result, dir string) error {
	if res == nil {
		return fmt.Errorf("dir: nil report")
	}
	cf := d.ChartFormat
	if cf == "" {
		cf = chart.FormatSVG
	}

	chartsDir := filepath.Join(dir, ChartsDir)
	if err := os.MkdirAll(chartsDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	written := make(map[string]string)
	for _, sec := range res.Sections {
		if sec.Status != report.StatusOK || sec.Chart == nil {
			continue
		}
		name := sec.Name + "." + string(cf)
		data, err := chart.RenderBytes(*sec.Chart, cf)
		if errors.Is(err, chart.ErrNoData) {
			slog.Debug("chart skipped", "section", sec.Name, "reason", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("section %s chart: %w", sec.Name, err)
		}
		if err := os.WriteFile(filepath.Join(chartsDir, name), data, 0o600); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written[sec.Name] = ChartsDir + "/" + name
	}

	var buf bytes.Buffer
	html := &HTMLFormatter{ChartSrc: func(section string) string { return written[section] }}
	if err := html.Format(res, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, IndexFile), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", IndexFile, err)
	}

	buf.Reset()
	if err := NewJSONFormatter().Format(res, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, ReportFile), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", ReportFile, err)
	}

	buf.Reset()
	if err := WriteWorkbook(&buf, res.Rows, d.Columns); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, WorkbookFile), buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", WorkbookFile, err)
	}

	slog.Info("export written", "dir", dir, "charts", len(written), "rows", len(res.Rows))
	return nil
}
