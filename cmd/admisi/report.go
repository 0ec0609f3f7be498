package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/config"
	"github.com/admisi-dashboard/admisi/internal/output"
	"github.com/admisi-dashboard/admisi/internal/report"
	"github.com/admisi-dashboard/admisi/internal/testable"
)

// Report-specific flag values.
var (
	reportView        = newViewFlags()
	reportFormat      string
	reportOutput      string
	reportChartFormat string
)

// reportCmd renders one dashboard page.
var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Render the admissions dashboard",
	Long: `Load the admissions workbook, apply the filters, and render the KPIs and
ranked sections of a dashboard page.

Filter flags may be repeated; values within one flag are ORed and flags
for different dimensions are ANDed. Values are taken verbatim, so program
names containing commas work as-is.

Examples:
  admisi report snmptn_all.xlsx --year 2021
  admisi report --province "Jawa Barat" --level S1 --top 5
  admisi report --page by-major --program "Teknik Informatika" -f markdown
  admisi report -f dir -o out/`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportView.register(reportCmd.Flags())
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "", "output format: "+strings.Join(output.FormatNames(), ", ")+" (default text)")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "output file path, or directory for -f dir (default: stdout)")
	reportCmd.Flags().StringVar(&reportChartFormat, "chart-format", "", "chart image format for -f dir: svg or png")
}

func runReport(cmd *cobra.Command, args []string) error {
	res, cfg, err := buildReport(cmd, args, reportView, config.Config{
		OutputFormat: reportFormat,
		ChartFormat:  reportChartFormat,
	})
	if err != nil {
		return err
	}

	if cfg.OutputFormat == "dir" {
		if reportOutput == "" {
			return exitError(ExitInvalidArgs, "admisi: dir format requires --output (-o)")
		}
		return writeDir(res, cfg, reportOutput)
	}

	formatter, err := output.GetFormatter(cfg.OutputFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "admisi: %v", err)
	}

	w := cmd.OutOrStdout()
	if reportOutput != "" {
		f, createErr := testable.CreateAll(cmdFS, reportOutput)
		if createErr != nil {
			return exitError(ExitRenderFailure, "admisi: cannot create output file %q (%v)", reportOutput, createErr)
		}
		defer f.Close() //nolint:errcheck // best-effort close on output file
		w = f
	}

	if err := formatter.Format(res, w); err != nil {
		return exitError(ExitRenderFailure, "admisi: rendering %s failed (%v)", formatter.Name(), err)
	}
	if reportOutput != "" {
		slog.Info("report written", "path", reportOutput, "format", formatter.Name())
	}
	return nil
}

// writeDir exports res into dir with charts in cfg.ChartFormat.
func writeDir(res *report.Result, cfg config.Config, dir string) error {
	cf, err := chart.ParseFormat(cfg.ChartFormat)
	if err != nil {
		return exitError(ExitInvalidArgs, "admisi: %v", err)
	}
	if err := cmdFS.MkdirAll(dir, 0o750); err != nil {
		return exitError(ExitRenderFailure, "admisi: cannot create output directory %q (%v)", dir, err)
	}

	df := &output.DirFormatter{ChartFormat: cf, Columns: cfg.Columns}
	if err := df.FormatDir(res, dir); err != nil {
		return exitError(ExitRenderFailure, "admisi: export failed (%v)", err)
	}

	abs, err := cmdFS.Abs(dir)
	if err != nil {
		abs = dir
	}
	slog.Info("export written", "dir", abs, "sections", len(res.Sections), "rows", res.ViewRows)
	return nil
}
