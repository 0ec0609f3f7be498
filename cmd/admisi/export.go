package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/admisi-dashboard/admisi/internal/config"
)

// Export-specific flag values.
var (
	exportView        = newViewFlags()
	exportDir         string
	exportChartFormat string
)

// exportCmd writes a page's charts and filtered rows to a directory.
var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export charts and filtered rows to a directory",
	Long: `Write index.html, report.json, every chart of the page as an image
under charts/, and the filtered rows as filtered.xlsx into --dir.

Examples:
  admisi export --dir out --year 2022
  admisi export snmptn_all.xlsx --dir out --chart-format png`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportView.register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (required)")
	exportCmd.Flags().StringVar(&exportChartFormat, "chart-format", "", "chart image format: svg or png (default svg)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportDir == "" {
		return exitError(ExitInvalidArgs, "admisi: --dir is required")
	}
	res, cfg, err := buildReport(cmd, args, exportView, config.Config{ChartFormat: exportChartFormat})
	if err != nil {
		return err
	}
	if err := writeDir(res, cfg, exportDir); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d rows) to %s\n", res.Page, res.ViewRows, exportDir)
	return nil
}
