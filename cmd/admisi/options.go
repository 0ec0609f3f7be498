package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/admisi-dashboard/admisi/internal/filter"
	"github.com/admisi-dashboard/admisi/internal/report"
)

// Options-specific flag values.
var (
	optionsView = newViewFlags()
	optionsJSON bool
)

// optionsCmd lists the candidate filter values under the current selection.
var optionsCmd = &cobra.Command{
	Use:   "options [file]",
	Short: "List candidate filter values",
	Long: `List the values each filter dimension of a page can take. Each
dimension's list is narrowed by the selections on the other dimensions,
never by its own, so every value shown can be added to the selection.

Examples:
  admisi options --year 2021
  admisi options --page by-major --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOptions,
}

func init() {
	optionsView.register(optionsCmd.Flags())
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false, "print options as JSON")
}

func runOptions(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSettings(args, optionsView.overrides(cmd))
	if err != nil {
		return err
	}
	page, err := report.LookupPage(cfg.Page)
	if err != nil {
		return wrapErr(err)
	}
	spec, err := optionsView.spec()
	if err != nil {
		return wrapErr(err)
	}
	f, err := page.Filter()
	if err != nil {
		return wrapErr(err)
	}
	if err := f.Validate(spec); err != nil {
		return wrapErr(err)
	}

	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	opts := f.Options(ds.Records, spec)

	w := cmd.OutOrStdout()
	if optionsJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts); err != nil {
			return exitError(ExitRenderFailure, "admisi: %v", err)
		}
		return nil
	}
	printOptions(cmd, opts)
	return nil
}

// printOptions writes one block per dimension, marking selected values.
func printOptions(cmd *cobra.Command, opts []filter.DimensionOptions) {
	w := cmd.OutOrStdout()
	dimColor := color.New(color.Bold)
	selColor := color.New(color.FgGreen)

	for _, o := range opts {
		_, _ = fmt.Fprintf(w, "%s (%d)\n", dimColor.Sprint(o.Dimension), len(o.Values))
		selected := make(map[string]bool, len(o.Selected))
		for _, s := range o.Selected {
			selected[strings.ToLower(s)] = true
		}
		for _, v := range o.Values {
			if selected[strings.ToLower(v)] {
				_, _ = fmt.Fprintf(w, "  %s %s\n", selColor.Sprint("*"), v)
				continue
			}
			_, _ = fmt.Fprintf(w, "    %s\n", v)
		}
	}
}
