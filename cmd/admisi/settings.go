package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/admisi-dashboard/admisi/internal/config"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
	"github.com/admisi-dashboard/admisi/internal/report"
)

// viewFlags are the filter and page flags shared by report, options and
// export.
type viewFlags struct {
	filters    map[dataset.Dimension]*[]string
	page       string
	sections   string
	top        int
	splitTrend bool
}

func newViewFlags() *viewFlags {
	return &viewFlags{filters: make(map[dataset.Dimension]*[]string)}
}

// register adds the view flags to fs. Filter flags are StringArray rather
// than StringSlice because program names may contain commas.
func (v *viewFlags) register(fs *pflag.FlagSet) {
	for _, d := range dataset.AllDimensions() {
		vals := new([]string)
		v.filters[d] = vals
		fs.StringArrayVar(vals, string(d), nil, fmt.Sprintf("keep rows whose %s is this value (repeatable)", d))
	}
	fs.StringVar(&v.page, "page", "", "dashboard page: "+strings.Join(report.PageNames(), ", "))
	fs.StringVar(&v.sections, "sections", "", "comma-separated list of sections to include")
	fs.IntVar(&v.top, "top", 0, fmt.Sprintf("groups shown by ranked sections (default %d)", config.DefaultTopN))
	fs.BoolVar(&v.splitTrend, "split-trend", false, "draw the trend per education level")
}

// spec converts the filter flags into a filter.Spec.
func (v *viewFlags) spec() (filter.Spec, error) {
	raw := make(map[string][]string)
	for d, vals := range v.filters {
		if len(*vals) > 0 {
			raw[string(d)] = *vals
		}
	}
	return filter.ParseSpec(raw)
}

// overrides returns the config values set by view flags on cmd.
func (v *viewFlags) overrides(cmd *cobra.Command) config.Config {
	var cfg config.Config
	if cmd.Flags().Changed("page") {
		cfg.Page = v.page
	}
	if cmd.Flags().Changed("top") {
		cfg.TopN = v.top
	}
	cfg.SplitTrend = v.splitTrend
	return cfg
}

// reportOptions returns the build options for cfg.
func (v *viewFlags) reportOptions(cfg config.Config) report.Options {
	return report.Options{
		Sections:   splitList(v.sections),
		TopN:       cfg.TopN,
		SplitTrend: cfg.SplitTrend,
	}
}

// resolveSettings layers defaults, the global config, the project config
// (or --config), .env and the environment, then flags, and validates the
// result. A positional argument names the data file.
func resolveSettings(args []string, flags config.Config) (config.Config, error) {
	if err := config.LoadDotEnv(config.EnvFile); err != nil {
		return config.Config{}, exitError(ExitInvalidArgs, "admisi: cannot read %s (%v)", config.EnvFile, err)
	}

	global, err := config.LoadGlobal()
	if err != nil {
		return config.Config{}, exitError(ExitInvalidArgs, "admisi: failed to load global config (%v)", err)
	}

	var project *config.Config
	if configPath != "" {
		project, err = config.LoadFile(configPath)
	} else {
		project, err = config.Load(".")
	}
	if err != nil {
		return config.Config{}, exitError(ExitInvalidArgs, "admisi: failed to load config (%v)", err)
	}

	if len(args) > 0 {
		flags.DataFile = args[0]
	}

	defaults := config.Defaults()
	env := config.FromEnv()
	cfg := config.Merge(&defaults, config.Merge(global, config.Merge(project, config.Merge(&env, flags))))
	if err := config.Validate(&cfg); err != nil {
		return config.Config{}, exitError(ExitInvalidArgs, "admisi: %v", err)
	}
	cfg.Columns = cfg.Columns.WithDefaults()

	slog.Debug("settings resolved", "data_file", cfg.DataFile, "page", cfg.Page, "top_n", cfg.TopN)
	return cfg, nil
}

// loadDataset reads and normalizes the workbook named by cfg.
func loadDataset(ctx context.Context, cfg config.Config) (*dataset.Dataset, error) {
	ds, err := dataset.NewCache(cfg.DataFile, cfg.Columns).Get(ctx)
	if err != nil {
		return nil, wrapErr(err)
	}
	if n := len(ds.Rejected); n > 0 {
		slog.Warn("rows rejected", "count", n, "file", cfg.DataFile)
	}
	return ds, nil
}

// buildReport resolves settings, loads the workbook and builds the page
// selected by the view flags.
func buildReport(cmd *cobra.Command, args []string, v *viewFlags, flags config.Config) (*report.Result, config.Config, error) {
	cfg, err := resolveSettings(args, mergeFlags(v.overrides(cmd), flags))
	if err != nil {
		return nil, cfg, err
	}

	page, err := report.LookupPage(cfg.Page)
	if err != nil {
		return nil, cfg, wrapErr(err)
	}
	spec, err := v.spec()
	if err != nil {
		return nil, cfg, wrapErr(err)
	}

	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return nil, cfg, err
	}

	res, err := report.Build(ds, page, spec, v.reportOptions(cfg))
	if err != nil {
		return nil, cfg, wrapErr(err)
	}
	slog.Info("report built", "page", res.Page, "rows", res.ViewRows, "of", res.TotalRows)
	return res, cfg, nil
}

// mergeFlags overlays command-specific flag values on the view flags.
func mergeFlags(view, cmdFlags config.Config) config.Config {
	return config.Merge(&view, cmdFlags)
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
