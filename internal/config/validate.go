package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/output"
	"github.com/admisi-dashboard/admisi/internal/report"
)

// MaxTopN bounds top_n so ranked charts stay readable.
const MaxTopN = 100

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.ChartFormat != "" {
		if _, err := chart.ParseFormat(cfg.ChartFormat); err != nil {
			errs = append(errs, fmt.Sprintf("chart_format: %v", err))
		}
	}

	if cfg.Page != "" {
		if _, err := report.LookupPage(cfg.Page); err != nil {
			errs = append(errs, fmt.Sprintf("page: unknown page %q (available: %s)", cfg.Page, strings.Join(report.PageNames(), ", ")))
		}
	}

	if cfg.TopN < 0 || cfg.TopN > MaxTopN {
		errs = append(errs, fmt.Sprintf("top_n: must be between 0 and %d, got %d", MaxTopN, cfg.TopN))
	}

	if cfg.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
			errs = append(errs, fmt.Sprintf("server.addr: %v", err))
		}
	}

	seen := make(map[string]string)
	cols := cfg.Columns
	for _, c := range []struct{ field, name string }{
		{"year", cols.Year}, {"regency", cols.Regency}, {"province", cols.Province},
		{"level", cols.Level}, {"institution", cols.Institution}, {"program", cols.Program},
		{"applicants", cols.Applicants}, {"quota", cols.Quota},
	} {
		key := strings.ToLower(strings.TrimSpace(c.name))
		if key == "" {
			continue
		}
		if prev, dup := seen[key]; dup {
			errs = append(errs, fmt.Sprintf("columns.%s: header %q already used by columns.%s", c.field, c.name, prev))
			continue
		}
		seen[key] = c.field
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
