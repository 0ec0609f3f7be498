// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
	"github.com/admisi-dashboard/admisi/internal/kpi"
)

// Section statuses.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
)

// Options tunes a report build.
type Options struct {
	// Sections restricts the page to these section names, in page order.
	// Empty means every section of the page.
	Sections []string

	// TopN bounds ranked sections; <= 0 uses DefaultTopN.
	TopN int

	// SplitTrend draws the trend per education level.
	SplitTrend bool
}

// SectionResult is one analyzed section.
type SectionResult struct {
	Name        string      `json:"name"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      string      `json:"status"`
	Reason      string      `json:"reason,omitempty"`
	Header      []string    `json:"header,omitempty"`
	Rows        [][]string  `json:"rows,omitempty"`
	Chart       *chart.Spec `json:"chart,omitempty"`

	section Section
}

// Render writes the section's terminal text. Skipped sections render a
// one-line note.
func (r *SectionResult) Render(w io.Writer) error {
	if r.Status != StatusOK || r.section == nil {
		_, _ = fmt.Fprintf(w, "%s\n", SectionTitle(r.Title))
		_, _ = fmt.Fprintf(w, "  skipped: %s\n\n", r.Reason)
		return nil
	}
	return r.section.Render(w)
}

// Result is a fully analyzed dashboard page.
type Result struct {
	Title      string                    `json:"title"`
	Page       string                    `json:"page"`
	Heading    string                    `json:"heading,omitempty"`
	Source     string                    `json:"source"`
	Generated  time.Time                 `json:"generated"`
	SnapshotID string                    `json:"snapshot_id"`
	Filters    filter.Spec               `json:"filters"`
	TotalRows  int                       `json:"total_rows"`
	ViewRows   int                       `json:"view_rows"`
	Rejected   int                       `json:"rejected_rows,omitempty"`
	KPIs       kpi.Set                   `json:"kpis"`
	Metrics    []kpi.Metric              `json:"metrics"`
	Options    []filter.DimensionOptions `json:"options"`
	Sections   []SectionResult           `json:"sections"`

	// Rows is the filtered view, for exports.
	Rows []dataset.Record `json:"-"`
}

// nowFunc is replaceable in tests.
var nowFunc = time.Now

// Build filters ds for page and analyzes every requested section. Unknown
// pages, sections, or dimensions not offered by the page are a
// *dataset.ConfigError; a section that fails for any reason other than
// ErrDataNotAvailable aborts the build.
func Build(ds *dataset.Dataset, page Page, spec filter.Spec, opts Options) (*Result, error) {
	if ds == nil {
		return nil, errors.New("report: nil dataset")
	}

	view, f, err := page.Apply(ds.Records, spec)
	if err != nil {
		return nil, err
	}

	names, err := resolveSections(page, opts.Sections)
	if err != nil {
		return nil, err
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	set := kpi.Compute(view)

	res := &Result{
		Title:      DashboardTitle,
		Page:       page.Name,
		Source:     ds.Path,
		Generated:  nowFunc(),
		SnapshotID: uuid.NewString(),
		Filters:    spec,
		TotalRows:  ds.Len(),
		ViewRows:   len(view),
		Rejected:   len(ds.Rejected),
		KPIs:       set,
		Metrics:    set.Display(),
		Options:    f.Options(ds.Records, spec),
		Rows:       view,
	}
	if res.Filters == nil {
		res.Filters = filter.Spec{}
	}
	if page.ProgramHeading {
		res.Heading = programHeading(view)
	}

	v := &View{Records: view, TopN: topN, SplitTrend: opts.SplitTrend}
	for _, name := range names {
		sec := Get(name)
		sr := SectionResult{Name: sec.Name(), Description: sec.Description()}

		if err := sec.Analyze(v); err != nil {
			if !errors.Is(err, ErrDataNotAvailable) {
				return nil, fmt.Errorf("section %s: %w", name, err)
			}
			sr.Status = StatusSkipped
			sr.Reason = reason(err)
			sr.Title = sec.Title()
			slog.Debug("section skipped", "section", name, "reason", sr.Reason)
			res.Sections = append(res.Sections, sr)
			continue
		}

		sr.Status = StatusOK
		sr.Title = sec.Title()
		sr.Header, sr.Rows = sec.Table()
		sr.Chart = sec.Chart()
		sr.section = sec
		res.Sections = append(res.Sections, sr)
	}

	slog.Debug("report built", "page", page.Name, "filters", spec.String(), "rows", len(view), "sections", len(res.Sections))
	return res, nil
}

// Section returns the named section result, or nil.
func (r *Result) Section(name string) *SectionResult {
	for i := range r.Sections {
		if r.Sections[i].Name == name {
			return &r.Sections[i]
		}
	}
	return nil
}

// resolveSections returns the page's sections, restricted to only when
// given. Names must be registered and belong to the page.
func resolveSections(page Page, only []string) ([]string, error) {
	for _, name := range page.Sections {
		if Get(name) == nil {
			return nil, fmt.Errorf("page %s: section %q is not registered", page.Name, name)
		}
	}
	if len(only) == 0 {
		return page.Sections, nil
	}

	want := make(map[string]bool, len(only))
	for _, name := range only {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !contains(page.Sections, name) {
			return nil, &dataset.ConfigError{
				Field:   "sections",
				Message: fmt.Sprintf("unknown section %q for page %s (available: %s)", name, page.Name, strings.Join(page.Sections, ", ")),
			}
		}
		want[name] = true
	}

	var names []string
	for _, name := range page.Sections {
		if want[name] {
			names = append(names, name)
		}
	}
	return names, nil
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

// reason strips the sentinel suffix from a skip error.
func reason(err error) string {
	return strings.TrimSuffix(err.Error(), ": "+ErrDataNotAvailable.Error())
}
