package report

import (
	"fmt"
	"strings"

	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
)

// DashboardTitle heads every page.
const DashboardTitle = "Dashboard Admisi Perguruan Tinggi"

// Page is one dashboard layout: which dimensions can be filtered and which
// sections are shown.
type Page struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Dimensions  []dataset.Dimension `json:"dimensions"`
	Sections    []string            `json:"sections"`

	// ProgramHeading shows "Program Studi <name>" for the first row in view.
	ProgramHeading bool `json:"program_heading,omitempty"`
}

// Built-in pages.
var pages = []Page{
	{
		Name:        "overview",
		Description: "Sidebar filters on every dimension with KPIs and Top 10 charts",
		Dimensions:  dataset.AllDimensions(),
		Sections: []string{
			"kpi", "quota-by-year", "top-quota-institutions",
			"top-applicant-institutions", "quota-by-level", "top-applicant-programs",
		},
	},
	{
		Name:        "wide",
		Description: "Overview plus the applicants and quota trend",
		Dimensions:  dataset.AllDimensions(),
		Sections: []string{
			"kpi", "trend", "quota-by-year", "top-quota-institutions",
			"top-applicant-institutions", "quota-by-level", "top-applicant-programs",
		},
	},
	{
		Name:           "by-major",
		Description:    "One study program across institutions",
		Dimensions:     []dataset.Dimension{dataset.DimProgram},
		Sections:       []string{"program-summary", "kpi", "quota-by-year", "top-quota-institutions"},
		ProgramHeading: true,
	},
}

// DefaultPage is used when no page is named.
const DefaultPage = "overview"

// Pages returns the built-in pages.
func Pages() []Page {
	out := make([]Page, len(pages))
	copy(out, pages)
	return out
}

// PageNames returns the names of the built-in pages.
func PageNames() []string {
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = p.Name
	}
	return names
}

// LookupPage returns the named page. An empty name selects DefaultPage.
func LookupPage(name string) (Page, error) {
	if name == "" {
		name = DefaultPage
	}
	for _, p := range pages {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Page{}, &dataset.ConfigError{
		Field:   "page",
		Message: fmt.Sprintf("unknown page %q (available: %s)", name, strings.Join(PageNames(), ", ")),
	}
}

// Filter returns a filter over the page's dimensions.
func (p Page) Filter() (*filter.Filter, error) {
	return filter.New(p.dimensionNames()...)
}

// Apply validates spec against the page's dimensions and returns the
// matching records together with the filter used.
func (p Page) Apply(records []dataset.Record, spec filter.Spec) ([]dataset.Record, *filter.Filter, error) {
	f, err := p.Filter()
	if err != nil {
		return nil, nil, err
	}
	if err := f.Validate(spec); err != nil {
		return nil, nil, err
	}
	return f.Apply(records, spec), f, nil
}

// dimensionNames converts dimensions for filter.New.
func (p Page) dimensionNames() []string {
	out := make([]string, len(p.Dimensions))
	for i, d := range p.Dimensions {
		out[i] = string(d)
	}
	return out
}
