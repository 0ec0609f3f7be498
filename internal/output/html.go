package output

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/report"
)

func init() {
	RegisterFormatter(NewHTMLFormatter())
}

// HTMLFormatter writes the report as a self-contained HTML dashboard with
// charts embedded as inline SVG.
type HTMLFormatter struct {
	// Interactive adds a filter form that submits back to the page, for
	// use behind the HTTP server.
	Interactive bool

	// ChartSrc, when set, maps a section name to an image URL and the
	// chart is referenced instead of inlined.
	ChartSrc func(section string) string
}

// Compile-time interface check.
var _ Formatter = (*HTMLFormatter)(nil)

// NewHTMLFormatter returns a new HTMLFormatter producing a static page.
func NewHTMLFormatter() *HTMLFormatter {
	return &HTMLFormatter{}
}

// Name returns the format name.
func (h *HTMLFormatter) Name() string {
	return "html"
}

var (
	htmlTmplOnce sync.Once
	htmlTmpl     *template.Template
)

func dashboardTemplate() *template.Template {
	htmlTmplOnce.Do(func() {
		htmlTmpl = template.Must(template.New("dashboard").Parse(htmlTemplate))
	})
	return htmlTmpl
}

// Format writes res as an HTML page to w.
func (h *HTMLFormatter) Format(res *report.Result, w io.Writer) error {
	if res == nil {
		return fmt.Errorf("html: nil report")
	}
	data, err := h.buildHTMLData(res)
	if err != nil {
		return err
	}
	if err := dashboardTemplate().Execute(w, data); err != nil {
		return fmt.Errorf("execute html template: %w", err)
	}
	return nil
}

// htmlData holds all template data for the HTML dashboard.
type htmlData struct {
	Title       string
	Heading     string
	Page        string
	Pages       []string
	Source      string
	GeneratedAt string
	Filters     string
	ViewRows    int
	TotalRows   int
	Rejected    int
	Interactive bool
	Metrics     []metricCard
	Options     []optionGroup
	Sections    []htmlSection
}

type metricCard struct {
	Label string
	Value string
}

type optionGroup struct {
	Name   string
	Label  string
	Values []optionValue
}

type optionValue struct {
	Value    string
	Selected bool
}

type htmlSection struct {
	Name    string
	Title   string
	Skipped bool
	Reason  string
	Header  []string
	Numeric []bool
	Rows    [][]string
	SVG     template.HTML
	ImgSrc  string
}

func (h *HTMLFormatter) buildHTMLData(res *report.Result) (htmlData, error) {
	data := htmlData{
		Title:       res.Title,
		Heading:     res.Heading,
		Page:        res.Page,
		Pages:       report.PageNames(),
		Source:      res.Source,
		GeneratedAt: res.Generated.UTC().Format("2006-01-02 15:04 UTC"),
		Filters:     filterLabel(res),
		ViewRows:    res.ViewRows,
		TotalRows:   res.TotalRows,
		Rejected:    res.Rejected,
		Interactive: h.Interactive,
	}
	for _, m := range res.Metrics {
		data.Metrics = append(data.Metrics, metricCard{Label: m.Label, Value: m.Value})
	}
	for _, o := range res.Options {
		data.Options = append(data.Options, buildOptionGroup(o.Dimension, o.Values, o.Selected))
	}

	for _, sec := range res.Sections {
		hs := htmlSection{
			Name:    sec.Name,
			Title:   sec.Title,
			Skipped: sec.Status != report.StatusOK,
			Reason:  sec.Reason,
			Header:  sec.Header,
			Rows:    sec.Rows,
		}
		hs.Numeric = make([]bool, len(sec.Header))
		if len(sec.Rows) > 0 {
			for i := range hs.Numeric {
				hs.Numeric[i] = i < len(sec.Rows[0]) && numericCell(sec.Rows[0][i])
			}
		}
		if sec.Chart != nil && !hs.Skipped {
			if h.ChartSrc != nil {
				hs.ImgSrc = h.ChartSrc(sec.Name)
			} else {
				svg, err := inlineSVG(*sec.Chart)
				if err != nil {
					return htmlData{}, fmt.Errorf("section %s chart: %w", sec.Name, err)
				}
				hs.SVG = svg
			}
		}
		data.Sections = append(data.Sections, hs)
	}
	return data, nil
}

func buildOptionGroup(d dataset.Dimension, values, selected []string) optionGroup {
	sel := make(map[string]bool, len(selected))
	for _, s := range selected {
		sel[strings.ToLower(s)] = true
	}
	g := optionGroup{Name: string(d), Label: dimensionLabel(d)}
	for _, v := range values {
		g.Values = append(g.Values, optionValue{Value: v, Selected: sel[strings.ToLower(v)]})
	}
	return g
}

// inlineSVG renders spec as trusted SVG markup. A chart without data
// renders as nothing.
func inlineSVG(spec chart.Spec) (template.HTML, error) {
	out, err := chart.RenderBytes(spec, chart.FormatSVG)
	if errors.Is(err, chart.ErrNoData) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil //nolint:gosec // SVG produced by go-chart from escaped labels
}

func dimensionLabel(d dataset.Dimension) string {
	switch d {
	case dataset.DimYear:
		return "Tahun"
	case dataset.DimRegency:
		return "Kabupaten/Kota"
	case dataset.DimProvince:
		return "Provinsi"
	case dataset.DimLevel:
		return "Jenjang"
	case dataset.DimInstitution:
		return "Universitas"
	case dataset.DimProgram:
		return "Program Studi"
	}
	return string(d)
}
