package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
	"github.com/admisi-dashboard/admisi/internal/kpi"
	"github.com/admisi-dashboard/admisi/internal/output"
	"github.com/admisi-dashboard/admisi/internal/rank"
	"github.com/admisi-dashboard/admisi/internal/report"
)

// ViewInput selects a page and filters. It is shared by every tool.
type ViewInput struct {
	Page    string              `json:"page,omitempty" jsonschema:"Dashboard page: overview, wide or by-major (default overview)"`
	Filters map[string][]string `json:"filters,omitempty" jsonschema:"Selected values per dimension (year, regency, province, level, institution, program); values within one dimension are ORed"`
}

// TopNInput is the input schema for the top_n tool.
type TopNInput struct {
	Page    string              `json:"page,omitempty" jsonschema:"Dashboard page: overview, wide or by-major (default overview)"`
	Filters map[string][]string `json:"filters,omitempty" jsonschema:"Selected values per dimension"`
	Key     string              `json:"key,omitempty" jsonschema:"Dimension to group by (default institution)"`
	Measure string              `json:"measure,omitempty" jsonschema:"Measure to sum: applicants or quota (default quota)"`
	N       int                 `json:"n,omitempty" jsonschema:"Number of groups to return (default 10)"`
}

// ReportInput is the input schema for the report tool.
type ReportInput struct {
	Page       string              `json:"page,omitempty" jsonschema:"Dashboard page: overview, wide or by-major (default overview)"`
	Filters    map[string][]string `json:"filters,omitempty" jsonschema:"Selected values per dimension"`
	Sections   string              `json:"sections,omitempty" jsonschema:"Comma-separated list of report sections to include"`
	Top        int                 `json:"top,omitempty" jsonschema:"Rows in ranked sections (default 10)"`
	SplitTrend bool                `json:"split_trend,omitempty" jsonschema:"Draw the trend per education level"`
	Format     string              `json:"format,omitempty" jsonschema:"Output format: json, markdown or text (default json)"`
}

// ChartInput is the input schema for the chart tool.
type ChartInput struct {
	Page    string              `json:"page,omitempty" jsonschema:"Dashboard page: overview, wide or by-major (default overview)"`
	Filters map[string][]string `json:"filters,omitempty" jsonschema:"Selected values per dimension"`
	Section string              `json:"section" jsonschema:"Section whose chart to render, e.g. quota-by-year"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// readOnly marks a tool that only reads the loaded workbook.
func readOnly() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

type tools struct {
	cache *dataset.Cache
	opts  Options
}

// registerTools adds all dashboard tools to the MCP server.
func registerTools(server *mcp.Server, t *tools) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "kpis",
		Description: "Total applicants, total quota and the quota:applicants ratio for the filtered admissions data.",
		Annotations: readOnly(),
	}, t.handleKPIs)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "top_n",
		Description: "Rank institutions, programs or other dimensions by summed applicants or quota, largest first.",
		Annotations: readOnly(),
	}, t.handleTopN)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "filter_options",
		Description: "Candidate values per filter dimension given the current selection. A dimension's own selection does not narrow its list.",
		Annotations: readOnly(),
	}, t.handleFilterOptions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Build a full dashboard page (KPIs, Top-N rankings, quota by year and level, trends) as JSON, Markdown or text.",
		Annotations: readOnly(),
	}, t.handleReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chart",
		Description: "Render one dashboard section's chart as SVG.",
		Annotations: readOnly(),
	}, t.handleChart)
}

// selection is the loaded dataset narrowed to one page and filter spec.
type selection struct {
	ds      *dataset.Dataset
	page    report.Page
	spec    filter.Spec
	records []dataset.Record
	filter  *filter.Filter
}

// view loads the dataset and applies the page's filter.
func (t *tools) view(ctx context.Context, pageName string, raw map[string][]string) (*selection, error) {
	ds, err := t.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	page, err := report.LookupPage(pageName)
	if err != nil {
		return nil, err
	}
	spec, err := filter.ParseSpec(raw)
	if err != nil {
		return nil, err
	}
	records, f, err := page.Apply(ds.Records, spec)
	if err != nil {
		return nil, err
	}
	return &selection{ds: ds, page: page, spec: spec, records: records, filter: f}, nil
}

func (t *tools) handleKPIs(ctx context.Context, _ *mcp.CallToolRequest, input ViewInput) (*mcp.CallToolResult, any, error) {
	sel, err := t.view(ctx, input.Page, input.Filters)
	if err != nil {
		return nil, nil, err
	}
	set := kpi.Compute(sel.records)
	return jsonResult(map[string]any{"kpis": set, "metrics": set.Display()})
}

func (t *tools) handleTopN(ctx context.Context, _ *mcp.CallToolRequest, input TopNInput) (*mcp.CallToolResult, any, error) {
	sel, err := t.view(ctx, input.Page, input.Filters)
	if err != nil {
		return nil, nil, err
	}
	key := input.Key
	if key == "" {
		key = string(dataset.DimInstitution)
	}
	measure := input.Measure
	if measure == "" {
		measure = string(dataset.MeasureQuota)
	}
	n := input.N
	if n == 0 {
		n = t.topN()
	}
	if n < 0 {
		return nil, nil, fmt.Errorf("n must be positive, got %d", n)
	}

	groups, err := rank.TopN(sel.records, key, measure, n)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(map[string]any{"key": key, "measure": measure, "n": n, "groups": groups})
}

func (t *tools) handleFilterOptions(ctx context.Context, _ *mcp.CallToolRequest, input ViewInput) (*mcp.CallToolResult, any, error) {
	sel, err := t.view(ctx, input.Page, input.Filters)
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(sel.filter.Options(sel.ds.Records, sel.spec))
}

func (t *tools) handleReport(ctx context.Context, _ *mcp.CallToolRequest, input ReportInput) (*mcp.CallToolResult, any, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	switch format {
	case "json", "markdown", "text":
	default:
		return nil, nil, fmt.Errorf("unsupported format %q (supported: json, markdown, text)", format)
	}

	sel, err := t.view(ctx, input.Page, input.Filters)
	if err != nil {
		return nil, nil, err
	}
	top := input.Top
	if top == 0 {
		top = t.opts.TopN
	}
	res, err := report.Build(sel.ds, sel.page, sel.spec, report.Options{
		Sections:   splitAndTrim(input.Sections),
		TopN:       top,
		SplitTrend: input.SplitTrend,
	})
	if err != nil {
		return nil, nil, err
	}

	formatter, err := output.GetStreamFormatter(format)
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if err := formatter.Format(res, &buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}
	return textResult(buf.String()), nil, nil
}

func (t *tools) handleChart(ctx context.Context, _ *mcp.CallToolRequest, input ChartInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Section) == "" {
		return nil, nil, fmt.Errorf("section is required")
	}
	sel, err := t.view(ctx, input.Page, input.Filters)
	if err != nil {
		return nil, nil, err
	}
	res, err := report.Build(sel.ds, sel.page, sel.spec, report.Options{Sections: []string{input.Section}, TopN: t.opts.TopN})
	if err != nil {
		return nil, nil, err
	}
	sec := res.Section(input.Section)
	if sec == nil || sec.Status != report.StatusOK {
		reason := "no rows match the current filters"
		if sec != nil && sec.Reason != "" {
			reason = sec.Reason
		}
		return nil, nil, fmt.Errorf("section %s skipped: %s", input.Section, reason)
	}
	if sec.Chart == nil {
		return nil, nil, fmt.Errorf("section %s has no chart", input.Section)
	}
	svg, err := chart.RenderBytes(*sec.Chart, chart.FormatSVG)
	if err != nil {
		return nil, nil, fmt.Errorf("section %s: %w", input.Section, err)
	}
	return textResult(string(svg)), nil, nil
}

func (t *tools) topN() int {
	if t.opts.TopN > 0 {
		return t.opts.TopN
	}
	return report.DefaultTopN
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("encoding result: %w", err)
	}
	return textResult(string(data)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// splitAndTrim splits a comma-separated string and trims whitespace from each element.
func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
