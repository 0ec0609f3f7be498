package output

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
	"github.com/admisi-dashboard/admisi/internal/report"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Path: "snmptn_all.xlsx",
		Records: []dataset.Record{
			{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "S1", Institution: "Universitas A", Program: "Teknik | Sipil", Quota: dataset.Some(10), Applicants: dataset.Some(1000)},
			{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "D3", Institution: "Universitas A", Program: "Akuntansi", Quota: dataset.Some(5), Applicants: dataset.Some(200)},
			{Year: "2022", Regency: "Kota Malang", Province: "Jawa Timur", Level: "S1", Institution: "Politeknik B", Program: "Akuntansi", Quota: dataset.Some(8)},
		},
	}
}

// buildReport builds the named page over testDataset with colors off.
func buildReport(t *testing.T, page string, spec filter.Spec) *report.Result {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	p, err := report.LookupPage(page)
	require.NoError(t, err)
	res, err := report.Build(testDataset(), p, spec, report.Options{})
	require.NoError(t, err)
	return res
}

// restoreFormatters re-registers the built-in formatters after a test
// cleared the registry.
func restoreFormatters() {
	resetFmtForTesting()
	RegisterFormatter(NewTextFormatter())
	RegisterFormatter(NewJSONFormatter())
	RegisterFormatter(NewMarkdownFormatter())
	RegisterFormatter(NewHTMLFormatter())
	RegisterFormatter(NewDirFormatter())
}
