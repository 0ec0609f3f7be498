package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
)

func testDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Path:   "snmptn_all.xlsx",
		Sheets: []string{"2021", "2022"},
		Records: []dataset.Record{
			{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "S1", Institution: "A", Program: "X", Quota: dataset.Some(10), Applicants: dataset.Some(100)},
			{Year: "2021", Regency: "Kota Bandung", Province: "Jawa Barat", Level: "S1", Institution: "A", Program: "Y", Quota: dataset.Some(5), Applicants: dataset.Some(20)},
			{Year: "2022", Regency: "Kota Malang", Province: "Jawa Timur", Level: "D3", Institution: "B", Program: "X", Quota: dataset.Some(8), Applicants: dataset.Some(0)},
		},
	}
}

func fixedNow(t *testing.T) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = prev })
}

func mustPage(t *testing.T, name string) Page {
	t.Helper()
	p, err := LookupPage(name)
	require.NoError(t, err)
	return p
}

func TestBuild_ScenarioYear2021(t *testing.T) {
	fixedNow(t)
	res, err := Build(testDataset(), mustPage(t, "overview"), filter.Spec{dataset.DimYear: {"2021"}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, DashboardTitle, res.Title)
	assert.Equal(t, "overview", res.Page)
	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 2, res.ViewRows)
	assert.Len(t, res.Rows, 2)
	assert.Equal(t, int64(120), res.KPIs.TotalApplicants)
	assert.Equal(t, int64(15), res.KPIs.TotalQuota)
	assert.Equal(t, "1:13", res.KPIs.Ratio)
	assert.Equal(t, "Total Peminat", res.Metrics[0].Label)
	assert.NotEmpty(t, res.SnapshotID)
	assert.Equal(t, 2026, res.Generated.Year())

	var names []string
	for _, s := range res.Sections {
		names = append(names, s.Name)
		assert.Equal(t, StatusOK, s.Status, s.Name)
	}
	assert.Equal(t, mustPage(t, "overview").Sections, names)

	top := res.Section("top-quota-institutions")
	require.NotNil(t, top)
	assert.Equal(t, "Top 10 Daya Tampung Tertinggi", top.Title)
	assert.Equal(t, [][]string{{"A", "15"}}, top.Rows)
	require.NotNil(t, top.Chart)
	assert.Equal(t, chart.KindBar, top.Chart.Kind)
}

func TestBuild_EmptySpecUsesFullDataset(t *testing.T) {
	res, err := Build(testDataset(), mustPage(t, "overview"), nil, Options{TopN: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ViewRows)

	top := res.Section("top-quota-institutions")
	require.NotNil(t, top)
	assert.Equal(t, "Top 1 Daya Tampung Tertinggi", top.Title)
	assert.Equal(t, [][]string{{"A", "15"}}, top.Rows)

	byYear := res.Section("quota-by-year")
	require.NotNil(t, byYear)
	assert.Equal(t, [][]string{{"2021", "15"}, {"2022", "8"}}, byYear.Rows)

	level := res.Section("quota-by-level")
	require.NotNil(t, level)
	assert.Equal(t, []string{"Jenjang", "Daya Tampung", "Share"}, level.Header)
	assert.Equal(t, [][]string{{"S1", "15", "65.2%"}, {"D3", "8", "34.8%"}}, level.Rows)
	assert.Equal(t, chart.KindPie, level.Chart.Kind)
}

func TestBuild_NoMatchSkipsRankedSections(t *testing.T) {
	res, err := Build(testDataset(), mustPage(t, "overview"), filter.Spec{dataset.DimYear: {"1999"}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ViewRows)
	assert.Equal(t, "0", res.KPIs.Ratio)

	assert.Equal(t, StatusOK, res.Section("kpi").Status)
	sk := res.Section("quota-by-year")
	assert.Equal(t, StatusSkipped, sk.Status)
	assert.Contains(t, sk.Reason, "no rows match")
	assert.Nil(t, sk.Chart)

	var buf bytes.Buffer
	require.NoError(t, sk.Render(&buf))
	assert.Contains(t, buf.String(), "skipped: quota-by-year: no rows match")
}

func TestBuild_WidePageTrend(t *testing.T) {
	res, err := Build(testDataset(), mustPage(t, "wide"), nil, Options{})
	require.NoError(t, err)

	tr := res.Section("trend")
	require.NotNil(t, tr)
	require.Equal(t, StatusOK, tr.Status)
	assert.Equal(t, []string{"Tahun", "Peminat", "Daya Tampung", "Rasio"}, tr.Header)
	assert.Equal(t, [][]string{{"2021", "120", "15", "1:13"}, {"2022", "0", "8", "0"}}, tr.Rows)
	assert.Equal(t, chart.KindArea, tr.Chart.Kind)
	assert.Len(t, tr.Chart.Series, 2)

	split, err := Build(testDataset(), mustPage(t, "wide"), nil, Options{SplitTrend: true, Sections: []string{"trend"}})
	require.NoError(t, err)
	require.Len(t, split.Sections, 1)
	assert.Equal(t, []string{"Tahun", "S1", "D3"}, split.Sections[0].Header)
	assert.Equal(t, "Peminat tiap Jenjang per Tahun", split.Sections[0].Title)

	one, err := Build(testDataset(), mustPage(t, "wide"), filter.Spec{dataset.DimYear: {"2021"}}, Options{Sections: []string{"trend"}})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, one.Sections[0].Status)
}

func TestBuild_ByMajorPage(t *testing.T) {
	page := mustPage(t, "by-major")
	res, err := Build(testDataset(), page, filter.Spec{dataset.DimProgram: {"x"}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Program Studi X", res.Heading)
	assert.Equal(t, 2, res.ViewRows)
	require.Len(t, res.Options, 1)
	assert.Equal(t, []string{"X", "Y"}, res.Options[0].Values)

	ps := res.Section("program-summary")
	require.NotNil(t, ps)
	assert.Equal(t, "Program Studi X", ps.Title)
	assert.Equal(t, [][]string{
		{"A", "X", "100", "10", "1:10"},
		{"B", "X", "0", "8", "0"},
	}, ps.Rows)

	_, err = Build(testDataset(), page, filter.Spec{dataset.DimYear: {"2021"}}, Options{})
	assert.True(t, dataset.IsConfigError(err), "by-major only filters on program")
}

func TestBuild_SectionSubsetKeepsPageOrder(t *testing.T) {
	res, err := Build(testDataset(), mustPage(t, "overview"), nil, Options{Sections: []string{"quota-by-level", " kpi "}})
	require.NoError(t, err)
	require.Len(t, res.Sections, 2)
	assert.Equal(t, "kpi", res.Sections[0].Name)
	assert.Equal(t, "quota-by-level", res.Sections[1].Name)

	_, err = Build(testDataset(), mustPage(t, "overview"), nil, Options{Sections: []string{"trend"}})
	assert.True(t, dataset.IsConfigError(err))
}

func TestBuild_NilDataset(t *testing.T) {
	_, err := Build(nil, mustPage(t, "overview"), nil, Options{})
	assert.Error(t, err)
}

func TestBuild_JSONShape(t *testing.T) {
	fixedNow(t)
	res, err := Build(testDataset(), mustPage(t, "overview"), filter.Spec{dataset.DimYear: {"2021"}}, Options{Sections: []string{"kpi"}})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, "overview", m["page"])
	assert.Equal(t, map[string]any{"year": []any{"2021"}}, m["filters"])
	assert.NotContains(t, m, "Rows")
	kpis := m["kpis"].(map[string]any)
	assert.Equal(t, "1:13", kpis["ratio"])
}

func TestSectionResult_RenderText(t *testing.T) {
	noColor(t)
	res, err := Build(testDataset(), mustPage(t, "overview"), nil, Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	for i := range res.Sections {
		require.NoError(t, res.Sections[i].Render(&buf))
	}
	out := buf.String()
	assert.Contains(t, out, "KPI Metrics")
	assert.Contains(t, out, "Rasio antara Kuota dan Peminat")
	assert.Contains(t, out, "1:19")
	assert.Contains(t, out, "Top 10 Peminat Tertinggi")
	assert.Contains(t, out, "Persentase Daya Tampung tiap Jenjang")
}

func TestLookupPage(t *testing.T) {
	p, err := LookupPage("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPage, p.Name)

	p, err = LookupPage("BY-MAJOR")
	require.NoError(t, err)
	assert.True(t, p.ProgramHeading)

	_, err = LookupPage("sales")
	assert.True(t, dataset.IsConfigError(err))
	assert.Equal(t, []string{"overview", "wide", "by-major"}, PageNames())
}

func TestPages_SectionsRegistered(t *testing.T) {
	for _, p := range Pages() {
		for _, name := range p.Sections {
			assert.NotNil(t, Get(name), "page %s section %s", p.Name, name)
		}
	}
}

func TestPage_Apply(t *testing.T) {
	recs := testDataset().Records

	view, f, err := mustPage(t, "by-major").Apply(recs, filter.Spec{dataset.DimProgram: {"x"}})
	require.NoError(t, err)
	assert.Equal(t, []dataset.Dimension{dataset.DimProgram}, f.Dimensions())
	for _, r := range view {
		assert.Equal(t, "X", r.Program)
	}

	_, _, err = mustPage(t, "by-major").Apply(recs, filter.Spec{dataset.DimLevel: {"S1"}})
	assert.True(t, dataset.IsConfigError(err))
}
