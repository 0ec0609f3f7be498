package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admisi-dashboard/admisi/internal/chart"
	"github.com/admisi-dashboard/admisi/internal/dataset"
	"github.com/admisi-dashboard/admisi/internal/filter"
)

func TestDirFormatter_Format(t *testing.T) {
	err := NewDirFormatter().Format(buildReport(t, "overview", nil), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")
}

func TestDirFormatter_FormatDir(t *testing.T) {
	res := buildReport(t, "overview", filter.Spec{dataset.DimYear: {"2021"}})
	dir := filepath.Join(t.TempDir(), "export")

	f := &DirFormatter{ChartFormat: chart.FormatPNG, Columns: dataset.DefaultColumns()}
	require.NoError(t, f.FormatDir(res, dir))

	for _, name := range []string{"quota-by-year", "top-quota-institutions", "top-applicant-institutions", "quota-by-level", "top-applicant-programs"} {
		data, err := os.ReadFile(filepath.Join(dir, ChartsDir, name+".png"))
		require.NoError(t, err, name)
		assert.Equal(t, []byte("\x89PNG"), data[:4], name)
	}
	_, err := os.Stat(filepath.Join(dir, ChartsDir, "kpi.png"))
	assert.True(t, os.IsNotExist(err))

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.Contains(t, string(index), `<img src="charts/quota-by-year.png"`)

	raw, err := os.ReadFile(filepath.Join(dir, ReportFile))
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))

	// The workbook loads back with the same columns and rows.
	ds, err := dataset.Load(filepath.Join(dir, WorkbookFile), dataset.DefaultColumns())
	require.NoError(t, err)
	assert.Equal(t, []string{SheetName}, ds.Sheets)
	assert.Equal(t, res.Rows, ds.Records)
	assert.Empty(t, ds.Rejected)
}

func TestWriteWorkbook_AbsentCounts(t *testing.T) {
	recs := testDataset().Records
	path := filepath.Join(t.TempDir(), "rows.xlsx")

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, recs, dataset.Columns{Applicants: "pendaftar"}))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	cols := dataset.Columns{Applicants: "pendaftar"}.WithDefaults()
	ds, err := dataset.Load(path, cols)
	require.NoError(t, err)
	require.Len(t, ds.Records, 3)
	assert.False(t, ds.Records[2].Applicants.Valid)
	assert.Equal(t, dataset.Some(8), ds.Records[2].Quota)
}
