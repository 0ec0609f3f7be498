package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// sheet is a named worksheet fixture: the first row is the header.
type sheet struct {
	name string
	rows [][]any
}

var defaultHeader = []any{"tahun", "kabupaten/kota", "provinsi", "jenjang", "nama_univ", "nama_prodi", "peminat", "daya_tampung"}

// writeWorkbook creates an .xlsx file in t.TempDir() with the given sheets
// in order and returns its path.
func writeWorkbook(t *testing.T, sheets ...sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // test fixture

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cellRef, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			vals := row
			require.NoError(t, f.SetSheetRow(s.name, cellRef, &vals))
		}
	}

	path := filepath.Join(t.TempDir(), "admisi.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
