package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/admisi-dashboard/admisi/internal/config"
	"github.com/admisi-dashboard/admisi/internal/testable"
)

var fixtureHeader = []any{"tahun", "kabupaten/kota", "provinsi", "jenjang", "nama_univ", "nama_prodi", "peminat", "daya_tampung"}

// fixtureSheets is the three-row scenario: two 2021 rows for institution A
// and one 2022 row for B.
var fixtureSheets = map[string][][]any{
	"2021": {
		fixtureHeader,
		{2021, "Kota Bandung", "Jawa Barat", "S1", "A", "X", 100, 10},
		{2021, "Kota Bandung", "Jawa Barat", "S1", "A", "Y", 20, 5},
	},
	"2022": {
		fixtureHeader,
		{2022, "Kota Malang", "Jawa Timur", "D3", "B", "X", 0, 8},
	},
}

// writeWorkbook writes sheets (in name order) to dir/name and returns the path.
func writeWorkbook(t *testing.T, dir, name string, sheets map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // test fixture

	first := true
	for _, sheetName := range []string{"2021", "2022", "data"} {
		rows, ok := sheets[sheetName]
		if !ok {
			continue
		}
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", sheetName))
			first = false
		} else {
			_, err := f.NewSheet(sheetName)
			require.NoError(t, err)
		}
		for r, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			vals := row
			require.NoError(t, f.SetSheetRow(sheetName, cell, &vals))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// setupTest isolates a CLI test: a temp working directory, an empty global
// config home, no environment overrides, colors off and flags reset. It
// returns the working directory with the fixture written as the default
// data file.
func setupTest(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv(config.EnvDataFile, "")
	t.Setenv(config.EnvAddr, "")
	t.Setenv(config.EnvConfigDir, "")

	prevNoColor := color.NoColor
	color.NoColor = true
	resetFlags()
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		cmdFS = testable.DefaultFS
		resetFlags()
	})

	writeWorkbook(t, dir, config.DefaultDataFile, fixtureSheets)
	return dir
}

// resetFlags resets global flag variables and cobra "Changed" state so
// tests sharing rootCmd do not contaminate each other.
func resetFlags() {
	verbose, quiet, noColor, configPath = false, false, false, ""
	reportFormat, reportOutput, reportChartFormat = "", "", ""
	exportDir, exportChartFormat = "", ""
	optionsJSON = false
	serveAddr, serveTop, serveSplitTrend = "", 0, false
	configGlobal, configForce = false, false

	for _, c := range []*cobra.Command{
		reportCmd, optionsCmd, exportCmd, serveCmd, mcpServeCmd,
		configGetCmd, configSetCmd, configListCmd, configInitCmd, versionCmd,
	} {
		resetFlagSet(c.Flags())
	}
	resetFlagSet(rootCmd.PersistentFlags())
}

func resetFlagSet(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
}

// newTestCmd redirects rootCmd's output to buffers.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd, stdout, stderr
}

// run executes rootCmd with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	cmd, stdout, _ := newTestCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

// requireExitCode asserts err is an exitCodeError with code.
func requireExitCode(t *testing.T, err error, code int) *exitCodeError {
	t.Helper()
	require.Error(t, err)
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece), "want exitCodeError, got %T: %v", err, err)
	require.Equal(t, code, ece.ExitCode(), ece.Error())
	return ece
}
