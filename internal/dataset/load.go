// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets is wrapped by a LoadError when a workbook has no worksheets.
var ErrNoSheets = errors.New("workbook contains no sheets")

// Load reads every sheet of the workbook at path and concatenates their rows
// in sheet order. The first row of each sheet is its header; sheets are
// expected to share the schema described by cols.
//
// Rows with malformed counts are rejected and listed in Dataset.Rejected.
// Fully blank rows are skipped.
func Load(path string, cols Columns) (*Dataset, error) {
	cols = cols.WithDefaults()
	start := time.Now()

	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck // read-only handle

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoSheets}
	}
	slog.Debug("workbook opened", "path", path, "sheets", len(sheets), "elapsed", time.Since(start))

	ds := &Dataset{Path: path}
	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("read sheet %q: %w", sheet, err)}
		}
		if len(rows) == 0 {
			slog.Debug("skipping empty sheet", "sheet", sheet)
			continue
		}

		idx, err := cols.resolve(sheet, rows[0])
		if err != nil {
			return nil, err
		}
		ds.Sheets = append(ds.Sheets, sheet)

		for i, row := range rows[1:] {
			if blankRow(row) {
				continue
			}
			rec, reason := parseRow(row, idx)
			if reason != "" {
				ds.Rejected = append(ds.Rejected, RowError{Sheet: sheet, Row: i + 2, Reason: reason})
				continue
			}
			ds.Records = append(ds.Records, rec)
		}
	}

	if len(ds.Sheets) == 0 {
		return nil, &LoadError{Path: path, Err: ErrNoSheets}
	}

	for _, re := range ds.Rejected {
		slog.Warn("rejected row", "sheet", re.Sheet, "row", re.Row, "reason", re.Reason)
	}
	ds.LoadedAt = time.Now()
	slog.Info("dataset loaded",
		"path", path,
		"sheets", len(ds.Sheets),
		"records", len(ds.Records),
		"rejected", len(ds.Rejected),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return ds, nil
}

func parseRow(row []string, idx columnIndex) (Record, string) {
	applicants, err := parseCount(cell(row, idx.applicants))
	if err != nil {
		return Record{}, fmt.Sprintf("applicants: %v", err)
	}
	quota, err := parseCount(cell(row, idx.quota))
	if err != nil {
		return Record{}, fmt.Sprintf("quota: %v", err)
	}
	return Record{
		Year:        cell(row, idx.year),
		Regency:     cell(row, idx.regency),
		Province:    cell(row, idx.province),
		Level:       cell(row, idx.level),
		Institution: cell(row, idx.institution),
		Program:     cell(row, idx.program),
		Applicants:  applicants,
		Quota:       quota,
	}, ""
}

// parseCount converts a raw cell to a Count. Empty cells are absent.
// Integral floats ("120.0", "1.2E2") are accepted; fractions and negatives
// are not.
func parseCount(raw string) (Count, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" {
		return Count{}, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return Count{}, fmt.Errorf("negative value %d", v)
		}
		return Some(v), nil
	}
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Count{}, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(fv) || math.IsInf(fv, 0) || fv != math.Trunc(fv) {
		return Count{}, fmt.Errorf("not an integer: %q", s)
	}
	if fv < 0 {
		return Count{}, fmt.Errorf("negative value %q", s)
	}
	if fv >= math.MaxInt64 {
		return Count{}, fmt.Errorf("value out of range: %q", s)
	}
	return Some(int64(fv)), nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
