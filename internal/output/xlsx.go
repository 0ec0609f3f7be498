// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// SheetName is the worksheet written by WriteWorkbook.
const SheetName = "data"

// WriteWorkbook writes records as a single-sheet .xlsx to w using cols for
// the header row, so the file can be loaded again with the same columns.
// Absent counts are left as empty cells.
func WriteWorkbook(w io.Writer, records []dataset.Record, cols dataset.Columns) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := cols.WithDefaults().Header()
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Year, r.Regency, r.Province, r.Level, r.Institution, r.Program, countCell(r.Applicants), countCell(r.Quota)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func countCell(c dataset.Count) any {
	if !c.Valid {
		return nil
	}
	return c.Value
}
