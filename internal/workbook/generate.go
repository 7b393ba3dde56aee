package workbook

import (
	"fmt"
	"unicode/utf8"

	"github.com/nconklindev/scoresheet/internal/types"

	"github.com/xuri/excelize/v2"
)

// Generate writes the header and one row per student to a new workbook at
// path, sizing every column to its content. An existing file is overwritten.
func Generate(path string, students []types.Student) (*types.StageResult, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	header := make(types.Row, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	rows := make([]types.Row, 0, len(students)+1)
	rows = append(rows, header)
	for _, s := range students {
		rows = append(rows, s.Row())
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("%s[%s]: %w", SheetName, cell, err)
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(Headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, err
	}

	for i, width := range ColumnWidths(rows) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(width)); err != nil {
			return nil, err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return nil, err
	}

	return &types.StageResult{
		Stage:         "generate",
		OutputFile:    path,
		Columns:       Headers,
		RowsProcessed: len(students),
	}, nil
}

// ColumnWidths returns, per column, the longest string form of any cell plus
// WidthPadding. Length counts characters, not bytes.
func ColumnWidths(rows []types.Row) []int {
	var widths []int
	for _, row := range rows {
		for c, v := range row {
			for len(widths) <= c {
				widths = append(widths, 0)
			}
			if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[c] {
				widths[c] = n
			}
		}
	}
	for i := range widths {
		widths[i] += WidthPadding
	}
	return widths
}
