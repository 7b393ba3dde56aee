package workbook

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nconklindev/scoresheet/internal/types"

	"github.com/xuri/excelize/v2"
)

// AddTotals copies inputFile to outputFile with a total column appended:
// for every data row, the sum of the score columns. inputFile is not modified.
func AddTotals(inputFile, outputFile string) (*types.StageResult, error) {
	f, err := excelize.OpenFile(inputFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := ActiveSheet(f)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("empty XLSX file")
	}

	headerCell, err := excelize.CoordinatesToCellName(TotalColumn, 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, headerCell, TotalHeader); err != nil {
		return nil, err
	}

	rowsProcessed := 0
	for rowIdx := 2; rowIdx <= len(rows); rowIdx++ {
		var total float64
		for colIdx := FirstScoreColumn; colIdx <= LastScoreColumn; colIdx++ {
			v, err := numericCell(f, sheet, colIdx, rowIdx)
			if err != nil {
				return nil, err
			}
			total += v
		}

		destCell, err := excelize.CoordinatesToCellName(TotalColumn, rowIdx)
		if err != nil {
			return nil, err
		}
		var value any = total
		if total == math.Trunc(total) {
			value = int(total)
		}
		if err := f.SetCellValue(sheet, destCell, value); err != nil {
			return nil, err
		}
		rowsProcessed++
	}

	if err := f.SaveAs(outputFile); err != nil {
		return nil, err
	}

	return &types.StageResult{
		Stage:         "augment",
		InputFile:     inputFile,
		OutputFile:    outputFile,
		Columns:       []string{TotalHeader},
		RowsProcessed: rowsProcessed,
	}, nil
}

func numericCell(f *excelize.File, sheet string, col, row int) (float64, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return 0, err
	}
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s[%s]: %q is not a number", sheet, cell, raw)
	}
	return v, nil
}
