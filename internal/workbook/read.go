package workbook

import (
	"github.com/nconklindev/scoresheet/internal/types"

	"github.com/xuri/excelize/v2"
)

// ReadRows returns every row of the active sheet, header included.
// Numeric cells come back as int or float64, text cells as string.
func ReadRows(path string) ([]types.Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := ActiveSheet(f)
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var data []types.Row
	for rowIdx := 1; rows.Next(); rowIdx++ {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, err
		}

		row := make(types.Row, len(cols))
		for colIdx, raw := range cols {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, err
			}
			row[colIdx] = cellValue(cellType, raw)
		}
		data = append(data, row)
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}

	return data, nil
}

func cellValue(cellType excelize.CellType, raw string) any {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return raw
	}
	if n, ok := parseNumber(raw); ok {
		return n
	}
	return raw
}
