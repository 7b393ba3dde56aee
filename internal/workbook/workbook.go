package workbook

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/nconklindev/scoresheet/internal/types"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName    = "学生成绩"
	TotalHeader  = "总分"
	WidthPadding = 2

	// Score columns are B through D; the total goes into E.
	FirstScoreColumn = 2
	LastScoreColumn  = 4
	TotalColumn      = 5
)

// Headers is the header row written by Generate.
var Headers = []string{"姓名", "数学", "语文", "英语"}

var SampleStudents = []types.Student{
	{Name: "张三", Math: 85, Chinese: 90, English: 88},
	{Name: "李四", Math: 92, Chinese: 85, English: 95},
	{Name: "王五", Math: 78, Chinese: 82, English: 80},
}

// ScoreHeaders returns the names of the numeric score columns.
func ScoreHeaders() []string {
	return Headers[FirstScoreColumn-1 : LastScoreColumn]
}

// ActiveSheet returns the sheet Excel shows when the workbook is opened.
func ActiveSheet(f *excelize.File) string {
	return f.GetSheetName(f.GetActiveSheetIndex())
}

// FormatRow renders a row the way a tuple prints: strings quoted, numbers bare.
func FormatRow(row types.Row) string {
	parts := make([]string, len(row))
	for i, v := range row {
		switch x := v.(type) {
		case string:
			parts[i] = "'" + x + "'"
		case nil:
			parts[i] = "None"
		default:
			parts[i] = fmt.Sprint(x)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// parseNumber converts a raw cell value to int when it is integral, float64 otherwise.
func parseNumber(raw string) (any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	if i, err := strconv.Atoi(raw); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f), true
	}
	return f, true
}
