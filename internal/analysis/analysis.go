// Package analysis loads the augmented score sheet into a dataframe, derives
// the per-student average and computes the summary statistics.
package analysis

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nconklindev/scoresheet/internal/types"
	"github.com/nconklindev/scoresheet/internal/workbook"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"
)

const AverageHeader = "平均分"

// Analyze reads inputFile, appends the average column, computes the summary
// and writes the frame to outputFile without an index column.
func Analyze(inputFile, outputFile string) (*types.Summary, *types.StageResult, error) {
	df, err := Load(inputFile)
	if err != nil {
		return nil, nil, err
	}

	df, err = WithAverage(df)
	if err != nil {
		return nil, nil, err
	}

	summary, err := Summarize(df)
	if err != nil {
		return nil, nil, err
	}

	if err := Save(df, outputFile); err != nil {
		return nil, nil, err
	}

	return summary, &types.StageResult{
		Stage:         "analyze",
		InputFile:     inputFile,
		OutputFile:    outputFile,
		Columns:       []string{AverageHeader},
		RowsProcessed: df.Nrow(),
	}, nil
}

// Load reads the active sheet of path into a dataframe. The first row holds
// the column names; column types are detected from the data.
func Load(path string) (dataframe.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(workbook.ActiveSheet(f), excelize.Options{RawCellValue: true})
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("empty XLSX file")
	}

	df := dataframe.LoadRecords(rows)
	if df.Err != nil {
		return df, df.Err
	}
	return df, nil
}

// WithAverage returns df with AverageHeader appended: the row mean of the
// score columns rounded to two decimals.
func WithAverage(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	scoreCols := workbook.ScoreHeaders()
	avg := make([]float64, df.Nrow())
	for _, name := range scoreCols {
		col, err := numericCol(df, name)
		if err != nil {
			return df, err
		}
		for i, v := range col.Float() {
			avg[i] += v
		}
	}
	for i := range avg {
		avg[i] = Round2(avg[i] / float64(len(scoreCols)))
	}

	out := df.Mutate(series.New(avg, series.Float, AverageHeader))
	if out.Err != nil {
		return df, out.Err
	}
	return out, nil
}

// Summarize computes the mean of the math scores, the best Chinese score and
// the lowest English score.
func Summarize(df dataframe.DataFrame) (*types.Summary, error) {
	scoreCols := workbook.ScoreHeaders()
	mathCol, err := numericCol(df, scoreCols[0])
	if err != nil {
		return nil, err
	}
	chinese, err := numericCol(df, scoreCols[1])
	if err != nil {
		return nil, err
	}
	english, err := numericCol(df, scoreCols[2])
	if err != nil {
		return nil, err
	}

	return &types.Summary{
		MathMean:   mathCol.Mean(),
		ChineseMax: chinese.Max(),
		EnglishMin: english.Min(),
	}, nil
}

// Save writes df to a new workbook at path, header first, one row per record.
func Save(df dataframe.DataFrame, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for c, name := range df.Names() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, name); err != nil {
			return err
		}

		values, err := columnValues(df.Col(name))
		if err != nil {
			return fmt.Errorf("column %q: %w", name, err)
		}
		for r, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastHeader, err := excelize.CoordinatesToCellName(df.Ncol(), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// FormatSummary prints the summary, one statistic per line.
func FormatSummary(w io.Writer, s types.Summary) error {
	_, err := fmt.Fprintf(w, "数学平均分：%.2f\n语文最高分：%s\n英语最低分：%s\n",
		s.MathMean, FormatScore(s.ChineseMax), FormatScore(s.EnglishMin))
	return err
}

// FormatScore prints whole scores without a fraction.
func FormatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round2 rounds v half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func numericCol(df dataframe.DataFrame, name string) (series.Series, error) {
	col := df.Col(name)
	if col.Err != nil {
		return col, col.Err
	}
	switch col.Type() {
	case series.Int, series.Float:
		return col, nil
	}
	return col, fmt.Errorf("column %q is not numeric", name)
}

func columnValues(s series.Series) ([]any, error) {
	out := make([]any, s.Len())
	switch s.Type() {
	case series.Int:
		ints, err := s.Int()
		if err != nil {
			return nil, err
		}
		for i, v := range ints {
			out[i] = v
		}
	case series.Float:
		for i, v := range s.Float() {
			out[i] = v
		}
	default:
		for i, v := range s.Records() {
			out[i] = v
		}
	}
	return out, nil
}
