package types

// Row is one sheet row. Cells hold string, int or float64 values.
type Row []any

type Student struct {
	Name    string
	Math    int
	Chinese int
	English int
}

func (s Student) Row() Row {
	return Row{s.Name, s.Math, s.Chinese, s.English}
}

type StageResult struct {
	Stage         string
	InputFile     string
	OutputFile    string
	Columns       []string
	RowsProcessed int
}

type Summary struct {
	MathMean   float64
	ChineseMax float64
	EnglishMin float64
}
