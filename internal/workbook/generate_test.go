package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/scoresheet/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		name     string
		rows     []types.Row
		expected []int
	}{
		{"Empty", nil, nil},
		{"Single cell", []types.Row{{"abc"}}, []int{5}},
		{
			"Longest cell wins",
			[]types.Row{
				{"name", "a"},
				{"alexander", 12345},
			},
			[]int{11, 7},
		},
		{"Counts characters not bytes", []types.Row{{"张三"}}, []int{4}},
		{"Floats use their string form", []types.Row{{87.67}}, []int{7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColumnWidths(tt.rows))
		})
	}
}

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student_scores.xlsx")

	res, err := Generate(path, SampleStudents)
	require.NoError(t, err)
	assert.Equal(t, path, res.OutputFile)
	assert.Equal(t, len(SampleStudents), res.RowsProcessed)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, SheetName, ActiveSheet(f))

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1+len(SampleStudents))
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, []string{"张三", "85", "90", "88"}, rows[1])
	for _, row := range rows {
		assert.Len(t, row, len(Headers))
	}
}

func TestGenerate_ColumnWidths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "widths.xlsx")
	students := []types.Student{
		{Name: "Alexander", Math: 100, Chinese: 9, English: 75},
	}

	_, err := Generate(path, students)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// "Alexander" is longer than "姓名"; the score headers are longer than the scores.
	expected := map[string]float64{"A": 11, "B": 5, "C": 4, "D": 4}
	for col, want := range expected {
		got, err := f.GetColWidth(SheetName, col)
		require.NoError(t, err)
		assert.Equal(t, want, got, "column %s", col)
	}
}

func TestGenerate_OverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "student_scores.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	_, err := Generate(path, SampleStudents)
	require.NoError(t, err)

	rows, err := ReadRows(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1+len(SampleStudents))
}
