package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nconklindev/scoresheet/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Dir = filepath.Join(t.TempDir(), "out")
	return cfg
}

func TestConfigPaths(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{"Default directory", DefaultConfig(), "student_scores.xlsx"},
		{"Custom directory", Config{Dir: "data", ScoresFile: "a.xlsx"}, filepath.Join("data", "a.xlsx")},
		{"Absolute file", Config{Dir: "data", ScoresFile: "/tmp/a.xlsx"}, "/tmp/a.xlsx"},
		{"Empty directory", Config{ScoresFile: "a.xlsx"}, "a.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.ScoresPath())
		})
	}
}

func TestStagesOrder(t *testing.T) {
	var names []string
	for _, s := range New(DefaultConfig(), nil, nil).Stages() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"generate", "read", "augment", "analyze"}, names)
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	report, err := New(cfg, nil, &out).Run(context.Background())
	require.NoError(t, err)

	for _, path := range []string{cfg.ScoresPath(), cfg.ModifiedPath(), cfg.AnalysisPath()} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	require.Len(t, report.Results, 4)
	assert.Len(t, report.Rows, 4)
	assert.Equal(t, types.Row{"张三", 85, 90, 88}, report.Rows[1])
	require.NotNil(t, report.Summary)
	assert.InDelta(t, 85.0, report.Summary.MathMean, 1e-9)
	assert.Equal(t, 90.0, report.Summary.ChineseMax)
	assert.Equal(t, 80.0, report.Summary.EnglishMin)

	expected := "Excel 文件创建成功！\n" +
		"\n读取到的数据：\n" +
		"('姓名', '数学', '语文', '英语')\n" +
		"('张三', 85, 90, 88)\n" +
		"('李四', 92, 85, 95)\n" +
		"('王五', 78, 82, 80)\n" +
		"\n文件修改完成，已保存新版本！\n" +
		"\n数据分析结果：\n" +
		"数学平均分：85.00\n" +
		"语文最高分：90\n" +
		"英语最低分：80\n" +
		"分析结果已保存！\n"
	assert.Equal(t, expected, out.String())
}

func TestRun_Canceled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(cfg, nil, nil).Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))

	_, statErr := os.Stat(cfg.ScoresPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestRun_StopsAtFirstError(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, nil, nil)
	report := &Report{}

	// Reading before generating fails and names the stage.
	err := p.RunStage(context.Background(), p.Stages()[1], report)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read:")
	assert.Empty(t, report.Rows)
}
