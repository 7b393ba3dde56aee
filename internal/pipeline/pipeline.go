// Package pipeline runs the four spreadsheet stages in order: generate the
// score sheet, read it back, add the totals and analyze the result.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/nconklindev/scoresheet/internal/analysis"
	"github.com/nconklindev/scoresheet/internal/types"
	"github.com/nconklindev/scoresheet/internal/workbook"
)

// Stage is one step of the pipeline. Run records its output in the report.
type Stage struct {
	Name string
	Run  func(ctx context.Context, report *Report) error
}

// Report collects what the stages produced.
type Report struct {
	Results []*types.StageResult
	Rows    []types.Row
	Summary *types.Summary
}

type Pipeline struct {
	cfg    Config
	logger *slog.Logger
	out    io.Writer
}

// New returns a pipeline that prints its progress to out.
// A nil logger or writer discards the output.
func New(cfg Config, logger *slog.Logger, out io.Writer) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{cfg: cfg, logger: logger, out: out}
}

func (p *Pipeline) Config() Config { return p.cfg }

// Stages lists the stages in execution order.
func (p *Pipeline) Stages() []Stage {
	return []Stage{
		{Name: "generate", Run: p.generate},
		{Name: "read", Run: p.read},
		{Name: "augment", Run: p.augment},
		{Name: "analyze", Run: p.analyze},
	}
}

// Run executes every stage and stops at the first error.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	for _, stage := range p.Stages() {
		if err := p.RunStage(ctx, stage, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// RunStage executes a single stage unless ctx is already done.
func (p *Pipeline) RunStage(ctx context.Context, stage Stage, report *Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	p.logger.Debug("stage start", "stage", stage.Name)
	if err := stage.Run(ctx, report); err != nil {
		return fmt.Errorf("%s: %w", stage.Name, err)
	}

	attrs := []any{"stage", stage.Name, "elapsed", time.Since(start)}
	if n := len(report.Results); n > 0 && report.Results[n-1].Stage == stage.Name {
		res := report.Results[n-1]
		attrs = append(attrs, "input", res.InputFile, "output", res.OutputFile, "rows", res.RowsProcessed)
	}
	p.logger.Debug("stage done", attrs...)
	return nil
}

func (p *Pipeline) generate(_ context.Context, report *Report) error {
	if err := os.MkdirAll(p.cfg.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	res, err := workbook.Generate(p.cfg.ScoresPath(), workbook.SampleStudents)
	if err != nil {
		return err
	}
	report.Results = append(report.Results, res)

	fmt.Fprintln(p.out, "Excel 文件创建成功！")
	return nil
}

func (p *Pipeline) read(_ context.Context, report *Report) error {
	path := p.cfg.ScoresPath()
	rows, err := workbook.ReadRows(path)
	if err != nil {
		return err
	}
	report.Rows = rows
	report.Results = append(report.Results, &types.StageResult{
		Stage:         "read",
		InputFile:     path,
		RowsProcessed: len(rows),
	})

	fmt.Fprintln(p.out, "\n读取到的数据：")
	for _, row := range rows {
		fmt.Fprintln(p.out, workbook.FormatRow(row))
	}
	return nil
}

func (p *Pipeline) augment(_ context.Context, report *Report) error {
	res, err := workbook.AddTotals(p.cfg.ScoresPath(), p.cfg.ModifiedPath())
	if err != nil {
		return err
	}
	report.Results = append(report.Results, res)

	fmt.Fprintln(p.out, "\n文件修改完成，已保存新版本！")
	return nil
}

func (p *Pipeline) analyze(_ context.Context, report *Report) error {
	summary, res, err := analysis.Analyze(p.cfg.ModifiedPath(), p.cfg.AnalysisPath())
	if err != nil {
		return err
	}
	report.Summary = summary
	report.Results = append(report.Results, res)

	fmt.Fprintln(p.out, "\n数据分析结果：")
	if err := analysis.FormatSummary(p.out, *summary); err != nil {
		return err
	}
	fmt.Fprintln(p.out, "分析结果已保存！")
	return nil
}
