package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nconklindev/scoresheet/internal/analysis"
	"github.com/nconklindev/scoresheet/internal/pipeline"
	"github.com/nconklindev/scoresheet/internal/types"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

type state int

const (
	stateRunning state = iota
	stateComplete
	stateError
)

// Model runs the pipeline one stage per command and renders the result.
type Model struct {
	state    state
	ctx      context.Context
	pipeline *pipeline.Pipeline
	stages   []pipeline.Stage
	current  int
	report   *pipeline.Report
	err      error
	width    int
	height   int
	spinner  spinner.Model
	progress progress.Model
}

type stageDoneMsg struct {
	index int
	err   error
}

func InitialModel(ctx context.Context, p *pipeline.Pipeline) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = RunningStyle

	return Model{
		state:    stateRunning,
		ctx:      ctx,
		pipeline: p,
		stages:   p.Stages(),
		report:   &pipeline.Report{},
		spinner:  s,
		progress: progress.New(progress.WithGradient("#FF8C42", "#FF9F5A")),
	}
}

// Err returns the error that stopped the pipeline, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	if len(m.stages) == 0 {
		return nil
	}
	return tea.Batch(m.spinner.Tick, m.runStage(0))
}

func (m Model) runStage(i int) tea.Cmd {
	ctx, p, stage, report := m.ctx, m.pipeline, m.stages[i], m.report
	return func() tea.Msg {
		return stageDoneMsg{index: i, err: p.RunStage(ctx, stage, report)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.progress.Width = msg.Width - 10
		if m.progress.Width > 60 {
			m.progress.Width = 60
		}
		if m.progress.Width < 10 {
			m.progress.Width = 10 // Minimum width
		}
		return m, nil

	case tea.KeyMsg:
		if m.state != stateRunning {
			return m, tea.Quit
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case spinner.TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case stageDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.current = msg.index + 1
		cmd := m.progress.SetPercent(float64(m.current) / float64(len(m.stages)))
		if m.current == len(m.stages) {
			m.state = stateComplete
			return m, cmd
		}
		return m, tea.Batch(cmd, m.runStage(m.current))
	}

	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateRunning:
		return m.viewRunning()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewRunning() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("📊 Student Scores"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Directory: %s", m.pipeline.Config().Dir)))
	s.WriteString("\n")
	s.WriteString(m.viewStages())
	s.WriteString("\n")
	s.WriteString(m.progress.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewStages() string {
	var s strings.Builder
	for i, stage := range m.stages {
		switch {
		case i < m.current:
			s.WriteString(DoneStyle.Render("✓ " + stage.Name))
		case i == m.current && m.state == stateRunning:
			s.WriteString(m.spinner.View() + RunningStyle.Render(stage.Name))
		case i == m.current && m.state == stateError:
			s.WriteString(ErrorStyle.Render("✗ " + stage.Name))
		default:
			s.WriteString(PendingStyle.Render("  " + stage.Name))
		}
		s.WriteString("\n")
	}
	return s.String()
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Analysis Complete!"))
	s.WriteString("\n\n")
	s.WriteString(renderRows(m.report.Rows))
	s.WriteString("\n\n")

	if m.report.Summary != nil {
		var summary strings.Builder
		// strings.Builder never fails to write.
		_ = analysis.FormatSummary(&summary, *m.report.Summary)
		s.WriteString(SuccessStyle.Render(strings.TrimSuffix(summary.String(), "\n")))
		s.WriteString("\n\n")
	}

	for _, res := range m.report.Results {
		if res.OutputFile == "" {
			continue
		}
		s.WriteString(fmt.Sprintf("%-9s %s (%d rows)\n", res.Stage+":", filepath.Base(res.OutputFile), res.RowsProcessed))
	}
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.viewStages())
	s.WriteString("\n")
	s.WriteString(m.err.Error())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press any key to exit"))

	return BoxStyle.Render(s.String())
}

// renderRows draws the sheet as a table, first row as the header.
func renderRows(rows []types.Row) string {
	if len(rows) == 0 {
		return ""
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = make([]string, len(row))
		for j, v := range row {
			records[i][j] = fmt.Sprint(v)
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderCellStyle
			}
			return CellStyle
		}).
		Headers(records[0]...).
		Rows(records[1:]...)

	return t.String()
}
