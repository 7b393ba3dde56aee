package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nconklindev/scoresheet/internal/pipeline"
	"github.com/nconklindev/scoresheet/internal/ui"

	"github.com/UNO-SOFT/zlog/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("scoresheet", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	cfg := pipeline.DefaultConfig()

	fs := flag.NewFlagSet("scoresheet", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory for the generated spreadsheets")
	flagTUI := fs.Bool("tui", false, "show the stages in an interactive terminal view")
	flagVersion := fs.Bool("version", false, "print version information and exit")

	app := ffcli.Command{Name: "scoresheet", ShortUsage: "scoresheet [flags]", FlagSet: fs,
		Options: []ff.Option{ff.WithEnvVarPrefix("SCORESHEET")},
		Exec: func(ctx context.Context, args []string) error {
			if *flagVersion {
				fmt.Printf("scoresheet %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
				return nil
			}

			if !*flagTUI {
				_, err := pipeline.New(cfg, logger, os.Stdout).Run(ctx)
				return err
			}

			// The alt screen owns stdout, so the plain progress text is dropped.
			p := tea.NewProgram(ui.InitialModel(ctx, pipeline.New(cfg, logger, io.Discard)),
				tea.WithAltScreen(), tea.WithContext(ctx))
			m, err := p.Run()
			if err != nil {
				return err
			}
			return m.(ui.Model).Err()
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.ParseAndRun(ctx, os.Args[1:])
}
