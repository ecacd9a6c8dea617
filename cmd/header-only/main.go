package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gavrilikhin-d/libos/internal/app"
	"github.com/gavrilikhin-d/libos/internal/cli"
	"github.com/gavrilikhin-d/libos/internal/tui"
	"github.com/gavrilikhin-d/libos/internal/ui"
)

func main() {
	cfg, err := cli.ParseHeaderOnly()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	a, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Watch and check modes print plainly and should not run the TUI.
	if cfg.Watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := a.Watch(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cfg.Plain || cfg.Check {
		summary, err := a.Execute()
		ui.PrintRunSummary(summary)
		if err != nil {
			var detailed *app.DetailedError
			if errors.As(err, &detailed) {
				fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	m := tui.New(a)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		os.Exit(1)
	}
}
