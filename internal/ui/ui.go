package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/gavrilikhin-d/libos/internal/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// --- Summaries ---

// PrintRunSummary reports one generation run: the set of files considered,
// then what was produced.
func PrintRunSummary(s model.Summary) {
	Header("\n--- Amalgamation Summary ---")

	if s.Message != "" {
		Info(s.Message)
	}

	if len(s.Generated) > 0 {
		Success("Generated %d header-only file(s):", len(s.Generated))
		for _, f := range s.Generated {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(s.Skipped) > 0 {
		Info("Skipped %d file(s):", len(s.Skipped))
		for _, f := range s.Skipped {
			fmt.Printf("  - %s\n", f)
		}
	}
	if len(s.Failed) > 0 {
		Error("Out of date (%d file(s)):", len(s.Failed))
		for _, f := range s.Failed {
			fmt.Printf("  - %s\n", f)
		}
	}

	if len(s.Considered) > 0 {
		Info("Considered: %v", s.Considered)
	}
}

// PrintStampSummary reports a version stamping run.
func PrintStampSummary(version string, changed []string) {
	Header("\n--- Version Summary ---")
	Info("Version: %s", version)
	if len(changed) == 0 {
		Info("No documentation configs needed updating.")
		return
	}
	Success("Updated %d file(s):", len(changed))
	for _, f := range changed {
		fmt.Printf("  - %s\n", f)
	}
}
