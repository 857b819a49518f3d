// Package controller provides output adapters for displaying isolated
// test run progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "gooze.dev/pkg/forkest/internal/model"
)

// StartOption is a functional option for the Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	totalTests int
}

// WithTotalTests tells the UI how many launches the run will perform.
func WithTotalTests(n int) StartOption {
	return func(c *StartConfig) {
		c.totalTests = n
	}
}

// UI defines the interface for displaying run progress and results.
// Implementations can use different output methods (plain text, TUI).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // blocks until an interactive UI is dismissed
	DisplayPlan(ctx context.Context, binary m.Path, tests []string)
	DisplayConcurrencyInfo(ctx context.Context, threads int)
	DisplayStartingTest(ctx context.Context, test string)
	DisplayCompletedTest(ctx context.Context, report m.Report)
	DisplayTestList(ctx context.Context, binary m.Path, tests []string) error
	DisplaySummary(ctx context.Context, run m.RunReport) error
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI selects the interactive UI on terminals and the plain UI
// everywhere else.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(os.Stdout)
	}

	return NewSimpleUI(cmd)
}
