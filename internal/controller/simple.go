package controller

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "gooze.dev/pkg/forkest/internal/model"
)

var (
	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	erroredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
)

func styledStatus(status m.Status) string {
	switch status {
	case m.Passed:
		return passedStyle.Render("PASS")
	case m.Failed:
		return failedStyle.Render("FAIL")
	case m.Errored:
		return erroredStyle.Render("ERROR")
	}

	return status.String()
}

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayPlan announces what is about to run.
func (s *SimpleUI) DisplayPlan(ctx context.Context, binary m.Path, tests []string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d test(s) from %s, one process each\n", len(tests), binary)
}

// DisplayConcurrencyInfo shows concurrency settings.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Using %d worker(s)\n", threads)
}

// DisplayStartingTest shows info about a launch starting.
func (s *SimpleUI) DisplayStartingTest(ctx context.Context, test string) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("=== FORK  %s\n", test)
}

// DisplayCompletedTest shows the verdict for one launch.
func (s *SimpleUI) DisplayCompletedTest(ctx context.Context, report m.Report) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("--- %s  %s (%s)\n", styledStatus(report.Status), report.Test, report.Elapsed.Round(time.Millisecond))

	if report.Status != m.Passed && report.Reason != "" {
		s.printf("    %s\n", report.Reason)
	}
}

// DisplayTestList prints the tests compiled into a binary.
func (s *SimpleUI) DisplayTestList(ctx context.Context, binary m.Path, tests []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Test"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})

	for _, test := range tests {
		table.Append([]string{test})
	}

	table.SetFooter([]string{fmt.Sprintf("Total %d", len(tests))})
	table.Render()

	s.printf("Tests in %s:\n\n%s", binary, buf.String())

	return nil
}

// DisplaySummary renders the verdict table for a whole run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, run m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", renderSummaryTable(run))

	passed, failed, errored := run.Counts()
	s.printf("%s: %d passed, %d failed, %d errored in %s\n",
		run.Binary, passed, failed, errored, run.Elapsed.Round(time.Millisecond))

	return nil
}

func renderSummaryTable(run m.RunReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Test", "Status", "Elapsed", "Reason"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
	})

	for _, report := range run.Reports {
		table.Append([]string{
			report.Test,
			report.Status.String(),
			report.Elapsed.Round(time.Millisecond).String(),
			report.Reason,
		})
	}

	passed, _, _ := run.Counts()
	table.SetFooter([]string{
		fmt.Sprintf("Total %d", len(run.Reports)),
		fmt.Sprintf("%d passed", passed),
		run.Elapsed.Round(time.Millisecond).String(),
		"",
	})

	table.Render()

	return buf.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
