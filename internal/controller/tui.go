package controller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "gooze.dev/pkg/forkest/internal/model"
)

const completedTail = 10

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output  io.Writer
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI writing to output.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the Bubble Tea program in the background.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	config := StartConfig{}
	for _, option := range options {
		option(&config)
	}

	p.done = make(chan struct{})
	p.program = tea.NewProgram(newRunModel(config.totalTests), tea.WithOutput(p.output))

	go func() {
		defer close(p.done)
		_, _ = p.program.Run()
	}()

	return nil
}

// Close shuts the program down if it is still running.
func (p *TUI) Close(_ context.Context) {
	if p.program == nil {
		return
	}

	p.program.Quit()
	<-p.done
}

// Wait blocks until the program has finished rendering.
func (p *TUI) Wait(_ context.Context) {
	if p.done != nil {
		<-p.done
	}
}

// DisplayPlan is folded into the live view's header.
func (p *TUI) DisplayPlan(_ context.Context, binary m.Path, tests []string) {
	p.send(planMsg{binary: binary, total: len(tests)})
}

// DisplayConcurrencyInfo shows concurrency settings.
func (p *TUI) DisplayConcurrencyInfo(_ context.Context, threads int) {
	p.send(threadsMsg{threads: threads})
}

// DisplayStartingTest marks a test as in flight.
func (p *TUI) DisplayStartingTest(_ context.Context, test string) {
	p.send(startedMsg{test: test})
}

// DisplayCompletedTest records a verdict in the live view.
func (p *TUI) DisplayCompletedTest(_ context.Context, report m.Report) {
	p.send(completedMsg{report: report})
}

// DisplayTestList prints the list without entering the live view.
func (p *TUI) DisplayTestList(_ context.Context, binary m.Path, tests []string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf("Tests in %s", binary)))
	for _, test := range tests {
		fmt.Fprintf(&b, "  %s\n", test)
	}
	fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("total %d", len(tests))))

	_, err := fmt.Fprint(p.output, b.String())

	return err
}

// DisplaySummary stops the live view and renders the final table.
func (p *TUI) DisplaySummary(_ context.Context, run m.RunReport) error {
	if p.program != nil {
		p.program.Send(finishedMsg{})
		<-p.done
	}

	passed, failed, errored := run.Counts()

	_, err := fmt.Fprintf(p.output, "\n%s%s: %d passed, %d failed, %d errored in %s\n",
		renderSummaryTable(run),
		run.Binary, passed, failed, errored, run.Elapsed.Round(time.Millisecond))

	return err
}

func (p *TUI) send(msg tea.Msg) {
	if p.program != nil {
		p.program.Send(msg)
	}
}

type (
	planMsg struct {
		binary m.Path
		total  int
	}
	threadsMsg   struct{ threads int }
	startedMsg   struct{ test string }
	completedMsg struct{ report m.Report }
	finishedMsg  struct{}
)

// runModel is the Bubble Tea model for a run in progress.
type runModel struct {
	spin      spinner.Model
	binary    m.Path
	total     int
	threads   int
	running   []string
	completed []m.Report
	passed    int
	failed    int
	errored   int
	quitting  bool
}

func newRunModel(total int) runModel {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return runModel{
		spin:  spin,
		total: total,
	}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spin.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			rm.quitting = true
			return rm, tea.Quit
		}

		return rm, nil

	case planMsg:
		rm.binary = msg.binary
		rm.total = msg.total

		return rm, nil

	case threadsMsg:
		rm.threads = msg.threads
		return rm, nil

	case startedMsg:
		rm.running = append(rm.running, msg.test)
		return rm, nil

	case completedMsg:
		rm.completed = append(rm.completed, msg.report)
		rm.running = removeTest(rm.running, msg.report.Test)

		switch msg.report.Status {
		case m.Passed:
			rm.passed++
		case m.Failed:
			rm.failed++
		case m.Errored:
			rm.errored++
		}

		return rm, nil

	case finishedMsg:
		rm.quitting = true
		return rm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		rm.spin, cmd = rm.spin.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm runModel) View() string {
	if rm.quitting {
		return ""
	}

	var b strings.Builder

	header := fmt.Sprintf("forkest: %d/%d tests", len(rm.completed), rm.total)
	if rm.binary != "" {
		header = fmt.Sprintf("forkest %s: %d/%d tests", rm.binary, len(rm.completed), rm.total)
	}

	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	tail := rm.completed
	if len(tail) > completedTail {
		fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("  … %d earlier verdicts", len(tail)-completedTail)))
		tail = tail[len(tail)-completedTail:]
	}

	for _, report := range tail {
		fmt.Fprintf(&b, "  %s %s (%s)\n",
			styledStatus(report.Status), report.Test, report.Elapsed.Round(time.Millisecond))
	}

	for _, test := range rm.running {
		fmt.Fprintf(&b, "  %s %s\n", rm.spin.View(), test)
	}

	fmt.Fprintf(&b, "\n%s\n", dimStyle.Render(fmt.Sprintf(
		"%d passed · %d failed · %d errored · q to hide", rm.passed, rm.failed, rm.errored)))

	return b.String()
}

func removeTest(running []string, test string) []string {
	for i, name := range running {
		if name == test {
			return append(running[:i], running[i+1:]...)
		}
	}

	return running
}
