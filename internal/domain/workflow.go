package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"gooze.dev/pkg/forkest/internal/adapter"
	"gooze.dev/pkg/forkest/internal/controller"
	m "gooze.dev/pkg/forkest/internal/model"
	"gooze.dev/pkg/forkest/pkg"
)

// RunArgs parameterizes one isolated run over a test binary.
type RunArgs struct {
	Binary  m.Path
	Tests   []string // explicit selection; empty means every test
	Exclude []string // regexps dropping matching test names
	Threads int
	Timeout time.Duration
	Reports m.Path
}

// Workflow is the use-case layer behind the CLI commands.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	List(ctx context.Context, binary m.Path) error
	Show(ctx context.Context, report m.Path) error
}

type workflow struct {
	binaries     adapter.BinaryAdapter
	reports      adapter.ReportStore
	ui           controller.UI
	orchestrator Orchestrator
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	binaries adapter.BinaryAdapter,
	reports adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
) Workflow {
	return &workflow{
		binaries:     binaries,
		reports:      reports,
		ui:           ui,
		orchestrator: orchestrator,
	}
}

// Run executes every selected test of the binary in its own supervised
// child process, persists the run report, and fails if any test did.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	tests, err := w.selectTests(ctx, args)
	if err != nil {
		return err
	}

	if len(tests) == 0 {
		return fmt.Errorf("no tests selected in %s", args.Binary)
	}

	threads := max(args.Threads, 1)

	if err := w.ui.Start(ctx, controller.WithTotalTests(len(tests))); err != nil {
		slog.Error("failed to start UI", "error", err)
		return err
	}
	defer w.ui.Close(ctx)

	w.ui.DisplayPlan(ctx, args.Binary, tests)
	w.ui.DisplayConcurrencyInfo(ctx, threads)

	journal, err := pkg.NewJournal[m.Report]("forkest-run-*.journal")
	if err != nil {
		return err
	}
	defer func() { _ = journal.Close() }()

	startedAt := time.Now()
	results := make([]m.Report, len(tests))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, name := range tests {
		group.Go(func() error {
			w.ui.DisplayStartingTest(groupCtx, name)

			report := w.orchestrator.RunTest(groupCtx, m.TestCase{Binary: args.Binary, Name: name}, args.Timeout)
			results[i] = report

			if err := journal.Append(report); err != nil {
				slog.Warn("failed to journal verdict", "test", name, "error", err)
			}

			w.ui.DisplayCompletedTest(groupCtx, report)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("run tests: %w", err)
	}

	run := m.RunReport{
		Binary:    string(args.Binary),
		StartedAt: startedAt,
		Elapsed:   time.Since(startedAt),
		Reports:   results,
	}

	if path, err := w.reports.SaveRun(args.Reports, run); err != nil {
		slog.Error("failed to save run report", "error", err)
	} else {
		slog.Info("saved run report", "path", path)
	}

	if err := w.ui.DisplaySummary(ctx, run); err != nil {
		return err
	}

	w.ui.Wait(ctx)

	return runError(run)
}

// List prints the tests compiled into the binary.
func (w *workflow) List(ctx context.Context, binary m.Path) error {
	tests, err := w.binaries.ListTests(ctx, binary)
	if err != nil {
		return err
	}

	return w.ui.DisplayTestList(ctx, binary, tests)
}

// Show renders a previously saved run report.
func (w *workflow) Show(ctx context.Context, report m.Path) error {
	run, err := w.reports.LoadRun(report)
	if err != nil {
		return err
	}

	return w.ui.DisplaySummary(ctx, run)
}

func (w *workflow) selectTests(ctx context.Context, args RunArgs) ([]string, error) {
	tests := args.Tests
	if len(tests) == 0 {
		var err error
		if tests, err = w.binaries.ListTests(ctx, args.Binary); err != nil {
			return nil, err
		}
	}

	return excludeTests(tests, args.Exclude)
}

func excludeTests(tests, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return tests, nil
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	kept := make([]string, 0, len(tests))

	for _, test := range tests {
		excluded := false
		for _, re := range compiled {
			if re.MatchString(test) {
				excluded = true
				break
			}
		}

		if !excluded {
			kept = append(kept, test)
		}
	}

	return kept, nil
}

func runError(run m.RunReport) error {
	passed, failed, errored := run.Counts()

	if errored > 0 {
		return fmt.Errorf("%d test(s) could not be supervised (%d passed, %d failed)", errored, passed, failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d test(s) failed", failed, len(run.Reports))
	}

	return nil
}
