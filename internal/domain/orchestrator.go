// Package domain implements the run workflow for isolated test
// execution.
package domain

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gooze.dev/pkg/forkest/internal/adapter"
	m "gooze.dev/pkg/forkest/internal/model"
	"gooze.dev/pkg/forkest/pkg/forktest"
)

// Orchestrator runs a single test of a test binary in its own child
// process and classifies the outcome.
type Orchestrator interface {
	RunTest(ctx context.Context, test m.TestCase, timeout time.Duration) m.Report
}

type orchestrator struct {
	binaries adapter.BinaryAdapter
}

// NewOrchestrator constructs an Orchestrator backed by the provided
// binary adapter.
func NewOrchestrator(binaries adapter.BinaryAdapter) Orchestrator {
	return &orchestrator{binaries: binaries}
}

func (o *orchestrator) RunTest(ctx context.Context, test m.TestCase, timeout time.Duration) m.Report {
	report := m.Report{Test: test.Name}

	if err := ctx.Err(); err != nil {
		report.Status = m.Errored
		report.Reason = err.Error()

		return report
	}

	start := time.Now()

	child, output, err := o.binaries.StartTest(test)
	if err != nil {
		slog.Error("failed to start test", "test", test.Name, "binary", test.Binary, "error", err)

		report.Status = m.Errored
		report.Reason = err.Error()

		return report
	}

	// Foreign binaries do not take part in the completion-marker
	// protocol, so supervision classifies on exit status alone.
	verdict := forktest.Supervise(child, nil, timeout)

	report.Elapsed = time.Since(start)
	report.Output = output.String()

	if verdict == nil {
		report.Status = m.Passed
		return report
	}

	report.Reason = verdict.Error()

	var forkErr *forktest.Error
	if errors.As(verdict, &forkErr) && forkErr.IsTestFailure() {
		report.Status = m.Failed
	} else {
		report.Status = m.Errored
	}

	return report
}
