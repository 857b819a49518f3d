package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/forkest/internal/model"
	"gooze.dev/pkg/forkest/pkg/forktest"
)

// TestDomainHelperProcess stands in for an external test binary; it is
// a no-op in a normal test run.
func TestDomainHelperProcess(t *testing.T) {
	if os.Getenv("FORKEST_DOMAIN_HELPER") != "1" {
		t.Skip("helper process entry point")
	}

	fmt.Println("hello from child")

	if sleepMs := os.Getenv("FORKEST_DOMAIN_HELPER_SLEEP_MS"); sleepMs != "" {
		ms, err := strconv.Atoi(sleepMs)
		require.NoError(t, err)
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}

	code, err := strconv.Atoi(os.Getenv("FORKEST_DOMAIN_HELPER_EXIT"))
	require.NoError(t, err)
	os.Exit(code)
}

// helperAdapter launches the current test binary's helper entry point
// instead of a separately compiled binary.
type helperAdapter struct {
	exitCode  int
	sleep     time.Duration
	failStart bool
}

func (a *helperAdapter) ListTests(_ context.Context, _ m.Path) ([]string, error) {
	return []string{"TestAlpha", "TestBravo"}, nil
}

func (a *helperAdapter) StartTest(_ m.TestCase) (*forktest.ChildWrapper, *bytes.Buffer, error) {
	if a.failStart {
		return nil, nil, errors.New("binary missing")
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestDomainHelperProcess$", "-test.count=1")
	cmd.Env = append(os.Environ(),
		"FORKEST_DOMAIN_HELPER=1",
		fmt.Sprintf("FORKEST_DOMAIN_HELPER_EXIT=%d", a.exitCode),
		fmt.Sprintf("FORKEST_DOMAIN_HELPER_SLEEP_MS=%d", a.sleep.Milliseconds()),
	)

	output := &bytes.Buffer{}
	cmd.Stdout = output
	cmd.Stderr = output

	child, err := forktest.Start(cmd)
	if err != nil {
		return nil, nil, err
	}

	return child, output, nil
}

func TestOrchestrator_CleanChildPasses(t *testing.T) {
	o := NewOrchestrator(&helperAdapter{exitCode: 0})

	report := o.RunTest(context.Background(), m.TestCase{Binary: "self", Name: "TestAlpha"}, 0)

	assert.Equal(t, m.Passed, report.Status)
	assert.Empty(t, report.Reason)
	assert.Contains(t, report.Output, "hello from child")
}

func TestOrchestrator_NonZeroExitFails(t *testing.T) {
	o := NewOrchestrator(&helperAdapter{exitCode: 2})

	report := o.RunTest(context.Background(), m.TestCase{Binary: "self", Name: "TestAlpha"}, 0)

	assert.Equal(t, m.Failed, report.Status)
	assert.Contains(t, report.Reason, "code 2")
}

func TestOrchestrator_TimeoutFails(t *testing.T) {
	o := NewOrchestrator(&helperAdapter{exitCode: 0, sleep: time.Minute})

	start := time.Now()
	report := o.RunTest(context.Background(), m.TestCase{Binary: "self", Name: "TestAlpha"}, 300*time.Millisecond)

	assert.Equal(t, m.Failed, report.Status)
	assert.Contains(t, report.Reason, "timed out")
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestOrchestrator_SpawnFailureErrors(t *testing.T) {
	o := NewOrchestrator(&helperAdapter{failStart: true})

	report := o.RunTest(context.Background(), m.TestCase{Binary: "self", Name: "TestAlpha"}, 0)

	assert.Equal(t, m.Errored, report.Status)
	assert.Contains(t, report.Reason, "binary missing")
}

func TestOrchestrator_CancelledContextErrors(t *testing.T) {
	o := NewOrchestrator(&helperAdapter{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := o.RunTest(ctx, m.TestCase{Binary: "self", Name: "TestAlpha"}, 0)

	assert.Equal(t, m.Errored, report.Status)
}
