// Package adapter provides the infrastructure adapters for running
// isolated tests against compiled test binaries.
package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
	"time"

	m "gooze.dev/pkg/forkest/internal/model"
	"gooze.dev/pkg/forkest/pkg/forktest"
)

// BinaryAdapter abstracts operations on a compiled Go test binary.
type BinaryAdapter interface {
	// ListTests returns the names of the tests compiled into the
	// binary, sorted.
	ListTests(ctx context.Context, binary m.Path) ([]string, error)

	// StartTest spawns the binary constrained to one test and returns
	// the running child together with the buffer collecting its
	// combined output. The buffer must only be read after the child
	// has been supervised to completion.
	StartTest(test m.TestCase) (*forktest.ChildWrapper, *bytes.Buffer, error)
}

// LocalBinaryAdapter provides a concrete implementation using os/exec.
type LocalBinaryAdapter struct {
	listTimeout time.Duration
}

// NewLocalBinaryAdapter constructs a LocalBinaryAdapter with a default
// 30s timeout for listing tests.
func NewLocalBinaryAdapter() *LocalBinaryAdapter {
	return &LocalBinaryAdapter{
		listTimeout: 30 * time.Second,
	}
}

// ListTests runs the binary with -test.list and parses the names.
func (a *LocalBinaryAdapter) ListTests(ctx context.Context, binary m.Path) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.listTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, string(binary), "-test.list=.")

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("list tests in %s: %w (%s)", binary, err, strings.TrimSpace(stderr.String()))
	}

	return parseTestList(stdout.String()), nil
}

// StartTest launches one isolated test run of the binary.
func (a *LocalBinaryAdapter) StartTest(test m.TestCase) (*forktest.ChildWrapper, *bytes.Buffer, error) {
	cmd := exec.Command(string(test.Binary), forktest.SelectionArgs(test.Name)...)

	output := &bytes.Buffer{}
	cmd.Stdout = output
	cmd.Stderr = output

	child, err := forktest.Start(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("start test %s of %s: %w", test.Name, test.Binary, err)
	}

	return child, output, nil
}

// parseTestList extracts test names from -test.list output. The binary
// prints one name per line; trailing summary lines contain spaces and
// are dropped.
func parseTestList(output string) []string {
	var tests []string

	for line := range strings.Lines(output) {
		name := strings.TrimSpace(line)
		if name == "" || strings.ContainsAny(name, " \t") {
			continue
		}

		tests = append(tests, name)
	}

	sort.Strings(tests)

	return tests
}
