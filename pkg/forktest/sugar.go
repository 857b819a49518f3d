package forktest

import (
	"testing"
	"time"
)

// RunTest runs body in its own child process and fails t if the child
// exits abnormally in any way. It is the drop-in wrapper for test
// functions; see the package documentation for an example.
func RunTest(t testing.TB, body func()) {
	t.Helper()
	runForked(t, newID(2), 0, body)
}

// RunTestTimeout is RunTest with a wall-clock limit. If body is still
// running after timeout the child is killed and t fails.
func RunTestTimeout(t testing.TB, timeout time.Duration, body func()) {
	t.Helper()
	runForked(t, newID(2), timeout, body)
}

func runForked(t testing.TB, id ID, timeout time.Duration, body func()) {
	t.Helper()

	if err := Fork(t.Name(), id, nil, DefaultSupervise(timeout), body); err != nil {
		t.Fatalf("forked test failed: %v", err)
	}
}
