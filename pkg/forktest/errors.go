package forktest

import (
	"fmt"
	"time"
)

// ErrorKind classifies why a forked launch failed.
type ErrorKind int

const (
	// ErrSpawn means the child process could not be created at all.
	// This is an environment problem, not a test failure.
	ErrSpawn ErrorKind = iota

	// ErrNonZeroExit means the child exited with a nonzero code.
	ErrNonZeroExit

	// ErrSignaled means the child was terminated by a signal.
	ErrSignaled

	// ErrBodyIncomplete means the child exited with code zero but the
	// completion marker was never written: the process died, or
	// something called a raw exit, before the body finished.
	ErrBodyIncomplete

	// ErrTimeout means the configured deadline elapsed and the child
	// was forcibly terminated.
	ErrTimeout

	// ErrSupervision means the driver could not wait on or kill the
	// child. Reported distinctly so a broken harness is never read as
	// a failed test.
	ErrSupervision
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSpawn:
		return "spawn"
	case ErrNonZeroExit:
		return "nonzero exit"
	case ErrSignaled:
		return "signaled"
	case ErrBodyIncomplete:
		return "body incomplete"
	case ErrTimeout:
		return "timeout"
	case ErrSupervision:
		return "supervision"
	}

	return "unknown"
}

// Error is the failure verdict of one launch.
type Error struct {
	Kind ErrorKind

	// Code is the child's exit code for ErrNonZeroExit.
	Code int

	// Signal names the terminating signal for ErrSignaled.
	Signal string

	// Elapsed is how much wall-clock time had passed when the deadline
	// fired, for ErrTimeout.
	Elapsed time.Duration

	// Err carries the underlying cause for ErrSpawn and ErrSupervision.
	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrSpawn:
		return fmt.Sprintf("spawn child process: %v", e.Err)
	case ErrNonZeroExit:
		return fmt.Sprintf("child exited with code %d", e.Code)
	case ErrSignaled:
		return fmt.Sprintf("child terminated by signal %s", e.Signal)
	case ErrBodyIncomplete:
		return "child exited successfully but the test body never completed"
	case ErrTimeout:
		return fmt.Sprintf("child timed out after %v", e.Elapsed)
	case ErrSupervision:
		return fmt.Sprintf("supervise child process: %v", e.Err)
	}

	return "unknown fork failure"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTestFailure reports whether the error represents the test's own
// misbehavior rather than a harness problem.
func (e *Error) IsTestFailure() bool {
	switch e.Kind {
	case ErrNonZeroExit, ErrSignaled, ErrBodyIncomplete, ErrTimeout:
		return true
	case ErrSpawn, ErrSupervision:
		return false
	}

	return false
}
