package forktest

import (
	"errors"
	"os"
	"time"
)

// SuperviseFunc blocks until it has produced a verdict for one launch:
// nil for a pass, a *Error otherwise. The marker handle is nil when the
// launch has no cooperating completion channel (see Supervise).
type SuperviseFunc func(child *ChildWrapper, marker *os.File) error

// pollInterval is how often the supervisor checks a timed child for
// exit. It bounds how far a timeout can overrun, so it must stay well
// under typical timeout magnitudes without busy-spinning.
const pollInterval = 25 * time.Millisecond

// DefaultSupervise returns the stock supervision policy: wait for the
// child, enforce timeout if nonzero, classify the exit. A zero timeout
// waits indefinitely.
func DefaultSupervise(timeout time.Duration) SuperviseFunc {
	return func(child *ChildWrapper, marker *os.File) error {
		return Supervise(child, marker, timeout)
	}
}

// Supervise waits for the child to exit, killing it if the timeout
// elapses first, and translates what the OS reports into a verdict.
//
// With a non-nil marker the verdict uses both signals: a zero exit is a
// pass only if the marker was written. With a nil marker (supervising a
// process that does not cooperate in the marker protocol) exit status
// alone decides.
func Supervise(child *ChildWrapper, marker *os.File, timeout time.Duration) error {
	if timeout <= 0 {
		child.wait()
		return classify(child, marker)
	}

	start := time.Now()
	for {
		if child.Exited() {
			return classify(child, marker)
		}

		if elapsed := time.Since(start); elapsed >= timeout {
			if err := child.Kill(); err != nil {
				return &Error{Kind: ErrSupervision, Err: err}
			}

			// Reap before returning so the caller never races a
			// dying process for the marker file or the temp path.
			child.wait()

			return &Error{Kind: ErrTimeout, Elapsed: elapsed}
		}

		time.Sleep(pollInterval)
	}
}

func classify(child *ChildWrapper, marker *os.File) error {
	state := child.cmd.ProcessState
	if state == nil {
		err := child.waitErr
		if err == nil {
			err = errors.New("child exit status unavailable")
		}

		return &Error{Kind: ErrSupervision, Err: err}
	}

	if signal, ok := terminationSignal(state); ok {
		return &Error{Kind: ErrSignaled, Signal: signal}
	}

	if code := state.ExitCode(); code != 0 {
		return &Error{Kind: ErrNonZeroExit, Code: code}
	}

	if marker == nil {
		return nil
	}

	completed, err := readMarker(marker)
	if err != nil {
		return &Error{Kind: ErrSupervision, Err: err}
	}

	if !completed {
		return &Error{Kind: ErrBodyIncomplete}
	}

	return nil
}
