package forktest

import (
	"fmt"
	"os/exec"
)

// ChildWrapper owns the OS process spawned for one launch. It is held
// by the supervisor for the duration of that launch and never shared or
// reused afterward.
type ChildWrapper struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

// Start configures process-group handling on cmd, spawns it, and wires
// up the reaping goroutine. The returned wrapper is ready to hand to
// Supervise.
func Start(cmd *exec.Cmd) (*ChildWrapper, error) {
	configureCmdSysProcAttr(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start child: %w", err)
	}

	w := &ChildWrapper{
		cmd:  cmd,
		done: make(chan struct{}),
	}

	go func() {
		w.waitErr = cmd.Wait()
		close(w.done)
	}()

	return w, nil
}

// Pid returns the child's process identifier.
func (w *ChildWrapper) Pid() int {
	return w.cmd.Process.Pid
}

// Exited is a non-blocking poll for child termination.
func (w *ChildWrapper) Exited() bool {
	select {
	case <-w.done:
		return true
	default:
		return false
	}
}

// wait blocks until the reaping goroutine has collected the child's
// exit status.
func (w *ChildWrapper) wait() {
	<-w.done
}
