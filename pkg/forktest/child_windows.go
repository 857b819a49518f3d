//go:build windows

package forktest

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

func configureCmdSysProcAttr(_ *exec.Cmd) {}

// Kill forcibly terminates the child. Without job objects this only
// reaches the top-level process; grandchildren spawned by the test body
// are the caller's concern on Windows.
func (w *ChildWrapper) Kill() error {
	if w.cmd.Process == nil {
		return nil
	}

	if err := w.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("kill child process: %w", err)
	}

	return nil
}

// terminationSignal never reports a signal on Windows; abnormal
// termination surfaces through the exit code instead.
func terminationSignal(_ *os.ProcessState) (string, bool) {
	return "", false
}
