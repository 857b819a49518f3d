//go:build !windows

package forktest

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

func configureCmdSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// Kill forcibly terminates the child. The child is placed in its own
// process group at spawn time so the signal also reaches anything the
// test body itself spawned.
func (w *ChildWrapper) Kill() error {
	if w.cmd.Process == nil {
		return nil
	}

	if err := syscall.Kill(-w.cmd.Process.Pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return fmt.Errorf("kill child process group: %w", err)
	}

	return nil
}

// terminationSignal reports the signal that killed the child, if any.
func terminationSignal(state *os.ProcessState) (string, bool) {
	status, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return "", false
	}

	return status.Signal().String(), true
}
