package forktest

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Fork is the engine's entry operation. In the driver process it spawns
// a child constrained to run exactly the registration identified by
// (id, testName), supervises it, and returns nil only for a passing
// verdict. In the child process spawned for that registration it runs
// body directly and records completion. In a child spawned for a
// different registration it is an inert no-op, because every fork call
// site compiled into the binary shares the child's process image.
//
// configure may adjust the child command (workdir, extra environment,
// stdio) before it is spawned; it cannot override the reserved protocol
// variables. Both configure and supervise may be nil, which selects
// inherited stdio and DefaultSupervise(0).
func Fork(testName string, id ID, configure func(*exec.Cmd), supervise SuperviseFunc, body func()) error {
	execCtx := currentContext()

	if execCtx.mode == modeChild {
		if !execCtx.owns(id, testName) {
			return nil
		}

		return runChild(execCtx, body)
	}

	return runDriver(testName, id, configure, supervise)
}

// runChild executes the body in-process. The marker is written only
// after body returns; if the process dies inside body the marker stays
// empty and the driver reports the launch accordingly.
func runChild(execCtx execContext, body func()) error {
	body()

	if err := writeMarker(execCtx.markerPath); err != nil {
		return fmt.Errorf("record body completion: %w", err)
	}

	return nil
}

func runDriver(testName string, id ID, configure func(*exec.Cmd), supervise SuperviseFunc) error {
	if supervise == nil {
		supervise = DefaultSupervise(0)
	}

	marker, err := createMarker()
	if err != nil {
		return &Error{Kind: ErrSpawn, Err: err}
	}

	defer func() {
		// Best-effort cleanup; a leftover marker is not a verdict.
		_ = marker.Close()
		_ = os.Remove(marker.Name())
	}()

	executable, err := os.Executable()
	if err != nil {
		return &Error{Kind: ErrSpawn, Err: fmt.Errorf("resolve current executable: %w", err)}
	}

	cmd := exec.Command(executable, childArgs(os.Args[1:], testName)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if configure != nil {
		configure(cmd)
	}

	// Applied after the configure hook so the protocol variables win.
	cmd.Env = withReservedEnv(cmd.Env, encodeSelection(id, testName), marker.Name())

	child, err := Start(cmd)
	if err != nil {
		return &Error{Kind: ErrSpawn, Err: err}
	}

	slog.Debug("forked test child", "test", testName, "fork_id", id.String(), "pid", child.Pid())

	verdict := supervise(child, marker)
	if verdict != nil {
		slog.Debug("forked test failed", "test", testName, "error", verdict)
	}

	return verdict
}

// withReservedEnv strips any pre-existing protocol variables and
// appends the launch's own values.
func withReservedEnv(env []string, selection, markerPath string) []string {
	out := make([]string, 0, len(env)+2)
	for _, entry := range env {
		if strings.HasPrefix(entry, occursEnv+"=") || strings.HasPrefix(entry, markerEnv+"=") {
			continue
		}

		out = append(out, entry)
	}

	return append(out,
		fmt.Sprintf("%s=%s", occursEnv, selection),
		fmt.Sprintf("%s=%s", markerEnv, markerPath),
	)
}
