package forktest

import (
	"fmt"
	"io"
	"os"
)

// markerPayload is the fixed value the child writes after the body
// returns. The file is created empty, so any content at all would
// already be unambiguous; a fixed payload additionally guards against a
// partial write being mistaken for completion.
const markerPayload = "body-completed\n"

// createMarker allocates the empty completion marker for one launch.
// os.CreateTemp guarantees a unique path even under concurrent
// launches, which is what keeps parallel forks independent.
func createMarker() (*os.File, error) {
	f, err := os.CreateTemp("", "forkest-marker-*")
	if err != nil {
		return nil, fmt.Errorf("create completion marker: %w", err)
	}

	return f, nil
}

// writeMarker records body completion. Only the child calls this, at
// most once, strictly after the body has returned.
func writeMarker(path string) error {
	if path == "" {
		return fmt.Errorf("completion marker path not set in %s", markerEnv)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open completion marker: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(markerPayload); err != nil {
		return fmt.Errorf("write completion marker: %w", err)
	}

	return nil
}

// readMarker reports whether the marker holds the completion payload.
// Only the driver calls this, strictly after the child has exited, so
// there is no read/write race to consider.
func readMarker(f *os.File) (bool, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("rewind completion marker: %w", err)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return false, fmt.Errorf("read completion marker: %w", err)
	}

	return string(content) == markerPayload, nil
}
