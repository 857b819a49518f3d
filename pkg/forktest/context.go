package forktest

import (
	"fmt"
	"os"
	"sync"
)

// Reserved environment variables carrying the driver→child protocol.
// Nothing else flows from driver to child; child→driver uses the marker
// file and the process exit status.
const (
	// occursEnv selects which registration the child process owns. Its
	// value is the encoded (ID, test name) pair of exactly one fork
	// call site; every other call site in the binary must stay inert.
	occursEnv = "FORKEST_OCCURS"

	// markerEnv carries the filesystem path of the completion marker.
	markerEnv = "FORKEST_MARKER_FILE"
)

type execMode int

const (
	// modeDriver means no selection variable is present: fork calls in
	// this process spawn and supervise children.
	modeDriver execMode = iota

	// modeChild means this process was spawned to run one body.
	modeChild
)

// execContext is the process-wide answer to "am I the driver or a
// child, and if a child, for which registration?". It is resolved from
// the environment exactly once; fork never re-reads ambient state.
type execContext struct {
	mode       execMode
	selection  string
	markerPath string
}

var currentContext = sync.OnceValue(loadExecContext)

func loadExecContext() execContext {
	selection, ok := os.LookupEnv(occursEnv)
	if !ok {
		return execContext{mode: modeDriver}
	}

	return execContext{
		mode:       modeChild,
		selection:  selection,
		markerPath: os.Getenv(markerEnv),
	}
}

// encodeSelection builds the occursEnv value for one registration. The
// ID comes first so that same-named registrations still compare
// unequal on the full string.
func encodeSelection(id ID, testName string) string {
	return fmt.Sprintf("%s:%s", id, testName)
}

// owns reports whether this child process was launched for the given
// registration.
func (c execContext) owns(id ID, testName string) bool {
	return c.mode == modeChild && c.selection == encodeSelection(id, testName)
}
