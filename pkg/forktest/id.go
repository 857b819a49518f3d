package forktest

import (
	"fmt"
	"hash/fnv"
	"runtime"
)

// ID disambiguates fork registrations that share a test name. Its value
// is derived from the registration call site, so it is stable across
// executions of the same binary and distinct between any two
// registration points compiled into it.
type ID uint64

// NewID produces the ID for its caller's call site. Call it directly at
// the registration point; the result is usually passed straight to Fork.
func NewID() ID {
	return newID(2)
}

// newID hashes the call site skip frames above this function.
func newID(skip int) ID {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		// No caller information means no way to tell sites apart;
		// collapse to a fixed value rather than a random one so the
		// stability guarantee still holds.
		return ID(0)
	}

	h := fnv.New64a()
	if fn := runtime.FuncForPC(pc); fn != nil {
		_, _ = h.Write([]byte(fn.Name()))
	}

	_, _ = fmt.Fprintf(h, "|%s:%d", file, line)

	return ID(h.Sum64())
}

// String renders the ID in the fixed-width form used by the selection
// environment variable.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}
