//go:build !windows

package forktest

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFork_SignaledChildIsReported(t *testing.T) {
	err := Fork(t.Name(), NewID(), nil, DefaultSupervise(0), func() {
		_ = syscall.Kill(os.Getpid(), syscall.SIGKILL)
		// Give the signal time to land before the body could return.
		time.Sleep(10 * time.Second)
	})

	var forkErr *Error
	require.ErrorAs(t, err, &forkErr)
	assert.Equal(t, ErrSignaled, forkErr.Kind)
	assert.Equal(t, syscall.SIGKILL.String(), forkErr.Signal)
}
