package forktest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "nonzero exit carries the code",
			err:  &Error{Kind: ErrNonZeroExit, Code: 101},
			want: "child exited with code 101",
		},
		{
			name: "signal carries the signal name",
			err:  &Error{Kind: ErrSignaled, Signal: "killed"},
			want: "child terminated by signal killed",
		},
		{
			name: "timeout carries elapsed time",
			err:  &Error{Kind: ErrTimeout, Elapsed: 2 * time.Second},
			want: "child timed out after 2s",
		},
		{
			name: "incomplete body",
			err:  &Error{Kind: ErrBodyIncomplete},
			want: "child exited successfully but the test body never completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("no such file")
	err := &Error{Kind: ErrSpawn, Err: cause}

	assert.ErrorIs(t, err, cause)
}

func TestError_TestFailureVersusHarnessFailure(t *testing.T) {
	assert.True(t, (&Error{Kind: ErrNonZeroExit}).IsTestFailure())
	assert.True(t, (&Error{Kind: ErrSignaled}).IsTestFailure())
	assert.True(t, (&Error{Kind: ErrBodyIncomplete}).IsTestFailure())
	assert.True(t, (&Error{Kind: ErrTimeout}).IsTestFailure())

	assert.False(t, (&Error{Kind: ErrSpawn}).IsTestFailure())
	assert.False(t, (&Error{Kind: ErrSupervision}).IsTestFailure())
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "timeout", ErrTimeout.String())
	assert.Equal(t, "body incomplete", ErrBodyIncomplete.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
