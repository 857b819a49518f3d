package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "gooze.dev/pkg/forkest/internal/model"
)

func TestParseTestList(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "plain names one per line",
			output: "TestBravo\nTestAlpha\n",
			want:   []string{"TestAlpha", "TestBravo"},
		},
		{
			name:   "summary lines are dropped",
			output: "TestAlpha\nok  \texample.com/pkg\t0.002s\n",
			want:   []string{"TestAlpha"},
		},
		{
			name:   "blank lines are dropped",
			output: "\nTestAlpha\n\n",
			want:   []string{"TestAlpha"},
		},
		{
			name:   "empty output",
			output: "",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTestList(tt.output))
		})
	}
}

func TestListTests_MissingBinaryFails(t *testing.T) {
	adapter := NewLocalBinaryAdapter()

	_, err := adapter.ListTests(context.Background(), m.Path("/nonexistent/thing.test"))
	require.Error(t, err)
}

func TestStartTest_MissingBinaryFails(t *testing.T) {
	adapter := NewLocalBinaryAdapter()

	_, _, err := adapter.StartTest(m.TestCase{Binary: "/nonexistent/thing.test", Name: "TestAlpha"})
	require.Error(t, err)
}
