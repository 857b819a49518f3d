package forktest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterTestArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "strips single token selection flags",
			in:   []string{"-test.run=TestFoo", "-test.v=true", "-test.count=5"},
			want: []string{"-test.v=true"},
		},
		{
			name: "strips two token selection flags with their values",
			in:   []string{"-test.run", "TestFoo", "-test.timeout=30s"},
			want: []string{"-test.timeout=30s"},
		},
		{
			name: "keeps unrelated flags and positionals",
			in:   []string{"-test.v=true", "extra", "-test.parallel=4", "-test.list", "."},
			want: []string{"-test.v=true", "extra"},
		},
		{
			name: "double dash flags are recognized",
			in:   []string{"--test.run=TestFoo", "--test.v=true"},
			want: []string{"--test.v=true"},
		},
		{
			// The go tool always passes this to test binaries; inherited
			// by the child it would turn a raw exit(0) into a panic.
			name: "strips paniconexit0",
			in:   []string{"-test.paniconexit0", "-test.timeout=10m0s", "-test.v=true"},
			want: []string{"-test.timeout=10m0s", "-test.v=true"},
		},
		{
			name: "empty input",
			in:   nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterTestArgs(tt.in))
		})
	}
}

func TestExactRunPattern(t *testing.T) {
	assert.Equal(t, "^TestFoo$", exactRunPattern("TestFoo"))
	assert.Equal(t, "^TestFoo$/^case 1$", exactRunPattern("TestFoo/case 1"))
	assert.Equal(t, `^TestFoo\.Bar$`, exactRunPattern("TestFoo.Bar"))
}

func TestChildArgs_AppendsExclusiveSelection(t *testing.T) {
	got := childArgs([]string{"-test.run=TestOther", "-test.v=true"}, "TestFoo")

	assert.Equal(t, []string{"-test.v=true", "-test.run=^TestFoo$", "-test.count=1"}, got)
}

func TestChildArgs_GoToolInvocation(t *testing.T) {
	// The argv a test binary receives when launched by `go test`. The
	// child must not inherit paniconexit0 or the incomplete-body verdict
	// can never be observed.
	parent := []string{"-test.paniconexit0", "-test.timeout=10m0s", "-test.run=TestFoo"}

	got := childArgs(parent, "TestFoo")

	assert.Equal(t, []string{"-test.timeout=10m0s", "-test.run=^TestFoo$", "-test.count=1"}, got)
}
