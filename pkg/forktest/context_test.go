package forktest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExecContext_DriverWhenUnset(t *testing.T) {
	// t.Setenv cannot unset, so clear through the real environment of
	// the test process, which never has the variable in driver runs.
	execCtx := loadExecContext()

	if execCtx.mode == modeChild {
		t.Skip("running inside a forked child")
	}

	assert.Equal(t, modeDriver, execCtx.mode)
	assert.Empty(t, execCtx.selection)
}

func TestLoadExecContext_ChildWhenSelectionPresent(t *testing.T) {
	t.Setenv(occursEnv, "0000000000000001:TestSomething")
	t.Setenv(markerEnv, "/tmp/forkest-marker-x")

	execCtx := loadExecContext()

	require.Equal(t, modeChild, execCtx.mode)
	assert.Equal(t, "0000000000000001:TestSomething", execCtx.selection)
	assert.Equal(t, "/tmp/forkest-marker-x", execCtx.markerPath)
}

func TestExecContext_OwnsExactSelectionOnly(t *testing.T) {
	execCtx := execContext{
		mode:      modeChild,
		selection: encodeSelection(ID(7), "TestTarget"),
	}

	assert.True(t, execCtx.owns(ID(7), "TestTarget"))
	assert.False(t, execCtx.owns(ID(8), "TestTarget"))
	assert.False(t, execCtx.owns(ID(7), "TestOther"))

	driver := execContext{mode: modeDriver}
	assert.False(t, driver.owns(ID(7), "TestTarget"))
}

func TestWithReservedEnv_HookCannotOverride(t *testing.T) {
	env := []string{
		"HOME=/home/user",
		occursEnv + "=stale-selection",
		markerEnv + "=/stale/path",
	}

	got := withReservedEnv(env, "fresh-selection", "/fresh/path")

	assert.Equal(t, []string{
		"HOME=/home/user",
		occursEnv + "=fresh-selection",
		markerEnv + "=/fresh/path",
	}, got)
}
