package forktest

import (
	"fmt"
	"regexp"
	"strings"
)

// Flags of the `go test` harness that the driver must own in the child
// invocation. Anything the parent was given for these would either
// select the wrong tests, rerun the child repeatedly, or change how the
// child terminates, so they are stripped before the driver appends its
// own selection. paniconexit0 in particular would turn a raw exit(0) in
// the body into a panic and a nonzero exit, masking the
// exited-without-completing verdict. The value records whether the flag
// consumes a following token when given in two-token form.
var strippedTestFlags = map[string]bool{
	"test.run":          true,
	"test.count":        true,
	"test.list":         true,
	"test.parallel":     true,
	"test.paniconexit0": false,
}

// childArgs rebuilds the harness arguments for the child process:
// the parent's arguments minus selection-related flags, plus a filter
// that runs exactly the named test once.
func childArgs(parentArgs []string, testName string) []string {
	return append(filterTestArgs(parentArgs), SelectionArgs(testName)...)
}

// SelectionArgs returns the harness arguments that constrain a Go test
// binary to run exactly the named test, once. Harnesses supervising
// foreign test binaries use this to request single-test runs.
func SelectionArgs(testName string) []string {
	return []string{
		fmt.Sprintf("-test.run=%s", exactRunPattern(testName)),
		"-test.count=1",
	}
}

// filterTestArgs drops stripped flags, handling both the single-token
// `-test.run=x` form the go tool produces and the two-token
// `-test.run x` form of a manual invocation.
func filterTestArgs(parentArgs []string) []string {
	args := make([]string, 0, len(parentArgs))

	skipNext := false
	for _, arg := range parentArgs {
		if skipNext {
			skipNext = false
			continue
		}

		name, hasValue := splitFlag(arg)
		if name == "" {
			args = append(args, arg)
			continue
		}

		takesValue, strip := strippedTestFlags[name]
		if !strip {
			args = append(args, arg)
			continue
		}

		if takesValue && !hasValue {
			skipNext = true
		}
	}

	return args
}

// splitFlag extracts the flag name from a command-line token, or ""
// when the token is not a flag.
func splitFlag(arg string) (name string, hasValue bool) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
	if trimmed == arg {
		return "", false
	}

	name, _, hasValue = strings.Cut(trimmed, "=")

	return name, hasValue
}

// exactRunPattern anchors every path element of a test name so the
// -test.run filter matches that test and nothing else. Subtest names
// are matched per path segment, mirroring how the harness applies the
// pattern.
func exactRunPattern(testName string) string {
	parts := strings.Split(testName, "/")
	for i, part := range parts {
		parts[i] = "^" + regexp.QuoteMeta(part) + "$"
	}

	return strings.Join(parts, "/")
}
