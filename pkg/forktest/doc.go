// Package forktest runs test bodies in fresh child processes so that a
// crash, abort, panic, or hang in one test cannot take down the test
// binary or any other test.
//
// The usual entry point is RunTest:
//
//	func TestRiskyThing(t *testing.T) {
//		forktest.RunTest(t, func() {
//			mightAbortTheProcess()
//		})
//	}
//
// When the test binary runs TestRiskyThing normally it acts as the
// driver: it re-invokes itself constrained to that single test, waits
// for the child, and fails the test if the child exits abnormally. In
// the re-invoked child the same call runs the body directly. The two
// invocations are told apart through a reserved environment variable
// read once at process startup.
//
// Verdicts are based on two signals: the child's exit status and a
// completion marker file the child writes only after the body returns.
// A child that exits zero without writing the marker (for example via a
// bare os.Exit(0)) is still reported as a failure.
//
// Fork is the lower-level entry point for callers that need to
// customize the child command or the supervision policy.
package forktest
