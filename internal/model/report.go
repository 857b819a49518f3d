// Package model defines the data structures for isolated test runs.
package model

import "time"

// Status classifies the outcome of one isolated test launch.
type Status int

const (
	// Passed indicates the test's child process exited cleanly.
	Passed Status = iota
	// Failed indicates the child exited abnormally: nonzero code,
	// signal, incomplete body, or timeout.
	Failed
	// Errored indicates the harness itself could not run or supervise
	// the child. Kept separate from Failed so a broken harness never
	// reads as a failing test.
	Errored
)

func (s Status) String() string {
	switch s {
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	case Errored:
		return "errored"
	}

	return "unknown"
}

// Report is the verdict for a single test.
type Report struct {
	Test    string        `yaml:"test"`
	Status  Status        `yaml:"status"`
	Reason  string        `yaml:"reason,omitempty"`
	Elapsed time.Duration `yaml:"elapsed"`
	Output  string        `yaml:"output,omitempty"`
}

// RunReport aggregates one full run over a test binary.
type RunReport struct {
	Binary    string        `yaml:"binary"`
	StartedAt time.Time     `yaml:"started_at"`
	Elapsed   time.Duration `yaml:"elapsed"`
	Reports   []Report      `yaml:"reports"`
}

// Counts tallies the reports by status.
func (r RunReport) Counts() (passed, failed, errored int) {
	for _, report := range r.Reports {
		switch report.Status {
		case Passed:
			passed++
		case Failed:
			failed++
		case Errored:
			errored++
		}
	}

	return passed, failed, errored
}

// AllPassed reports whether every test in the run passed.
func (r RunReport) AllPassed() bool {
	passed, failed, errored := r.Counts()

	return failed == 0 && errored == 0 && passed == len(r.Reports)
}

// MarshalYAML stores the status as its readable name.
func (s Status) MarshalYAML() (any, error) {
	return s.String(), nil
}

// UnmarshalYAML accepts the readable names written by MarshalYAML.
func (s *Status) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	switch name {
	case "passed":
		*s = Passed
	case "failed":
		*s = Failed
	default:
		*s = Errored
	}

	return nil
}
