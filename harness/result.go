// Package harness runs benchmark suites: it discovers routines, executes
// them in a shuffled interleaved schedule, and turns the accumulated
// timings into a ranked result table.
package harness

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRoutines is returned when a suite has no member matching the
	// routine prefix.
	ErrNoRoutines = errors.New("no routines found")

	// ErrNotRun is returned by Table before a run has completed.
	ErrNotRun = errors.New("benchmark has not completed a run")
)

// ExecutionError reports a routine or hook that failed during a run.
type ExecutionError struct {
	Suite  string
	Member string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("suite %s: %s: %v", e.Suite, e.Member, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// HookMode is the per-iteration hook pattern chosen for a run.
type HookMode int

// The four execution patterns, decided once per run.
const (
	HookNone HookMode = iota
	HookSetUpOnly
	HookTearDownOnly
	HookBoth
)

func (m HookMode) String() string {
	switch m {
	case HookSetUpOnly:
		return "setup-only"
	case HookTearDownOnly:
		return "teardown-only"
	case HookBoth:
		return "setup-and-teardown"
	default:
		return "none"
	}
}
