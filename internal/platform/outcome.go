package platform

import "fmt"

// OutcomeState distinguishes a process that ran to exit from one that never
// spawned.
type OutcomeState int

const (
	// StateCompleted means the process exited; ExitCode holds its code.
	StateCompleted OutcomeState = iota
	// StateFailed means the process could not be spawned or supervised;
	// Err holds the cause.
	StateFailed
)

// Outcome is the terminal state of a supervised subprocess. Supervision
// never returns spawn errors as Go errors to its caller: every run resolves
// to an Outcome and callers inspect it, so one failed server boot cannot
// crash an orchestrating flow.
type Outcome struct {
	State    OutcomeState
	ExitCode int
	Err      error
}

// Completed builds an Outcome for a process that exited with code.
func Completed(code int) Outcome {
	return Outcome{State: StateCompleted, ExitCode: code}
}

// Failed builds an Outcome for a process that never ran.
func Failed(err error) Outcome {
	return Outcome{State: StateFailed, Err: err}
}

// Success reports a clean exit.
func (o Outcome) Success() bool {
	return o.State == StateCompleted && o.ExitCode == 0
}

// Reason renders the failure for user-facing messages.
func (o Outcome) Reason() string {
	switch o.State {
	case StateFailed:
		return fmt.Sprintf("spawn failed: %v", o.Err)
	default:
		return fmt.Sprintf("exited with code %d", o.ExitCode)
	}
}
