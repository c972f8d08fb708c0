package packager

import "fmt"

// State is a point in the packaging pipeline.
// The pipeline only moves forward; any failure ends the run.
type State int

const (
	// StateStart is the state before arguments are checked.
	StateStart State = iota
	// StateArgsValidated means the build context has been resolved.
	StateArgsValidated
	// StateRuntimeCopied means the runtime library sits in the build location.
	StateRuntimeCopied
	// StateArchiveBuilt means the staged archive has been written.
	StateArchiveBuilt
	// StateDelivered means the archive has been copied to the build location.
	StateDelivered
	// StateDone is the terminal success state.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateArgsValidated:
		return "args-validated"
	case StateRuntimeCopied:
		return "runtime-copied"
	case StateArchiveBuilt:
		return "archive-built"
	case StateDelivered:
		return "delivered"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Error reports the step that failed and the last state reached before it.
type Error struct {
	// State is the last state reached successfully.
	State State
	// Step names the operation that failed.
	Step string
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (after %s): %v", e.Step, e.State, e.Err)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
