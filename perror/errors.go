// Package perror defines the typed error kinds shared by every pipeline
// stage. It is a leaf package so both the stage packages (zone, synth,
// erosion, hydrology, detail) and the top-level pipeline package can
// depend on it without a cycle.
package perror

import "fmt"

// Kind classifies a pipeline error.
type Kind int

const (
	// InvalidParameter: caller-supplied value out of range.
	InvalidParameter Kind = iota
	// NumericInstability: a stage produced NaN/Inf that clamping could not
	// repair; reserved for true programming errors.
	NumericInstability
	// OutOfMemory: allocation of a working grid failed.
	OutOfMemory
)

func (k Kind) String() string {
	switch k {
	case InvalidParameter:
		return "InvalidParameter"
	case NumericInstability:
		return "NumericInstability"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// Error is the single error type the pipeline returns. A missed
// buildability target is intentionally not a Kind here: it is a warning
// recorded in the statistics record, not a returned error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // optional wrapped cause
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
