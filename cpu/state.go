package cpu

import (
	"github.com/ezrec/intcode/memory"
)

// StateKind tags the outcome of a single step.
type StateKind int

//go:generate go tool stringer -linecomment -type=StateKind
const (
	STATE_CONTINUE  = StateKind(0) // continue
	STATE_TERMINATE = StateKind(1) // terminate
	STATE_ERROR     = StateKind(2) // error
)

// State is the outcome of ExecuteOnce.
type State struct {
	Kind      StateKind
	Output    memory.Value // Output value, valid if HasOutput.
	HasOutput bool         // Set if the step produced an output.
	Err       error        // Failure, for STATE_ERROR.
}
