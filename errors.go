package fabsheet

import (
	"errors"
	"fmt"
)

// Sentinel errors for generation failure conditions. Only precondition and
// setup failures surface to callers; resolution and layout failures are
// recovered internally and degrade to omitted visual elements.
var (
	ErrNilProduct = errors.New("fabsheet: product record is nil")
	ErrNilWriter  = errors.New("fabsheet: output writer is nil")
)

// RenderError wraps an error from a specific generation phase.
type RenderError struct {
	Op  string // phase name, e.g. "compose", "output"
	Err error  // underlying error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fabsheet.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("fabsheet.%s: unknown error", e.Op)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// renderErr wraps err with phase context, passing nil through.
func renderErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RenderError{Op: op, Err: err}
}
