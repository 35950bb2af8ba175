package binding

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig      = errors.New("invalid binding config")
	ErrWriteFailure       = errors.New("write failure")
	ErrUnknownConverter   = errors.New("unknown converter")
	ErrDuplicateConverter = errors.New("converter already registered")
)

// Op names the step a WriteError happened in.
type Op string

const (
	OpUpdateTarget Op = "update target"
	OpUpdateSource Op = "update source"
	OpFallback     Op = "apply fallback"
	OpCopySource   Op = "copy source object"
)

// WriteError is a failed propagation step. Bindings log it and carry on.
type WriteError struct {
	Op       Op
	Property string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Property, e.Err)
}

// Unwrap returns both ErrWriteFailure and the cause, so errors.Is matches
// either.
func (e *WriteError) Unwrap() []error {
	return []error{ErrWriteFailure, e.Err}
}
