package coerce

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrRejected              = errors.New("converter rejected the value")

	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
)

// ConversionError reports a failed conversion between two types.
type ConversionError struct {
	From, To reflect.Type
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s to %s: %v", typeName(e.From), typeName(e.To), e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
