package access

import (
	"reflect"
)

// TypeCompatibility represents the level of compatibility between two types.
type TypeCompatibility int

const (
	// TypeIncompatible means the types cannot be converted without help.
	TypeIncompatible TypeCompatibility = iota
	// TypeNeedsTransform means a pointer has to be lifted or dereferenced first.
	TypeNeedsTransform
	// TypeConvertible means a Go conversion T(v) preserves the meaning of the value.
	TypeConvertible
	// TypeAssignable means the source value can be stored in the target as is.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical      = "identical"
	VerdictAssignable     = "assignable"
	VerdictConvertible    = "convertible"
	VerdictNeedsTransform = "needs_transform"
	VerdictIncompatible   = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeNeedsTransform:
		return VerdictNeedsTransform
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// ScoreTypeCompatibility determines the compatibility between a source and target type.
func ScoreTypeCompatibility(source, target reflect.Type) TypeCompatibility {
	if source == nil || target == nil {
		return TypeIncompatible
	}

	if source == target {
		return TypeIdentical
	}

	if source.AssignableTo(target) {
		return TypeAssignable
	}

	if isMeaningfulConversion(source, target) {
		return TypeConvertible
	}

	if source.Kind() == reflect.Pointer && ScoreTypeCompatibility(source.Elem(), target) >= TypeConvertible {
		return TypeNeedsTransform
	}

	if target.Kind() == reflect.Pointer && ScoreTypeCompatibility(source, target.Elem()) >= TypeConvertible {
		return TypeNeedsTransform
	}

	return TypeIncompatible
}

// isMeaningfulConversion filters reflect's ConvertibleTo down to conversions
// that keep the value: integer to string yields a rune in Go, and slice to
// array panics on short slices, so neither is accepted.
func isMeaningfulConversion(source, target reflect.Type) bool {
	if !source.ConvertibleTo(target) {
		return false
	}

	if target.Kind() == reflect.String && isInteger(source.Kind()) {
		return false
	}

	if source.Kind() == reflect.Slice {
		switch target.Kind() {
		case reflect.Array:
			return false
		case reflect.Pointer:
			return target.Elem().Kind() != reflect.Array
		}
	}

	return true
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}
