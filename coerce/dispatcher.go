package coerce

import (
	"reflect"

	"propbind/access"
	"propbind/primitive"
)

//go:generate go tool stringer -type=Strategy -trimprefix=Strategy -output=strategy_string.go

// Strategy is the way a value of one type is turned into another.
type Strategy int

const (
	StrategyUnsupported   Strategy = iota
	StrategyAssign                 // assignable as is
	StrategyCaster                 // registered func for the exact pair
	StrategyConstruct              // converter registered on the target type
	StrategyUnmarshalText          // target implements encoding.TextUnmarshaler
	StrategyRender                 // converter registered on the source type
	StrategyMarshalText            // source implements encoding.TextMarshaler
	StrategyPrimitive              // primitive kinds, see package primitive
	StrategyConvert                // Go conversion T(v)
	StrategyDeref                  // source pointer is dereferenced first
	StrategyAddress                // converted into the target element, then addressed
	StrategyStringify              // textual target, fmt.Stringer or fmt.Sprint

	// StrategyTotal is a constant that represents the total number of strategies defined
	StrategyTotal = int(iota)
)

// IsRegistered reports whether the strategy goes through the registered
// converter facility, explicit or implied by the text interfaces.
func (s Strategy) IsRegistered() bool {
	switch s {
	case StrategyCaster, StrategyConstruct, StrategyUnmarshalText, StrategyRender, StrategyMarshalText:
		return true
	default:
		return false
	}
}

// dispatch picks the first strategy able to convert from into to. The order
// is: assignment, registered construction of to, registered rendering of
// from, the generic primitive path, stringification.
func (r *Registry) dispatch(from, to reflect.Type) Strategy {
	if r.cache.IsAssignable(from, to) {
		return StrategyAssign
	}

	if s := r.dispatchRegistered(from, to); s != StrategyUnsupported {
		return s
	}

	if primitive.CanConvert(from, to, r.allowed) {
		return StrategyPrimitive
	}

	if r.cache.Compatibility(from, to) == access.TypeConvertible {
		return StrategyConvert
	}

	textual := to.Kind() == reflect.String
	if textual && from.Implements(stringerType) {
		return StrategyStringify
	}

	if from.Kind() == reflect.Pointer && r.dispatch(from.Elem(), to) != StrategyUnsupported {
		return StrategyDeref
	}

	if to.Kind() == reflect.Pointer && r.dispatch(from, to.Elem()) != StrategyUnsupported {
		return StrategyAddress
	}

	if textual {
		return StrategyStringify
	}

	return StrategyUnsupported
}

func (r *Registry) dispatchRegistered(from, to reflect.Type) Strategy {
	if _, ok := r.casters[typePair{from, to}]; ok {
		return StrategyCaster
	}

	if c, ok := r.converters[to]; ok && c.CanConvertFrom(from) {
		return StrategyConstruct
	}

	if canUnmarshalText(from, to) {
		return StrategyUnmarshalText
	}

	if c, ok := r.converters[from]; ok && c.CanConvertTo(to) {
		return StrategyRender
	}

	if canMarshalText(from, to) {
		return StrategyMarshalText
	}

	return StrategyUnsupported
}
