// Package coerce converts values between runtime types: registered converters
// first, then primitive conversions, then stringification.
package coerce

import (
	"fmt"
	"reflect"
	"sync"

	"propbind/access"
	"propbind/primitive"
)

type typePair struct {
	from, to reflect.Type
}

// Registry holds registered converters and memoizes the strategy chosen for
// every pair of types it has seen. Like the access cache it is append-only in
// spirit: registrations belong in init functions, and a registration made
// later drops the memoized strategies so they are recomputed.
type Registry struct {
	mu         sync.RWMutex
	cache      *access.Cache
	allowed    primitive.CategoryEnum
	converters map[reflect.Type]TypeConverter
	casters    map[typePair]Caster
	strategies map[typePair]Strategy
}

type Option func(*Registry)

// WithAccessCache makes the registry use c for assignability checks instead
// of the process-wide cache.
func WithAccessCache(c *access.Cache) Option {
	return func(r *Registry) {
		r.cache = c
	}
}

// WithCategories restricts the primitive conversions the registry performs.
func WithCategories(allowed primitive.CategoryEnum) Option {
	return func(r *Registry) {
		r.allowed = allowed
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		cache:      access.Default(),
		allowed:    primitive.CategoryAll,
		converters: make(map[reflect.Type]TypeConverter),
		casters:    make(map[typePair]Caster),
		strategies: make(map[typePair]Strategy),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register maps owner to its converter, replacing any previous one.
func (r *Registry) Register(owner reflect.Type, c TypeConverter) {
	if owner == nil || c == nil {
		panic("coerce: register needs a type and a converter")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.converters[owner] = c
	clear(r.strategies)
}

// RegisterFunc registers plain functions as converters of their own
// parameter and result types. See ParseCaster for the accepted signatures.
func (r *Registry) RegisterFunc(fns ...any) error {
	casters := make([]Caster, 0, len(fns))
	for _, fn := range fns {
		c, err := ParseCaster(fn)
		if err != nil {
			return fmt.Errorf("register %T: %w", fn, err)
		}
		casters = append(casters, c)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range casters {
		r.casters[typePair{c.Src, c.Dst}] = c
	}
	clear(r.strategies)

	return nil
}

// Strategy returns the memoized strategy for the pair.
func (r *Registry) Strategy(from, to reflect.Type) Strategy {
	if from == nil || to == nil {
		return StrategyUnsupported
	}

	key := typePair{from, to}

	r.mu.RLock()
	s, ok := r.strategies[key]
	r.mu.RUnlock()

	if ok {
		return s
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.strategies[key]; ok {
		return s
	}

	s = r.dispatch(from, to)
	r.strategies[key] = s

	return s
}

// IsConvertible reports whether the registered converter facility links the
// pair, in the "construct to" or the "render from" direction.
func (r *Registry) IsConvertible(from, to reflect.Type) bool {
	return r.Strategy(from, to).IsRegistered()
}

// IsAssignable reports whether no conversion is needed at all.
func (r *Registry) IsAssignable(from, to reflect.Type) bool {
	return r.cache.IsAssignable(from, to)
}

// Convert turns value into a value of type to.
//
// A nil value is returned as is, as is a value already assignable to to;
// knownAssignable skips the check. Otherwise the registered converters are
// tried (constructing to, then rendering from), then the primitive path, and
// finally stringification when to is a string kind. Anything else fails with
// a *ConversionError wrapping ErrUnsupportedConversion.
//
// Dispatch always uses the dynamic type of value, from only documents the
// declared type of the source (often an interface).
func (r *Registry) Convert(from, to reflect.Type, value any, knownAssignable bool) (any, error) {
	if value == nil || to == nil || knownAssignable {
		return value, nil
	}

	v := reflect.ValueOf(value)
	if from == nil || v.Type() != from {
		from = v.Type()
	}

	if isNil(v) {
		return value, nil
	}

	out, err := r.convert(v, from, to)
	if err != nil {
		return nil, &ConversionError{From: from, To: to, Err: err}
	}

	return out.Interface(), nil
}

func (r *Registry) convert(v reflect.Value, from, to reflect.Type) (reflect.Value, error) {
	switch s := r.Strategy(from, to); s {
	case StrategyAssign:
		return v, nil

	case StrategyCaster:
		r.mu.RLock()
		c := r.casters[typePair{from, to}]
		r.mu.RUnlock()

		return c.Call(v)

	case StrategyConstruct:
		res, err := r.converter(to).ConvertFrom(v.Interface())
		if err != nil {
			return reflect.Value{}, err
		}
		return r.settle(res, to, s)

	case StrategyRender:
		res, err := r.converter(from).ConvertTo(v.Interface(), to)
		if err != nil {
			return reflect.Value{}, err
		}
		return r.settle(res, to, s)

	case StrategyUnmarshalText:
		return unmarshalText(v, to)

	case StrategyMarshalText:
		return marshalText(v, to)

	case StrategyPrimitive:
		return primitive.Convert(v, to, r.allowed)

	case StrategyConvert:
		return v.Convert(to), nil

	case StrategyDeref:
		if v.IsNil() {
			return reflect.Zero(to), nil
		}
		return r.convert(v.Elem(), from.Elem(), to)

	case StrategyAddress:
		elem, err := r.convert(v, from, to.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(to.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil

	case StrategyStringify:
		return stringify(v, to), nil

	default:
		return reflect.Value{}, ErrUnsupportedConversion
	}
}

func (r *Registry) converter(t reflect.Type) TypeConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.converters[t]
}

// settle checks that a registered converter produced a value of type to.
func (r *Registry) settle(res any, to reflect.Type, s Strategy) (reflect.Value, error) {
	if res == nil {
		return reflect.Zero(to), nil
	}

	v := reflect.ValueOf(res)
	if v.Type().AssignableTo(to) {
		return v, nil
	}

	if v.Type().ConvertibleTo(to) && r.cache.Compatibility(v.Type(), to) >= access.TypeConvertible {
		return v.Convert(to), nil
	}

	return reflect.Value{}, fmt.Errorf("%s converter returned %s: %w", s, v.Type(), ErrUnsupportedConversion)
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a converter to the process-wide registry.
func Register(owner reflect.Type, c TypeConverter) {
	defaultRegistry.Register(owner, c)
}

// RegisterFunc adds casters to the process-wide registry.
func RegisterFunc(fns ...any) error {
	return defaultRegistry.RegisterFunc(fns...)
}

// Convert converts through the process-wide registry.
func Convert(from, to reflect.Type, value any, knownAssignable bool) (any, error) {
	return defaultRegistry.Convert(from, to, value, knownAssignable)
}

// IsConvertible checks the process-wide registry.
func IsConvertible(from, to reflect.Type) bool {
	return defaultRegistry.IsConvertible(from, to)
}
