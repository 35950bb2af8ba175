package coerce

import (
	"encoding"
	"fmt"
	"reflect"
)

// TypeConverter is the registered textual or structured converter of one
// owner type. ConvertFrom constructs the owner type from a foreign value,
// ConvertTo renders a value of the owner type as another type.
type TypeConverter interface {
	CanConvertFrom(from reflect.Type) bool
	ConvertFrom(value any) (any, error)
	CanConvertTo(to reflect.Type) bool
	ConvertTo(value any, to reflect.Type) (any, error)
}

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
	stringerType        = reflect.TypeFor[fmt.Stringer]()
)

// Text builds a TypeConverter for T from a parse and a format function. It
// accepts any string kind as input and renders into any string kind.
func Text[T any](parse func(string) (T, error), format func(T) string) TypeConverter {
	return textConverter[T]{parse: parse, format: format}
}

type textConverter[T any] struct {
	parse  func(string) (T, error)
	format func(T) string
}

func (c textConverter[T]) CanConvertFrom(from reflect.Type) bool {
	return c.parse != nil && from != nil && from.Kind() == reflect.String
}

func (c textConverter[T]) ConvertFrom(value any) (any, error) {
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.Kind() != reflect.String {
		return nil, fmt.Errorf("%T: %w", value, ErrUnsupportedConversion)
	}

	return c.parse(v.String())
}

func (c textConverter[T]) CanConvertTo(to reflect.Type) bool {
	return c.format != nil && to != nil && to.Kind() == reflect.String
}

func (c textConverter[T]) ConvertTo(value any, to reflect.Type) (any, error) {
	t, ok := value.(T)
	if !ok || to.Kind() != reflect.String {
		return nil, fmt.Errorf("%T to %s: %w", value, to, ErrUnsupportedConversion)
	}

	return reflect.ValueOf(c.format(t)).Convert(to).Interface(), nil
}

// canUnmarshalText reports whether to can be built by UnmarshalText from a
// string kind.
func canUnmarshalText(from, to reflect.Type) bool {
	return from.Kind() == reflect.String && reflect.PointerTo(to).Implements(textUnmarshalerType)
}

func unmarshalText(value reflect.Value, to reflect.Type) (reflect.Value, error) {
	out := reflect.New(to)
	if err := out.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(value.String())); err != nil {
		return reflect.Value{}, err
	}

	return out.Elem(), nil
}

func canMarshalText(from, to reflect.Type) bool {
	return to.Kind() == reflect.String && from.Implements(textMarshalerType)
}

func marshalText(value reflect.Value, to reflect.Type) (reflect.Value, error) {
	b, err := value.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return reflect.Value{}, err
	}

	return reflect.ValueOf(string(b)).Convert(to), nil
}

// stringify renders value through fmt.Stringer when available, fmt.Sprint
// otherwise, and converts the text into the string kind to.
func stringify(value reflect.Value, to reflect.Type) reflect.Value {
	var s string
	if value.Type().Implements(stringerType) {
		s = value.Interface().(fmt.Stringer).String()
	} else {
		s = fmt.Sprint(value.Interface())
	}

	return reflect.ValueOf(s).Convert(to)
}
