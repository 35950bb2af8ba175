package binding

import (
	"reflect"

	"propbind/propath"
)

// Config describes one binding. It is not modified by the binding.
type Config struct {
	// TargetPath leads from the anchor to the target property, at least one segment.
	TargetPath propath.Path
	// SourcePath leads from the source root to the source property. Empty binds
	// the source root itself.
	SourcePath propath.Path
	Mode       Mode

	SourceResolver SourceResolverKind
	// ElementName is looked up in the tree when SourceResolver is SourceNamedElement.
	ElementName string
	DataContext DataContextResolverKind

	Converter          Converter
	ConverterParameter any
	Culture            string

	// FallbackValue is written to the target while the source property cannot
	// be resolved. Nil disables it.
	FallbackValue any
}

// Converter transforms values between the source and the target
// representation. Convert runs source to target, ConvertBack the reverse.
type Converter interface {
	Convert(value any, targetType reflect.Type, parameter any, culture string) (any, error)
	ConvertBack(value any, targetType reflect.Type, parameter any, culture string) (any, error)
}

// ConvertFunc is the signature of either direction of a Converter.
type ConvertFunc func(value any, targetType reflect.Type, parameter any, culture string) (any, error)

// ConverterFuncs adapts a pair of functions to Converter. A nil direction
// passes values through unchanged.
type ConverterFuncs struct {
	Forward ConvertFunc
	Back    ConvertFunc
}

func (c ConverterFuncs) Convert(value any, targetType reflect.Type, parameter any, culture string) (any, error) {
	if c.Forward == nil {
		return value, nil
	}

	return c.Forward(value, targetType, parameter, culture)
}

func (c ConverterFuncs) ConvertBack(value any, targetType reflect.Type, parameter any, culture string) (any, error) {
	if c.Back == nil {
		return value, nil
	}

	return c.Back(value, targetType, parameter, culture)
}

// Tree gives bindings access to the tree their anchor lives in. Both lookups
// return nil when nothing is found.
type Tree interface {
	FindName(anchor any, name string) any
	RootContext(anchor any) any
}
