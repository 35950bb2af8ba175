package access

import (
	"errors"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"
)

var (
	ErrReadOnly     = errors.New("property is read-only")
	ErrTypeMismatch = errors.New("value type does not match property type")
	ErrNilObject    = errors.New("object is nil")
)

var errorType = reflect.TypeFor[error]()

// Property describes a named, typed value on an object. Get is required,
// a nil Set makes the property read-only.
//
// Generated registration code fills Property values with type-asserting
// closures, reflection fills them with reflect based ones.
type Property struct {
	Name string
	Type reflect.Type
	Get  func(obj any) (any, error)
	Set  func(obj any, value any) error
}

// Accessor is a resolved property of a concrete runtime type.
type Accessor struct {
	owner reflect.Type
	prop  Property
}

// Name returns the property name.
func (a *Accessor) Name() string {
	return a.prop.Name
}

// Type returns the declared type of the property value.
func (a *Accessor) Type() reflect.Type {
	return a.prop.Type
}

// Owner returns the runtime type the accessor was resolved against.
func (a *Accessor) Owner() reflect.Type {
	return a.owner
}

// CanWrite reports whether Set may succeed.
func (a *Accessor) CanWrite() bool {
	return a.prop.Set != nil
}

// Get reads the property from obj.
func (a *Accessor) Get(obj any) (any, error) {
	if isNil(obj) {
		return nil, ErrNilObject
	}

	return a.prop.Get(obj)
}

// Set writes value into the property of obj.
func (a *Accessor) Set(obj any, value any) error {
	if isNil(obj) {
		return ErrNilObject
	}

	if a.prop.Set == nil {
		return fmt.Errorf("%s.%s: %w", a.owner, a.prop.Name, ErrReadOnly)
	}

	return a.prop.Set(obj, value)
}

// isNil catches typed nil pointers before they reach a generated closure.
func isNil(obj any) bool {
	if obj == nil {
		return true
	}

	v := reflect.ValueOf(obj)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// reflectProperty looks the property up on t. Getter methods (Name) win over
// fields, a SetName method is used as the setter when its parameter matches.
// A field's setter is named after the field, not after its bind tag.
func reflectProperty(t reflect.Type, name string) (Property, bool) {
	if !isExported(name) {
		return Property{}, false
	}

	if m, ok := t.MethodByName(name); ok && name != ProviderMethod && isGetter(m.Type) {
		prop := Property{
			Name: name,
			Type: m.Type.Out(0),
			Get:  methodGetter(m),
		}
		if s, ok := t.MethodByName("Set" + name); ok && isSetter(s.Type, prop.Type) {
			prop.Set = methodSetter(s)
		}

		return prop, true
	}

	f, ok := fieldByProperty(t, name)
	if !ok {
		return Property{}, false
	}

	prop := Property{
		Name: name,
		Type: f.Type,
		Get:  fieldGetter(f.Index),
	}

	if s, ok := t.MethodByName("Set" + f.Name); ok && isSetter(s.Type, f.Type) {
		prop.Set = methodSetter(s)
	} else if t.Kind() == reflect.Pointer {
		prop.Set = fieldSetter(f.Index, f.Type)
	}

	return prop, true
}

// ProviderMethod is the Provider method, never a property itself.
const ProviderMethod = "BindableProperties"

// TagName is the struct tag renaming (`bind:"Name"`) or hiding (`bind:"-"`)
// a field property.
const TagName = "bind"

// PropertyName returns the property name of an exported field, or "" when
// the field is hidden.
func PropertyName(f reflect.StructField) string {
	if !f.IsExported() || f.Anonymous {
		return ""
	}

	switch tag := f.Tag.Get(TagName); tag {
	case "":
		return f.Name
	case "-":
		return ""
	default:
		return tag
	}
}

// fieldByProperty finds the field exposed as property name. Like selectors,
// the shallowest field wins and two at the same depth cancel out.
func fieldByProperty(t reflect.Type, name string) (reflect.StructField, bool) {
	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}

	if st.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}

	var (
		found reflect.StructField
		depth = -1
		dup   bool
	)

	for _, f := range reflect.VisibleFields(st) {
		if PropertyName(f) != name {
			continue
		}

		switch d := len(f.Index); {
		case depth < 0 || d < depth:
			found, depth, dup = f, d, false
		case d == depth:
			dup = true
		}
	}

	return found, depth >= 0 && !dup
}

// reflectNames lists the property names reflection can resolve on t.
func reflectNames(t reflect.Type) []string {
	var names []string

	for i := range t.NumMethod() {
		m := t.Method(i)
		if m.Name != ProviderMethod && isGetter(m.Type) {
			names = append(names, m.Name)
		}
	}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}

	if st.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(st) {
			if name := PropertyName(f); name != "" {
				if _, ok := fieldByProperty(t, name); ok {
					names = append(names, name)
				}
			}
		}
	}

	return names
}

func isExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// isGetter checks for func(recv) T, the receiver being the first input.
func isGetter(mt reflect.Type) bool {
	return mt.NumIn() == 1 && mt.NumOut() == 1 && mt.Out(0) != errorType
}

// isSetter checks for func(recv, T) or func(recv, T) error.
func isSetter(mt reflect.Type, valueType reflect.Type) bool {
	if mt.NumIn() != 2 || mt.In(1) != valueType {
		return false
	}

	switch mt.NumOut() {
	case 0:
		return true
	case 1:
		return mt.Out(0) == errorType
	default:
		return false
	}
}

func methodGetter(m reflect.Method) func(obj any) (any, error) {
	return func(obj any) (any, error) {
		recv := reflect.ValueOf(obj)
		if recv.Kind() == reflect.Pointer && recv.IsNil() {
			return nil, ErrNilObject
		}

		return m.Func.Call([]reflect.Value{recv})[0].Interface(), nil
	}
}

func methodSetter(m reflect.Method) func(obj any, value any) error {
	valueType := m.Type.In(1)

	return func(obj any, value any) error {
		recv := reflect.ValueOf(obj)
		if recv.Kind() == reflect.Pointer && recv.IsNil() {
			return ErrNilObject
		}

		v, err := assignableValue(value, valueType)
		if err != nil {
			return err
		}

		out := m.Func.Call([]reflect.Value{recv, v})
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}

		return nil
	}
}

func fieldGetter(index []int) func(obj any) (any, error) {
	return func(obj any) (any, error) {
		f, err := fieldByIndex(obj, index)
		if err != nil {
			return nil, err
		}

		if !f.CanInterface() {
			return nil, fmt.Errorf("field %v is not accessible", index)
		}

		return f.Interface(), nil
	}
}

func fieldSetter(index []int, fieldType reflect.Type) func(obj any, value any) error {
	return func(obj any, value any) error {
		f, err := fieldByIndex(obj, index)
		if err != nil {
			return err
		}

		if !f.CanSet() {
			return ErrReadOnly
		}

		v, err := assignableValue(value, fieldType)
		if err != nil {
			return err
		}

		f.Set(v)
		return nil
	}
}

func fieldByIndex(obj any, index []int) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, ErrNilObject
		}
		v = v.Elem()
	}

	f, err := v.FieldByIndexErr(index)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %w", ErrNilObject, err)
	}

	return f, nil
}

// As asserts value to T for generated setters. Nil yields the zero value.
func As[T any](value any) (T, error) {
	if value == nil {
		var zero T
		return zero, nil
	}

	v, ok := value.(T)
	if !ok {
		return v, fmt.Errorf("%w: %T is not assignable to %s", ErrTypeMismatch, value, reflect.TypeFor[T]())
	}

	return v, nil
}

func assignableValue(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(to), nil
	}

	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(to) {
		return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrTypeMismatch, v.Type(), to)
	}

	return v, nil
}
