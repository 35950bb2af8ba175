package coerce

import (
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"propbind/internal/common"
)

var errorType = reflect.TypeFor[error]()

// Caster is a plain Go function registered as the converter of one type pair.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster describes fn as a converter from its parameter type to its
// first result type. Accepted shapes:
//
//	func(S) D
//	func(S) (D, bool)
//	func(S) (D, error)
//	func(S) (D, bool, error)
//
// A false bool means the value was rejected.
func ParseCaster(fn any) (Caster, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	t := v.Type()
	if t.IsVariadic() || t.NumIn() != 1 || t.NumOut() < 1 || t.NumOut() > 3 {
		return Caster{}, ErrIsNotACaster
	}

	c := Caster{Src: t.In(0), Dst: t.Out(0), fn: v}
	if doublePointer(c.Src) || doublePointer(c.Dst) {
		return Caster{}, ErrDoublePointer
	}

	extra := make([]reflect.Type, 0, 2)
	for i := 1; i < t.NumOut(); i++ {
		extra = append(extra, t.Out(i))
	}

	if n := len(extra); n > 0 && isError(extra[n-1]) {
		c.HasErr = true
		extra = extra[:n-1]
	}

	if len(extra) == 1 && extra[0].Kind() == reflect.Bool {
		c.HasBool = true
		extra = extra[1:]
	}

	if len(extra) != 0 {
		return Caster{}, ErrIsNotACaster
	}

	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		pkg, name := common.Pair(strings.SplitN(f.Name(), ".", 2))
		c.PackageAlias, c.Name = common.Second(path.Split(pkg)), name
	}

	return c, nil
}

func doublePointer(t reflect.Type) bool {
	return t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Pointer
}

// Call runs the caster on src. A false bool result is reported as ErrRejected.
func (c Caster) Call(src reflect.Value) (reflect.Value, error) {
	if !c.fn.IsValid() {
		return reflect.Value{}, fmt.Errorf("%s: %w", c, ErrCasterIsNotAFunction)
	}

	if src.Type() != c.Src {
		src = src.Convert(c.Src)
	}

	out := c.fn.Call([]reflect.Value{src})

	if c.HasErr {
		if err := out[len(out)-1]; !err.IsNil() {
			return reflect.Value{}, err.Interface().(error)
		}
	}

	if c.HasBool && !out[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%s: %w", c, ErrRejected)
	}

	return out[0], nil
}

func (c Caster) String() string {
	if c.Name == "" {
		return fmt.Sprintf("func(%s) %s", c.Src, c.Dst)
	}

	return c.PackageAlias + "." + c.Name
}

func isError(t reflect.Type) bool {
	if t == nil {
		return false
	}

	return t.Implements(errorType)
}
