package propath

import (
	"reflect"

	"propbind/access"
)

// Resolve walks p from root through the process-wide accessor cache. With
// excludeLast it stops one segment short and returns the holder of the final
// property. A nil object anywhere along the walk, an unknown name or a failed
// read yield nil.
func Resolve(root any, p Path, excludeLast bool) any {
	return ResolveWith(access.Default(), root, p, excludeLast)
}

// ResolveWith is Resolve over an explicit cache.
func ResolveWith(cache *access.Cache, root any, p Path, excludeLast bool) any {
	if excludeLast {
		p = p.Parent()
	}

	current := root
	for _, name := range p {
		if IsNil(current) {
			return nil
		}

		acc := cache.ResolveFor(current, name)
		if acc == nil {
			return nil
		}

		v, err := acc.Get(current)
		if err != nil {
			return nil
		}

		current = v
	}

	if IsNil(current) {
		return nil
	}

	return current
}

// Hop is one step of a traced walk: the object holding a property, the
// resolved accessor (nil when the name is unknown on the holder) and the
// value read from it.
type Hop struct {
	Name     string
	Holder   any
	Accessor *access.Accessor
	Value    any
}

// Trace walks the whole of p and records every hop it could take. The walk
// stops at the first nil holder or unresolved name; that hop is still
// reported, with a nil Accessor.
func Trace(cache *access.Cache, root any, p Path) []Hop {
	hops := make([]Hop, 0, len(p))

	current := root
	for _, name := range p {
		if IsNil(current) {
			break
		}

		hop := Hop{Name: name, Holder: current, Accessor: cache.ResolveFor(current, name)}
		if hop.Accessor != nil {
			if v, err := hop.Accessor.Get(current); err == nil {
				hop.Value = v
			}
		}

		hops = append(hops, hop)
		if hop.Accessor == nil {
			break
		}

		current = hop.Value
	}

	return hops
}

// Holders returns the objects holding each segment of p except the last, in
// walk order. It is what a binding subscribes to so that replacing an
// intermediate object re-resolves the path.
func Holders(cache *access.Cache, root any, p Path) []any {
	var holders []any
	for _, hop := range Trace(cache, root, p.Parent()) {
		holders = append(holders, hop.Holder)
	}

	return holders
}

// IsNil reports whether v is nil or a nil pointer, map, slice, func,
// channel or interface held in an interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
