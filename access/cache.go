package access

import (
	"maps"
	"reflect"
	"slices"
	"sync"
)

type accessorKey struct {
	owner reflect.Type
	name  string
}

type typePair struct {
	from, to reflect.Type
}

// Cache memoizes property accessors per (type, name) and compatibility per
// (type, type). Entries are append-only: type metadata never changes while
// the process runs, so a result once computed stays valid. Misses are cached
// too.
//
// Explicit registrations are consulted before reflection and are meant to be
// made from init functions, before the first lookup of the registered type.
type Cache struct {
	mu         sync.RWMutex
	registered map[reflect.Type]map[string]Property
	provided   map[reflect.Type]bool
	accessors  map[accessorKey]*Accessor
	compat     map[typePair]TypeCompatibility
}

// Provider is implemented by types that describe their own properties. A
// cache asks a zero value of the type once, on first lookup. Provided
// properties behave like registered ones, an explicit registration of the
// same name wins.
type Provider interface {
	BindableProperties() []Property
}

var providerType = reflect.TypeFor[Provider]()

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		registered: make(map[reflect.Type]map[string]Property),
		provided:   make(map[reflect.Type]bool),
		accessors:  make(map[accessorKey]*Accessor),
		compat:     make(map[typePair]TypeCompatibility),
	}
}

// Register adds explicit properties for owner. A registered property shadows
// whatever reflection would find under the same name.
func (c *Cache) Register(owner reflect.Type, props ...Property) {
	if owner == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.register(owner, props, true)
}

// register stores props for owner, c.mu held. Existing names are kept
// unless replace is set.
func (c *Cache) register(owner reflect.Type, props []Property, replace bool) {
	byName, ok := c.registered[owner]
	if !ok {
		byName = make(map[string]Property, len(props))
		c.registered[owner] = byName
	}

	for _, p := range props {
		if p.Name == "" || p.Get == nil {
			panic("access: registered property needs a name and a getter")
		}

		if _, exists := byName[p.Name]; exists && !replace {
			continue
		}

		byName[p.Name] = p
		c.accessors[accessorKey{owner, p.Name}] = &Accessor{owner: owner, prop: p}
	}
}

// provide asks owner for its properties once, c.mu held.
func (c *Cache) provide(owner reflect.Type) {
	if c.provided[owner] {
		return
	}
	c.provided[owner] = true

	if owner.Kind() == reflect.Interface || !owner.Implements(providerType) {
		return
	}

	zero := reflect.Zero(owner)
	if owner.Kind() == reflect.Pointer {
		zero = reflect.New(owner.Elem())
	}

	c.register(owner, zero.Interface().(Provider).BindableProperties(), false)
}

// Resolve returns the accessor for name on owner, or nil when the type has no
// such property.
func (c *Cache) Resolve(owner reflect.Type, name string) *Accessor {
	if owner == nil || name == "" {
		return nil
	}

	key := accessorKey{owner, name}

	c.mu.RLock()
	acc, ok := c.accessors[key]
	c.mu.RUnlock()

	if ok {
		return acc
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.provide(owner)

	// another caller may have won the race
	if acc, ok := c.accessors[key]; ok {
		return acc
	}

	if p, ok := c.registered[owner][name]; ok {
		acc = &Accessor{owner: owner, prop: p}
	} else if p, ok := reflectProperty(owner, name); ok {
		acc = &Accessor{owner: owner, prop: p}
	}

	c.accessors[key] = acc

	return acc
}

// ResolveFor resolves name against the runtime type of obj.
func (c *Cache) ResolveFor(obj any, name string) *Accessor {
	if obj == nil {
		return nil
	}

	return c.Resolve(reflect.TypeOf(obj), name)
}

// Names lists every property name the cache can resolve on owner, sorted.
func (c *Cache) Names(owner reflect.Type) []string {
	if owner == nil {
		return nil
	}

	set := make(map[string]struct{})
	for _, n := range reflectNames(owner) {
		set[n] = struct{}{}
	}

	c.mu.Lock()
	c.provide(owner)
	for n := range c.registered[owner] {
		set[n] = struct{}{}
	}
	c.mu.Unlock()

	return slices.Sorted(maps.Keys(set))
}

// Compatibility returns the memoized compatibility level of from and to.
func (c *Cache) Compatibility(from, to reflect.Type) TypeCompatibility {
	if from == nil || to == nil {
		return TypeIncompatible
	}

	key := typePair{from, to}

	c.mu.RLock()
	res, ok := c.compat[key]
	c.mu.RUnlock()

	if ok {
		return res
	}

	res = ScoreTypeCompatibility(from, to)

	c.mu.Lock()
	c.compat[key] = res
	c.mu.Unlock()

	return res
}

// IsAssignable reports whether a value of type from can be stored in a
// location of type to without conversion.
func (c *Cache) IsAssignable(from, to reflect.Type) bool {
	return c.Compatibility(from, to) >= TypeAssignable
}

// Reset drops memoized lookups. Registrations survive, they describe types
// rather than lookups.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accessors = make(map[accessorKey]*Accessor)
	c.compat = make(map[typePair]TypeCompatibility)

	for owner, props := range c.registered {
		for name, p := range props {
			c.accessors[accessorKey{owner, name}] = &Accessor{owner: owner, prop: p}
		}
	}
}

var defaultCache = NewCache()

// Default returns the process-wide cache.
func Default() *Cache {
	return defaultCache
}

// Register adds explicit properties to the process-wide cache.
func Register(owner reflect.Type, props ...Property) {
	defaultCache.Register(owner, props...)
}

// Resolve looks name up on owner in the process-wide cache.
func Resolve(owner reflect.Type, name string) *Accessor {
	return defaultCache.Resolve(owner, name)
}

// IsAssignable checks assignability through the process-wide cache.
func IsAssignable(from, to reflect.Type) bool {
	return defaultCache.IsAssignable(from, to)
}
