package binding

import (
	"fmt"
	"maps"
	"slices"
)

// ConverterRegistry maps names used in binding sheets to converters.
type ConverterRegistry struct {
	converters map[string]Converter
}

// NewConverterRegistry creates a new empty converter registry.
func NewConverterRegistry() *ConverterRegistry {
	return &ConverterRegistry{
		converters: make(map[string]Converter),
	}
}

// Add registers c under name. Names are unique.
func (r *ConverterRegistry) Add(name string, c Converter) error {
	if name == "" || c == nil {
		return fmt.Errorf("converter %q: %w", name, ErrInvalidConfig)
	}

	if r.Has(name) {
		return fmt.Errorf("converter %q: %w", name, ErrDuplicateConverter)
	}

	r.converters[name] = c

	return nil
}

// MustAdd is like Add but panics on error.
func (r *ConverterRegistry) MustAdd(name string, c Converter) {
	if err := r.Add(name, c); err != nil {
		panic(err)
	}
}

// Get returns a converter by name, or nil if not found.
func (r *ConverterRegistry) Get(name string) Converter {
	return r.converters[name]
}

// Has returns true if a converter with the given name exists.
func (r *ConverterRegistry) Has(name string) bool {
	_, exists := r.converters[name]
	return exists
}

// Names returns all converter names, sorted.
func (r *ConverterRegistry) Names() []string {
	return slices.Sorted(maps.Keys(r.converters))
}
