// Package access resolves named properties on runtime types and memoizes the
// results.
//
// A property is found, in order, among:
//   - explicit registrations (see Register, used by bindgen output) and
//     properties a type provides itself (see Provider)
//   - getter methods `Name() T`, paired with an optional `SetName(T)` or
//     `SetName(T) error` setter
//   - exported struct fields, writable when the object is a pointer; the
//     `bind:"Name"` tag renames a field property and `bind:"-"` hides it
//
// Key types:
//   - Cache: process-wide, append-only memo of accessors and type compatibility
//   - Accessor: reads and writes one property of one runtime type
//   - TypeCompatibility: identical > assignable > convertible > needs transform > incompatible
package access
