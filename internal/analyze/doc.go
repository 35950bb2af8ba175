// Package analyze loads Go packages and finds the structs whose properties
// bindgen registers.
//
// It uses golang.org/x/tools/go/packages with go/types to build an
// in-memory model of each exported struct's bindable properties, following
// the same rules the access package applies at runtime.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: a bindable struct and its properties
//   - PropertyInfo: property name, member, type and how it is written
package analyze
