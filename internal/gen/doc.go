// Package gen generates property registrations for bindable types.
//
// Generation uses text/template + go/format. For every analyzed struct T the
// output registers one access.Property per property of *T inside an init
// function:
//   - Getters read fields directly or call the getter method
//   - Setters assert the value with access.As, then assign the field or call
//     SetName, returning its error when it has one
//   - Read-only properties get no setter
//
// Registered properties shadow reflection, so behavior is unchanged and
// lookups skip reflect.
package gen
