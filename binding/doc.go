// Package binding keeps properties of live objects in sync.
//
// A Binding connects a target property, found by a path from an anchor
// object, to a source property found by a path from a source root. The
// source root is the anchor, an element of the anchor's tree or the tree's
// root context, optionally seen through its data context. Values move in the
// direction the Mode allows and pass through an optional Converter and the
// coercion registry on the way.
//
// Bindings react to notify.PropertyNotifier and notify.ContextHolder
// notifications on the goroutine that raised them; nothing is queued. Writes
// caused by a binding never re-enter that binding, so two-way bindings do not
// loop.
//
// A Manager creates bindings from a Config or from a YAML Sheet and can
// Validate either without subscribing to anything.
package binding
