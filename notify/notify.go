// Package notify defines the change-notification capabilities bindings
// consume, and embeddable helpers that implement them.
//
// Every subscription returns a cancel function. Calling it more than once is
// harmless.
package notify

import (
	"errors"
	"maps"
	"slices"
)

// DefaultDataContextProperty is the property read from a context holder
// unless it names another one through DataContextNamer.
const DefaultDataContextProperty = "DataContext"

// ErrUnsupportedOperation is the panic value raised when a reorder reaches a
// consumer that cannot honour it.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// PropertyNotifier reports property changes by name. An empty name means
// every property may have changed.
type PropertyNotifier interface {
	OnPropertyChanged(fn func(name string)) (cancel func())
}

// ContextHolder reports that its data context was replaced.
type ContextHolder interface {
	OnContextChanged(fn func()) (cancel func())
}

// DataContextNamer lets a context holder expose its data context under a
// property name other than DefaultDataContextProperty.
type DataContextNamer interface {
	DataContextProperty() string
}

// CollectionNotifier reports structural changes of an ordered collection.
type CollectionNotifier interface {
	OnCollectionChanged(fn func(CollectionChange)) (cancel func())
}

// DataContextProperty returns the data context property name of holder.
func DataContextProperty(holder any) string {
	if n, ok := holder.(DataContextNamer); ok {
		if name := n.DataContextProperty(); name != "" {
			return name
		}
	}

	return DefaultDataContextProperty
}

// listeners is an id-keyed set of callbacks, invoked in subscription order.
type listeners[T any] struct {
	fns    map[int]func(T)
	nextID int
}

func (l *listeners[T]) add(fn func(T)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}

	id := l.nextID
	l.nextID++
	l.fns[id] = fn

	return func() {
		delete(l.fns, id)
	}
}

// emit calls the listeners registered when emit starts; a listener removed by
// an earlier one in the same round is skipped.
func (l *listeners[T]) emit(v T) {
	for _, id := range slices.Sorted(maps.Keys(l.fns)) {
		if fn, ok := l.fns[id]; ok {
			fn(v)
		}
	}
}

func (l *listeners[T]) len() int {
	return len(l.fns)
}
