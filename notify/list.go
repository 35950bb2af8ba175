package notify

import (
	"fmt"
	"iter"
	"slices"
)

//go:generate go tool stringer -type=CollectionAction -output=action_string.go

// CollectionAction names the kind of structural change of a collection.
type CollectionAction int

const (
	CollectionAdd CollectionAction = iota
	CollectionRemove
	CollectionReplace
	CollectionMove
	CollectionReset
)

// CollectionChange describes one change. Indexes are -1 when they do not
// apply: NewIndex for Remove and Reset, OldIndex for Add and Reset.
type CollectionChange struct {
	Action   CollectionAction
	NewIndex int
	OldIndex int
	NewItems []any
	OldItems []any
}

// CountProperty is notified whenever the number of items of a List changes.
const CountProperty = "Count"

// List is an observable ordered collection. Structural changes are reported
// to collection subscribers, and size changes as the Count property.
type List[T any] struct {
	Properties

	items   []T
	changed listeners[CollectionChange]
}

func NewList[T any](items ...T) *List[T] {
	return &List[T]{items: slices.Clone(items)}
}

func (l *List[T]) OnCollectionChanged(fn func(CollectionChange)) func() {
	return l.changed.add(fn)
}

// CollectionSubscribers returns the number of live collection subscriptions.
func (l *List[T]) CollectionSubscribers() int {
	return l.changed.len()
}

// Count returns the number of items.
func (l *List[T]) Count() int {
	return len(l.items)
}

func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Items returns a copy of the items.
func (l *List[T]) Items() []T {
	return slices.Clone(l.items)
}

func (l *List[T]) All() iter.Seq2[int, T] {
	return slices.All(l.items)
}

func (l *List[T]) Append(items ...T) {
	l.Insert(len(l.items), items...)
}

// Insert inserts items at index i, shifting later items up.
func (l *List[T]) Insert(i int, items ...T) {
	if len(items) == 0 {
		return
	}

	l.checkIndex(i, len(l.items))
	l.items = slices.Insert(l.items, i, items...)
	l.emit(CollectionChange{Action: CollectionAdd, NewIndex: i, OldIndex: -1, NewItems: boxed(items)})
}

// RemoveAt removes and returns the item at index i.
func (l *List[T]) RemoveAt(i int) T {
	l.checkIndex(i, len(l.items)-1)

	item := l.items[i]
	l.items = slices.Delete(l.items, i, i+1)
	l.emit(CollectionChange{Action: CollectionRemove, NewIndex: -1, OldIndex: i, OldItems: []any{item}})

	return item
}

// RemoveFunc removes the first item matching pred and reports whether one did.
func (l *List[T]) RemoveFunc(pred func(T) bool) bool {
	i := slices.IndexFunc(l.items, pred)
	if i < 0 {
		return false
	}

	l.RemoveAt(i)

	return true
}

// Set replaces the item at index i.
func (l *List[T]) Set(i int, item T) {
	l.checkIndex(i, len(l.items)-1)

	old := l.items[i]
	l.items[i] = item
	l.emit(CollectionChange{Action: CollectionReplace, NewIndex: i, OldIndex: i, NewItems: []any{item}, OldItems: []any{old}})
}

// Move relocates the item at index from so that it ends up at index to.
func (l *List[T]) Move(from, to int) {
	l.checkIndex(from, len(l.items)-1)
	l.checkIndex(to, len(l.items)-1)

	if from == to {
		return
	}

	item := l.items[from]
	l.items = slices.Insert(slices.Delete(l.items, from, from+1), to, item)
	l.emit(CollectionChange{Action: CollectionMove, NewIndex: to, OldIndex: from, NewItems: []any{item}, OldItems: []any{item}})
}

// Reset replaces the whole content.
func (l *List[T]) Reset(items ...T) {
	l.items = slices.Clone(items)
	l.emit(CollectionChange{Action: CollectionReset, NewIndex: -1, OldIndex: -1})
}

func (l *List[T]) Clear() {
	l.Reset()
}

func (l *List[T]) emit(change CollectionChange) {
	l.changed.emit(change)

	if change.Action != CollectionReplace && change.Action != CollectionMove {
		l.Notify(CountProperty)
	}
}

func (l *List[T]) checkIndex(i, last int) {
	if i < 0 || i > last {
		panic(fmt.Sprintf("notify: index %d out of range [0:%d]", i, last+1))
	}
}

func boxed[T any](items []T) []any {
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}

	return out
}
