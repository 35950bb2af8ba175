// Package collection projects an observable collection of items into a
// parallel collection of presentation wrappers.
package collection

import (
	"fmt"
	"slices"

	"propbind/notify"
)

// Container receives the wrappers, one per source item, in source order.
type Container[W any] interface {
	Insert(i int, w W)
	RemoveAt(i int)
	Set(i int, w W)
	Clear()
}

// Source is an ordered collection that reports its changes.
type Source[T any] interface {
	notify.CollectionNotifier
	Items() []T
}

type Option[W any] func(*options[W])

type options[W any] struct {
	release func(W)
}

// WithRelease registers a function called once for every wrapper leaving the
// container.
func WithRelease[W any](fn func(W)) Option[W] {
	return func(o *options[W]) {
		o.release = fn
	}
}

// Sync keeps a Container mirroring a Source through a wrapper factory. Add,
// Remove, Replace and Reset are applied one to one; Move panics with
// notify.ErrUnsupportedOperation.
type Sync[T, W any] struct {
	source   Source[T]
	target   Container[W]
	wrap     func(T) W
	release  func(W)
	wrappers []W
	cancel   func()
	disposed bool
}

// New fills target with a wrapper per current item of source and subscribes
// to source changes.
func New[T, W any](source Source[T], target Container[W], wrap func(T) W, opts ...Option[W]) *Sync[T, W] {
	var o options[W]
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sync[T, W]{
		source:  source,
		target:  target,
		wrap:    wrap,
		release: o.release,
	}

	s.fill()
	s.cancel = source.OnCollectionChanged(s.apply)

	return s
}

// Wrappers returns a copy of the live wrappers in order.
func (s *Sync[T, W]) Wrappers() []W {
	return slices.Clone(s.wrappers)
}

// Dispose stops following the source. The container keeps its content.
func (s *Sync[T, W]) Dispose() {
	if s.disposed {
		return
	}

	s.disposed = true
	s.cancel()
}

func (s *Sync[T, W]) apply(change notify.CollectionChange) {
	if s.disposed {
		return
	}

	switch change.Action {
	case notify.CollectionAdd:
		for k, item := range change.NewItems {
			s.insert(change.NewIndex+k, as[T](item))
		}

	case notify.CollectionRemove:
		for range change.OldItems {
			s.remove(change.OldIndex)
		}

	case notify.CollectionReplace:
		for k, item := range change.NewItems {
			i := change.NewIndex + k
			old := s.wrappers[i]
			s.wrappers[i] = s.wrap(as[T](item))
			s.target.Set(i, s.wrappers[i])
			s.drop(old)
		}

	case notify.CollectionReset:
		for _, w := range s.wrappers {
			s.drop(w)
		}
		s.wrappers = nil
		s.target.Clear()
		s.fill()

	case notify.CollectionMove:
		panic(notify.ErrUnsupportedOperation)

	default:
		panic(fmt.Sprintf("collection: unknown action %v", change.Action))
	}
}

func (s *Sync[T, W]) fill() {
	for _, item := range s.source.Items() {
		s.insert(len(s.wrappers), item)
	}
}

func (s *Sync[T, W]) insert(i int, item T) {
	w := s.wrap(item)
	s.wrappers = slices.Insert(s.wrappers, i, w)
	s.target.Insert(i, w)
}

func (s *Sync[T, W]) remove(i int) {
	w := s.wrappers[i]
	s.wrappers = slices.Delete(s.wrappers, i, i+1)
	s.target.RemoveAt(i)
	s.drop(w)
}

func (s *Sync[T, W]) drop(w W) {
	if s.release != nil {
		s.release(w)
	}
}

// as unboxes a collection item; a nil item becomes the zero T.
func as[T any](v any) T {
	t, _ := v.(T)
	return t
}
