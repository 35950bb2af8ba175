package collection

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/notify"
)

type wrapper struct {
	item string
}

// panel records what the synchronizer does to it.
type panel struct {
	children []*wrapper
	removed  []*wrapper
	clears   int
}

func (p *panel) Insert(i int, w *wrapper) {
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = w
}

func (p *panel) RemoveAt(i int) {
	p.removed = append(p.removed, p.children[i])
	p.children = append(p.children[:i], p.children[i+1:]...)
}

func (p *panel) Set(i int, w *wrapper) {
	p.removed = append(p.removed, p.children[i])
	p.children[i] = w
}

func (p *panel) Clear() {
	p.children = nil
	p.clears++
}

func (p *panel) items() []string {
	out := make([]string, len(p.children))
	for i, w := range p.children {
		out[i] = w.item
	}
	return out
}

func wrap(s string) *wrapper { return &wrapper{item: s} }

func TestSync_RemoveThenInsert(t *testing.T) {
	src := notify.NewList("A", "B", "C")
	dst := &panel{}

	var released []*wrapper
	s := New(src, dst, wrap, WithRelease(func(w *wrapper) { released = append(released, w) }))
	defer s.Dispose()

	require.Equal(t, []string{"A", "B", "C"}, dst.items())
	wA, wB, wC := dst.children[0], dst.children[1], dst.children[2]

	src.RemoveAt(1)
	assert.Equal(t, []*wrapper{wA, wC}, dst.children)
	assert.Equal(t, []*wrapper{wB}, dst.removed, "wB leaves the container exactly once")
	assert.Equal(t, []*wrapper{wB}, released)

	src.Insert(1, "D")
	assert.Equal(t, []string{"A", "D", "C"}, dst.items())
	assert.Same(t, wA, dst.children[0])
	assert.Same(t, wC, dst.children[2])
	assert.Equal(t, dst.children, s.Wrappers())
}

func TestSync_ReplaceAndReset(t *testing.T) {
	src := notify.NewList("A", "B")
	dst := &panel{}
	releases := 0

	s := New(src, dst, wrap, WithRelease(func(*wrapper) { releases++ }))
	defer s.Dispose()

	src.Set(0, "Z")
	assert.Equal(t, []string{"Z", "B"}, dst.items())
	assert.Equal(t, 1, releases)

	src.Append("C", "D")
	assert.Equal(t, []string{"Z", "B", "C", "D"}, dst.items())

	src.Reset("X")
	assert.Equal(t, []string{"X"}, dst.items())
	assert.Equal(t, 1, dst.clears)
	assert.Equal(t, 5, releases)
}

func TestSync_MovePanics(t *testing.T) {
	src := notify.NewList("A", "B", "C")
	dst := &panel{}
	s := New(src, dst, wrap)
	defer s.Dispose()

	assert.PanicsWithValue(t, notify.ErrUnsupportedOperation, func() {
		src.Move(0, 2)
	})
}

func TestSync_Dispose(t *testing.T) {
	src := notify.NewList("A")
	dst := &panel{}
	s := New(src, dst, wrap)

	s.Dispose()
	s.Dispose()

	src.Append("B")
	assert.Equal(t, []string{"A"}, dst.items())
	assert.Zero(t, src.CollectionSubscribers())
}

func TestSync_ReplaceReleasesDetachedWrapper(t *testing.T) {
	src := notify.NewList("A", "B")
	dst := &panel{}

	var attached []bool
	s := New(src, dst, wrap, WithRelease(func(w *wrapper) {
		attached = append(attached, slices.Contains(dst.children, w))
	}))
	defer s.Dispose()

	old := dst.children[1]

	src.Set(1, "Z")
	assert.Equal(t, []string{"A", "Z"}, dst.items())
	assert.Equal(t, []*wrapper{old}, dst.removed)
	assert.Equal(t, []bool{false}, attached)
}
