package binding

import (
	"propbind/notify"
	"propbind/propath"
)

// doc is a notifying view model.
type doc struct {
	notify.Properties

	Title string
	Pages int
	Meta  *meta

	writes int
}

func (d *doc) SetTitle(v string) {
	d.writes++
	notify.Set(&d.Properties, &d.Title, v, "Title")
}

func (d *doc) SetMeta(m *meta) {
	d.Meta = m
	d.Notify("Meta")
}

type meta struct {
	notify.Properties

	Author string
}

func (m *meta) SetAuthor(v string) {
	notify.Set(&m.Properties, &m.Author, v, "Author")
}

// label is a notifying view element with a data context.
type label struct {
	notify.Properties
	notify.Context

	Text  string
	Width int
	Tag   any

	writes int
	tags   int
}

func (l *label) SetText(v string) {
	l.writes++
	notify.Set(&l.Properties, &l.Text, v, "Text")
}

func (l *label) SetTag(v any) {
	l.tags++
	l.Tag = v
}

// Length is read-only.
func (l *label) Length() int {
	return len(l.Text)
}

// plain does not notify.
type plain struct {
	Value int
}

type testTree struct {
	names map[string]any
	root  any
}

func (t testTree) FindName(_ any, name string) any {
	return t.names[name]
}

func (t testTree) RootContext(any) any {
	return t.root
}

func cfg(target, source string, mode Mode) Config {
	return Config{
		TargetPath: propath.MustParse(target),
		SourcePath: propath.MustParse(source),
		Mode:       mode,
	}
}

// viewOf returns a label whose data context is ctx.
func viewOf(ctx any) *label {
	l := &label{}
	l.SetDataContext(ctx)

	return l
}
