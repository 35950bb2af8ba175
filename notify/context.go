package notify

// Context is an embeddable ContextHolder exposing its value as the DataContext
// property.
type Context struct {
	value   any
	changed listeners[struct{}]
}

func (c *Context) DataContext() any {
	return c.value
}

// SetDataContext replaces the data context. Subscribers are notified even
// when v equals the previous value.
func (c *Context) SetDataContext(v any) {
	c.value = v
	c.changed.emit(struct{}{})
}

func (c *Context) OnContextChanged(fn func()) func() {
	return c.changed.add(func(struct{}) { fn() })
}

// ContextSubscribers returns the number of live context subscriptions.
func (c *Context) ContextSubscribers() int {
	return c.changed.len()
}
