package notify

// Properties is an embeddable PropertyNotifier. The zero value is ready to
// use. It is not safe for concurrent use.
type Properties struct {
	changed listeners[string]
}

func (p *Properties) OnPropertyChanged(fn func(name string)) func() {
	return p.changed.add(fn)
}

// Notify tells subscribers that name changed.
func (p *Properties) Notify(name string) {
	p.changed.emit(name)
}

// Subscribers returns the number of live subscriptions.
func (p *Properties) Subscribers() int {
	return p.changed.len()
}

// Set stores v in *field and notifies name, unless the field already holds v.
// It reports whether a change happened.
func Set[T comparable](p *Properties, field *T, v T, name string) bool {
	if *field == v {
		return false
	}

	*field = v
	p.Notify(name)

	return true
}
