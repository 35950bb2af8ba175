package binding

import (
	"fmt"
	"log/slog"
	"slices"

	"propbind/access"
	"propbind/coerce"
)

// Manager owns live bindings. Every Bind creates exactly one Binding, which
// stays registered until it is disposed, through the manager or directly.
type Manager struct {
	env        environment
	converters *ConverterRegistry
	names      *nameStem
	bindings   []*Binding
}

type Option func(*Manager)

// WithTree sets the tree used for SourceNamedElement and SourceRootContext.
func WithTree(t Tree) Option {
	return func(m *Manager) {
		m.env.tree = t
	}
}

// WithRegistry sets the coercion registry. Defaults to coerce.Default().
func WithRegistry(r *coerce.Registry) Option {
	return func(m *Manager) {
		m.env.registry = r
	}
}

// WithAccessCache sets the property cache. Defaults to access.Default().
func WithAccessCache(c *access.Cache) Option {
	return func(m *Manager) {
		m.env.cache = c
	}
}

// WithConverters sets the named converters binding sheets refer to.
func WithConverters(c *ConverterRegistry) Option {
	return func(m *Manager) {
		m.converters = c
	}
}

// WithLogger overrides the package logger for this manager's bindings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.env.logger = l
	}
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		env: environment{
			cache:    access.Default(),
			registry: coerce.Default(),
		},
		converters: NewConverterRegistry(),
		names:      newStem("binding", nil),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Converters returns the named converter registry.
func (m *Manager) Converters() *ConverterRegistry {
	return m.converters
}

// Bind creates a binding between anchor and the source cfg describes. It
// fails only for configurations no binding can be made of; unresolved
// properties yield an active binding that writes nothing.
func (m *Manager) Bind(anchor any, cfg Config) (*Binding, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	b := newBinding(m.names.Next(), anchor, cfg, &m.env)
	b.onDispose = func() { m.forget(b) }
	m.bindings = append(m.bindings, b)

	return b, nil
}

// BindSheet creates a binding per sheet entry, resolving converter names
// against the manager's registry. On error, bindings created so far are
// disposed.
func (m *Manager) BindSheet(anchor any, s *Sheet) ([]*Binding, error) {
	configs, err := s.Configs(m.converters)
	if err != nil {
		return nil, err
	}

	out := make([]*Binding, 0, len(configs))
	for i, cfg := range configs {
		b, err := m.Bind(anchor, cfg)
		if err != nil {
			for _, done := range out {
				done.Dispose()
			}
			return nil, fmt.Errorf("binding %d: %w", i, err)
		}
		out = append(out, b)
	}

	return out, nil
}

// Len returns the number of live bindings.
func (m *Manager) Len() int {
	return len(m.bindings)
}

// Bindings returns the live bindings in creation order.
func (m *Manager) Bindings() []*Binding {
	return slices.Clone(m.bindings)
}

// Lookup finds a live binding by name.
func (m *Manager) Lookup(name string) *Binding {
	for _, b := range m.bindings {
		if b.name == name {
			return b
		}
	}

	return nil
}

// Unbind disposes b and reports whether it was live in this manager.
func (m *Manager) Unbind(b *Binding) bool {
	if b == nil || !slices.Contains(m.bindings, b) {
		return false
	}

	b.Dispose()

	return true
}

// DisposeAll disposes every live binding.
func (m *Manager) DisposeAll() {
	for _, b := range slices.Clone(m.bindings) {
		b.Dispose()
	}
}

func (m *Manager) forget(b *Binding) {
	m.bindings = slices.DeleteFunc(m.bindings, func(x *Binding) bool { return x == b })
}

func checkConfig(cfg Config) error {
	if len(cfg.TargetPath) == 0 {
		return fmt.Errorf("%w: empty target path", ErrInvalidConfig)
	}

	if cfg.Mode < OneWay || cfg.Mode > TwoWay {
		return fmt.Errorf("%w: mode %v", ErrInvalidConfig, cfg.Mode)
	}

	if cfg.SourceResolver == SourceNamedElement && cfg.ElementName == "" {
		return fmt.Errorf("%w: named element source without element name", ErrInvalidConfig)
	}

	return nil
}
