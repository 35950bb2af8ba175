package binding

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"propbind/access"
	"propbind/coerce"
	"propbind/notify"
	"propbind/propath"
)

// State is the lifecycle stage of a Binding.
//
//	Constructing ──► Active ──► Disposed
type State int

const (
	StateConstructing State = iota
	StateActive
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateConstructing:
		return "constructing"
	case StateActive:
		return "active"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// environment is what a binding borrows from its manager.
type environment struct {
	cache    *access.Cache
	registry *coerce.Registry
	tree     Tree
	logger   *slog.Logger
}

func (e *environment) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}

	return getLogger()
}

type convertFunc func(value any, from, to reflect.Type) (any, error)

// Binding keeps one target property in sync with one source property.
//
// Bindings are created by a Manager and are not safe for concurrent use: all
// reads, writes and notifications are expected on one goroutine.
type Binding struct {
	name  string
	cfg   Config
	env   *environment
	state State

	anchor     any
	target     any
	targetName string
	targetAcc  *access.Accessor
	targetType reflect.Type

	convert     convertFunc
	convertBack convertFunc

	searchRoot   any
	sourceRoot   any
	sourceObject any
	sourceName   string
	sourceAcc    *access.Accessor
	sourceType   reflect.Type

	cancelTarget     func()
	cancelSource     func()
	cancelContext    func()
	cancelCollection func()
	cancelHops       []func()

	// applying is the reentrancy guard shared by both directions.
	applying bool
	// showingFallback is set while the target holds the fallback value.
	showingFallback bool

	onDispose func()
}

func newBinding(name string, anchor any, cfg Config, env *environment) *Binding {
	b := &Binding{
		name:   name,
		cfg:    cfg,
		env:    env,
		state:  StateConstructing,
		anchor: anchor,
	}

	b.resolveTarget()
	b.convert, b.convertBack = b.buildConverters()
	b.searchRoot = untyped(b.resolveSearchRoot())

	if cfg.DataContext == FromDataContext {
		if holder, ok := b.searchRoot.(notify.ContextHolder); ok {
			b.cancelContext = holder.OnContextChanged(b.onContextChanged)
		}
		b.setSourceRoot(b.readDataContext())
	} else {
		b.setSourceRoot(b.searchRoot)
	}

	if cfg.Mode.WritesSource() {
		if n, ok := b.target.(notify.PropertyNotifier); ok {
			b.cancelTarget = n.OnPropertyChanged(b.onTargetChanged)
		}
	}

	b.state = StateActive

	return b
}

// Name is the registration name given by the manager.
func (b *Binding) Name() string {
	return b.name
}

func (b *Binding) Config() Config {
	return b.cfg
}

func (b *Binding) State() State {
	return b.state
}

// Target returns the object holding the target property, nil when the target
// path did not resolve.
func (b *Binding) Target() any {
	return b.target
}

// SourceRoot returns the object the source path currently starts from.
func (b *Binding) SourceRoot() any {
	return b.sourceRoot
}

// SourceObject returns the current holder of the source property.
func (b *Binding) SourceObject() any {
	return b.sourceObject
}

// TargetResolved reports whether the target property was found.
func (b *Binding) TargetResolved() bool {
	return b.targetAcc != nil
}

// SourceResolved reports whether the source property is currently found.
func (b *Binding) SourceResolved() bool {
	return b.sourceAcc != nil
}

// SubscribedToSource reports whether the binding follows source changes.
func (b *Binding) SubscribedToSource() bool {
	return b.cancelSource != nil
}

// SubscribedToTarget reports whether the binding follows target changes.
func (b *Binding) SubscribedToTarget() bool {
	return b.cancelTarget != nil
}

// UpdateTarget pushes the current source value into the target, as a source
// notification would.
func (b *Binding) UpdateTarget() {
	if b.state == StateDisposed {
		return
	}

	b.updateTarget()
}

// UpdateSource pushes the current target value into the source, as a target
// notification would. It does nothing unless the mode writes the source.
func (b *Binding) UpdateSource() {
	if b.state == StateDisposed || !b.cfg.Mode.WritesSource() {
		return
	}

	b.updateSource()
}

// Dispose releases every subscription and makes the binding inert. Calling it
// again has no effect.
func (b *Binding) Dispose() {
	if b.state == StateDisposed {
		return
	}

	release(&b.cancelTarget)
	b.unsubscribeSource()
	b.unsubscribeHops()
	release(&b.cancelContext)

	b.state = StateDisposed

	if b.onDispose != nil {
		b.onDispose()
		b.onDispose = nil
	}
}

func (b *Binding) resolveTarget() {
	b.targetName = b.cfg.TargetPath.Last()
	b.target = propath.ResolveWith(b.env.cache, b.anchor, b.cfg.TargetPath, true)

	if b.target != nil {
		b.targetAcc = b.env.cache.ResolveFor(b.target, b.targetName)
	}

	if b.targetAcc == nil {
		b.env.log().Debug("binding target unresolved",
			slog.String("binding", b.name),
			slog.String("path", b.cfg.TargetPath.String()))
		return
	}

	b.targetType = b.targetAcc.Type()
}

// buildConverters builds both conversion directions once. A configured
// converter runs first; the registry then coerces its result into the
// destination type.
func (b *Binding) buildConverters() (convertFunc, convertFunc) {
	c, param, culture := b.cfg.Converter, b.cfg.ConverterParameter, b.cfg.Culture
	registry := b.env.registry

	if c == nil {
		coerceOnly := func(value any, from, to reflect.Type) (any, error) {
			return registry.Convert(from, to, value, false)
		}
		return coerceOnly, coerceOnly
	}

	forward := func(value any, from, to reflect.Type) (any, error) {
		v, err := c.Convert(value, to, param, culture)
		if err != nil {
			return nil, err
		}
		return registry.Convert(nil, to, v, false)
	}

	back := func(value any, from, to reflect.Type) (any, error) {
		v, err := c.ConvertBack(value, to, param, culture)
		if err != nil {
			return nil, err
		}
		return registry.Convert(nil, to, v, false)
	}

	return forward, back
}

func (b *Binding) resolveSearchRoot() any {
	switch b.cfg.SourceResolver {
	case SourceNamedElement:
		if b.env.tree == nil {
			return nil
		}
		return b.env.tree.FindName(b.anchor, b.cfg.ElementName)

	case SourceRootContext:
		if b.env.tree == nil {
			return nil
		}
		return b.env.tree.RootContext(b.anchor)

	default:
		return b.anchor
	}
}

func (b *Binding) readDataContext() any {
	if propath.IsNil(b.searchRoot) {
		return nil
	}

	acc := b.env.cache.ResolveFor(b.searchRoot, notify.DataContextProperty(b.searchRoot))
	if acc == nil {
		return nil
	}

	v, err := acc.Get(b.searchRoot)
	if err != nil || propath.IsNil(v) {
		return nil
	}

	return v
}

func (b *Binding) onContextChanged() {
	if b.state == StateDisposed {
		return
	}

	b.setSourceRoot(b.readDataContext())
}

func (b *Binding) setSourceRoot(root any) {
	b.sourceRoot = untyped(root)

	b.subscribeHops()
	b.setSourceObject(b.resolveSourceObject())
}

func (b *Binding) resolveSourceObject() any {
	if len(b.cfg.SourcePath) > 1 {
		return propath.ResolveWith(b.env.cache, b.sourceRoot, b.cfg.SourcePath, true)
	}

	return b.sourceRoot
}

// subscribeHops follows every intermediate holder of the source path, so that
// replacing an object half way re-resolves the source object. OneTime
// bindings do not follow hops.
func (b *Binding) subscribeHops() {
	b.unsubscribeHops()

	mode := b.cfg.Mode
	if len(b.cfg.SourcePath) < 2 || !(mode.FollowsSource() || mode.WritesSource()) {
		return
	}

	for i, holder := range propath.Holders(b.env.cache, b.sourceRoot, b.cfg.SourcePath) {
		n, ok := holder.(notify.PropertyNotifier)
		if !ok {
			continue
		}

		segment := b.cfg.SourcePath[i]
		b.cancelHops = append(b.cancelHops, n.OnPropertyChanged(func(name string) {
			if name == segment || name == "" {
				b.onHopChanged()
			}
		}))
	}
}

func (b *Binding) onHopChanged() {
	if b.state == StateDisposed {
		return
	}

	b.subscribeHops()

	if obj := b.resolveSourceObject(); !same(obj, b.sourceObject) {
		b.setSourceObject(obj)
	}
}

func (b *Binding) setSourceObject(obj any) {
	obj = untyped(obj)

	b.unsubscribeSource()

	b.sourceObject = obj
	b.sourceName = b.cfg.SourcePath.Last()
	b.sourceAcc, b.sourceType = nil, nil

	if obj != nil && b.sourceName != "" {
		b.sourceAcc = b.env.cache.ResolveFor(obj, b.sourceName)
	}

	if b.sourceAcc != nil {
		b.sourceType = b.sourceAcc.Type()
	}

	if c, ok := obj.(notify.CollectionNotifier); ok && b.cfg.Mode.FollowsSource() {
		b.cancelCollection = c.OnCollectionChanged(b.onCollectionChanged)
	}

	mode := b.cfg.Mode

	switch {
	case b.sourceName == "" && obj != nil:
		if mode == OneTime || mode == OneWay {
			b.copySourceObject()
		}

	case b.sourceAcc == nil:
		b.env.log().Debug("binding source unresolved",
			slog.String("binding", b.name),
			slog.String("path", b.cfg.SourcePath.String()))

		if b.cfg.FallbackValue != nil && mode.WritesTarget() {
			b.applyFallback()
		}

	case mode == OneWayToSource:
		b.updateSource()

	default:
		b.updateTarget()

		if mode.FollowsSource() {
			if n, ok := obj.(notify.PropertyNotifier); ok {
				b.cancelSource = n.OnPropertyChanged(b.onSourceChanged)
			}
		}
	}
}

func (b *Binding) onSourceChanged(name string) {
	if b.state == StateDisposed || !b.cfg.Mode.FollowsSource() {
		return
	}

	if name == b.sourceName || name == "" {
		b.updateTarget()
	}
}

func (b *Binding) onTargetChanged(name string) {
	if b.state == StateDisposed || !b.cfg.Mode.WritesSource() {
		return
	}

	if name == b.targetName || name == "" {
		b.updateSource()
	}
}

// onCollectionChanged handles structural changes of a collection source
// object. Reorders have no defined meaning for a binding and panic.
func (b *Binding) onCollectionChanged(change notify.CollectionChange) {
	if b.state == StateDisposed {
		return
	}

	if change.Action == notify.CollectionMove {
		panic(notify.ErrUnsupportedOperation)
	}

	if b.sourceName != "" || b.cfg.Mode != OneWay {
		return
	}

	b.copySourceObject()
}

func (b *Binding) updateTarget() {
	if b.applying || b.targetAcc == nil || b.sourceAcc == nil {
		return
	}

	value, err := b.sourceAcc.Get(b.sourceObject)
	if err != nil {
		b.report(&WriteError{Op: OpUpdateTarget, Property: b.cfg.SourcePath.String(), Err: err})
		return
	}

	if b.write(OpUpdateTarget, b.targetAcc, b.target, value, b.sourceType, b.targetType, b.convert) {
		b.showingFallback = false
	}
}

func (b *Binding) updateSource() {
	if b.applying || b.targetAcc == nil || b.sourceAcc == nil {
		return
	}

	value, err := b.targetAcc.Get(b.target)
	if err != nil {
		b.report(&WriteError{Op: OpUpdateSource, Property: b.cfg.TargetPath.String(), Err: err})
		return
	}

	b.write(OpUpdateSource, b.sourceAcc, b.sourceObject, value, b.targetType, b.sourceType, b.convertBack)
}

func (b *Binding) copySourceObject() {
	if b.applying || b.targetAcc == nil {
		return
	}

	if b.write(OpCopySource, b.targetAcc, b.target, b.sourceObject, reflect.TypeOf(b.sourceObject), b.targetType, b.convert) {
		b.showingFallback = false
	}
}

// applyFallback writes the fallback value unless the target already shows it.
func (b *Binding) applyFallback() {
	if b.showingFallback || b.applying || b.targetAcc == nil {
		return
	}

	fallback := b.cfg.FallbackValue
	registry := b.env.registry
	coerceOnly := func(value any, from, to reflect.Type) (any, error) {
		return registry.Convert(from, to, value, false)
	}

	if b.write(OpFallback, b.targetAcc, b.target, fallback, reflect.TypeOf(fallback), b.targetType, coerceOnly) {
		b.showingFallback = true
	}
}

// write converts value and stores it through acc with the reentrancy guard
// held for the whole step. Failures, including panics raised by converters
// and setters, are logged and swallowed; the result reports whether the value
// was stored. notify.ErrUnsupportedOperation keeps panicking.
func (b *Binding) write(op Op, acc *access.Accessor, obj, value any, from, to reflect.Type, convert convertFunc) (stored bool) {
	if b.applying {
		return false
	}

	if !acc.CanWrite() {
		b.env.log().Debug("binding destination is read-only",
			slog.String("binding", b.name),
			slog.String("op", string(op)),
			slog.String("property", acc.Name()))
		return false
	}

	b.applying = true
	defer func() {
		b.applying = false

		r := recover()
		if r == nil {
			return
		}

		if err, ok := r.(error); ok && errors.Is(err, notify.ErrUnsupportedOperation) {
			panic(r)
		}

		b.report(&WriteError{Op: op, Property: acc.Name(), Err: fmt.Errorf("panic: %v", r)})
		stored = false
	}()

	converted, err := convert(value, from, to)
	if err != nil {
		b.report(&WriteError{Op: op, Property: acc.Name(), Err: err})
		return false
	}

	if err := acc.Set(obj, converted); err != nil {
		b.report(&WriteError{Op: op, Property: acc.Name(), Err: err})
		return false
	}

	return true
}

func (b *Binding) report(err *WriteError) {
	b.env.log().Warn("binding write failed",
		slog.String("binding", b.name),
		slog.String("op", string(err.Op)),
		slog.String("property", err.Property),
		slog.Any("error", err.Err))
}

func (b *Binding) unsubscribeSource() {
	release(&b.cancelSource)
	release(&b.cancelCollection)
}

func (b *Binding) unsubscribeHops() {
	for _, cancel := range b.cancelHops {
		cancel()
	}
	b.cancelHops = nil
}

// release calls a cancel handle at most once.
func release(cancel *func()) {
	if *cancel != nil {
		(*cancel)()
		*cancel = nil
	}
}

// same reports whether a and b hold the same object without panicking on
// incomparable dynamic types.
// untyped turns a nil held in an interface into a plain nil.
func untyped(v any) any {
	if propath.IsNil(v) {
		return nil
	}

	return v
}

func same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}

	return a == b
}
