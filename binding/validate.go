package binding

import (
	"fmt"
	"reflect"

	"propbind/access"
	"propbind/coerce"
	"propbind/diagnostic"
	"propbind/internal/match"
	"propbind/notify"
	"propbind/propath"
)

// maxSuggestions caps "did you mean" hints per diagnostic.
const maxSuggestions = 3

// Validate reports what binding anchor with cfg would run into, without
// creating a binding or subscribing to anything. Errors mark configurations
// Bind rejects; warnings mark bindings that would stay partly inert.
func (m *Manager) Validate(anchor any, cfg Config) diagnostic.Diagnostics {
	return m.validate(anchor, cfg, "")
}

// ValidateSheet validates every sheet entry against anchor, including
// converter names unknown to the manager's registry.
func (m *Manager) ValidateSheet(anchor any, s *Sheet) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for i, e := range s.Bindings {
		label := fmt.Sprintf("bindings[%d]", i)

		cfg, ok := m.entryConfig(e, label, &diags)
		if !ok {
			continue
		}

		diags.Merge(m.validate(anchor, cfg, label))
	}

	return diags
}

func (m *Manager) entryConfig(e Entry, label string, diags *diagnostic.Diagnostics) (Config, bool) {
	for _, p := range []string{e.Target, e.Source} {
		if _, err := propath.Parse(p); err != nil {
			diags.AddError(diagnostic.CodeInvalidPath, err.Error(), label, p)
			return Config{}, false
		}
	}

	if e.Converter != "" && !m.converters.Has(e.Converter) {
		diags.AddError(diagnostic.CodeUnknownConverter,
			fmt.Sprintf("converter %q is not registered", e.Converter), label, "",
			match.Suggest(e.Converter, m.converters.Names(), maxSuggestions)...)
		return Config{}, false
	}

	cfg, err := e.Config(m.converters)
	if err != nil {
		diags.AddError(diagnostic.CodeUnknownConverter, err.Error(), label, "")
		return Config{}, false
	}

	return cfg, true
}

func (m *Manager) validate(anchor any, cfg Config, label string) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if len(cfg.TargetPath) == 0 {
		diags.AddError(diagnostic.CodeEmptyTarget, "target path is empty", label, "")
	}

	if cfg.Mode < OneWay || cfg.Mode > TwoWay {
		diags.AddError(diagnostic.CodeInvalidMode, fmt.Sprintf("mode %v is not defined", cfg.Mode), label, "")
	}

	if cfg.SourceResolver == SourceNamedElement && cfg.ElementName == "" {
		diags.AddError(diagnostic.CodeMissingElementName,
			"named element source without element name", label, "")
	}

	if cfg.SourceResolver != SourceSelf && m.env.tree == nil {
		diags.AddWarning(diagnostic.CodeNoTree,
			fmt.Sprintf("source resolver %v needs a tree, none is configured", cfg.SourceResolver), label, "")
	}

	if diags.HasErrors() {
		return diags
	}

	// A probe runs the read-only half of construction.
	probe := &Binding{cfg: cfg, env: &m.env, anchor: anchor}

	targetAcc := m.checkTarget(probe, label, &diags)
	sourceAcc := m.checkSource(probe, label, &diags)

	if targetAcc == nil || sourceAcc == nil || cfg.Converter != nil {
		return diags
	}

	m.checkConvertible(cfg, sourceAcc.Type(), targetAcc.Type(), label, &diags)

	return diags
}

func (m *Manager) checkTarget(probe *Binding, label string, diags *diagnostic.Diagnostics) *access.Accessor {
	cfg := probe.cfg
	path := cfg.TargetPath.String()

	holder := propath.ResolveWith(m.env.cache, probe.anchor, cfg.TargetPath, true)
	if holder == nil {
		diags.AddWarning(diagnostic.CodeUnresolvedTarget,
			fmt.Sprintf("holder of %s is nil", cfg.TargetPath.Last()), label, path)
		return nil
	}

	acc := m.env.cache.ResolveFor(holder, cfg.TargetPath.Last())
	if acc == nil {
		m.unresolved(diagnostic.CodeUnresolvedTarget, holder, cfg.TargetPath.Last(), label, path, diags)
		return nil
	}

	if cfg.Mode.WritesTarget() && !acc.CanWrite() {
		diags.AddWarning(diagnostic.CodeReadOnlyTarget,
			fmt.Sprintf("%s on %s is read-only", acc.Name(), acc.Owner()), label, path)
	}

	return acc
}

func (m *Manager) checkSource(probe *Binding, label string, diags *diagnostic.Diagnostics) *access.Accessor {
	cfg := probe.cfg
	path := cfg.SourcePath.String()

	probe.searchRoot = probe.resolveSearchRoot()
	probe.sourceRoot = probe.searchRoot
	if cfg.DataContext == FromDataContext {
		probe.sourceRoot = probe.readDataContext()
	}

	if probe.sourceRoot == nil {
		diags.AddWarning(diagnostic.CodeUnresolvedSource, "source root is nil", label, path)
		return nil
	}

	obj := probe.resolveSourceObject()
	if obj == nil {
		diags.AddWarning(diagnostic.CodeUnresolvedSource,
			fmt.Sprintf("holder of %s is nil", cfg.SourcePath.Last()), label, path)
		return nil
	}

	if len(cfg.SourcePath) == 0 {
		return nil
	}

	acc := m.env.cache.ResolveFor(obj, cfg.SourcePath.Last())
	if acc == nil {
		m.unresolved(diagnostic.CodeUnresolvedSource, obj, cfg.SourcePath.Last(), label, path, diags)
		return nil
	}

	if cfg.Mode.WritesSource() && !acc.CanWrite() {
		diags.AddWarning(diagnostic.CodeReadOnlySource,
			fmt.Sprintf("%s on %s is read-only", acc.Name(), acc.Owner()), label, path)
	}

	if _, ok := obj.(notify.PropertyNotifier); !ok && cfg.Mode.FollowsSource() {
		diags.AddInfo(diagnostic.CodeNoNotifications,
			fmt.Sprintf("%s does not notify, only the initial value is propagated", acc.Owner()), label, path)
	}

	return acc
}

func (m *Manager) checkConvertible(cfg Config, sourceType, targetType reflect.Type, label string, diags *diagnostic.Diagnostics) {
	if cfg.Mode.WritesTarget() && m.env.registry.Strategy(sourceType, targetType) == coerce.StrategyUnsupported {
		diags.AddWarning(diagnostic.CodeNotConvertible,
			fmt.Sprintf("no conversion from %s to %s", sourceType, targetType), label, cfg.SourcePath.String())
	}

	if cfg.Mode.WritesSource() && m.env.registry.Strategy(targetType, sourceType) == coerce.StrategyUnsupported {
		diags.AddWarning(diagnostic.CodeNotConvertible,
			fmt.Sprintf("no conversion from %s to %s", targetType, sourceType), label, cfg.TargetPath.String())
	}
}

func (m *Manager) unresolved(code string, holder any, name, label, path string, diags *diagnostic.Diagnostics) {
	t := reflect.TypeOf(holder)

	diags.AddWarning(code,
		fmt.Sprintf("property %s not found on %s", name, t), label, path,
		match.Suggest(name, m.env.cache.Names(t), maxSuggestions)...)
}
