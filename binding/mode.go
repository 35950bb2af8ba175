package binding

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:generate go tool stringer -type=Mode -output=mode_string.go
//go:generate go tool stringer -type=SourceResolverKind -trimprefix=Source -output=source_string.go
//go:generate go tool stringer -type=DataContextResolverKind -trimprefix=From -output=context_string.go

// Mode is the direction in which a binding moves values.
type Mode int

const (
	OneWay         Mode = iota // source to target, live
	OneTime                    // source to target, once
	OneWayToSource             // target to source, live
	TwoWay                     // both directions, live
)

// WritesTarget reports whether the mode ever writes into the target.
func (m Mode) WritesTarget() bool {
	return m != OneWayToSource
}

// WritesSource reports whether the mode follows the target into the source.
func (m Mode) WritesSource() bool {
	return m == OneWayToSource || m == TwoWay
}

// FollowsSource reports whether the mode follows source changes.
func (m Mode) FollowsSource() bool {
	return m == OneWay || m == TwoWay
}

// SourceResolverKind selects the object a source path starts from.
type SourceResolverKind int

const (
	SourceSelf         SourceResolverKind = iota // the anchor itself
	SourceNamedElement                           // an element found by name in the anchor's tree
	SourceRootContext                            // the root context of the anchor's tree
)

// DataContextResolverKind selects whether the search root is used directly or
// through its data context.
type DataContextResolverKind int

const (
	FromDataContext DataContextResolverKind = iota
	FromSelf
)

// ParseMode parses a mode name. Matching ignores case, underscores and
// dashes, so "TwoWay", "two_way" and "two-way" are the same.
func ParseMode(s string) (Mode, error) {
	return parseEnum(s, []Mode{OneWay, OneTime, OneWayToSource, TwoWay})
}

// ParseSourceResolver parses "self", "named_element" or "root_context".
func ParseSourceResolver(s string) (SourceResolverKind, error) {
	return parseEnum(s, []SourceResolverKind{SourceSelf, SourceNamedElement, SourceRootContext})
}

// ParseDataContextResolver parses "data_context" or "self".
func ParseDataContextResolver(s string) (DataContextResolverKind, error) {
	return parseEnum(s, []DataContextResolverKind{FromDataContext, FromSelf})
}

func (m *Mode) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalEnum(node, m, ParseMode)
}

func (k *SourceResolverKind) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalEnum(node, k, ParseSourceResolver)
}

func (k *DataContextResolverKind) UnmarshalYAML(node *yaml.Node) error {
	return unmarshalEnum(node, k, ParseDataContextResolver)
}

func (m Mode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (k SourceResolverKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k DataContextResolverKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func parseEnum[E fmt.Stringer](s string, values []E) (E, error) {
	want := normalizeEnum(s)
	for _, v := range values {
		if normalizeEnum(v.String()) == want {
			return v, nil
		}
	}

	var zero E
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}

	return zero, fmt.Errorf("unknown value %q, expected one of %s", s, strings.Join(names, ", "))
}

func unmarshalEnum[E any](node *yaml.Node, dst *E, parse func(string) (E, error)) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar, got %v", node.Line, node.Kind)
	}

	v, err := parse(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}

	*dst = v

	return nil
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}
