package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/diagnostic"
)

func TestManager_Validate(t *testing.T) {
	src := &doc{Title: "a", Meta: &meta{}}

	tests := []struct {
		name   string
		anchor any
		cfg    Config
		codes  []string
	}{
		{
			name:   "clean",
			anchor: viewOf(src),
			cfg:    cfg("Text", "Title", TwoWay),
		},
		{
			name:   "empty target",
			anchor: viewOf(src),
			cfg:    Config{SourcePath: []string{"Title"}},
			codes:  []string{diagnostic.CodeEmptyTarget},
		},
		{
			name:   "undefined mode",
			anchor: viewOf(src),
			cfg:    cfg("Text", "Title", Mode(-1)),
			codes:  []string{diagnostic.CodeInvalidMode},
		},
		{
			name:   "named element without name",
			anchor: viewOf(src),
			cfg:    Config{TargetPath: []string{"Text"}, SourceResolver: SourceNamedElement},
			codes:  []string{diagnostic.CodeMissingElementName, diagnostic.CodeNoTree},
		},
		{
			name:   "read-only target",
			anchor: viewOf(src),
			cfg:    cfg("Length", "Pages", OneWay),
			codes:  []string{diagnostic.CodeReadOnlyTarget},
		},
		{
			name:   "read-only target is fine when only read",
			anchor: viewOf(src),
			cfg:    cfg("Length", "Pages", OneWayToSource),
		},
		{
			name:   "not convertible",
			anchor: viewOf(src),
			cfg:    cfg("Width", "Meta", OneWay),
			codes:  []string{diagnostic.CodeNotConvertible},
		},
		{
			name:   "unresolved target holder",
			anchor: viewOf(src),
			cfg:    cfg("Tag.Text", "Title", OneWay),
			codes:  []string{diagnostic.CodeUnresolvedTarget},
		},
		{
			name:   "nil source root",
			anchor: &label{},
			cfg:    cfg("Text", "Title", OneWay),
			codes:  []string{diagnostic.CodeUnresolvedSource},
		},
		{
			name:   "source without notifications",
			anchor: viewOf(&plain{}),
			cfg:    cfg("Width", "Value", OneWay),
			codes:  []string{diagnostic.CodeNoNotifications},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := NewManager().Validate(tt.anchor, tt.cfg)
			assert.Equal(t, tt.codes, diags.Codes())
		})
	}
}

func TestManager_ValidateSuggestions(t *testing.T) {
	view := viewOf(&doc{Title: "a"})

	diags := NewManager().Validate(view, cfg("Txt", "Titel", OneWay))
	require.True(t, diags.IsValid())
	require.Len(t, diags.Warnings, 2)

	target, source := diags.Warnings[0], diags.Warnings[1]

	assert.Equal(t, diagnostic.CodeUnresolvedTarget, target.Code)
	assert.Equal(t, "Txt", target.Path)
	assert.Equal(t, []string{"Text"}, target.Suggestions)

	assert.Equal(t, diagnostic.CodeUnresolvedSource, source.Code)
	assert.Equal(t, "property Titel not found on *binding.doc", source.Message)
	assert.Equal(t, []string{"Title"}, source.Suggestions)
}

func TestManager_ValidateSheet(t *testing.T) {
	m := NewManager(WithTree(testTree{}))
	m.Converters().MustAdd("upper", ConverterFuncs{})
	m.Converters().MustAdd("lower", ConverterFuncs{})

	s := &Sheet{Bindings: []Entry{
		{Target: "Text", Source: "Title", Converter: "uper"},
		{Target: "Text", Source: "Title.", Mode: TwoWay},
		{Target: "Text", Source: "Title", Converter: "upper"},
		{Target: "Text", Source: "Title", SourceResolver: SourceNamedElement},
	}}

	diags := m.ValidateSheet(viewOf(&doc{Title: "a"}), s)

	require.Len(t, diags.Errors, 3)
	assert.Empty(t, diags.Warnings)

	unknown := diags.Errors[0]
	assert.Equal(t, "bindings[0]", unknown.Binding)
	assert.Equal(t, diagnostic.CodeUnknownConverter, unknown.Code)
	assert.Equal(t, []string{"upper"}, unknown.Suggestions)

	assert.Equal(t, "bindings[1]", diags.Errors[1].Binding)
	assert.Equal(t, diagnostic.CodeInvalidPath, diags.Errors[1].Code)
	assert.Equal(t, "Title.", diags.Errors[1].Path)

	assert.Equal(t, "bindings[3]", diags.Errors[2].Binding)
	assert.Equal(t, diagnostic.CodeMissingElementName, diags.Errors[2].Code)
}
