package binding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/propath"
)

const sheetYAML = `
version: "1"
bindings:
  - target: Title
    source: Document.Name
    mode: two_way
  - target: Background
    source: Theme.Accent
    source_resolver: root_context
    converter: color
    converter_parameter: 0.5
    culture: de-DE
    fallback: "#808080"
  - target: Value
    source: Position
    source_resolver: NamedElement
    element: slider
    data_context: self
    mode: OneWayToSource
`

func TestParseSheet(t *testing.T) {
	s, err := ParseSheet([]byte(sheetYAML))
	require.NoError(t, err)

	assert.Equal(t, "1", s.Version)
	require.Len(t, s.Bindings, 3)

	assert.Equal(t, Entry{Target: "Title", Source: "Document.Name", Mode: TwoWay}, s.Bindings[0])

	second := s.Bindings[1]
	assert.Equal(t, SourceRootContext, second.SourceResolver)
	assert.Equal(t, "color", second.Converter)
	assert.Equal(t, 0.5, second.ConverterParameter)
	assert.Equal(t, "de-DE", second.Culture)
	assert.Equal(t, "#808080", second.Fallback)
	assert.Equal(t, OneWay, second.Mode)

	third := s.Bindings[2]
	assert.Equal(t, SourceNamedElement, third.SourceResolver)
	assert.Equal(t, "slider", third.Element)
	assert.Equal(t, FromSelf, third.DataContext)
	assert.Equal(t, OneWayToSource, third.Mode)
}

func TestParseSheet_Defaults(t *testing.T) {
	s, err := ParseSheet([]byte("bindings: []"))
	require.NoError(t, err)

	assert.Equal(t, "1", s.Version)
	assert.Empty(t, s.Bindings)
}

func TestParseSheet_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown mode",
			yaml: "bindings:\n  - target: A\n    mode: sideways\n",
			want: `line 3: unknown value "sideways", expected one of OneWay, OneTime, OneWayToSource, TwoWay`,
		},
		{
			name: "mode is not a scalar",
			yaml: "bindings:\n  - target: A\n    mode: [a]\n",
			want: "line 3: expected a scalar",
		},
		{
			name: "malformed yaml",
			yaml: "bindings: [",
			want: "failed to parse binding sheet YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSheet([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSheet_Configs(t *testing.T) {
	s, err := ParseSheet([]byte(sheetYAML))
	require.NoError(t, err)

	converters := NewConverterRegistry()
	converters.MustAdd("color", ConverterFuncs{})

	configs, err := s.Configs(converters)
	require.NoError(t, err)
	require.Len(t, configs, 3)

	assert.Equal(t, propath.Path{"Document", "Name"}, configs[0].SourcePath)
	assert.Nil(t, configs[0].Converter)
	assert.Equal(t, converters.Get("color"), configs[1].Converter)
	assert.Equal(t, "#808080", configs[1].FallbackValue)
	assert.Equal(t, "slider", configs[2].ElementName)
}

func TestSheet_ConfigsErrors(t *testing.T) {
	s := &Sheet{Bindings: []Entry{
		{Target: "A..B"},
		{Target: "A", Converter: "missing"},
		{Target: "A", Source: "B"},
		{Target: "A", Source: "1x"},
	}}

	_, err := s.Configs(NewConverterRegistry())
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownConverter)

	assert.Contains(t, err.Error(), `binding 0: target: invalid path "A..B": empty segment`)
	assert.Contains(t, err.Error(), `binding 1: unknown converter "missing"`)
	assert.NotContains(t, err.Error(), "binding 2")
	assert.Contains(t, err.Error(), `binding 3: source: invalid path "1x": invalid identifier "1x"`)

	_, err = (&Sheet{Bindings: []Entry{{Target: "A", Converter: "x"}}}).Configs(nil)
	require.ErrorIs(t, err, ErrUnknownConverter)
}

func TestSheet_WriteAndLoad(t *testing.T) {
	c := cfg("Text", "Meta.Author", TwoWay)
	c.Converter = ConverterFuncs{}
	c.FallbackValue = "none"

	s := &Sheet{Version: "1", Bindings: []Entry{
		EntryOf(c, "upper"),
		EntryOf(cfg("Width", "Pages", OneWay), "ignored"),
	}}

	path := filepath.Join(t.TempDir(), "bindings.yaml")
	require.NoError(t, WriteSheet(s, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `version: "1"
bindings:
    - target: Text
      source: Meta.Author
      mode: TwoWay
      converter: upper
      fallback: none
    - target: Width
      source: Pages
`, string(data))

	loaded, err := LoadSheet(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadSheet_MissingFile(t *testing.T) {
	_, err := LoadSheet(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
