package gen

import (
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propbind/internal/analyze"
)

const viewmodelPkg = "propbind/examples/viewmodel"

func loadGraph(t *testing.T) *analyze.TypeGraph {
	t.Helper()

	graph, err := analyze.NewAnalyzer().LoadPackages(viewmodelPkg)
	require.NoError(t, err)

	return graph
}

func generate(t *testing.T, include func(analyze.TypeID) bool) GeneratedFile {
	t.Helper()

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(loadGraph(t), include)
	require.NoError(t, err)
	require.Len(t, files, 1)

	return files[0]
}

func TestGenerate_ViewModel(t *testing.T) {
	file := generate(t, nil)

	assert.Equal(t, DefaultFilename, file.Filename)
	assert.Equal(t, "viewmodel", filepath.Base(file.Dir))

	parsed, err := parser.ParseFile(token.NewFileSet(), file.Filename, file.Content, parser.ImportsOnly)
	require.NoError(t, err)
	assert.Equal(t, "viewmodel", parsed.Name.Name)

	var imports []string
	for _, imp := range parsed.Imports {
		imports = append(imports, imp.Path.Value)
	}
	assert.Equal(t, []string{`"image/color"`, `"reflect"`, `"propbind/access"`, `"propbind/notify"`}, imports)

	code := string(file.Content)
	assert.True(t, strings.HasPrefix(code, "// Code generated by bindgen. DO NOT EDIT.\n"))

	for _, want := range []string{
		"access.Register(reflect.TypeFor[*Document](),",
		"return obj.(*Document).Words(), nil",
		"v, err := access.As[*notify.List[string]](value)",
		"obj.(*Document).SetTitle(v)",
		"obj.(*Person).Email = v",
		`Name: "Mail",`,
		"Type: reflect.TypeFor[color.RGBA](),",
		"Type: reflect.TypeFor[map[string]any](),",
	} {
		assert.Contains(t, code, want)
	}

	assert.NotContains(t, code, "Draft")
	assert.NotContains(t, code, "viewmodel.Person", "own package is not qualified")
}

func TestGenerate_ReadOnlyHasNoSetter(t *testing.T) {
	code := string(generate(t, func(id analyze.TypeID) bool { return id.Name == "Document" }).Content)

	words := code[strings.Index(code, `Name: "Words"`):]
	assert.NotContains(t, words, "Set:")
	assert.NotContains(t, code, "*Editor")
}

func TestGenerate_SkipsEmptyPackages(t *testing.T) {
	files, err := NewGenerator(GeneratorConfig{}).Generate(loadGraph(t), func(analyze.TypeID) bool { return false })
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestGenerate_CommittedFileIsCurrent(t *testing.T) {
	file := generate(t, nil)

	stale, err := Stale([]GeneratedFile{file})
	require.NoError(t, err)
	assert.Empty(t, stale, "run go generate ./examples/viewmodel")
}

func TestWriteFilesAndStale(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	files := []GeneratedFile{{Dir: dir, Filename: "a.go", Content: []byte("package a\n")}}

	stale, err := Stale(files)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.go")}, stale)

	require.NoError(t, WriteFiles(files))

	stale, err = Stale(files)
	require.NoError(t, err)
	assert.Empty(t, stale)

	files[0].Content = []byte("package b\n")
	stale, err = Stale(files)
	require.NoError(t, err)
	assert.Len(t, stale, 1)
}

func TestGeneratePackage_FormatErrorWritesSidecar(t *testing.T) {
	dir := t.TempDir()
	pkg := &analyze.PackageInfo{Path: "example.com/bad", Name: "bad pkg", Dir: dir}

	file, err := NewGenerator(DefaultGeneratorConfig()).GeneratePackage(pkg, nil)
	require.ErrorContains(t, err, "formatting code")
	require.NotNil(t, file)

	sidecar, err := os.ReadFile(filepath.Join(dir, "zz_generated_props.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, file.Content, sidecar)
}

func TestImportSet(t *testing.T) {
	s := newImportSet("example.com/app/model")

	assert.Equal(t, "reflect", s.add(types.NewPackage("reflect", "reflect")))
	assert.Equal(t, "yaml", s.add(types.NewPackage("gopkg.in/yaml.v3", "yaml")))
	assert.Equal(t, "yaml2", s.add(types.NewPackage("example.com/other/yaml", "yaml")))
	assert.Equal(t, "yaml", s.add(types.NewPackage("gopkg.in/yaml.v3", "yaml")))
	assert.Empty(t, s.qualifier(types.NewPackage("example.com/app/model", "model")))

	std, other := s.specs()
	assert.Equal(t, []importSpec{{Path: "reflect"}}, std)
	assert.Equal(t, []importSpec{
		{Path: "example.com/other/yaml", Alias: "yaml2"},
		{Path: "gopkg.in/yaml.v3", Alias: "yaml"},
	}, other)
}
