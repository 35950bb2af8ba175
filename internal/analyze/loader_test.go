package analyze

import (
	"go/types"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewmodelPkg = "propbind/examples/viewmodel"

func loadViewModel(t *testing.T) *TypeGraph {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(viewmodelPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadViewModel(t)

	require.Contains(t, graph.Packages, viewmodelPkg)

	pkg := graph.Packages[viewmodelPkg]
	assert.Equal(t, "viewmodel", pkg.Name)
	assert.Equal(t, "viewmodel", filepath.Base(pkg.Dir))

	var names []string
	for _, id := range pkg.Types {
		names = append(names, id.Name)
	}

	assert.Equal(t, []string{"Document", "Editor", "Person", "Theme", "Window"}, names)
	assert.Len(t, graph.PackageTypes(viewmodelPkg), 5)
	assert.Nil(t, graph.PackageTypes("propbind/nope"))
}

func TestAnalyzer_DocumentProperties(t *testing.T) {
	graph := loadViewModel(t)

	doc := graph.GetType(TypeID{PkgPath: viewmodelPkg, Name: "Document"})
	require.NotNil(t, doc)
	assert.True(t, doc.Notifies)

	var names []string
	for _, p := range doc.Properties {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Author", "Body", "Tags", "Title", "Words"}, names)

	tests := []struct {
		name     string
		kind     PropertyKind
		setter   SetterKind
		typeName string
	}{
		{name: "Author", kind: PropertyField, setter: SetterMethod, typeName: "*propbind/examples/viewmodel.Person"},
		{name: "Tags", kind: PropertyField, setter: SetterAssign, typeName: "*propbind/notify.List[string]"},
		{name: "Title", kind: PropertyField, setter: SetterMethod, typeName: "string"},
		{name: "Words", kind: PropertyMethod, setter: SetterNone, typeName: "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := doc.Property(tt.name)
			require.NotNil(t, p)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.setter, p.Setter)
			assert.Equal(t, tt.setter != SetterNone, p.Writable())
			assert.Equal(t, tt.typeName, types.TypeString(p.Type, nil))
		})
	}

	assert.Nil(t, doc.Property("Draft"), "hidden by its bind tag")
	assert.Nil(t, doc.Property("Properties"), "embedded fields are not properties")
}

func TestAnalyzer_BindTagRename(t *testing.T) {
	graph := loadViewModel(t)

	person := graph.GetType(TypeID{PkgPath: viewmodelPkg, Name: "Person"})
	require.NotNil(t, person)

	mail := person.Property("Mail")
	require.NotNil(t, mail)
	assert.Equal(t, "Email", mail.Member)
	assert.Equal(t, "SetEmail", mail.SetterName())
	assert.Equal(t, SetterAssign, mail.Setter)
	assert.Equal(t, "Mail", mail.Tag.Get("bind"))

	assert.Nil(t, person.Property("Email"))
}

func TestAnalyzer_NonNotifyingType(t *testing.T) {
	graph := loadViewModel(t)

	theme := graph.GetType(TypeID{PkgPath: viewmodelPkg, Name: "Theme"})
	require.NotNil(t, theme)
	assert.False(t, theme.Notifies)
	assert.Len(t, theme.Properties, 2)

	window, err := NewAnalyzer().GetStruct(viewmodelPkg, "Window")
	require.Error(t, err, "fresh analyzer has an empty graph")
	assert.Nil(t, window)
}

func TestAnalyzer_GetStruct(t *testing.T) {
	a := NewAnalyzer()
	_, err := a.LoadPackages(viewmodelPkg)
	require.NoError(t, err)

	editor, err := a.GetStruct(viewmodelPkg, "Editor")
	require.NoError(t, err)
	assert.Equal(t, "propbind/examples/viewmodel.Editor", editor.ID.String())
	assert.Same(t, editor, a.Graph().GetType(editor.ID))

	_, err = a.GetStruct(viewmodelPkg, "Missing")
	require.ErrorContains(t, err, "bindable type propbind/examples/viewmodel.Missing not found")
}

func TestAnalyzer_LoadError(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("propbind/does/not/exist")
	require.Error(t, err)
}

func TestPropertyFields_Shadowing(t *testing.T) {
	pkg := types.NewPackage("example.com/p", "p")
	str := types.Typ[types.String]
	num := types.Typ[types.Int]

	newVar := func(name string, typ types.Type, embedded bool) *types.Var {
		return types.NewField(0, pkg, name, typ, embedded)
	}

	left := types.NewNamed(types.NewTypeName(0, pkg, "Left", nil), types.NewStruct(
		[]*types.Var{newVar("ID", str, false), newVar("Name", str, false)}, nil), nil)
	right := types.NewNamed(types.NewTypeName(0, pkg, "Right", nil), types.NewStruct(
		[]*types.Var{newVar("ID", num, false), newVar("Code", str, false)}, nil), nil)

	outer := types.NewStruct([]*types.Var{
		newVar("Left", left, true),
		newVar("Right", right, true),
		newVar("Name", num, false),
		newVar("Label", str, false),
		newVar("hidden", str, false),
	}, []string{"", "", "", `bind:"Code"`, ""})

	var got []string
	for _, f := range propertyFields(outer) {
		got = append(got, f.propertyName())
	}

	// ID is ambiguous between Left and Right. Name shadows Left.Name. Label
	// renamed to Code shadows Right.Code.
	assert.ElementsMatch(t, []string{"Name", "Code"}, got)
}

func TestKinds_String(t *testing.T) {
	assert.Equal(t, "field", PropertyField.String())
	assert.Equal(t, "method", PropertyMethod.String())
	assert.Equal(t, "unknown", PropertyUnknown.String())
	assert.Equal(t, "p.T", TypeID{PkgPath: "p", Name: "T"}.String())
	assert.Equal(t, "T", TypeID{Name: "T"}.String())
}
