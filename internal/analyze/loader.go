package analyze

import (
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"

	"propbind/access"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and collects their bindable structs.
type Analyzer struct {
	graph *TypeGraph
	dir   string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory patterns are resolved in. Defaults to the
// current directory.
func WithDir(dir string) Option {
	return func(a *Analyzer) {
		a.dir = dir
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph: NewTypeGraph(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./viewmodel", "propbind/examples/viewmodel").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts bindable structs from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		info := a.analyzeStruct(named, st)
		if len(info.Properties) == 0 {
			continue
		}

		a.graph.Types[info.ID] = info
		pkgInfo.Types = append(pkgInfo.Types, info.ID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeStruct collects the properties of *named the way access resolves
// them: getter methods declared on the type first, then visible fields.
func (a *Analyzer) analyzeStruct(named *types.Named, st *types.Struct) *TypeInfo {
	obj := named.Obj()
	pkg := obj.Pkg()
	mset := types.NewMethodSet(types.NewPointer(named))

	info := &TypeInfo{
		ID:       TypeID{PkgPath: pkg.Path(), Name: obj.Name()},
		GoType:   named,
		Notifies: mset.Lookup(nil, "OnPropertyChanged") != nil,
	}

	taken := make(map[string]bool)

	for i := range named.NumMethods() {
		m := named.Method(i)
		if !m.Exported() || m.Name() == access.ProviderMethod {
			continue
		}

		sig := m.Type().(*types.Signature)
		if sig.Params().Len() != 0 || sig.Results().Len() != 1 || isError(sig.Results().At(0).Type()) {
			continue
		}

		prop := PropertyInfo{
			Name:   m.Name(),
			Member: m.Name(),
			Kind:   PropertyMethod,
			Type:   sig.Results().At(0).Type(),
		}
		if !nameable(prop.Type, pkg) {
			continue
		}

		prop.Setter = setterKind(mset, prop.SetterName(), prop.Type, SetterNone)
		info.Properties = append(info.Properties, prop)
		taken[prop.Name] = true
	}

	for _, f := range propertyFields(st) {
		name := f.propertyName()
		if taken[name] || !nameable(f.v.Type(), pkg) {
			continue
		}

		prop := PropertyInfo{
			Name:   name,
			Member: f.v.Name(),
			Kind:   PropertyField,
			Type:   f.v.Type(),
			Tag:    f.tag,
		}
		prop.Setter = setterKind(mset, prop.SetterName(), prop.Type, SetterAssign)
		info.Properties = append(info.Properties, prop)
		taken[name] = true
	}

	slices.SortFunc(info.Properties, func(x, y PropertyInfo) int {
		return strings.Compare(x.Name, y.Name)
	})

	return info
}

// GetStruct returns the TypeInfo for a bindable struct by package path and name.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("bindable type %s not found", id)
	}
	return info, nil
}

type field struct {
	v        *types.Var
	tag      reflect.StructTag
	depth    int
	indirect bool // promoted through an embedded pointer
}

func (f field) propertyName() string {
	return access.PropertyName(reflect.StructField{
		Name:      f.v.Name(),
		PkgPath:   exportedPkgPath(f.v),
		Tag:       f.tag,
		Anonymous: f.v.Embedded(),
	})
}

func exportedPkgPath(v *types.Var) string {
	if v.Exported() {
		return ""
	}

	return v.Pkg().Path()
}

// propertyFields returns the fields exposed as properties, applying Go
// selector shadowing and then property name shadowing. Fields promoted
// through embedded pointers are left to reflection, which handles nil
// embeddings.
func propertyFields(st *types.Struct) []field {
	var all []field
	collectFields(st, 0, false, make(map[*types.Struct]bool), &all)

	visible := shallowestUnique(all, func(f field) string { return f.v.Name() })
	visible = slices.DeleteFunc(visible, func(f field) bool { return f.propertyName() == "" })

	return slices.DeleteFunc(shallowestUnique(visible, field.propertyName), func(f field) bool {
		return f.indirect
	})
}

func collectFields(st *types.Struct, depth int, indirect bool, seen map[*types.Struct]bool, out *[]field) {
	if seen[st] {
		return
	}
	seen[st] = true
	defer delete(seen, st)

	for i := range st.NumFields() {
		v := st.Field(i)
		*out = append(*out, field{v: v, tag: reflect.StructTag(st.Tag(i)), depth: depth, indirect: indirect})

		if !v.Embedded() {
			continue
		}

		typ, viaPointer := v.Type(), false
		if ptr, ok := typ.Underlying().(*types.Pointer); ok {
			typ, viaPointer = ptr.Elem(), true
		}

		if inner, ok := typ.Underlying().(*types.Struct); ok {
			collectFields(inner, depth+1, indirect || viaPointer, seen, out)
		}
	}
}

// shallowestUnique keeps, per key, the single shallowest field. Keys with
// two fields at the shallowest depth are dropped.
func shallowestUnique(fields []field, key func(field) string) []field {
	best := make(map[string]int)
	dup := make(map[string]bool)
	var order []string

	for i, f := range fields {
		k := key(f)

		j, ok := best[k]
		switch {
		case !ok:
			best[k] = i
			order = append(order, k)
		case f.depth < fields[j].depth:
			best[k], dup[k] = i, false
		case f.depth == fields[j].depth:
			dup[k] = true
		}
	}

	var out []field
	for _, k := range order {
		if !dup[k] {
			out = append(out, fields[best[k]])
		}
	}

	return out
}

// setterKind finds SetName(T) or SetName(T) error on the method set.
func setterKind(mset *types.MethodSet, name string, typ types.Type, otherwise SetterKind) SetterKind {
	sel := mset.Lookup(nil, name)
	if sel == nil {
		return otherwise
	}

	sig := sel.Type().(*types.Signature)
	if sig.Params().Len() != 1 || !types.Identical(sig.Params().At(0).Type(), typ) {
		return otherwise
	}

	switch {
	case sig.Results().Len() == 0:
		return SetterMethod
	case sig.Results().Len() == 1 && isError(sig.Results().At(0).Type()):
		return SetterMethodErr
	default:
		return otherwise
	}
}

var errorType = types.Universe.Lookup("error").Type()

func isError(t types.Type) bool {
	return types.Identical(t, errorType)
}

// nameable reports whether generated code in pkg can spell t.
func nameable(t types.Type, pkg *types.Package) bool {
	switch tt := t.(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && obj.Pkg() != pkg {
			if !obj.Exported() || !sameTree(obj.Pkg().Path(), pkg.Path()) {
				return false
			}
		}
		for i := range tt.TypeArgs().Len() {
			if !nameable(tt.TypeArgs().At(i), pkg) {
				return false
			}
		}
		return true

	case *types.Pointer:
		return nameable(tt.Elem(), pkg)
	case *types.Slice:
		return nameable(tt.Elem(), pkg)
	case *types.Array:
		return nameable(tt.Elem(), pkg)
	case *types.Map:
		return nameable(tt.Key(), pkg) && nameable(tt.Elem(), pkg)
	case *types.Chan:
		return nameable(tt.Elem(), pkg)
	case *types.Alias:
		return nameable(types.Unalias(tt), pkg)
	default:
		return true
	}
}

// sameTree reports whether importer may import path, which only matters
// for internal packages.
func sameTree(path, importer string) bool {
	i := strings.LastIndex(path, "/internal")
	if i < 0 || (path[i+len("/internal"):] != "" && path[i+len("/internal")] != '/') {
		return true
	}

	root := path[:i]

	return importer == root || strings.HasPrefix(importer, root+"/")
}
