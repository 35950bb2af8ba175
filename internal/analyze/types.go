package analyze

import (
	"go/types"
	"reflect"
	"slices"

	"propbind/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "propbind/examples/viewmodel"
	Name    string // e.g., "Document"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// PropertyKind tells how a property is read.
type PropertyKind int

const (
	PropertyUnknown PropertyKind = iota
	PropertyField                // exported struct field, possibly promoted
	PropertyMethod               // getter method Name() T
)

// String returns a human-readable representation of the PropertyKind.
func (k PropertyKind) String() string {
	switch k {
	case PropertyField:
		return "field"
	case PropertyMethod:
		return "method"
	default:
		return common.UnknownStr
	}
}

// SetterKind tells how a property is written.
type SetterKind int

const (
	SetterNone      SetterKind = iota // read-only
	SetterAssign                      // direct field assignment
	SetterMethod                      // SetName(T)
	SetterMethodErr                   // SetName(T) error
)

// PropertyInfo describes one bindable property.
type PropertyInfo struct {
	Name   string            // Property name, after bind tag renaming
	Member string            // Go field or method name
	Kind   PropertyKind      // How the property is read
	Type   types.Type        // Property value type
	Setter SetterKind        // How the property is written
	Tag    reflect.StructTag // Raw struct tag, fields only
}

// SetterName returns the name of the setter method.
func (p *PropertyInfo) SetterName() string {
	return "Set" + p.Member
}

// Writable reports whether the property has a setter.
func (p *PropertyInfo) Writable() bool {
	return p.Setter != SetterNone
}

// TypeInfo describes a bindable struct.
type TypeInfo struct {
	ID         TypeID         // Unique identifier
	GoType     *types.Named   // The original go/types.Type
	Properties []PropertyInfo // Sorted by name
	Notifies   bool           // *T has OnPropertyChanged
}

// Property returns the property with the given name, or nil.
func (t *TypeInfo) Property(name string) *PropertyInfo {
	i := slices.IndexFunc(t.Properties, func(p PropertyInfo) bool { return p.Name == name })
	if i < 0 {
		return nil
	}

	return &t.Properties[i]
}

// TypeGraph holds all bindable types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all bindable structs.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// PackageTypes returns the bindable types of a package in declaration name
// order.
func (g *TypeGraph) PackageTypes(pkgPath string) []*TypeInfo {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	out := make([]*TypeInfo, 0, len(pkg.Types))
	for _, id := range pkg.Types {
		out = append(out, g.Types[id])
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package sources
	Types []TypeID // Bindable types defined in this package, sorted by name
}
