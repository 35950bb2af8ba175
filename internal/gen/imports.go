package gen

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"propbind/internal/common"
)

// accessPath is the import path of the runtime the generated code calls.
const accessPath = "propbind/access"

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the packages a generated file refers to and picks a
// unique local name for each.
type importSet struct {
	self   string
	byPath map[string]string // import path -> local name
	byName map[string]string // local name -> import path
	pkgs   map[string]string // import path -> package name
}

func newImportSet(self string) *importSet {
	return &importSet{
		self:   self,
		byPath: make(map[string]string),
		byName: make(map[string]string),
		pkgs:   make(map[string]string),
	}
}

// add registers pkg and returns the name it is referred to by.
func (s *importSet) add(pkg *types.Package) string {
	if name, ok := s.byPath[pkg.Path()]; ok {
		return name
	}

	name := pkg.Name()
	for i := 2; s.byName[name] != ""; i++ {
		name = fmt.Sprintf("%s%d", pkg.Name(), i)
	}

	s.byPath[pkg.Path()] = name
	s.byName[name] = pkg.Path()
	s.pkgs[pkg.Path()] = pkg.Name()

	return name
}

// qualifier is a types.Qualifier that records every package it sees.
func (s *importSet) qualifier(pkg *types.Package) string {
	if pkg.Path() == s.self {
		return ""
	}

	return s.add(pkg)
}

// specs returns the standard library imports and the rest, each sorted by
// path. Aliases are only set where the local name differs from the package
// name or the package name differs from the last path element.
func (s *importSet) specs() (std, other []importSpec) {
	for p, name := range s.byPath {
		spec := importSpec{Path: p}
		if name != s.pkgs[p] || name != common.PkgAlias(p) {
			spec.Alias = name
		}

		if s.isStd(p) {
			std = append(std, spec)
		} else {
			other = append(other, spec)
		}
	}

	byPath := func(a, b importSpec) int { return strings.Compare(a.Path, b.Path) }
	slices.SortFunc(std, byPath)
	slices.SortFunc(other, byPath)

	return std, other
}

// isStd guesses standard library paths: no dot in the first element, and
// not rooted like the generated package or the access runtime.
func (s *importSet) isStd(p string) bool {
	first := firstElem(p)

	return !strings.Contains(first, ".") && first != firstElem(s.self) && first != firstElem(accessPath)
}

func firstElem(p string) string {
	first, _, _ := strings.Cut(p, "/")
	return first
}
