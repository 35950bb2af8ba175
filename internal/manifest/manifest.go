// Package manifest reads bind.yaml, the file telling bindgen which packages
// to generate property registrations for.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"propbind/internal/analyze"
	"propbind/internal/gen"
)

// DefaultFilename is the manifest name looked up when none is given.
const DefaultFilename = "bind.yaml"

// Manifest is the bind.yaml schema.
type Manifest struct {
	Version string `yaml:"version"`
	// Packages are Go package patterns. Patterns starting with "." are
	// relative to the manifest directory.
	Packages []string `yaml:"packages"`
	// Types restricts generation to these type names, either bare ("Editor")
	// or qualified ("example.com/app/ui.Editor"). Empty means every type.
	Types []string `yaml:"types,omitempty"`
	// Output is the file name generated into each package.
	Output string `yaml:"output,omitempty"`

	// Dir is the directory the manifest was loaded from.
	Dir string `yaml:"-"`
}

// Resolved contains the manifest with patterns turned into import paths.
type Resolved struct {
	Root       string
	ModulePath string
	Patterns   []string
	Manifest   *Manifest
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	m.Dir = abs

	return m, nil
}

// Parse decodes and validates a manifest. Dir is left empty.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&m)

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

func applyDefaults(m *Manifest) {
	if m.Version == "" {
		m.Version = "1"
	}

	if m.Output == "" {
		m.Output = gen.DefaultFilename
	}
}

// Validate checks the manifest for obvious mistakes.
func (m *Manifest) Validate() error {
	var errs []error

	if m.Version != "1" {
		errs = append(errs, fmt.Errorf("unsupported version %q", m.Version))
	}

	if len(m.Packages) == 0 {
		errs = append(errs, errors.New("packages: at least one pattern is required"))
	}

	for i, p := range m.Packages {
		if isRelative(p) {
			continue
		}

		if err := module.CheckImportPath(strings.TrimSuffix(p, "/...")); err != nil {
			errs = append(errs, fmt.Errorf("packages[%d]: %w", i, err))
		}
	}

	if m.Output != filepath.Base(m.Output) || !strings.HasSuffix(m.Output, ".go") {
		errs = append(errs, fmt.Errorf("output %q must be a .go file name", m.Output))
	}

	return errors.Join(errs...)
}

// Include reports whether id is selected by Types.
func (m *Manifest) Include(id analyze.TypeID) bool {
	if len(m.Types) == 0 {
		return true
	}

	return slices.Contains(m.Types, id.Name) || slices.Contains(m.Types, id.String())
}

// Resolve finds the enclosing module and turns relative patterns into
// import paths.
func (m *Manifest) Resolve() (*Resolved, error) {
	dir := m.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = wd
	}

	root, err := FindModuleRoot(dir)
	if err != nil {
		return nil, err
	}

	modPath, err := modulePath(root)
	if err != nil {
		return nil, err
	}

	res := &Resolved{Root: root, ModulePath: modPath, Manifest: m}

	for _, p := range m.Packages {
		if !isRelative(p) {
			res.Patterns = append(res.Patterns, p)
			continue
		}

		rel, err := filepath.Rel(root, filepath.Join(dir, p))
		if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
			return nil, fmt.Errorf("package %q is outside module %s", p, modPath)
		}

		res.Patterns = append(res.Patterns, path.Join(modPath, filepath.ToSlash(rel)))
	}

	return res, nil
}

// FindModuleRoot walks up from dir to find go.mod.
func FindModuleRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func isRelative(pattern string) bool {
	return pattern == "." || strings.HasPrefix(pattern, "./") || strings.HasPrefix(pattern, "../")
}
