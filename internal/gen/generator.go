package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/types"
	"slices"
	"text/template"

	"propbind/internal/analyze"
)

// DefaultFilename is the name of the file written into every package.
const DefaultFilename = "zz_generated_props.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file generated into each package.
	Filename string
	// WriteDebug writes a *.unformatted.go sidecar when formatting fails.
	WriteDebug bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:   DefaultFilename,
		WriteDebug: true,
	}
}

// Generator emits access.Register calls for analyzed types, so bindings read
// and write them through type assertions instead of reflection.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultFilename
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "zz_generated_props.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate produces one file per package of graph. When include is not nil,
// only the types it accepts are registered; packages left without types are
// skipped.
func (g *Generator) Generate(graph *analyze.TypeGraph, include func(analyze.TypeID) bool) ([]GeneratedFile, error) {
	paths := make([]string, 0, len(graph.Packages))
	for path := range graph.Packages {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	var files []GeneratedFile

	for _, path := range paths {
		pkg := graph.Packages[path]

		typeInfos := slices.DeleteFunc(graph.PackageTypes(path), func(t *analyze.TypeInfo) bool {
			return include != nil && !include(t.ID)
		})
		if len(typeInfos) == 0 {
			continue
		}

		file, err := g.GeneratePackage(pkg, typeInfos)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// GeneratePackage renders the registration file for types of pkg.
func (g *Generator) GeneratePackage(pkg *analyze.PackageInfo, typeInfos []*analyze.TypeInfo) (*GeneratedFile, error) {
	data := g.buildTemplateData(pkg, typeInfos)

	var buf bytes.Buffer
	if err := propsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.WriteDebug && pkg.Dir != "" {
			_ = writeDebugUnformatted(pkg.Dir, g.config.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Dir:      pkg.Dir,
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the registration template.
type templateData struct {
	PackageName string
	StdImports  []importSpec
	Imports     []importSpec
	Types       []typeData
}

type typeData struct {
	Name       string
	Properties []propertyData
}

type propertyData struct {
	Owner  string
	Name   string
	Member string
	Type   string
	Call   bool
	Setter string
}

func (g *Generator) buildTemplateData(pkg *analyze.PackageInfo, typeInfos []*analyze.TypeInfo) *templateData {
	imports := newImportSet(pkg.Path)
	imports.add(types.NewPackage("reflect", "reflect"))
	imports.add(types.NewPackage(accessPath, "access"))

	data := &templateData{PackageName: pkg.Name}

	for _, t := range typeInfos {
		td := typeData{Name: t.ID.Name}

		for _, p := range t.Properties {
			td.Properties = append(td.Properties, propertyData{
				Owner:  t.ID.Name,
				Name:   p.Name,
				Member: p.Member,
				Type:   types.TypeString(p.Type, imports.qualifier),
				Call:   p.Kind == analyze.PropertyMethod,
				Setter: setterName(p.Setter),
			})
		}

		data.Types = append(data.Types, td)
	}

	data.StdImports, data.Imports = imports.specs()

	return data
}

func setterName(k analyze.SetterKind) string {
	switch k {
	case analyze.SetterAssign:
		return "assign"
	case analyze.SetterMethod:
		return "method"
	case analyze.SetterMethodErr:
		return "method_err"
	default:
		return ""
	}
}

var propsTemplate = template.Must(
	template.New("props").
		Parse(`// Code generated by bindgen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .StdImports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}}
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

func init() {
{{- range $i, $t := .Types}}
{{- if $i}}
{{end}}
	access.Register(reflect.TypeFor[*{{$t.Name}}](),
{{- range $t.Properties}}
		access.Property{
			Name: {{printf "%q" .Name}},
			Type: reflect.TypeFor[{{.Type}}](),
			Get: func(obj any) (any, error) {
				return obj.(*{{.Owner}}).{{.Member}}{{if .Call}}(){{end}}, nil
			},
{{- if .Setter}}
			Set: func(obj any, value any) error {
				v, err := access.As[{{.Type}}](value)
				if err != nil {
					return err
				}
{{- if eq .Setter "assign"}}

				obj.(*{{.Owner}}).{{.Member}} = v

				return nil
{{- else if eq .Setter "method"}}

				obj.(*{{.Owner}}).Set{{.Member}}(v)

				return nil
{{- else}}

				return obj.(*{{.Owner}}).Set{{.Member}}(v)
{{- end}}
			},
{{- end}}
		},
{{- end}}
	)
{{- end}}
}
`))
