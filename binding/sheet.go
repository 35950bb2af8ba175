package binding

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"propbind/propath"
)

// Sheet is a YAML document describing a set of bindings sharing one anchor.
//
//	version: "1"
//	bindings:
//	  - target: Title
//	    source: Document.Name
//	    mode: two_way
//	  - target: Background
//	    source: Theme.Accent
//	    converter: color
//	    fallback: "#808080"
type Sheet struct {
	Version  string  `yaml:"version"`
	Bindings []Entry `yaml:"bindings"`
}

// Entry is the serialized form of a Config. Converters are referred to by the
// name they were added to a ConverterRegistry under.
type Entry struct {
	Target             string                  `yaml:"target"`
	Source             string                  `yaml:"source,omitempty"`
	Mode               Mode                    `yaml:"mode,omitempty"`
	SourceResolver     SourceResolverKind      `yaml:"source_resolver,omitempty"`
	Element            string                  `yaml:"element,omitempty"`
	DataContext        DataContextResolverKind `yaml:"data_context,omitempty"`
	Converter          string                  `yaml:"converter,omitempty"`
	ConverterParameter any                     `yaml:"converter_parameter,omitempty"`
	Culture            string                  `yaml:"culture,omitempty"`
	Fallback           any                     `yaml:"fallback,omitempty"`
}

// LoadSheet loads and parses a YAML binding sheet from the given path.
func LoadSheet(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read binding sheet %s: %w", path, err)
	}

	return ParseSheet(data)
}

// ParseSheet parses YAML data into a Sheet.
func ParseSheet(data []byte) (*Sheet, error) {
	var s Sheet

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse binding sheet YAML: %w", err)
	}

	applyDefaults(&s)

	return &s, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(s *Sheet) {
	if s.Version == "" {
		s.Version = "1"
	}
}

// MarshalSheet serializes a Sheet to YAML.
func MarshalSheet(s *Sheet) ([]byte, error) {
	return yaml.Marshal(s)
}

// WriteSheet writes a Sheet to the given path.
func WriteSheet(s *Sheet, path string) error {
	data, err := MarshalSheet(s)
	if err != nil {
		return fmt.Errorf("failed to marshal binding sheet: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write binding sheet %s: %w", path, err)
	}

	return nil
}

// EntryOf returns the serialized form of cfg. name is the converter's
// registry name and is ignored when cfg has no converter.
func EntryOf(cfg Config, name string) Entry {
	e := Entry{
		Target:             cfg.TargetPath.String(),
		Source:             cfg.SourcePath.String(),
		Mode:               cfg.Mode,
		SourceResolver:     cfg.SourceResolver,
		Element:            cfg.ElementName,
		DataContext:        cfg.DataContext,
		ConverterParameter: cfg.ConverterParameter,
		Culture:            cfg.Culture,
		Fallback:           cfg.FallbackValue,
	}

	if cfg.Converter != nil {
		e.Converter = name
	}

	return e
}

// Config builds the Config the entry describes.
func (e Entry) Config(converters *ConverterRegistry) (Config, error) {
	target, err := propath.Parse(e.Target)
	if err != nil {
		return Config{}, fmt.Errorf("target: %w", err)
	}

	source, err := propath.Parse(e.Source)
	if err != nil {
		return Config{}, fmt.Errorf("source: %w", err)
	}

	cfg := Config{
		TargetPath:         target,
		SourcePath:         source,
		Mode:               e.Mode,
		SourceResolver:     e.SourceResolver,
		ElementName:        e.Element,
		DataContext:        e.DataContext,
		ConverterParameter: e.ConverterParameter,
		Culture:            e.Culture,
		FallbackValue:      e.Fallback,
	}

	if e.Converter != "" {
		if converters != nil {
			cfg.Converter = converters.Get(e.Converter)
		}

		if cfg.Converter == nil {
			return Config{}, fmt.Errorf("%w %q", ErrUnknownConverter, e.Converter)
		}
	}

	return cfg, nil
}

// Configs builds every entry's Config. All failing entries are reported in
// the joined error.
func (s *Sheet) Configs(converters *ConverterRegistry) ([]Config, error) {
	configs := make([]Config, 0, len(s.Bindings))

	var errs []error
	for i, e := range s.Bindings {
		cfg, err := e.Config(converters)
		if err != nil {
			errs = append(errs, fmt.Errorf("binding %d: %w", i, err))
			continue
		}

		configs = append(configs, cfg)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return configs, nil
}
