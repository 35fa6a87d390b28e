package preset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/matex/internal/engine"
	"github.com/roach88/matex/internal/material"
	"github.com/roach88/matex/internal/queryir"
)

//go:embed schema.cue
var schemaCUE string

// Bounds is an inclusive range; a nil side is open.
type Bounds struct {
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`
}

// Filter is the file form of a FilterSpec.
type Filter struct {
	Ranges   map[string]Bounds `yaml:"ranges,omitempty" json:"ranges,omitempty"`
	Formula  string            `yaml:"formula,omitempty" json:"formula,omitempty"`
	Elements []string          `yaml:"elements,omitempty" json:"elements,omitempty"`
}

// Spec converts f to a FilterSpec without validating it. Ranges are
// ordered by field name.
func (f Filter) Spec() queryir.FilterSpec {
	spec := queryir.FilterSpec{
		Formula:  f.Formula,
		Elements: slices.Clone(f.Elements),
	}
	for _, name := range slices.Sorted(maps.Keys(f.Ranges)) {
		b := f.Ranges[name]
		spec.Ranges = append(spec.Ranges, queryir.Range{
			Field: material.Field(name),
			Min:   b.Min,
			Max:   b.Max,
		})
	}
	return spec.Clone()
}

// Preset is a named, described filter.
type Preset struct {
	Name        string            `yaml:"name" json:"name"`
	Description string            `yaml:"description,omitempty" json:"description,omitempty"`
	Ranges      map[string]Bounds `yaml:"ranges,omitempty" json:"ranges,omitempty"`
	Formula     string            `yaml:"formula,omitempty" json:"formula,omitempty"`
	Elements    []string          `yaml:"elements,omitempty" json:"elements,omitempty"`

	// Path is the file the preset was loaded from.
	Path string `yaml:"-" json:"-"`
}

// Filter returns the filter part of the preset.
func (p Preset) Filter() Filter {
	return Filter{Ranges: p.Ranges, Formula: p.Formula, Elements: p.Elements}
}

// Spec returns the preset's validated FilterSpec.
func (p Preset) Spec() (queryir.FilterSpec, error) {
	spec := p.Filter().Spec()
	if err := engine.Validate(spec); err != nil {
		return queryir.FilterSpec{}, fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return spec, nil
}

// Load reads a preset from a .yaml, .yml or .cue file and validates it.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("read preset: %w", err)
	}

	var p Preset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseYAML(data)
	case ".cue":
		p, err = ParseCUE(path, data)
	default:
		return Preset{}, fmt.Errorf("preset %s: unsupported extension %q", path, filepath.Ext(path))
	}
	if err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", path, err)
	}

	if _, err := p.Spec(); err != nil {
		return Preset{}, fmt.Errorf("preset %s: %w", path, err)
	}
	p.Path = path
	return p, nil
}

// ParseYAML decodes one preset document. Unknown keys are errors.
func ParseYAML(data []byte) (Preset, error) {
	var p Preset
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Preset{}, errors.New("empty preset document")
		}
		return Preset{}, fmt.Errorf("parse yaml: %w", err)
	}
	if p.Name == "" {
		return Preset{}, errors.New("missing name")
	}
	return p, nil
}

// ParseCUE compiles data, unifies it with #Preset and decodes the result.
// filename is used in error positions only.
func ParseCUE(filename string, data []byte) (Preset, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Preset{}, fmt.Errorf("compile preset schema: %w", err)
	}

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return Preset{}, fmt.Errorf("compile cue: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Preset")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Preset{}, fmt.Errorf("validate cue: %w", err)
	}

	var p Preset
	if err := unified.Decode(&p); err != nil {
		return Preset{}, fmt.Errorf("decode cue: %w", err)
	}
	return p, nil
}

// LoadDir loads every preset file directly inside dir, sorted by name.
// Two presets with the same name are an error.
func LoadDir(dir string) ([]Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read preset dir: %w", err)
	}

	presets := []Preset{}
	seen := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || !IsPresetFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		p, err := Load(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("duplicate preset %q in %s and %s", p.Name, prev, path)
		}
		seen[p.Name] = path
		presets = append(presets, p)
	}

	slices.SortFunc(presets, func(a, b Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return presets, nil
}

// IsPresetFile reports whether name has a preset file extension.
func IsPresetFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}
