package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"formbind/element"
	"formbind/kernel"
	"formbind/sym"
)

// Description is the YAML form of one kernel's inputs.
type Description struct {
	Kind       string `yaml:"kind"`
	SideExtent int    `yaml:"side_extent"`

	Arguments    []ArgumentDescription  `yaml:"arguments"`
	Coefficients []FieldDescription     `yaml:"coefficients"`
	Coordinates  *CoordinateDescription `yaml:"coordinates"`
}

// ArgumentDescription describes one test/trial argument.
type ArgumentDescription struct {
	IndexShape []int `yaml:"index_shape"`
}

// FieldDescription describes one coefficient field.
type FieldDescription struct {
	Name       string `yaml:"name"`
	Shape      []int  `yaml:"shape"`
	IndexShape []int  `yaml:"index_shape"`
	Real       bool   `yaml:"real"`
	Disabled   bool   `yaml:"disabled"`
}

// CoordinateDescription describes the coordinate element.
type CoordinateDescription struct {
	BaseShape  []int `yaml:"base_shape"`
	Components []int `yaml:"components"`
}

// LoadDescription reads and decodes a kernel description file.
func LoadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode description: %w", err)
	}
	if d.Kind == "" {
		return nil, fmt.Errorf("description has no integral kind")
	}
	return &d, nil
}

// Build runs the binding layer over the description and returns the
// frozen kernel.
func (d *Description) Build(name string) (*kernel.Kernel, error) {
	kind, err := kernel.ParseIntegralKind(d.Kind)
	if err != nil {
		return nil, err
	}

	b := kernel.NewBuilder(kind, kernel.Config{SideExtent: d.SideExtent})

	argShapes := make([]sym.Shape, len(d.Arguments))
	multiindices := make([][]*sym.Index, len(d.Arguments))
	for a, arg := range d.Arguments {
		shape := sym.Shape(arg.IndexShape)
		argShapes[a] = shape
		indices := make([]*sym.Index, len(shape))
		for i, extent := range shape {
			indices[i] = sym.NamedIndex(fmt.Sprintf("j%d_%d", a, i), extent)
		}
		multiindices[a] = indices
	}
	b.SetArguments(argShapes, multiindices)

	fields := make([]kernel.Field, len(d.Coefficients))
	for i, fd := range d.Coefficients {
		fields[i] = kernel.Field{
			Name:    fd.Name,
			Kind:    kernel.Coefficient,
			Shape:   sym.Shape(fd.Shape),
			Enabled: !fd.Disabled,
			Doubled: kind.TwoSided(),
			Element: element.Simple{
				Name:   fd.Name,
				Index:  sym.Shape(fd.IndexShape),
				Value:  sym.Shape(fd.Shape),
				IsReal: fd.Real,
			},
		}
	}
	if _, err := b.SetCoefficients(fields); err != nil {
		return nil, err
	}

	if d.Coordinates != nil {
		coordElement := element.TensorProduct{
			Base:       element.Simple{Name: "coordinate_basis", Index: sym.Shape(d.Coordinates.BaseShape)},
			Components: sym.Shape(d.Coordinates.Components),
		}
		b.SetCoordinates(kernel.Field{
			Name:    "coordinates",
			Kind:    kernel.Coordinate,
			Shape:   coordElement.ValueShape(),
			Element: coordElement,
			Enabled: true,
			Doubled: kind.TwoSided(),
		})
	}

	return b.ConstructKernel(name), nil
}
