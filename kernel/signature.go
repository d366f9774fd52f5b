package kernel

import (
	"fmt"
	"strings"
)

// ParamCategory classifies a formal kernel parameter.
type ParamCategory int

const (
	OutputParam ParamCategory = iota
	CoefficientParam
	CoordinateParam
	EntityParam
	OrientationParam
)

func (c ParamCategory) String() string {
	switch c {
	case OutputParam:
		return "output"
	case CoefficientParam:
		return "coefficient"
	case CoordinateParam:
		return "coordinate"
	case EntityParam:
		return "entity"
	case OrientationParam:
		return "orientation"
	default:
		return fmt.Sprintf("ParamCategory(%d)", int(c))
	}
}

// Param describes one formal kernel parameter. Buffer parameters are
// scalar pointers; entity numbers and orientations are passed by
// value.
type Param struct {
	Name     string
	Category ParamCategory
	Const    bool
	Pointer  bool
}

// Decl renders the parameter as a C declaration using the given scalar
// type for buffers. Entity numbers are std::size_t and orientations
// int, per the external calling convention.
func (p Param) Decl(scalarType string) string {
	switch p.Category {
	case EntityParam:
		return "std::size_t " + p.Name
	case OrientationParam:
		return "int " + p.Name
	default:
		decl := scalarType + "* " + p.Name
		if p.Const {
			decl = "const " + decl
		}
		return decl
	}
}

// Signature is the ordered, named parameter list of a generated
// kernel. Immutable once built: parameter order is a pure function of
// the integral kind, never of which fields are enabled, preserving ABI
// compatibility across kernels of the same kind.
type Signature struct {
	Kind   IntegralKind
	Params []Param
}

// Decl renders the full parameter list, one parameter per line.
func (s Signature) Decl(scalarType string) string {
	decls := make([]string, len(s.Params))
	for i, p := range s.Params {
		decls[i] = p.Decl(scalarType)
	}
	return strings.Join(decls, ",\n\t")
}

// BuildSignature returns the canonical parameter list for the given
// integral kind: output buffer, coefficient buffer(s), coordinate
// buffer(s), entity number(s), then cell orientation(s). The table is
// fixed per kind and not data-dependent. Panics with
// UnsupportedIntegralKindError outside the enumeration.
func BuildSignature(kind IntegralKind, outputName string) Signature {
	if outputName == "" {
		outputName = "A"
	}

	params := []Param{{Name: outputName, Category: OutputParam, Pointer: true}}

	buffer := func(name string, cat ParamCategory) Param {
		return Param{Name: name, Category: cat, Const: true, Pointer: true}
	}

	switch kind {
	case Cell, ExteriorFacet, Vertex:
		params = append(params,
			buffer("w", CoefficientParam),
			buffer("coordinate_dofs", CoordinateParam))
	case InteriorFacet:
		params = append(params,
			buffer("w_0", CoefficientParam),
			buffer("w_1", CoefficientParam),
			buffer("coordinate_dofs_0", CoordinateParam),
			buffer("coordinate_dofs_1", CoordinateParam))
	default:
		panic(&UnsupportedIntegralKindError{Kind: kind})
	}

	switch kind {
	case Cell:
		// No entity parameter.
	case ExteriorFacet:
		params = append(params, Param{Name: "facet", Category: EntityParam})
	case InteriorFacet:
		params = append(params,
			Param{Name: "facet_0", Category: EntityParam},
			Param{Name: "facet_1", Category: EntityParam})
	case Vertex:
		params = append(params, Param{Name: "vertex", Category: EntityParam})
	}

	if kind.TwoSided() {
		params = append(params,
			Param{Name: "cell_orientation_0", Category: OrientationParam},
			Param{Name: "cell_orientation_1", Category: OrientationParam})
	} else {
		params = append(params, Param{Name: "cell_orientation", Category: OrientationParam})
	}

	return Signature{Kind: kind, Params: params}
}
