// Package element describes the finite element data the binding layer
// needs: the local degree-of-freedom index structure of each element,
// the tensor-product decomposition of vector and tensor elements, and
// whether an element's function family is Real (a global constant that
// bypasses tabulation entirely). The actual basis evaluation lives in
// an external service; this package only carries its answers.
package element

import (
	"gonum.org/v1/gonum/mat"

	"formbind/sym"
)

// Element is the description of one finite element.
type Element interface {
	// IndexShape returns the local degree-of-freedom index structure.
	IndexShape() sym.Shape

	// ValueShape returns the shape of the element's values at a point.
	// Scalar elements return the empty shape.
	ValueShape() sym.Shape

	// Real reports whether the function family bypasses tabulation.
	Real() bool
}

// Tensor is implemented by elements built as the tensor product of a
// scalar base element and a component shape.
type Tensor interface {
	Element

	// BaseIndexShape returns the scalar base element's index shape.
	BaseIndexShape() sym.Shape

	// ComponentShape returns the component part of the index shape.
	ComponentShape() sym.Shape
}

// Simple is a plain scalar-basis element description.
type Simple struct {
	Name   string
	Index  sym.Shape
	Value  sym.Shape
	IsReal bool
}

func (e Simple) IndexShape() sym.Shape { return e.Index }
func (e Simple) ValueShape() sym.Shape { return e.Value }
func (e Simple) Real() bool            { return e.IsReal }

// TensorProduct composes a scalar base element with a component shape.
// DoF ordering is component-major: all dofs of the first component
// precede all dofs of the second, so the index shape is the component
// shape followed by the base index shape.
type TensorProduct struct {
	Base       Simple
	Components sym.Shape
}

func (e TensorProduct) IndexShape() sym.Shape {
	out := make(sym.Shape, 0, len(e.Components)+len(e.Base.Index))
	out = append(out, e.Components...)
	out = append(out, e.Base.Index...)
	return out
}

func (e TensorProduct) ValueShape() sym.Shape     { return e.Components }
func (e TensorProduct) Real() bool                { return e.Base.IsReal }
func (e TensorProduct) BaseIndexShape() sym.Shape { return e.Base.Index }
func (e TensorProduct) ComponentShape() sym.Shape { return e.Components }

// Tabulation pairs a name with basis values evaluated at quadrature
// points (rows are points, columns are local dofs), ready to embed as
// a static matrix in a kernel preamble.
type Tabulation struct {
	Name   string
	Values mat.Matrix
}
