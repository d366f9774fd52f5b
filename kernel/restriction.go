package kernel

import (
	"fmt"

	"formbind/sym"
)

// Restriction selects one of the two cells adjacent to an interior
// facet. Single-sided integrals use None; interior-facet integrals use
// Plus and Minus.
type Restriction int

const (
	None Restriction = iota
	Plus
	Minus
)

func (r Restriction) String() string {
	switch r {
	case None:
		return ""
	case Plus:
		return "+"
	case Minus:
		return "-"
	default:
		return fmt.Sprintf("Restriction(%d)", int(r))
	}
}

// DefaultSideExtent is the default extent of the synthetic trailing
// side dimension appended to every field's shape before flattening.
// The slots hold per-component metadata bundled with the tensor data.
// Builders take the extent as configuration; this is only the default.
const DefaultSideExtent = 4

// AddSideDimension appends a side dimension of the given extent to an
// expression's shape. The new dimension broadcasts: every metadata
// slot reads the same underlying value, so fixing the slot again with
// DropSideDimension recovers the original expression observationally.
func AddSideDimension(e sym.Expr, extent int) sym.Expr {
	shape := e.Shape()
	inner := make([]*sym.Index, len(shape))
	for i, d := range shape {
		inner[i] = sym.NamedIndex(fmt.Sprintf("s%d", i), d)
	}
	side := sym.NamedIndex("c", extent)
	return sym.NewComponentTensor(
		sym.NewIndexed(e, sym.Indices(inner...)),
		append(append([]*sym.Index{}, inner...), side)...,
	)
}

// DropSideDimension fixes the trailing side dimension of an expression
// to the chosen metadata slot, returning an expression over the
// declared shape only.
func DropSideDimension(e sym.Expr, slot int) sym.Expr {
	shape := e.Shape()
	if len(shape) == 0 {
		panic(&sym.ShapeMismatchError{Context: "drop side dimension of scalar", Want: nil, Got: shape})
	}
	outer := make([]*sym.Index, len(shape)-1)
	multi := make(sym.MultiIndex, len(shape))
	for i := range outer {
		idx := sym.NamedIndex(fmt.Sprintf("s%d", i), shape[i])
		outer[i] = idx
		multi[i] = idx
	}
	multi[len(shape)-1] = sym.FixedIndex(slot)
	return sym.NewComponentTensor(sym.NewIndexed(e, multi), outer...)
}
