package kernel

import (
	"formbind/element"
	"formbind/sym"
)

// PrepareCoordinates builds the view expressions for the coordinate
// field. Coordinate buffers have a bespoke physical layout: the
// scalar-basis index is outermost and the geometric-component index
// innermost, matching kernel consumption order, so the default
// component-major element layout must be transposed. Interior-facet
// integrals carry one full coordinate buffer per side rather than a
// doubled shared buffer.
func PrepareCoordinates(f Field, name string, twoSided bool, sideExtent int) map[Restriction]sym.Expr {
	if sideExtent <= 0 {
		sideExtent = DefaultSideExtent
	}
	f.checkShape()

	indexShape := f.Element.IndexShape()
	scalarShape := indexShape
	var compShape sym.Shape
	if te, ok := f.Element.(element.Tensor); ok {
		scalarShape = te.BaseIndexShape()
		compShape = te.ComponentShape()
	}

	// Physical layout: basis dofs outermost, components innermost,
	// side slots trailing.
	physical := make(sym.Shape, 0, len(scalarShape)+len(compShape)+1)
	physical = append(physical, scalarShape...)
	physical = append(physical, compShape...)
	physical = append(physical, sideExtent)
	size := physical.Size()

	// Permutation restoring the declared component-major ordering:
	// components, then basis dofs, then the side dimension.
	perm := make([]int, 0, len(physical))
	for i := 0; i < len(compShape); i++ {
		perm = append(perm, len(scalarShape)+i)
	}
	for i := 0; i < len(scalarShape); i++ {
		perm = append(perm, i)
	}
	perm = append(perm, len(physical)-1)

	build := func(bufName string) sym.Expr {
		variable := sym.NewVariable(bufName, sym.Shape{size})
		return sym.Prune(sym.Transpose(sym.NewReshape(variable, physical), perm))
	}

	views := make(map[Restriction]sym.Expr, 2)
	if twoSided {
		views[Plus] = build(name + "_0")
		views[Minus] = build(name + "_1")
	} else {
		views[None] = build(name)
	}
	return views
}
