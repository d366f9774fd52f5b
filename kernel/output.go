package kernel

import (
	"fmt"

	"formbind/sym"
)

// ZeroInit is the directive zeroing the full output buffer before
// accumulation.
type ZeroInit struct {
	Name string
	Size int
}

// Memset renders the directive as the C statement the emission
// backend prepends to every kernel body.
func (z ZeroInit) Memset() string {
	return fmt.Sprintf("memset(%s, 0, %d * sizeof(*%s));", z.Name, z.Size, z.Name)
}

// OutputBlock is one addressable block of the output buffer: a scalar
// expression indexed by the argument multi-indices, together with the
// contiguous range it covers. Single-sided kernels have one block;
// two-sided kernels have one per element of the Cartesian product of
// {plus, minus} over the arguments.
type OutputBlock struct {
	// Restrictions holds one side per argument, in argument order.
	// Empty for single-sided kernels.
	Restrictions []Restriction

	Offset int
	Size   int
	Expr   sym.Expr
}

// PrepareArguments builds the zero-initialization directive and the
// family of output expressions for the given argument index shapes.
// multiindices supplies one index tuple per argument, matching that
// argument's index shape; the same tuples index every block.
//
// Two-sided layout places the restriction combination outermost,
// arguments-major: block (r_1 … r_n) starts at the binary encoding of
// the combination times the product of all argument sizes, so the
// blocks exactly tile the buffer.
func PrepareArguments(name string, argShapes []sym.Shape, multiindices [][]*sym.Index, twoSided bool) (ZeroInit, []OutputBlock) {
	if len(multiindices) != len(argShapes) {
		panic(&sym.ShapeMismatchError{
			Context: fmt.Sprintf("prepare arguments: %d index tuples for %d arguments", len(multiindices), len(argShapes)),
			Want:    nil,
			Got:     nil,
		})
	}

	nargs := len(argShapes)
	blockSize := 1
	flat := make(sym.MultiIndex, 0)
	var elementShape sym.Shape
	for a, shape := range argShapes {
		if len(multiindices[a]) != len(shape) {
			panic(&sym.ShapeMismatchError{
				Context: fmt.Sprintf("argument %d multi-index rank", a),
				Want:    shape,
				Got:     nil,
			})
		}
		for i, idx := range multiindices[a] {
			if idx.Extent() != shape[i] {
				panic(&sym.ShapeMismatchError{
					Context: fmt.Sprintf("argument %d index %d extent", a, i),
					Want:    sym.Shape{shape[i]},
					Got:     sym.Shape{idx.Extent()},
				})
			}
			flat = append(flat, idx)
		}
		blockSize *= shape.Size()
		elementShape = append(elementShape, shape...)
	}

	combos := 1
	if twoSided {
		combos = 1 << nargs
	}
	total := combos * blockSize

	varexp := sym.NewVariable(name, sym.Shape{total})
	zero := ZeroInit{Name: name, Size: total}

	if !twoSided {
		expr := blockExpr(sym.NewReshape(varexp, shapeOfSizes(argShapes)), elementShape, flat)
		return zero, []OutputBlock{{Offset: 0, Size: blockSize, Expr: expr}}
	}

	// Viewed shape: one extent-2 restriction dimension per argument,
	// then the per-argument flattened sizes.
	viewed := make(sym.Shape, 0, 2*nargs)
	for i := 0; i < nargs; i++ {
		viewed = append(viewed, 2)
	}
	viewed = append(viewed, shapeOfSizes(argShapes)...)
	reshaped := sym.NewReshape(varexp, viewed)

	blocks := make([]OutputBlock, 0, combos)
	for combo := 0; combo < combos; combo++ {
		slices := make([]sym.Slice, 0, len(viewed))
		restrictions := make([]Restriction, nargs)
		for a := 0; a < nargs; a++ {
			bit := (combo >> (nargs - 1 - a)) & 1
			slices = append(slices, sym.Slice{Lo: bit, Hi: bit + 1})
			if bit == 0 {
				restrictions[a] = Plus
			} else {
				restrictions[a] = Minus
			}
		}
		for _, shape := range argShapes {
			slices = append(slices, sym.Full(shape.Size()))
		}

		expr := blockExpr(sym.NewView(reshaped, slices...), elementShape, flat)
		blocks = append(blocks, OutputBlock{
			Restrictions: restrictions,
			Offset:       combo * blockSize,
			Size:         blockSize,
			Expr:         expr,
		})
	}

	return zero, blocks
}

// blockExpr reshapes one block to the concatenated argument index
// shapes and applies the argument multi-indices.
func blockExpr(block sym.Expr, elementShape sym.Shape, flat sym.MultiIndex) sym.Expr {
	reshaped := sym.NewReshape(block, elementShape)
	if len(flat) == 0 {
		return sym.Prune(reshaped)
	}
	return sym.Prune(sym.NewIndexed(reshaped, flat))
}

// shapeOfSizes flattens each argument's index shape to its total size.
func shapeOfSizes(argShapes []sym.Shape) sym.Shape {
	out := make(sym.Shape, len(argShapes))
	for i, s := range argShapes {
		out[i] = s.Size()
	}
	return out
}
