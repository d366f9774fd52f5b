package sym

import "fmt"

// Expr is the closed union of symbolic view expressions. The marker
// method restricts implementations to this package so that consumers
// switching over the union can rely on the case list being complete.
type Expr interface {
	// Shape returns the expression's index space. Scalar expressions
	// return the empty shape.
	Shape() Shape

	isExpr()
}

func (*Variable) isExpr()        {}
func (*Reshape) isExpr()         {}
func (*View) isExpr()            {}
func (*Indexed) isExpr()         {}
func (*ComponentTensor) isExpr() {}

// Variable is a named kernel parameter read as a tensor of the
// declared shape.
type Variable struct {
	Name  string
	shape Shape
}

// NewVariable returns a variable of the given name and shape.
func NewVariable(name string, shape Shape) *Variable {
	for i, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("sym: variable %s has negative extent %d in dimension %d", name, d, i))
		}
	}
	return &Variable{Name: name, shape: shape.Clone()}
}

func (v *Variable) Shape() Shape { return v.shape }

func (v *Variable) String() string { return v.Name }

// Reshape reinterprets an expression as a different shape with the
// same total element count.
type Reshape struct {
	X     Expr
	shape Shape
}

// NewReshape reinterprets x as shape. Panics with ShapeMismatchError
// if the total element counts differ.
func NewReshape(x Expr, shape Shape) *Reshape {
	if x.Shape().Size() != shape.Size() {
		panic(&ShapeMismatchError{Context: "reshape", Want: shape, Got: x.Shape()})
	}
	return &Reshape{X: x, shape: shape.Clone()}
}

func (r *Reshape) Shape() Shape { return r.shape }

func (r *Reshape) String() string { return fmt.Sprintf("reshape(%v, %v)", r.X, r.shape) }

// Slice is a half-open index range [Lo, Hi) within one dimension.
type Slice struct {
	Lo, Hi int
}

// Full returns the slice covering an entire extent.
func Full(extent int) Slice { return Slice{0, extent} }

// Len returns the number of positions the slice covers.
func (s Slice) Len() int { return s.Hi - s.Lo }

// View restricts an expression to a contiguous sub-range in each
// dimension.
type View struct {
	X      Expr
	Slices []Slice
}

// NewView extracts the sub-range of x given by one slice per
// dimension. Panics with OutOfBoundsError if a slice exceeds its
// dimension's extent, or ShapeMismatchError if the slice count does
// not match the rank.
func NewView(x Expr, slices ...Slice) *View {
	shape := x.Shape()
	if len(slices) != len(shape) {
		panic(&ShapeMismatchError{Context: fmt.Sprintf("view with %d slices", len(slices)), Want: shape, Got: nil})
	}
	for i, sl := range slices {
		if sl.Lo < 0 || sl.Hi < sl.Lo || sl.Hi > shape[i] {
			panic(&OutOfBoundsError{Context: "view", Dim: i, Slice: sl, Extent: shape[i]})
		}
	}
	held := make([]Slice, len(slices))
	copy(held, slices)
	return &View{X: x, Slices: held}
}

func (v *View) Shape() Shape {
	s := make(Shape, len(v.Slices))
	for i, sl := range v.Slices {
		s[i] = sl.Len()
	}
	return s
}

func (v *View) String() string {
	s := fmt.Sprintf("view(%v", v.X)
	for _, sl := range v.Slices {
		s += fmt.Sprintf(", %d:%d", sl.Lo, sl.Hi)
	}
	return s + ")"
}

// Indexed is a scalar: an expression evaluated at one multi-index.
type Indexed struct {
	X       Expr
	Indices MultiIndex
}

// NewIndexed evaluates x at the given multi-index. Each entry must
// match its dimension: index variables by extent, fixed indices by
// range. Panics with ShapeMismatchError or OutOfBoundsError otherwise.
func NewIndexed(x Expr, indices MultiIndex) *Indexed {
	shape := x.Shape()
	if len(indices) != len(shape) {
		panic(&ShapeMismatchError{Context: fmt.Sprintf("indexed with %d indices", len(indices)), Want: shape, Got: nil})
	}
	for i, e := range indices {
		switch v := e.(type) {
		case *Index:
			if v.Extent() != shape[i] {
				panic(&ShapeMismatchError{
					Context: fmt.Sprintf("indexed dimension %d", i),
					Want:    Shape{shape[i]},
					Got:     Shape{v.Extent()},
				})
			}
		case FixedIndex:
			if int(v) < 0 || int(v) >= shape[i] {
				panic(&OutOfBoundsError{Context: "indexed", Dim: i, Slice: Slice{int(v), int(v) + 1}, Extent: shape[i]})
			}
		}
	}
	held := make(MultiIndex, len(indices))
	copy(held, indices)
	return &Indexed{X: x, Indices: held}
}

func (ix *Indexed) Shape() Shape { return Shape{} }

func (ix *Indexed) String() string { return fmt.Sprintf("%v%v", ix.X, ix.Indices) }

// ComponentTensor rebuilds a tensor from a scalar expression by
// abstracting over the given index variables.
type ComponentTensor struct {
	X       Expr
	Indices []*Index
}

// NewComponentTensor abstracts the scalar x over the index variables,
// producing an expression whose shape is their extents. Panics with
// ShapeMismatchError if x is not scalar.
func NewComponentTensor(x Expr, indices ...*Index) *ComponentTensor {
	if len(x.Shape()) != 0 {
		panic(&ShapeMismatchError{Context: "component tensor over non-scalar", Want: Shape{}, Got: x.Shape()})
	}
	held := make([]*Index, len(indices))
	copy(held, indices)
	return &ComponentTensor{X: x, Indices: held}
}

func (ct *ComponentTensor) Shape() Shape {
	s := make(Shape, len(ct.Indices))
	for i, idx := range ct.Indices {
		s[i] = idx.Extent()
	}
	return s
}

func (ct *ComponentTensor) String() string {
	s := fmt.Sprintf("tensor(%v", ct.X)
	for _, idx := range ct.Indices {
		s += ", " + idx.String()
	}
	return s + ")"
}
