package sym

import "fmt"

// Transpose returns an expression with the dimensions of x reordered
// so that output dimension k is input dimension perm[k]. No data is
// materialized: the result is a ComponentTensor over fresh index
// variables wrapped around an Indexed read of x.
func Transpose(x Expr, perm []int) Expr {
	shape := x.Shape()
	if len(perm) != len(shape) {
		panic(fmt.Sprintf("sym: transpose permutation %v does not match rank %d", perm, len(shape)))
	}
	seen := make([]bool, len(shape))
	for _, p := range perm {
		if p < 0 || p >= len(shape) || seen[p] {
			panic(fmt.Sprintf("sym: %v is not a permutation of %d dimensions", perm, len(shape)))
		}
		seen[p] = true
	}

	out := make([]*Index, len(perm))
	src := make(MultiIndex, len(perm))
	for k, p := range perm {
		idx := NamedIndex(fmt.Sprintf("t%d", k), shape[p])
		out[k] = idx
		src[p] = idx
	}
	return NewComponentTensor(NewIndexed(x, src), out...)
}

// Prune rewrites ComponentTensor(Indexed(...)) pairs that are
// index-preserving back to the expression they wrap, recursively over
// the whole tree. Idempotent; a no-op on already-pruned input.
func Prune(e Expr) Expr {
	switch v := e.(type) {
	case *Variable:
		return v
	case *Reshape:
		x := Prune(v.X)
		if x == v.X {
			return v
		}
		return &Reshape{X: x, shape: v.shape}
	case *View:
		x := Prune(v.X)
		if x == v.X {
			return v
		}
		return &View{X: x, Slices: v.Slices}
	case *Indexed:
		x := Prune(v.X)
		if x == v.X {
			return v
		}
		return &Indexed{X: x, Indices: v.Indices}
	case *ComponentTensor:
		x := Prune(v.X)
		if ix, ok := x.(*Indexed); ok && indexPreserving(ix.Indices, v.Indices) {
			return ix.X
		}
		if x == v.X {
			return v
		}
		return &ComponentTensor{X: x, Indices: v.Indices}
	default:
		panic(fmt.Sprintf("sym: unhandled expression %T", e))
	}
}

// indexPreserving reports whether wrapping Indexed(x, multi) in
// ComponentTensor over outs reproduces x unchanged: every entry must
// be the same index variable at the same position.
func indexPreserving(multi MultiIndex, outs []*Index) bool {
	if len(multi) != len(outs) {
		return false
	}
	for i, e := range multi {
		v, ok := e.(*Index)
		if !ok || v != outs[i] {
			return false
		}
	}
	return true
}
