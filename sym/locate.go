package sym

import "fmt"

// Locate resolves a scalar expression under an index binding to the
// variable it reads and the flat row-major element offset within that
// variable's declared shape. Every free index variable reachable from
// e must be bound in env. The switch over the union is exhaustive;
// an unknown node kind is a defect and panics.
func Locate(e Expr, env map[*Index]int) (name string, offset int) {
	if len(e.Shape()) != 0 {
		panic(&ShapeMismatchError{Context: "locate of non-scalar expression", Want: Shape{}, Got: e.Shape()})
	}
	return LocateAt(e, nil, env)
}

// LocateAt resolves element point of expression e to a variable name
// and flat offset. The point must have one entry per dimension of e.
func LocateAt(e Expr, point []int, env map[*Index]int) (string, int) {
	switch v := e.(type) {
	case *Variable:
		return v.Name, rowMajor(v.shape, point)

	case *Reshape:
		flat := rowMajor(v.shape, point)
		return LocateAt(v.X, unflatten(v.X.Shape(), flat), env)

	case *View:
		shifted := make([]int, len(point))
		for i, p := range point {
			shifted[i] = v.Slices[i].Lo + p
		}
		return LocateAt(v.X, shifted, env)

	case *Indexed:
		if len(point) != 0 {
			panic(fmt.Sprintf("sym: point %v applied to scalar expression", point))
		}
		inner := make([]int, len(v.Indices))
		for i, entry := range v.Indices {
			switch ie := entry.(type) {
			case *Index:
				p, ok := env[ie]
				if !ok {
					panic(fmt.Sprintf("sym: unbound index %v in %v", ie, v))
				}
				inner[i] = p
			case FixedIndex:
				inner[i] = int(ie)
			}
		}
		return LocateAt(v.X, inner, env)

	case *ComponentTensor:
		if len(point) != len(v.Indices) {
			panic(fmt.Sprintf("sym: point %v does not match component tensor rank %d", point, len(v.Indices)))
		}
		bound := make(map[*Index]int, len(env)+len(v.Indices))
		for k, p := range env {
			bound[k] = p
		}
		for i, idx := range v.Indices {
			bound[idx] = point[i]
		}
		return LocateAt(v.X, nil, bound)

	default:
		panic(fmt.Sprintf("sym: unhandled expression %T", e))
	}
}
