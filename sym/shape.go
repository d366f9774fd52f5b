// Package sym implements symbolic tensor expressions over flat scalar
// buffers. A small closed set of node types (Variable, Reshape, View,
// Indexed, ComponentTensor) describes how a flat kernel parameter is
// read back as a structured tensor. Expressions are immutable values
// and are never evaluated eagerly; Locate resolves a fully indexed
// expression to a concrete buffer address for testing and lowering.
package sym

import "fmt"

// Shape is the ordered extents of a tensor's index space. The empty
// shape denotes a scalar.
type Shape []int

// Size returns the total element count, the product of all extents.
// A scalar shape has size 1.
func (s Shape) Size() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Equal reports whether two shapes have identical extents.
func (s Shape) Equal(t Shape) bool {
	if len(s) != len(t) {
		return false
	}
	for i := range s {
		if s[i] != t[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}

// rowMajor computes the flat row-major offset of point within s.
// The point must have one in-range entry per dimension.
func rowMajor(s Shape, point []int) int {
	if len(point) != len(s) {
		panic(fmt.Sprintf("sym: point rank %d does not match shape %v", len(point), s))
	}
	off := 0
	for i, p := range point {
		if p < 0 || p >= s[i] {
			panic(fmt.Sprintf("sym: point %v outside shape %v at dimension %d", point, s, i))
		}
		off = off*s[i] + p
	}
	return off
}

// unflatten converts a flat row-major offset back into a point in s.
func unflatten(s Shape, off int) []int {
	if off < 0 || off >= s.Size() {
		panic(fmt.Sprintf("sym: offset %d outside shape %v", off, s))
	}
	point := make([]int, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		point[i] = off % s[i]
		off /= s[i]
	}
	return point
}
