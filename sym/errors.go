package sym

import "fmt"

// ShapeMismatchError reports a shape that disagrees with what an
// operation requires. It is a programmer error: constructors panic
// with it rather than returning it.
type ShapeMismatchError struct {
	Context string
	Want    Shape
	Got     Shape
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch in %s: want %v, got %v", e.Context, e.Want, e.Got)
}

// OutOfBoundsError reports a slice or index that exceeds the extent of
// the dimension it addresses. Same class as ShapeMismatchError.
type OutOfBoundsError struct {
	Context string
	Dim     int
	Slice   Slice
	Extent  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("out of bounds in %s: slice [%d:%d) exceeds extent %d of dimension %d",
		e.Context, e.Slice.Lo, e.Slice.Hi, e.Extent, e.Dim)
}
