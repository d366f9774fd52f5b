package kernel

import (
	"errors"
	"fmt"

	"formbind/element"
	"formbind/sym"
)

// ErrInconsistentMetadata reports user-supplied form metadata that
// disagrees across inputs required to agree. Returned, not panicked:
// it originates outside this layer.
var ErrInconsistentMetadata = errors.New("inconsistent form metadata")

// FieldKind classifies a kernel input.
type FieldKind int

const (
	Argument FieldKind = iota
	Coefficient
	Coordinate
)

func (k FieldKind) String() string {
	switch k {
	case Argument:
		return "argument"
	case Coefficient:
		return "coefficient"
	case Coordinate:
		return "coordinate"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// Field is one named kernel input. Fields are supplied and owned by
// the caller; the binding layer only reads them.
type Field struct {
	Name    string
	Kind    FieldKind
	Shape   sym.Shape // logical tensor value shape
	Element element.Element

	// Enabled marks whether this integral uses the field. Disabled
	// fields still consume buffer space so that field offsets stay
	// stable across integrals sharing one numbering.
	Enabled bool

	// Doubled marks the field as restriction-doubled for
	// interior-facet integrals. Must agree with the integral kind.
	Doubled bool
}

// flattenedSize is the field's footprint in buffer rows, before any
// restriction doubling. Real-family fields bypass tabulation and pack
// their tensor value shape directly; element-tabulated fields pack the
// element's local degree-of-freedom index shape.
func (f Field) flattenedSize() int {
	if f.Element.Real() {
		return f.Shape.Size()
	}
	return f.Element.IndexShape().Size()
}

// checkShape verifies the declared value shape against the element's
// tabulated value shape. Disagreement is a caller defect and panics
// with full context.
func (f Field) checkShape() {
	if f.Element.Real() {
		return
	}
	want := f.Element.ValueShape()
	if !want.Equal(f.Shape) {
		panic(&sym.ShapeMismatchError{
			Context: fmt.Sprintf("field %q declared shape vs element value shape", f.Name),
			Want:    want,
			Got:     f.Shape,
		})
	}
}
