// Package kernel is the ABI binding layer of the form compiler: it
// decides how every kernel input (basis-function arguments,
// coefficient fields, coordinate fields, facet and vertex numbers,
// cell orientations) is packed into flat parameter buffers, and
// produces the symbolic index expressions that let the lowering stage
// address those buffers as structured tensors again.
package kernel

import "fmt"

// IntegralKind is the geometric entity a form piece integrates over.
// The enumeration is closed: every consumer switches exhaustively and
// panics with UnsupportedIntegralKindError on anything else.
type IntegralKind int

const (
	Cell IntegralKind = iota
	ExteriorFacet
	InteriorFacet
	Vertex
)

func (k IntegralKind) String() string {
	switch k {
	case Cell:
		return "cell"
	case ExteriorFacet:
		return "exterior_facet"
	case InteriorFacet:
		return "interior_facet"
	case Vertex:
		return "vertex"
	default:
		return fmt.Sprintf("IntegralKind(%d)", int(k))
	}
}

// TwoSided reports whether the kind restricts every field to the two
// cells adjacent to an interior facet.
func (k IntegralKind) TwoSided() bool {
	switch k {
	case Cell, ExteriorFacet, Vertex:
		return false
	case InteriorFacet:
		return true
	default:
		panic(&UnsupportedIntegralKindError{Kind: k})
	}
}

// ParseIntegralKind converts the external string form of an integral
// kind. Unknown strings are a metadata error, not a panic, because the
// string originates from user-supplied form metadata.
func ParseIntegralKind(s string) (IntegralKind, error) {
	switch s {
	case "cell":
		return Cell, nil
	case "exterior_facet":
		return ExteriorFacet, nil
	case "interior_facet":
		return InteriorFacet, nil
	case "vertex":
		return Vertex, nil
	default:
		return 0, fmt.Errorf("unknown integral kind %q: %w", s, ErrInconsistentMetadata)
	}
}

// UnsupportedIntegralKindError reports a kind outside the fixed
// enumeration. Programmer error; raised by panic.
type UnsupportedIntegralKindError struct {
	Kind IntegralKind
}

func (e *UnsupportedIntegralKindError) Error() string {
	return fmt.Sprintf("unsupported integral kind %s", e.Kind)
}
