package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"formbind/sym"
)

// Config holds per-kernel configuration for a Builder.
type Config struct {
	// SideExtent is the extent of the trailing metadata dimension.
	// Zero selects DefaultSideExtent.
	SideExtent int

	// FloatType selects the scalar precision used when rendering
	// declarations and static matrices. Zero selects Float64.
	FloatType DataType

	// OutputName names the local output tensor. Empty selects "A".
	OutputName string
}

// Builder assembles the ABI binding for one kernel: the formal
// parameter list, the packed coefficient views, the coordinate views,
// and the output expressions. One Builder serves one kernel build;
// concurrent builds each use their own Builder.
type Builder struct {
	Kind IntegralKind

	sideExtent int
	floatType  DataType
	outputName string
	twoSided   bool

	zero         ZeroInit
	outputs      []OutputBlock
	coefficients *Plan
	coordinates  map[Restriction]sym.Expr
	entityNumber map[Restriction]sym.Expr
	orientations map[Restriction]sym.Expr

	staticMatrices map[string]mat.Matrix
	matrixOrder    []string
}

// NewBuilder returns a Builder for the given integral kind. Panics
// with UnsupportedIntegralKindError outside the enumeration.
func NewBuilder(kind IntegralKind, cfg Config) *Builder {
	twoSided := kind.TwoSided() // panics on unsupported kinds

	b := &Builder{
		Kind:           kind,
		sideExtent:     cfg.SideExtent,
		floatType:      cfg.FloatType,
		outputName:     cfg.OutputName,
		twoSided:       twoSided,
		staticMatrices: make(map[string]mat.Matrix),
	}
	if b.sideExtent <= 0 {
		b.sideExtent = DefaultSideExtent
	}
	if b.floatType == 0 {
		b.floatType = Float64
	}
	if b.outputName == "" {
		b.outputName = "A"
	}

	scalar := func(name string) sym.Expr {
		return sym.NewVariable(name, sym.Shape{})
	}

	if twoSided {
		b.orientations = map[Restriction]sym.Expr{
			Plus:  scalar("cell_orientation_0"),
			Minus: scalar("cell_orientation_1"),
		}
	} else {
		b.orientations = map[Restriction]sym.Expr{None: scalar("cell_orientation")}
	}

	switch kind {
	case Cell:
		b.entityNumber = map[Restriction]sym.Expr{}
	case ExteriorFacet:
		b.entityNumber = map[Restriction]sym.Expr{None: scalar("facet")}
	case InteriorFacet:
		b.entityNumber = map[Restriction]sym.Expr{
			Plus:  scalar("facet_0"),
			Minus: scalar("facet_1"),
		}
	case Vertex:
		b.entityNumber = map[Restriction]sym.Expr{None: scalar("vertex")}
	}

	return b
}

// SetArguments processes the test/trial arguments. argShapes holds the
// element index shape of each argument; multiindices the index tuples
// the lowering stage uses to address them. Returns the per-restriction
// output expressions.
func (b *Builder) SetArguments(argShapes []sym.Shape, multiindices [][]*sym.Index) []OutputBlock {
	b.zero, b.outputs = PrepareArguments(b.outputName, argShapes, multiindices, b.twoSided)
	return b.outputs
}

// SetCoefficients packs the ordered coefficient field list into the
// shared coefficient buffer. Fields must all be coefficients with
// restriction doubling matching the integral kind; a disagreement is
// reported as an InconsistentMetadata error.
func (b *Builder) SetCoefficients(fields []Field) (*Plan, error) {
	for _, f := range fields {
		if f.Kind != Coefficient {
			return nil, fmt.Errorf("field %q has kind %s, want coefficient: %w",
				f.Name, f.Kind, ErrInconsistentMetadata)
		}
	}
	plan, err := PlanPacking(fields, "w", b.twoSided, b.sideExtent)
	if err != nil {
		return nil, err
	}
	b.coefficients = plan
	return plan, nil
}

// SetCoordinates prepares the coordinate field views.
func (b *Builder) SetCoordinates(f Field) map[Restriction]sym.Expr {
	b.coordinates = PrepareCoordinates(f, "coordinate_dofs", b.twoSided, b.sideExtent)
	return b.coordinates
}

// EntityNumber returns the symbolic facet or vertex number for the
// given restriction side, if the integral kind has one.
func (b *Builder) EntityNumber(r Restriction) (sym.Expr, bool) {
	e, ok := b.entityNumber[r]
	return e, ok
}

// CellOrientation returns the symbolic cell orientation flag for the
// given restriction side.
func (b *Builder) CellOrientation(r Restriction) (sym.Expr, bool) {
	e, ok := b.orientations[r]
	return e, ok
}

// AddStaticMatrix registers a named tabulation matrix to embed as a
// static constant in the kernel preamble.
func (b *Builder) AddStaticMatrix(name string, m mat.Matrix) {
	if _, exists := b.staticMatrices[name]; !exists {
		b.matrixOrder = append(b.matrixOrder, name)
	}
	b.staticMatrices[name] = m
}

// Kernel is the finished, frozen binding for one kernel.
type Kernel struct {
	Name         string
	Kind         IntegralKind
	Signature    Signature
	ZeroInit     ZeroInit
	Outputs      []OutputBlock
	Coefficients *Plan
	Coordinates  map[Restriction]sym.Expr
	Preamble     string

	// Empty marks a kernel whose body only zero-initializes the
	// output, used when an integral contributes no nonzero terms
	// after simplification.
	Empty bool
}

// ConstructKernel freezes the builder state into a Kernel value for
// the emission backend.
func (b *Builder) ConstructKernel(name string) *Kernel {
	return b.construct(name, false)
}

// ConstructEmptyKernel builds a kernel sharing the signature of a full
// one, with a body that only zeroes the output.
func (b *Builder) ConstructEmptyKernel(name string) *Kernel {
	return b.construct(name, true)
}

func (b *Builder) construct(name string, empty bool) *Kernel {
	return &Kernel{
		Name:         name,
		Kind:         b.Kind,
		Signature:    BuildSignature(b.Kind, b.outputName),
		ZeroInit:     b.zero,
		Outputs:      b.outputs,
		Coefficients: b.coefficients,
		Coordinates:  b.coordinates,
		Preamble:     b.generatePreamble(),
		Empty:        empty,
	}
}
