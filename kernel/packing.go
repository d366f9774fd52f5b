package kernel

import (
	"fmt"

	"formbind/sym"
)

// PackedField records where one field landed inside the shared
// coefficient buffer. Offsets and sizes are in buffer rows (the
// trailing side dimension is the buffer's second axis and is uniform
// across all fields, so it never enters the offset arithmetic).
type PackedField struct {
	Field  Field
	Offset int
	Size   int // single-sided flattened size

	// Views maps restriction side to the symbolic expression reading
	// the field's data. Single-sided fields carry the None entry;
	// doubled fields carry Plus and Minus. Disabled fields have no
	// views but still occupy their offset range.
	Views map[Restriction]sym.Expr
}

// Plan is the packing of an ordered field list into one shared flat
// buffer. Built once per kernel and immutable afterwards.
type Plan struct {
	Buffer     string
	SideExtent int
	TotalSize  int // buffer rows, sum of all doubled-or-not field sizes
	Fields     []PackedField
}

// View returns the view expression for the named enabled field on the
// given restriction side.
func (p *Plan) View(name string, r Restriction) (sym.Expr, bool) {
	for i := range p.Fields {
		if p.Fields[i].Field.Name == name {
			e, ok := p.Fields[i].Views[r]
			return e, ok
		}
	}
	return nil, false
}

// PlanPacking computes each field's offset inside the shared buffer
// and builds the view expression for every enabled field. The offset
// advances for every field regardless of enabled state. Interior-facet
// packing doubles each field's footprint and yields two views, the
// plus copy immediately followed by the minus copy.
func PlanPacking(fields []Field, buffer string, twoSided bool, sideExtent int) (*Plan, error) {
	if sideExtent <= 0 {
		sideExtent = DefaultSideExtent
	}

	total := 0
	for _, f := range fields {
		if f.Doubled != twoSided {
			return nil, fmt.Errorf("field %q doubled=%v under two-sided=%v: %w",
				f.Name, f.Doubled, twoSided, ErrInconsistentMetadata)
		}
		f.checkShape()
		size := f.flattenedSize()
		if twoSided {
			size *= 2
		}
		total += size
	}

	varexp := sym.NewVariable(buffer, sym.Shape{total, sideExtent})

	plan := &Plan{
		Buffer:     buffer,
		SideExtent: sideExtent,
		TotalSize:  total,
		Fields:     make([]PackedField, 0, len(fields)),
	}

	offset := 0
	for _, f := range fields {
		size := f.flattenedSize()
		pf := PackedField{Field: f, Offset: offset, Size: size}

		if f.Enabled {
			pf.Views = make(map[Restriction]sym.Expr, 2)
			if twoSided {
				pf.Views[Plus] = fieldView(varexp, f, offset, size, sideExtent)
				pf.Views[Minus] = fieldView(varexp, f, offset+size, size, sideExtent)
			} else {
				pf.Views[None] = fieldView(varexp, f, offset, size, sideExtent)
			}
		}

		plan.Fields = append(plan.Fields, pf)
		if twoSided {
			offset += 2 * size
		} else {
			offset += size
		}
	}

	return plan, nil
}

// fieldView builds the expression reading one restriction copy of a
// field: a row range of the buffer reshaped to the field's index
// structure plus the trailing side dimension.
func fieldView(varexp sym.Expr, f Field, offset, size, sideExtent int) sym.Expr {
	data := sym.NewView(varexp,
		sym.Slice{Lo: offset, Hi: offset + size},
		sym.Full(sideExtent))

	shape := f.Shape
	if !f.Element.Real() {
		shape = f.Element.IndexShape()
	}
	target := append(shape.Clone(), sideExtent)
	return sym.Prune(sym.NewReshape(data, target))
}
