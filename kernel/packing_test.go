package kernel

import (
	"errors"
	"testing"

	"formbind/element"
	"formbind/sym"
)

func coefficientField(name string, dofs int) Field {
	return Field{
		Name:    name,
		Kind:    Coefficient,
		Element: element.Simple{Name: name, Index: sym.Shape{dofs}},
		Enabled: true,
	}
}

func doubled(f Field) Field {
	f.Doubled = true
	return f
}

// ============================================================================
// Section 1: Offset arithmetic
// ============================================================================

func TestPlanPacking_SingleSided(t *testing.T) {
	fields := []Field{coefficientField("f1", 5), coefficientField("f2", 7)}

	plan, err := PlanPacking(fields, "w", false, 4)
	if err != nil {
		t.Fatal(err)
	}

	if plan.TotalSize != 12 {
		t.Errorf("total size = %d, want 12", plan.TotalSize)
	}
	wantOffsets := []int{0, 5}
	for i, pf := range plan.Fields {
		if pf.Offset != wantOffsets[i] {
			t.Errorf("field %s offset = %d, want %d", pf.Field.Name, pf.Offset, wantOffsets[i])
		}
		if _, ok := pf.Views[None]; !ok {
			t.Errorf("field %s missing single-sided view", pf.Field.Name)
		}
	}
}

func TestPlanPacking_InteriorFacetDoubling(t *testing.T) {
	fields := []Field{
		doubled(coefficientField("f1", 5)),
		doubled(coefficientField("f2", 7)),
	}

	plan, err := PlanPacking(fields, "w", true, 4)
	if err != nil {
		t.Fatal(err)
	}

	if plan.TotalSize != 24 {
		t.Errorf("total size = %d, want 24", plan.TotalSize)
	}

	// f1 occupies [0,5) and [5,10); f2 occupies [10,17) and [17,24).
	wantRanges := map[string]map[Restriction][2]int{
		"f1": {Plus: {0, 5}, Minus: {5, 10}},
		"f2": {Plus: {10, 17}, Minus: {17, 24}},
	}
	for _, pf := range plan.Fields {
		want := wantRanges[pf.Field.Name]
		for _, r := range []Restriction{Plus, Minus} {
			view, ok := pf.Views[r]
			if !ok {
				t.Fatalf("field %s missing %s view", pf.Field.Name, r)
			}
			lo := want[r][0]
			hi := want[r][1]
			// First and last element of the view must land on the
			// buffer rows bounding the expected range.
			name, off := sym.LocateAt(view, firstPoint(view.Shape()), nil)
			if name != "w" || off != lo*4 {
				t.Errorf("field %s %s view starts at (%s, %d), want (w, %d)", pf.Field.Name, r, name, off, lo*4)
			}
			_, last := sym.LocateAt(view, lastPoint(view.Shape()), nil)
			if last != hi*4-1 {
				t.Errorf("field %s %s view ends at %d, want %d", pf.Field.Name, r, last, hi*4-1)
			}
		}
	}
}

func TestPlan_ViewLookup(t *testing.T) {
	fields := []Field{
		doubled(coefficientField("f1", 5)),
		doubled(coefficientField("f2", 7)),
	}
	plan, err := PlanPacking(fields, "w", true, 4)
	if err != nil {
		t.Fatal(err)
	}

	view, ok := plan.View("f2", Minus)
	if !ok {
		t.Fatal("missing f2 minus view")
	}
	_, off := sym.LocateAt(view, firstPoint(view.Shape()), nil)
	if off != 17*4 {
		t.Errorf("f2 minus view starts at %d, want row 17", off/4)
	}

	if _, ok := plan.View("nope", None); ok {
		t.Error("lookup of unknown field must fail")
	}
}

// Two restriction views of one field differ by exactly the
// single-sided flattened size and never overlap.
func TestPlanPacking_RestrictionOffsetDelta(t *testing.T) {
	fields := []Field{doubled(coefficientField("f", 6))}
	plan, err := PlanPacking(fields, "w", true, 4)
	if err != nil {
		t.Fatal(err)
	}

	pf := plan.Fields[0]
	_, plusStart := sym.LocateAt(pf.Views[Plus], firstPoint(pf.Views[Plus].Shape()), nil)
	_, minusStart := sym.LocateAt(pf.Views[Minus], firstPoint(pf.Views[Minus].Shape()), nil)
	if minusStart-plusStart != pf.Size*4 {
		t.Errorf("restriction offset delta = %d rows, want %d", (minusStart-plusStart)/4, pf.Size)
	}
	_, plusEnd := sym.LocateAt(pf.Views[Plus], lastPoint(pf.Views[Plus].Shape()), nil)
	if plusEnd >= minusStart {
		t.Errorf("plus view ends at %d, overlapping minus view starting at %d", plusEnd, minusStart)
	}
}

// ============================================================================
// Section 2: Disabled fields and enabled-set stability
// ============================================================================

func TestPlanPacking_DisabledFieldKeepsOffsets(t *testing.T) {
	enabled := []Field{coefficientField("f1", 5), coefficientField("f2", 7)}
	partial := []Field{coefficientField("f1", 5), coefficientField("f2", 7)}
	partial[0].Enabled = false

	full, err := PlanPacking(enabled, "w", false, 4)
	if err != nil {
		t.Fatal(err)
	}
	sparse, err := PlanPacking(partial, "w", false, 4)
	if err != nil {
		t.Fatal(err)
	}

	if sparse.TotalSize != full.TotalSize {
		t.Errorf("total size changed with enabled set: %d vs %d", sparse.TotalSize, full.TotalSize)
	}
	for i := range full.Fields {
		if sparse.Fields[i].Offset != full.Fields[i].Offset {
			t.Errorf("field %s offset changed with enabled set: %d vs %d",
				full.Fields[i].Field.Name, sparse.Fields[i].Offset, full.Fields[i].Offset)
		}
	}
	if len(sparse.Fields[0].Views) != 0 {
		t.Error("disabled field must not produce views")
	}
	if _, ok := sparse.Fields[1].Views[None]; !ok {
		t.Error("enabled field lost its view")
	}
}

// Sum of offset deltas over all fields equals the total buffer size.
func TestPlanPacking_OffsetsTileBuffer(t *testing.T) {
	fields := []Field{
		coefficientField("a", 3),
		coefficientField("b", 1),
		coefficientField("c", 8),
	}
	fields[1].Enabled = false

	plan, err := PlanPacking(fields, "w", false, 4)
	if err != nil {
		t.Fatal(err)
	}

	covered := 0
	prevEnd := 0
	for _, pf := range plan.Fields {
		if pf.Offset != prevEnd {
			t.Errorf("field %s offset %d leaves gap after %d", pf.Field.Name, pf.Offset, prevEnd)
		}
		covered += pf.Size
		prevEnd = pf.Offset + pf.Size
	}
	if covered != plan.TotalSize {
		t.Errorf("fields cover %d rows of %d", covered, plan.TotalSize)
	}
}

// ============================================================================
// Section 3: Packing policies
// ============================================================================

func TestPlanPacking_RealFamilyBypassesTabulation(t *testing.T) {
	f := Field{
		Name:    "c",
		Kind:    Coefficient,
		Shape:   sym.Shape{2, 3},
		Element: element.Simple{Name: "R", IsReal: true, Index: sym.Shape{99}},
		Enabled: true,
	}

	plan, err := PlanPacking([]Field{f}, "w", false, 4)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Fields[0].Size != 6 {
		t.Errorf("real field size = %d, want tensor shape product 6", plan.Fields[0].Size)
	}
	view := plan.Fields[0].Views[None]
	if !view.Shape().Equal(sym.Shape{2, 3, 4}) {
		t.Errorf("real field view shape = %v, want [2 3 4]", view.Shape())
	}
}

func TestPlanPacking_TabulatedFieldUsesElementShape(t *testing.T) {
	f := Field{
		Name:    "u",
		Kind:    Coefficient,
		Shape:   sym.Shape{2},
		Element: element.TensorProduct{Base: element.Simple{Index: sym.Shape{3}}, Components: sym.Shape{2}},
		Enabled: true,
	}

	plan, err := PlanPacking([]Field{f}, "w", false, 4)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Fields[0].Size != 6 {
		t.Errorf("tabulated field size = %d, want dof count 6", plan.Fields[0].Size)
	}
	view := plan.Fields[0].Views[None]
	if !view.Shape().Equal(sym.Shape{2, 3, 4}) {
		t.Errorf("tabulated view shape = %v, want [2 3 4]", view.Shape())
	}
}

// ============================================================================
// Section 4: Failure modes
// ============================================================================

func TestPlanPacking_InconsistentDoublingIsError(t *testing.T) {
	fields := []Field{coefficientField("f", 5)} // not doubled
	_, err := PlanPacking(fields, "w", true, 4)
	if !errors.Is(err, ErrInconsistentMetadata) {
		t.Errorf("expected ErrInconsistentMetadata, got %v", err)
	}
}

func TestPlanPacking_DeclaredShapeMismatchPanics(t *testing.T) {
	f := Field{
		Name:    "u",
		Kind:    Coefficient,
		Shape:   sym.Shape{3}, // element says [2]
		Element: element.TensorProduct{Base: element.Simple{Index: sym.Shape{3}}, Components: sym.Shape{2}},
		Enabled: true,
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for declared vs tabulated shape mismatch")
		}
		var mismatch *sym.ShapeMismatchError
		if err, ok := r.(error); !ok || !errors.As(err, &mismatch) {
			t.Fatalf("expected ShapeMismatchError, got %v", r)
		}
	}()
	PlanPacking([]Field{f}, "w", false, 4)
}

// firstPoint and lastPoint bound a shape's index space.

func firstPoint(s sym.Shape) []int {
	return make([]int, len(s))
}

func lastPoint(s sym.Shape) []int {
	p := make([]int, len(s))
	for i, d := range s {
		p[i] = d - 1
	}
	return p
}
