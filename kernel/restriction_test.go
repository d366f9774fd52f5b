package kernel

import (
	"testing"

	"formbind/sym"
)

func TestIntegralKind_TwoSided(t *testing.T) {
	cases := map[IntegralKind]bool{
		Cell:          false,
		ExteriorFacet: false,
		InteriorFacet: true,
		Vertex:        false,
	}
	for kind, want := range cases {
		if got := kind.TwoSided(); got != want {
			t.Errorf("%s.TwoSided() = %v, want %v", kind, got, want)
		}
	}
}

func TestParseIntegralKind(t *testing.T) {
	for _, kind := range []IntegralKind{Cell, ExteriorFacet, InteriorFacet, Vertex} {
		parsed, err := ParseIntegralKind(kind.String())
		if err != nil || parsed != kind {
			t.Errorf("ParseIntegralKind(%q) = (%v, %v), want (%v, nil)", kind.String(), parsed, err, kind)
		}
	}
	if _, err := ParseIntegralKind("volume"); err == nil {
		t.Error("expected error for unknown kind string")
	}
}

func TestAddSideDimension_Shape(t *testing.T) {
	e := sym.NewVariable("x", sym.Shape{2, 3})
	withSide := AddSideDimension(e, 4)
	if !withSide.Shape().Equal(sym.Shape{2, 3, 4}) {
		t.Errorf("shape with side = %v, want [2 3 4]", withSide.Shape())
	}
}

func TestAddSideDimension_Broadcasts(t *testing.T) {
	e := sym.NewVariable("x", sym.Shape{2, 3})
	withSide := AddSideDimension(e, 4)

	// Every metadata slot reads the same underlying element.
	for slot := 0; slot < 4; slot++ {
		name, off := sym.LocateAt(withSide, []int{1, 2, slot}, nil)
		if name != "x" || off != 1*3+2 {
			t.Errorf("slot %d reads (%s, %d), want (x, 5)", slot, name, off)
		}
	}
}

// drop_side_dimension(add_side_dimension(e)) is observationally equal
// to e: every element resolves to the same buffer address.
func TestSideDimension_RoundTrip(t *testing.T) {
	base := sym.NewVariable("w", sym.Shape{12, 4})
	e := sym.NewReshape(sym.NewView(base, sym.Slice{Lo: 2, Hi: 7}, sym.Full(4)), sym.Shape{5, 4})

	for slot := 0; slot < 4; slot++ {
		round := DropSideDimension(AddSideDimension(e, 4), slot)
		if !round.Shape().Equal(e.Shape()) {
			t.Fatalf("round trip shape = %v, want %v", round.Shape(), e.Shape())
		}
		for i := 0; i < 5; i++ {
			for j := 0; j < 4; j++ {
				wantName, wantOff := sym.LocateAt(e, []int{i, j}, nil)
				gotName, gotOff := sym.LocateAt(round, []int{i, j}, nil)
				if gotName != wantName || gotOff != wantOff {
					t.Errorf("slot %d element [%d,%d]: got (%s, %d), want (%s, %d)",
						slot, i, j, gotName, gotOff, wantName, wantOff)
				}
			}
		}
	}
}

func TestDropSideDimension_FixesSlot(t *testing.T) {
	w := sym.NewVariable("w", sym.Shape{5, 4})
	dropped := DropSideDimension(w, 2)
	if !dropped.Shape().Equal(sym.Shape{5}) {
		t.Fatalf("dropped shape = %v, want [5]", dropped.Shape())
	}
	for i := 0; i < 5; i++ {
		name, off := sym.LocateAt(dropped, []int{i}, nil)
		if name != "w" || off != i*4+2 {
			t.Errorf("element %d at (%s, %d), want (w, %d)", i, name, off, i*4+2)
		}
	}
}

func TestDropSideDimension_SlotOutOfRangePanics(t *testing.T) {
	w := sym.NewVariable("w", sym.Shape{5, 4})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for slot outside side extent")
		}
	}()
	DropSideDimension(w, 4)
}
