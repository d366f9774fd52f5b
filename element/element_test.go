package element

import (
	"testing"

	"formbind/sym"
)

func TestSimple(t *testing.T) {
	e := Simple{Name: "P2", Index: sym.Shape{6}}
	if !e.IndexShape().Equal(sym.Shape{6}) {
		t.Errorf("index shape = %v, want [6]", e.IndexShape())
	}
	if len(e.ValueShape()) != 0 {
		t.Errorf("scalar element value shape = %v, want scalar", e.ValueShape())
	}
	if e.Real() {
		t.Error("plain element reported as Real")
	}
}

func TestSimple_Real(t *testing.T) {
	e := Simple{Name: "R", IsReal: true}
	if !e.Real() {
		t.Error("Real element not reported as Real")
	}
}

func TestTensorProduct_ComponentMajorOrdering(t *testing.T) {
	// All dofs of one component precede all dofs of the next, so the
	// component extents come first in the index shape.
	e := TensorProduct{
		Base:       Simple{Name: "P1", Index: sym.Shape{3}},
		Components: sym.Shape{2},
	}
	if !e.IndexShape().Equal(sym.Shape{2, 3}) {
		t.Errorf("index shape = %v, want [2 3]", e.IndexShape())
	}
	if !e.ValueShape().Equal(sym.Shape{2}) {
		t.Errorf("value shape = %v, want [2]", e.ValueShape())
	}
	if !e.BaseIndexShape().Equal(sym.Shape{3}) {
		t.Errorf("base index shape = %v, want [3]", e.BaseIndexShape())
	}
}

func TestTensorProduct_ImplementsTensor(t *testing.T) {
	var e Element = TensorProduct{
		Base:       Simple{Index: sym.Shape{3}},
		Components: sym.Shape{2, 2},
	}
	te, ok := e.(Tensor)
	if !ok {
		t.Fatal("TensorProduct must implement Tensor")
	}
	if !te.ComponentShape().Equal(sym.Shape{2, 2}) {
		t.Errorf("component shape = %v, want [2 2]", te.ComponentShape())
	}
}
