package invariant

import (
	"testing"

	"github.com/gitrdm/juls-core/dag"
)

func TestAndInvariantFixesOutputAsInputsFlip(t *testing.T) {
	a := NewAnd(99)
	full := a.Init(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.BoolValue(true)},
		dag.VarMessage{VarIndex: 1, Value: dag.BoolValue(true)},
	))
	vm := full.(dag.VarMessage)
	if vm.VarIndex != 99 || !vm.Value.Bool() {
		t.Fatalf("expected out=true, got %v", vm)
	}

	in := vecOf(dag.VarMoveDelta{VarIndex: 0, Old: dag.BoolValue(true), New: dag.BoolValue(false)})
	delta := a.EvalDelta(in)
	mv := delta.(dag.VarMoveDelta)
	if mv.New.Bool() {
		t.Fatal("expected AND to flip false once one input flips false")
	}
	a.Commit(in)

	full2 := a.EvalFull(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.BoolValue(false)},
		dag.VarMessage{VarIndex: 1, Value: dag.BoolValue(true)},
	))
	if full2.(dag.VarMessage).Value.Bool() {
		t.Fatal("expected AND false with one false input")
	}
}

func TestOrInvariantFixesOutputAsInputsFlip(t *testing.T) {
	o := NewOr(99)
	full := o.Init(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.BoolValue(false)},
		dag.VarMessage{VarIndex: 1, Value: dag.BoolValue(false)},
	))
	if full.(dag.VarMessage).Value.Bool() {
		t.Fatal("expected OR false with all-false inputs")
	}

	in := vecOf(dag.VarMoveDelta{VarIndex: 0, Old: dag.BoolValue(false), New: dag.BoolValue(true)})
	delta := o.EvalDelta(in)
	if !delta.(dag.VarMoveDelta).New.Bool() {
		t.Fatal("expected OR to flip true once one input flips true")
	}
	o.Commit(in)

	noop := o.EvalDelta(vecOf(dag.VarMoveDelta{VarIndex: 1, Old: dag.BoolValue(false), New: dag.BoolValue(true)}))
	if _, ok := noop.(dag.NoMessage); !ok {
		t.Fatal("expected NoMessage: OR was already true")
	}
}

func TestNegationInvariant(t *testing.T) {
	n := NewNegation(7)
	full := n.Init(dag.VarMessage{VarIndex: 0, Value: dag.BoolValue(true)})
	if full.(dag.VarMessage).Value.Bool() {
		t.Fatal("expected negation of true to be false")
	}
	delta := n.EvalDelta(dag.VarMoveDelta{VarIndex: 0, Old: dag.BoolValue(true), New: dag.BoolValue(false)})
	if !delta.(dag.VarMoveDelta).New.Bool() {
		t.Fatal("expected negation to flip true once the input flips false")
	}
}

func TestIsEqualInvariant(t *testing.T) {
	e := NewIsEqual(7, 0, 1)
	full := e.Init(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.IntValue(3)},
		dag.VarMessage{VarIndex: 1, Value: dag.IntValue(3)},
	))
	if !full.(dag.VarMessage).Value.Bool() {
		t.Fatal("expected x==y to start true")
	}

	in := vecOf(dag.VarMoveDelta{VarIndex: 1, Old: dag.IntValue(3), New: dag.IntValue(4)})
	delta := e.EvalDelta(in)
	if delta.(dag.VarMoveDelta).New.Bool() {
		t.Fatal("expected reified equality to flip false once y changes")
	}
	e.Commit(in)

	noop := e.EvalDelta(vecOf(dag.VarMoveDelta{VarIndex: 0, Old: dag.IntValue(3), New: dag.IntValue(3)}))
	if _, ok := noop.(dag.NoMessage); !ok {
		t.Fatal("expected NoMessage for a delta that doesn't change x's value")
	}
}

func TestIsDifferentInvariantNegatesIsEqual(t *testing.T) {
	d := NewIsDifferent(7, 0, 1)
	full := d.Init(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.IntValue(3)},
		dag.VarMessage{VarIndex: 1, Value: dag.IntValue(5)},
	))
	if !full.(dag.VarMessage).Value.Bool() {
		t.Fatal("expected x!=y to start true (3 != 5)")
	}
	if d.Out() != 7 {
		t.Fatalf("expected Out() == 7, got %d", d.Out())
	}
}
