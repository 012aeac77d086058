package invariant

import (
	"testing"

	"github.com/gitrdm/juls-core/dag"
)

func oneOf(vals ...int64) Membership { return IntSet(vals...) }

func TestAmongInvariantCountsMembership(t *testing.T) {
	a := NewAmongInvariant(oneOf(1))
	full := a.Init(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.IntValue(1)},
		dag.VarMessage{VarIndex: 1, Value: dag.IntValue(2)},
		dag.VarMessage{VarIndex: 2, Value: dag.IntValue(1)},
	))
	if full.(dag.FloatFull).Float() != 2 {
		t.Fatalf("expected count 2, got %v", full)
	}

	delta := a.EvalDelta(vecOf(dag.VarMoveDelta{VarIndex: 1, Old: dag.IntValue(2), New: dag.IntValue(1)}))
	if delta.(dag.FloatDelta).Float() != 1 {
		t.Fatalf("expected delta +1 (var 1 joins the set), got %v", delta)
	}
}

func TestWeightedAmongInvariant(t *testing.T) {
	weights := map[int]float64{0: 2, 1: 5}
	w := NewWeightedAmong(oneOf(1), weights)
	full := w.Init(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.IntValue(1)},
		dag.VarMessage{VarIndex: 1, Value: dag.IntValue(2)},
	))
	if full.(dag.FloatFull).Float() != 2 {
		t.Fatalf("expected only var 0's weight 2 counted, got %v", full)
	}

	delta := w.EvalDelta(vecOf(dag.VarMoveDelta{VarIndex: 1, Old: dag.IntValue(2), New: dag.IntValue(1)}))
	if delta.(dag.FloatDelta).Float() != 5 {
		t.Fatalf("expected delta +5 (var 1's weight joins), got %v", delta)
	}
}

func TestAllDifferentInvariantTracksPerValueCounts(t *testing.T) {
	ad := NewAllDifferent()
	full := ad.Init(vecOf(
		dag.VarMessage{VarIndex: 0, Value: dag.IntValue(1)},
		dag.VarMessage{VarIndex: 1, Value: dag.IntValue(2)},
		dag.VarMessage{VarIndex: 2, Value: dag.IntValue(1)},
	))
	if full.(dag.ConstraintFull).Float() != 1 {
		t.Fatalf("expected violation 1 (value 1 appears twice), got %v", full)
	}

	in := vecOf(dag.VarMoveDelta{VarIndex: 2, Old: dag.IntValue(1), New: dag.IntValue(3)})
	delta := ad.EvalDelta(in)
	if delta.(dag.ConstraintDelta).Float() != -1 {
		t.Fatalf("expected delta -1 (duplicate resolved), got %v", delta)
	}
	ad.Commit(in)

	full2 := ad.EvalFull(vecOf())
	if full2.(dag.ConstraintFull).Float() != 0 {
		t.Fatalf("expected violation 0 after the duplicate is resolved, got %v", full2)
	}
}
