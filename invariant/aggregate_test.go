package invariant

import (
	"testing"

	"github.com/gitrdm/juls-core/dag"
)

func TestStaticConstraintInvariantScales(t *testing.T) {
	s := NewStaticConstraint(2)
	full := s.EvalFull(dag.FloatFull(3))
	if full.(dag.ConstraintFull).Float() != 6 {
		t.Fatalf("expected 2*3=6, got %v", full)
	}
	delta := s.EvalDelta(dag.FloatDelta(4))
	if delta.(dag.ConstraintDelta).Float() != 8 {
		t.Fatalf("expected 2*4=8, got %v", delta)
	}
	if _, ok := s.EvalDelta(dag.FloatDelta(0)).(dag.NoMessage); !ok {
		t.Fatal("expected NoMessage for a zero incoming delta")
	}
}

func TestObjectiveInvariantPassesScalarThrough(t *testing.T) {
	o := NewObjective()
	full := o.Init(dag.FloatFull(42))
	if full.(dag.ObjectiveFull).Float() != 42 {
		t.Fatalf("expected objective 42, got %v", full)
	}
	delta := o.EvalDelta(dag.FloatDelta(-5))
	if delta.(dag.ObjectiveDelta).Float() != -5 {
		t.Fatalf("expected objective delta -5, got %v", delta)
	}
}

func TestAggregatorIgnoresNonMultiInput(t *testing.T) {
	a := NewAggregator()
	full := a.Init(dag.NoMessage{})
	if full.(dag.ConstraintFull).Float() != 0 {
		t.Fatalf("expected 0 from a zero-value MultiMessage, got %v", full)
	}
	if _, ok := a.EvalDelta(dag.NoMessage{}).(dag.NoMessage); !ok {
		t.Fatal("expected NoMessage when fed a non-MultiMessage input")
	}
}

// chainStage is a minimal invariant used only to exercise
// CompositeInvariant's stage-sequencing and cached-input replay.
type chainStage struct {
	addend  float64
	commits []float64
}

func (c *chainStage) InputType() dag.InputType { return dag.InputSingle }
func (c *chainStage) Init(in dag.Message) dag.Message { return c.EvalFull(in) }
func (c *chainStage) EvalFull(in dag.Message) dag.Message {
	if s, ok := in.(dag.Scalar); ok {
		return dag.FloatFull(s.Float() + c.addend)
	}
	return dag.FloatFull(c.addend)
}
func (c *chainStage) EvalDelta(in dag.Message) dag.Message {
	if s, ok := in.(dag.Scalar); ok {
		return dag.FloatDelta(s.Float())
	}
	return dag.NoMessage{}
}
func (c *chainStage) Commit(in dag.Message) {
	if s, ok := in.(dag.Scalar); ok {
		c.commits = append(c.commits, s.Float())
	}
}

func TestCompositeInvariantChainsStagesAndReplaysCachedInputs(t *testing.T) {
	stage1 := &chainStage{addend: 10}
	stage2 := &chainStage{addend: 100}
	comp := NewComposite(stage1, stage2)

	full := comp.Init(dag.FloatFull(1))
	if full.(dag.FloatFull).Float() != 111 {
		t.Fatalf("expected (1+10)+100=111, got %v", full)
	}

	delta := comp.EvalDelta(dag.FloatDelta(5))
	if delta.(dag.FloatDelta).Float() != 5 {
		t.Fatalf("expected the pass-through chain's delta to stay 5, got %v", delta)
	}
	comp.Commit(dag.FloatDelta(5))

	if len(stage1.commits) != 1 || stage1.commits[0] != 5 {
		t.Fatalf("expected stage1 committed with input 5, got %v", stage1.commits)
	}
	if len(stage2.commits) != 1 || stage2.commits[0] != 5 {
		t.Fatalf("expected stage2 committed with its own stage input (5), got %v", stage2.commits)
	}

	if len(comp.Stages()) != 2 {
		t.Fatalf("expected Stages() to expose both sub-invariants, got %d", len(comp.Stages()))
	}
}

func TestCompositeInvariantShortCircuitsOnZero(t *testing.T) {
	zeroing := &chainStage{addend: -10}
	downstream := &chainStage{addend: 100}
	comp := NewComposite(zeroing, downstream)

	full := comp.EvalFull(dag.FloatFull(10))
	if full.(dag.FloatFull).Float() != 0 {
		t.Fatalf("expected the chain to stop at stage1's zero output, got %v", full)
	}
}
