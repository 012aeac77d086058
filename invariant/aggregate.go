package invariant

import "github.com/gitrdm/juls-core/dag"

// StaticConstraintInvariant retags a plain scalar leg as a hard-constraint
// leg, scaled by alpha (§4.6): y = alpha * incoming. Stateless.
type StaticConstraintInvariant struct {
	alpha float64
}

func NewStaticConstraint(alpha float64) *StaticConstraintInvariant {
	return &StaticConstraintInvariant{alpha: alpha}
}

func (s *StaticConstraintInvariant) IsHardConstraint() bool { return true }

func (s *StaticConstraintInvariant) InputType() dag.InputType { return dag.InputSingle }

func (s *StaticConstraintInvariant) Init(in dag.Message) dag.Message { return s.EvalFull(in) }

func (s *StaticConstraintInvariant) EvalFull(in dag.Message) dag.Message {
	if sc, ok := in.(dag.Scalar); ok {
		return dag.ConstraintFull(s.alpha * sc.Float())
	}
	return dag.ConstraintFull(0)
}

func (s *StaticConstraintInvariant) EvalDelta(in dag.Message) dag.Message {
	if sc, ok := in.(dag.Scalar); ok {
		if sc.Float() == 0 {
			return dag.NoMessage{}
		}
		return dag.ConstraintDelta(s.alpha * sc.Float())
	}
	return dag.NoMessage{}
}

func (s *StaticConstraintInvariant) Commit(in dag.Message) {}

var (
	_ dag.Invariant      = (*StaticConstraintInvariant)(nil)
	_ dag.HardConstraint = (*StaticConstraintInvariant)(nil)
)

// ObjectiveInvariant retags a plain scalar leg as the objective leg
// (§4.6). Stateless.
type ObjectiveInvariant struct{}

func NewObjective() *ObjectiveInvariant { return &ObjectiveInvariant{} }

func (o *ObjectiveInvariant) InputType() dag.InputType { return dag.InputSingle }

func (o *ObjectiveInvariant) Init(in dag.Message) dag.Message { return o.EvalFull(in) }

func (o *ObjectiveInvariant) EvalFull(in dag.Message) dag.Message {
	if sc, ok := in.(dag.Scalar); ok {
		return dag.ObjectiveFull(sc.Float())
	}
	return dag.ObjectiveFull(0)
}

func (o *ObjectiveInvariant) EvalDelta(in dag.Message) dag.Message {
	if sc, ok := in.(dag.Scalar); ok {
		if sc.Float() == 0 {
			return dag.NoMessage{}
		}
		return dag.ObjectiveDelta(sc.Float())
	}
	return dag.NoMessage{}
}

func (o *ObjectiveInvariant) Commit(in dag.Message) {}

var _ dag.Invariant = (*ObjectiveInvariant)(nil)

// Aggregator combines the ConstraintDelta (or ConstraintFull) messages of a
// Multi bag into a single ConstraintFull/Delta total (§4.6 "aggregation
// glue"); objective-kind messages in the bag are not counted. It is the
// general-purpose counterpart
// of the DAG's own built-in sink: the sink is wired automatically as the
// unique out-degree-0 node and keeps its own private implementation (to
// avoid this package importing back into dag's construction path), but a
// subtree that needs to fold several hard-constraint legs together before
// they reach the sink uses this type instead of hand-rolling a Sum.
type Aggregator struct {
	current float64
}

func NewAggregator() *Aggregator { return &Aggregator{} }

func (a *Aggregator) IsHardConstraint() bool { return true }

func (a *Aggregator) InputType() dag.InputType { return dag.InputMulti }

func (a *Aggregator) Init(in dag.Message) dag.Message {
	mm, _ := in.(dag.MultiMessage)
	a.current = mm.SumOf(dag.KindConstraintFull)
	return dag.ConstraintFull(a.current)
}

func (a *Aggregator) EvalFull(in dag.Message) dag.Message {
	mm, _ := in.(dag.MultiMessage)
	return dag.ConstraintFull(mm.SumOf(dag.KindConstraintFull))
}

func (a *Aggregator) EvalDelta(in dag.Message) dag.Message {
	mm, ok := in.(dag.MultiMessage)
	if !ok {
		return dag.NoMessage{}
	}
	delta := mm.SumOf(dag.KindConstraintDelta)
	if delta == 0 {
		return dag.NoMessage{}
	}
	return dag.ConstraintDelta(delta)
}

func (a *Aggregator) Commit(in dag.Message) {
	mm, ok := in.(dag.MultiMessage)
	if !ok {
		return
	}
	a.current += mm.SumOf(dag.KindConstraintDelta)
}

var (
	_ dag.Invariant      = (*Aggregator)(nil)
	_ dag.HardConstraint = (*Aggregator)(nil)
)

// CompositeInvariant sequentially pipes a message through a fixed chain of
// sub-invariants (§4.6, §9 "composite invariants as a stream"). It presents
// a single logical node to the outer DAG: its own InputType is its first
// stage's, and it short-circuits the chain as soon as a stage produces
// NoMessage or a zero scalar, exactly as the DAG's own traversal does
// between real nodes. This is how a translator-facing pattern like
// Composite(AmongInvariant(S), ComparatorInvariant(C)) (§4.7) is expressed
// as one node without the outer DAG needing to know it is two invariants.
type CompositeInvariant struct {
	stages []dag.Invariant
	// cachedInputs[i] is the message stage i was fed during the most recent
	// EvalDelta call, so Commit can replay the same per-stage input into
	// each sub-invariant's Commit without re-deriving it from
	// already-mutated state.
	cachedInputs []dag.Message
}

func NewComposite(stages ...dag.Invariant) *CompositeInvariant {
	return &CompositeInvariant{stages: stages, cachedInputs: make([]dag.Message, len(stages))}
}

// Stages returns the chain's sub-invariants in order, for the DAG->CP
// builder's Composite(...) translation row.
func (c *CompositeInvariant) Stages() []dag.Invariant { return c.stages }

func (c *CompositeInvariant) InputType() dag.InputType {
	if len(c.stages) == 0 {
		return dag.InputSingle
	}
	return c.stages[0].InputType()
}

func (c *CompositeInvariant) Init(in dag.Message) dag.Message {
	m := in
	for _, s := range c.stages {
		m = s.Init(m)
		if isZeroOrNone(m) {
			return m
		}
	}
	return m
}

func (c *CompositeInvariant) EvalFull(in dag.Message) dag.Message {
	m := in
	for _, s := range c.stages {
		m = s.EvalFull(m)
		if isZeroOrNone(m) {
			return m
		}
	}
	return m
}

func (c *CompositeInvariant) EvalDelta(in dag.Message) dag.Message {
	for i := range c.cachedInputs {
		c.cachedInputs[i] = nil
	}
	m := in
	for i, s := range c.stages {
		c.cachedInputs[i] = m
		m = s.EvalDelta(m)
		if isZeroOrNone(m) {
			return m
		}
	}
	return m
}

// Commit replays the per-stage inputs EvalDelta cached on its most recent
// call, in stage order, so every stage updates its state from exactly the
// message it was actually evaluated against.
func (c *CompositeInvariant) Commit(in dag.Message) {
	for i, s := range c.stages {
		if c.cachedInputs[i] == nil {
			return
		}
		s.Commit(c.cachedInputs[i])
	}
}

func (c *CompositeInvariant) IsHardConstraint() bool {
	if len(c.stages) == 0 {
		return false
	}
	if hc, ok := c.stages[len(c.stages)-1].(dag.HardConstraint); ok {
		return hc.IsHardConstraint()
	}
	return false
}

var _ dag.Invariant = (*CompositeInvariant)(nil)
