package invariant

import "github.com/gitrdm/juls-core/dag"

// RelationalOp is the comparison RelationalInvariant checks between its two
// named parents.
type RelationalOp int

const (
	// OpEqual: violation whenever x != y.
	OpEqual RelationalOp = iota
	// OpNotEqual: violation whenever x == y.
	OpNotEqual
)

// RelationalInvariant computes violation = I[not (x op y)] over two named
// integer parents (§4.6). Unlike IsEqualInvariant/IsDifferentInvariant,
// this retags its output as a hard-constraint leg (ConstraintFull/Delta),
// feeding the sink directly or a Comparator/Aggregator upstream of it.
type RelationalInvariant struct {
	op         RelationalOp
	xIdx, yIdx int
	x, y       dag.DecisionValue
	violated   bool
}

// NewEqualInvariant builds a RelationalInvariant enforcing x == y.
func NewEqualInvariant(xIdx, yIdx int) *RelationalInvariant {
	return &RelationalInvariant{op: OpEqual, xIdx: xIdx, yIdx: yIdx}
}

// NewNotEqualInvariant builds a RelationalInvariant enforcing x != y.
func NewNotEqualInvariant(xIdx, yIdx int) *RelationalInvariant {
	return &RelationalInvariant{op: OpNotEqual, xIdx: xIdx, yIdx: yIdx}
}

// Op, XIndex, YIndex expose the comparison and named-parent identity, for
// the DAG->CP builder's RelationalInvariant{!=} translation row.
func (r *RelationalInvariant) Op() RelationalOp { return r.op }
func (r *RelationalInvariant) XIndex() int      { return r.xIdx }
func (r *RelationalInvariant) YIndex() int      { return r.yIdx }

func (r *RelationalInvariant) holds(x, y dag.DecisionValue) bool {
	switch r.op {
	case OpEqual:
		return x.Equal(y)
	case OpNotEqual:
		return !x.Equal(y)
	}
	return true
}

func (r *RelationalInvariant) IsHardConstraint() bool { return true }

func (r *RelationalInvariant) InputType() dag.InputType { return dag.InputVector }

func (r *RelationalInvariant) Init(in dag.Message) dag.Message {
	items := vectorItems(in)
	if v, ok := varValue(items, r.xIdx); ok {
		r.x = v
	}
	if v, ok := varValue(items, r.yIdx); ok {
		r.y = v
	}
	r.violated = !r.holds(r.x, r.y)
	return dag.ConstraintFull(boolToFloat(r.violated))
}

func (r *RelationalInvariant) EvalFull(in dag.Message) dag.Message {
	x, y := r.x, r.y
	items := vectorItems(in)
	if v, ok := varValue(items, r.xIdx); ok {
		x = v
	}
	if v, ok := varValue(items, r.yIdx); ok {
		y = v
	}
	return dag.ConstraintFull(boolToFloat(!r.holds(x, y)))
}

func (r *RelationalInvariant) EvalDelta(in dag.Message) dag.Message {
	x, y := r.x, r.y
	items := vectorItems(in)
	if _, nv, ok := varMoveValue(items, r.xIdx); ok {
		x = nv
	}
	if _, nv, ok := varMoveValue(items, r.yIdx); ok {
		y = nv
	}
	newViolated := !r.holds(x, y)
	if newViolated == r.violated {
		return dag.NoMessage{}
	}
	return dag.ConstraintDelta(boolToFloat(newViolated) - boolToFloat(r.violated))
}

func (r *RelationalInvariant) Commit(in dag.Message) {
	items := vectorItems(in)
	if _, nv, ok := varMoveValue(items, r.xIdx); ok {
		r.x = nv
	}
	if _, nv, ok := varMoveValue(items, r.yIdx); ok {
		r.y = nv
	}
	r.violated = !r.holds(r.x, r.y)
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

var (
	_ dag.Invariant     = (*RelationalInvariant)(nil)
	_ dag.HardConstraint = (*RelationalInvariant)(nil)
)

// ComparatorInvariant computes y = max(0, sum(x) - C) over a vector of
// parents whose values it sums (§4.6). Stateful: current_value tracks
// sum(x). It accepts its parents directly as a Vector (§4.6 writes the
// contract as y = max(0, sum(x) - C), summing x itself rather than
// consuming an already-summed scalar) so that the DAG->CP builder's
// "ComparatorInvariant(C) standalone" translation row (§4.7) can read
// Comparator's own DAG parents as the SumLessThan's term list directly,
// without having to see through an intervening SumInvariant that carries
// no CP representation of its own.
type ComparatorInvariant struct {
	c            float64
	currentValue float64
}

func NewComparator(c float64) *ComparatorInvariant { return &ComparatorInvariant{c: c} }

// C returns the configured capacity/threshold, for the DAG->CP builder.
func (c *ComparatorInvariant) C() float64 { return c.c }

func (c *ComparatorInvariant) IsHardConstraint() bool { return true }

func (c *ComparatorInvariant) InputType() dag.InputType { return dag.InputVector }

func (c *ComparatorInvariant) Init(in dag.Message) dag.Message {
	c.currentValue = vectorFullSum(in)
	return dag.ConstraintFull(max0(c.currentValue - c.c))
}

func (c *ComparatorInvariant) EvalFull(in dag.Message) dag.Message {
	return dag.ConstraintFull(max0(vectorFullSum(in) - c.c))
}

func (c *ComparatorInvariant) EvalDelta(in dag.Message) dag.Message {
	delta := vectorDeltaSum(in)
	if delta == 0 {
		return dag.NoMessage{}
	}
	before := max0(c.currentValue - c.c)
	after := max0(c.currentValue + delta - c.c)
	if before == after {
		return dag.NoMessage{}
	}
	return dag.ConstraintDelta(after - before)
}

func (c *ComparatorInvariant) Commit(in dag.Message) {
	c.currentValue += vectorDeltaSum(in)
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

var (
	_ dag.Invariant      = (*ComparatorInvariant)(nil)
	_ dag.HardConstraint = (*ComparatorInvariant)(nil)
)
