package invariant

import "github.com/gitrdm/juls-core/dag"

// ConsecutiveInvariant computes b = (|v1-v2| == 1) or (|v1-v2| == (max-min))
// over two named integer parents on a cyclic [min,max] range (§4.6).
// Stateful: the current pair and output boolean, since the boolean output
// needs an Old/New pair to emit as a delta.
type ConsecutiveInvariant struct {
	out        int
	v1Idx, v2Idx int
	span       int64
	v1, v2     dag.DecisionValue
	current    bool
}

func NewConsecutive(out, v1Idx, v2Idx int, min, max int) *ConsecutiveInvariant {
	return &ConsecutiveInvariant{out: out, v1Idx: v1Idx, v2Idx: v2Idx, span: int64(max - min)}
}

// Out returns the VarIndex this invariant tags its own VarMessage/
// VarMoveDelta output with.
func (c *ConsecutiveInvariant) Out() int { return c.out }

func (c *ConsecutiveInvariant) compute(v1, v2 dag.DecisionValue) bool {
	d := absInt64(v1.Int() - v2.Int())
	return d == 1 || d == c.span
}

func (c *ConsecutiveInvariant) InputType() dag.InputType { return dag.InputVector }

func (c *ConsecutiveInvariant) Init(in dag.Message) dag.Message {
	items := vectorItems(in)
	if v, ok := varValue(items, c.v1Idx); ok {
		c.v1 = v
	}
	if v, ok := varValue(items, c.v2Idx); ok {
		c.v2 = v
	}
	c.current = c.compute(c.v1, c.v2)
	return dag.VarMessage{VarIndex: c.out, Value: dag.BoolValue(c.current)}
}

func (c *ConsecutiveInvariant) EvalFull(in dag.Message) dag.Message {
	v1, v2 := c.v1, c.v2
	items := vectorItems(in)
	if v, ok := varValue(items, c.v1Idx); ok {
		v1 = v
	}
	if v, ok := varValue(items, c.v2Idx); ok {
		v2 = v
	}
	return dag.VarMessage{VarIndex: c.out, Value: dag.BoolValue(c.compute(v1, v2))}
}

func (c *ConsecutiveInvariant) EvalDelta(in dag.Message) dag.Message {
	v1, v2 := c.v1, c.v2
	items := vectorItems(in)
	if _, nv, ok := varMoveValue(items, c.v1Idx); ok {
		v1 = nv
	}
	if _, nv, ok := varMoveValue(items, c.v2Idx); ok {
		v2 = nv
	}
	newCurrent := c.compute(v1, v2)
	if newCurrent == c.current {
		return dag.NoMessage{}
	}
	return dag.VarMoveDelta{VarIndex: c.out, Old: dag.BoolValue(c.current), New: dag.BoolValue(newCurrent)}
}

func (c *ConsecutiveInvariant) Commit(in dag.Message) {
	items := vectorItems(in)
	if _, nv, ok := varMoveValue(items, c.v1Idx); ok {
		c.v1 = nv
	}
	if _, nv, ok := varMoveValue(items, c.v2Idx); ok {
		c.v2 = nv
	}
	c.current = c.compute(c.v1, c.v2)
}

var _ dag.Invariant = (*ConsecutiveInvariant)(nil)

// minDistancePenalty is the fixed weight MinDistanceInvariant emits when
// the minimum pairwise distance drops below the configured threshold. The
// source leaves it unclear whether this should be configurable (§9 Open
// Questions); this module keeps it fixed, per DESIGN.md.
const minDistancePenalty = 1000

// MinDistanceInvariant computes violation = minDistancePenalty *
// I[min pairwise distance < d] over a vector of named real-valued parents
// (§4.6). Stateful: the current value of every tracked parent plus the
// cached broken/not-broken indicator. Both full and delta evaluation sort
// the current values and scan adjacent gaps, exactly as the source's
// "clone, apply deltas, maintain sorted order, recompute" description
// implies — this is not incremental, it recomputes the indicator from
// scratch each call.
type MinDistanceInvariant struct {
	d       float64
	values  map[int]float64
	broken  bool
}

func NewMinDistance(d float64) *MinDistanceInvariant {
	return &MinDistanceInvariant{d: d, values: make(map[int]float64)}
}

func (m *MinDistanceInvariant) IsHardConstraint() bool { return true }

func (m *MinDistanceInvariant) InputType() dag.InputType { return dag.InputVector }

func minPairwiseDistance(values map[int]float64) float64 {
	if len(values) < 2 {
		return -1
	}
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		sorted = append(sorted, v)
	}
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	min := sorted[1] - sorted[0]
	for i := 2; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap < min {
			min = gap
		}
	}
	return min
}

func (m *MinDistanceInvariant) Init(in dag.Message) dag.Message {
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		m.values[vm.VarIndex] = vm.Value.AsFloat()
	}
	min := minPairwiseDistance(m.values)
	m.broken = min >= 0 && min < m.d
	return dag.ConstraintFull(boolToFloat(m.broken) * minDistancePenalty)
}

func (m *MinDistanceInvariant) EvalFull(in dag.Message) dag.Message {
	values := make(map[int]float64, len(m.values))
	for k, v := range m.values {
		values[k] = v
	}
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		values[vm.VarIndex] = vm.Value.AsFloat()
	}
	min := minPairwiseDistance(values)
	broken := min >= 0 && min < m.d
	return dag.ConstraintFull(boolToFloat(broken) * minDistancePenalty)
}

func (m *MinDistanceInvariant) simulate(in dag.Message) (map[int]float64, bool) {
	values := make(map[int]float64, len(m.values))
	for k, v := range m.values {
		values[k] = v
	}
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		values[mv.VarIndex] = mv.New.AsFloat()
	}
	min := minPairwiseDistance(values)
	return values, min >= 0 && min < m.d
}

func (m *MinDistanceInvariant) EvalDelta(in dag.Message) dag.Message {
	_, newBroken := m.simulate(in)
	if newBroken == m.broken {
		return dag.NoMessage{}
	}
	return dag.ConstraintDelta((boolToFloat(newBroken) - boolToFloat(m.broken)) * minDistancePenalty)
}

func (m *MinDistanceInvariant) Commit(in dag.Message) {
	values, newBroken := m.simulate(in)
	m.values = values
	m.broken = newBroken
}

var (
	_ dag.Invariant      = (*MinDistanceInvariant)(nil)
	_ dag.HardConstraint = (*MinDistanceInvariant)(nil)
)
