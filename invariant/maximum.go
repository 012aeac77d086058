package invariant

import "github.com/gitrdm/juls-core/dag"

// MaximumInvariant computes y = max(x_i) over a vector of positive integer
// parents bounded by m (§4.6). Stateful: a per-value occupancy count and
// the current maximum, so a delta that doesn't introduce a new maximum can
// still find the new one without rescanning every parent's value, only the
// band of values between the old maximum and whatever is now the highest
// occupied one.
type MaximumInvariant struct {
	out           int
	m             int
	countPerValue []int // 1-indexed; countPerValue[0] unused
	currentMax    int
}

func NewMaximum(out, m int) *MaximumInvariant {
	return &MaximumInvariant{out: out, m: m, countPerValue: make([]int, m+1)}
}

// Out returns the VarIndex this invariant tags its own VarMessage/
// VarMoveDelta output with.
func (mx *MaximumInvariant) Out() int { return mx.out }

func (mx *MaximumInvariant) InputType() dag.InputType { return dag.InputVector }

func (mx *MaximumInvariant) Init(in dag.Message) dag.Message {
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		mx.countPerValue[vm.Value.Int()]++
	}
	mx.currentMax = highestOccupied(mx.countPerValue)
	return dag.VarMessage{VarIndex: mx.out, Value: dag.IntValue(int64(mx.currentMax))}
}

func highestOccupied(counts []int) int {
	for v := len(counts) - 1; v >= 1; v-- {
		if counts[v] > 0 {
			return v
		}
	}
	return 0
}

func (mx *MaximumInvariant) EvalFull(in dag.Message) dag.Message {
	items := vectorItems(in)
	if len(items) == 0 {
		return dag.VarMessage{VarIndex: mx.out, Value: dag.IntValue(int64(mx.currentMax))}
	}
	counts := make([]int, len(mx.countPerValue))
	for _, item := range items {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		counts[vm.Value.Int()]++
	}
	return dag.VarMessage{VarIndex: mx.out, Value: dag.IntValue(int64(highestOccupied(counts)))}
}

func (mx *MaximumInvariant) deltaCounts(in dag.Message) map[int]int {
	changes := make(map[int]int)
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		oldV := int(mv.Old.Int())
		newV := int(mv.New.Int())
		if oldV == newV {
			continue
		}
		changes[oldV]--
		changes[newV]++
	}
	return changes
}

func (mx *MaximumInvariant) simulateMax(changes map[int]int) int {
	newMax := mx.currentMax
	for v, d := range changes {
		if v > newMax && mx.countPerValue[v]+d > 0 {
			if v > newMax {
				newMax = v
			}
		}
	}
	if newMax > mx.currentMax {
		return newMax
	}
	for v := mx.currentMax; v >= 1; v-- {
		c := mx.countPerValue[v] + changes[v]
		if c > 0 {
			return v
		}
	}
	return 0
}

func (mx *MaximumInvariant) EvalDelta(in dag.Message) dag.Message {
	changes := mx.deltaCounts(in)
	newMax := mx.simulateMax(changes)
	if newMax == mx.currentMax {
		return dag.NoMessage{}
	}
	return dag.VarMoveDelta{VarIndex: mx.out, Old: dag.IntValue(int64(mx.currentMax)), New: dag.IntValue(int64(newMax))}
}

func (mx *MaximumInvariant) Commit(in dag.Message) {
	changes := mx.deltaCounts(in)
	newMax := mx.simulateMax(changes)
	for v, d := range changes {
		mx.countPerValue[v] += d
	}
	mx.currentMax = newMax
}

var _ dag.Invariant = (*MaximumInvariant)(nil)
