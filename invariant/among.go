package invariant

import "github.com/gitrdm/juls-core/dag"

// AmongInvariant computes y = |{i : x_i in S}| over a vector of parents
// (§4.6). Stateless: the Vector slot already carries only the parents that
// changed this run, so a delta is just the sum of their indicator changes
// with no running state needed.
type AmongInvariant struct {
	inSet Membership
}

func NewAmongInvariant(inSet Membership) *AmongInvariant { return &AmongInvariant{inSet: inSet} }

// Contains reports whether v belongs to this invariant's target set S, for
// the DAG->CP builder's Composite(AmongInvariant, ComparatorInvariant)
// translation row (building a cp.AmongUp needs S itself, not just counts).
func (a *AmongInvariant) Contains(v dag.DecisionValue) bool { return a.inSet(v) }

func (a *AmongInvariant) InputType() dag.InputType { return dag.InputVector }

func (a *AmongInvariant) Init(in dag.Message) dag.Message { return a.EvalFull(in) }

func (a *AmongInvariant) EvalFull(in dag.Message) dag.Message {
	var count float64
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		if a.inSet(vm.Value) {
			count++
		}
	}
	return dag.FloatFull(count)
}

func (a *AmongInvariant) EvalDelta(in dag.Message) dag.Message {
	var delta float64
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		delta += indicatorDelta(a.inSet, mv)
	}
	if delta == 0 {
		return dag.NoMessage{}
	}
	return dag.FloatDelta(delta)
}

func (a *AmongInvariant) Commit(in dag.Message) {}

func indicatorDelta(inSet Membership, mv dag.VarMoveDelta) float64 {
	oldIn := inSet(mv.Old)
	newIn := inSet(mv.New)
	if oldIn == newIn {
		return 0
	}
	if newIn {
		return 1
	}
	return -1
}

var _ dag.Invariant = (*AmongInvariant)(nil)

// WeightedAmongInvariant computes y = sum(w_i * I[x_i in S]) over a vector
// of named parents (§4.6). Stateless, the weighted analogue of
// AmongInvariant: a delta is the weighted sum of the touched parents'
// indicator changes.
type WeightedAmongInvariant struct {
	inSet   Membership
	weights map[int]float64
}

func NewWeightedAmong(inSet Membership, weights map[int]float64) *WeightedAmongInvariant {
	w := make(map[int]float64, len(weights))
	for k, v := range weights {
		w[k] = v
	}
	return &WeightedAmongInvariant{inSet: inSet, weights: w}
}

func (w *WeightedAmongInvariant) InputType() dag.InputType { return dag.InputVector }

func (w *WeightedAmongInvariant) Init(in dag.Message) dag.Message { return w.EvalFull(in) }

func (w *WeightedAmongInvariant) EvalFull(in dag.Message) dag.Message {
	var total float64
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		if w.inSet(vm.Value) {
			total += w.weights[vm.VarIndex]
		}
	}
	return dag.FloatFull(total)
}

func (w *WeightedAmongInvariant) EvalDelta(in dag.Message) dag.Message {
	var total float64
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		total += indicatorDelta(w.inSet, mv) * w.weights[mv.VarIndex]
	}
	if total == 0 {
		return dag.NoMessage{}
	}
	return dag.FloatDelta(total)
}

func (w *WeightedAmongInvariant) Commit(in dag.Message) {}

var _ dag.Invariant = (*WeightedAmongInvariant)(nil)

// AllDifferentInvariant computes violation = sum(max(0, count[v]-1)) over a
// vector of named integer parents (§4.6). Stateful: a per-value count,
// since the violation depends on the whole multiset, not just the touched
// subset — a delta recomputes only the values whose count actually moved.
type AllDifferentInvariant struct {
	counts    map[int64]int
	violation float64
}

func NewAllDifferent() *AllDifferentInvariant {
	return &AllDifferentInvariant{counts: make(map[int64]int)}
}

func (a *AllDifferentInvariant) IsHardConstraint() bool { return true }

func (a *AllDifferentInvariant) InputType() dag.InputType { return dag.InputVector }

func (a *AllDifferentInvariant) Init(in dag.Message) dag.Message {
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		a.counts[vm.Value.Int()]++
	}
	a.violation = a.totalViolation()
	return dag.ConstraintFull(a.violation)
}

func (a *AllDifferentInvariant) totalViolation() float64 {
	var total float64
	for _, c := range a.counts {
		if c > 1 {
			total += float64(c - 1)
		}
	}
	return total
}

func (a *AllDifferentInvariant) EvalFull(in dag.Message) dag.Message {
	items := vectorItems(in)
	if len(items) == 0 {
		return dag.ConstraintFull(a.violation)
	}
	counts := make(map[int64]int, len(items))
	for _, item := range items {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		counts[vm.Value.Int()]++
	}
	var total float64
	for _, c := range counts {
		if c > 1 {
			total += float64(c - 1)
		}
	}
	return dag.ConstraintFull(total)
}

// deltaCounts folds a set of VarMoveDelta items into per-value net count
// changes without mutating the invariant's own counts map.
func (a *AllDifferentInvariant) deltaCounts(in dag.Message) map[int64]int {
	changes := make(map[int64]int)
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		if mv.Old.Int() == mv.New.Int() {
			continue
		}
		changes[mv.Old.Int()]--
		changes[mv.New.Int()]++
	}
	return changes
}

func (a *AllDifferentInvariant) EvalDelta(in dag.Message) dag.Message {
	changes := a.deltaCounts(in)
	var delta float64
	for v, d := range changes {
		oldC := a.counts[v]
		newC := oldC + d
		delta += max0(float64(newC-1)) - max0(float64(oldC-1))
	}
	if delta == 0 {
		return dag.NoMessage{}
	}
	return dag.ConstraintDelta(delta)
}

func (a *AllDifferentInvariant) Commit(in dag.Message) {
	changes := a.deltaCounts(in)
	for v, d := range changes {
		a.counts[v] += d
		if a.counts[v] == 0 {
			delete(a.counts, v)
		}
	}
	a.violation = a.totalViolation()
}

var (
	_ dag.Invariant      = (*AllDifferentInvariant)(nil)
	_ dag.HardConstraint = (*AllDifferentInvariant)(nil)
)
