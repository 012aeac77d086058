// Package invariant implements the DAG node library: the concrete
// Invariant types that compute the objective and constraints of an
// optimization problem incrementally (§4.6). Each type follows the same
// three-method discipline as the teacher's CP constraints in
// gitrdm-gokando/fd_constraints.go — a full/delta pair plus a commit that
// folds an accepted delta into internal state — adapted from propagating
// domains to propagating DAG messages.
package invariant

import "github.com/gitrdm/juls-core/dag"

// varValue scans a Vector input for the VarMessage tagged with idx. Vector
// slots are assembled in whatever order touched parents ran in (§4.5), so
// any invariant that needs a specific named parent (not just "the set of
// them") identifies it by this tag rather than by position.
func varValue(items []dag.Message, idx int) (dag.DecisionValue, bool) {
	for _, m := range items {
		if vm, ok := m.(dag.VarMessage); ok && vm.VarIndex == idx {
			return vm.Value, true
		}
	}
	return dag.DecisionValue{}, false
}

// varMoveValue scans a Vector input for the VarMoveDelta tagged with idx.
func varMoveValue(items []dag.Message, idx int) (old, new dag.DecisionValue, found bool) {
	for _, m := range items {
		if mv, ok := m.(dag.VarMoveDelta); ok && mv.VarIndex == idx {
			return mv.Old, mv.New, true
		}
	}
	return dag.DecisionValue{}, dag.DecisionValue{}, false
}

// vectorItems extracts the items of a Vector-assembled input, or nil if in
// carried nothing (an empty/NoMessage slot).
func vectorItems(in dag.Message) []dag.Message {
	vm, ok := in.(dag.VectorMessage)
	if !ok {
		return nil
	}
	return vm.Items
}

// isZeroOrNone reports whether m is NoMessage or a Scalar of value zero,
// the same "nothing to propagate" test the DAG traversal itself applies
// (§4.5); CompositeInvariant uses it to short-circuit its sub-chain.
func isZeroOrNone(m dag.Message) bool {
	if _, ok := m.(dag.NoMessage); ok {
		return true
	}
	if s, ok := m.(dag.Scalar); ok {
		return s.Float() == 0
	}
	return false
}

// vectorFullSum sums a Vector input's contributions during Init/EvalFull:
// a VarMessage's AsFloat projection, or a Scalar's Float(). Parents of a
// summing invariant may be decision-variable sentinels (VarMessage) or
// other scalar invariants (FloatFull/ObjectiveFull/ConstraintFull), so both
// shapes are handled uniformly.
func vectorFullSum(in dag.Message) float64 {
	var total float64
	for _, item := range vectorItems(in) {
		if vm, ok := item.(dag.VarMessage); ok {
			total += vm.Value.AsFloat()
			continue
		}
		if s, ok := item.(dag.Scalar); ok {
			total += s.Float()
		}
	}
	return total
}

// vectorDeltaSum sums a Vector input's contributions during EvalDelta: a
// VarMoveDelta's (New-Old) projection, or a Scalar delta's Float(). Only
// the touched parents appear in the slot, so this equals the total change
// in the summed quantity.
func vectorDeltaSum(in dag.Message) float64 {
	var total float64
	for _, item := range vectorItems(in) {
		if mv, ok := item.(dag.VarMoveDelta); ok {
			total += mv.New.AsFloat() - mv.Old.AsFloat()
			continue
		}
		if s, ok := item.(dag.Scalar); ok {
			total += s.Float()
		}
	}
	return total
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Membership tests whether a decision value belongs to a fixed set S, used
// by AmongInvariant/WeightedAmongInvariant (§4.6) to count or weight how
// many inputs fall in S.
type Membership func(dag.DecisionValue) bool

// IntSet builds a Membership from a set of integer values.
func IntSet(values ...int64) Membership {
	set := make(map[int64]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return func(v dag.DecisionValue) bool { return set[v.Int()] }
}
