package dag

// resultInvariant is the unique sink DAG.Init appends: it combines every
// terminal ObjectiveDelta/ObjectiveFull and ConstraintDelta/ConstraintFull
// message into a ResultDelta/ResultMessage, tracking the running constraint
// total across commits (§4.5, §4.6 "AggregatorInvariant (the sink)").
//
// Its Multi input bag is exactly what lets an arbitrary number of hard
// constraints and one objective leg converge on a single node without the
// DAG needing a variadic sink arity.
type resultInvariant struct {
	currentConstraint float64
}

func newResultInvariant() *resultInvariant {
	return &resultInvariant{}
}

func (r *resultInvariant) InputType() InputType { return InputMulti }

func (r *resultInvariant) Init(in Message) Message {
	mm, _ := in.(MultiMessage)
	obj := mm.SumOf(KindObjectiveFull)
	con := mm.SumOf(KindConstraintFull)
	r.currentConstraint = con
	return ResultMessage{Objective: obj, Feasible: con == 0}
}

func (r *resultInvariant) EvalFull(in Message) Message {
	mm, _ := in.(MultiMessage)
	obj := mm.SumOf(KindObjectiveFull)
	con := mm.SumOf(KindConstraintFull)
	return ResultMessage{Objective: obj, Feasible: con == 0}
}

func (r *resultInvariant) EvalDelta(in Message) Message {
	mm, _ := in.(MultiMessage)
	objDelta := mm.SumOf(KindObjectiveDelta)
	conDelta := mm.SumOf(KindConstraintDelta)
	newConstraint := r.currentConstraint + conDelta
	return ResultDelta{Objective: objDelta, Feasible: newConstraint == 0}
}

// Commit receives the same MultiMessage bag EvalDelta was given and folds
// its ConstraintDelta total into the running constraint state.
func (r *resultInvariant) Commit(in Message) {
	mm, ok := in.(MultiMessage)
	if !ok {
		return
	}
	r.currentConstraint += mm.SumOf(KindConstraintDelta)
}

var _ Invariant = (*resultInvariant)(nil)
