package dag

// sentinelInvariant is the fixed head node the DAG maintains for every
// decision variable (§3 "hidden sentinel DecisionVariableInvariant"). It has
// no real parents: DAG.Init, DAG.Eval and DAG.FullRun write its input (the
// initial value, or a move's old/new pair) straight into its own input slot
// instead of collecting it from parent outputs, and it then goes through the
// ordinary Invariant calls so the rest of the traversal machinery treats it
// like any other node.
type sentinelInvariant struct {
	varIndex int
	current  DecisionValue
}

func newSentinel(varIndex int, initial DecisionValue) *sentinelInvariant {
	return &sentinelInvariant{varIndex: varIndex, current: initial}
}

func (s *sentinelInvariant) InputType() InputType { return InputSingle }

func (s *sentinelInvariant) Init(in Message) Message {
	vm, ok := in.(VarMessage)
	if ok {
		s.current = vm.Value
	}
	return VarMessage{VarIndex: s.varIndex, Value: s.current}
}

// EvalFull echoes the value FullRun seeded for this variable (a fresh full
// assignment may name a different value than what is currently committed),
// falling back to the committed value if none was supplied.
func (s *sentinelInvariant) EvalFull(in Message) Message {
	if vm, ok := in.(VarMessage); ok {
		return VarMessage{VarIndex: s.varIndex, Value: vm.Value}
	}
	return VarMessage{VarIndex: s.varIndex, Value: s.current}
}

func (s *sentinelInvariant) EvalDelta(in Message) Message {
	mv, ok := in.(VarMoveDelta)
	if !ok {
		return NoMessage{}
	}
	if mv.Old.Equal(mv.New) {
		return NoMessage{}
	}
	return mv
}

// Commit receives the same VarMoveDelta its EvalDelta was given (a sentinel
// has no parents, so its "input" and its "output" are the same value).
func (s *sentinelInvariant) Commit(in Message) {
	if mv, ok := in.(VarMoveDelta); ok {
		s.current = mv.New
	}
}

var _ Invariant = (*sentinelInvariant)(nil)
