package invariant

import "github.com/gitrdm/juls-core/dag"

// ElementInvariant emits elements[i] given a single integer-valued index
// message i (§4.6). Stateless: the output is a pure function of the
// current index, but it still caches the index so EvalDelta can compute
// old/new element values from a move that changes only the index.
type ElementInvariant struct {
	out      int
	elements []dag.DecisionValue
	current  int
}

func NewElement(out int, elements []dag.DecisionValue) *ElementInvariant {
	return &ElementInvariant{out: out, elements: elements}
}

// Out returns the VarIndex this invariant tags its own VarMessage/
// VarMoveDelta output with.
func (e *ElementInvariant) Out() int { return e.out }

// Elements returns the fixed lookup table, for the DAG->CP builder (a bound
// index parent translates to a singleton CP IntVariable at elements[index];
// a free index parent translates to an ElementBC propagator over it).
func (e *ElementInvariant) Elements() []dag.DecisionValue { return e.elements }

// CurrentIndex returns the committed index (set by Init and Commit).
func (e *ElementInvariant) CurrentIndex() int { return e.current }

func (e *ElementInvariant) InputType() dag.InputType { return dag.InputSingle }

func (e *ElementInvariant) Init(in dag.Message) dag.Message {
	if vm, ok := in.(dag.VarMessage); ok {
		e.current = int(vm.Value.Int())
	}
	return dag.VarMessage{VarIndex: e.out, Value: e.elements[e.current]}
}

func (e *ElementInvariant) EvalFull(in dag.Message) dag.Message {
	idx := e.current
	if vm, ok := in.(dag.VarMessage); ok {
		idx = int(vm.Value.Int())
	}
	return dag.VarMessage{VarIndex: e.out, Value: e.elements[idx]}
}

func (e *ElementInvariant) EvalDelta(in dag.Message) dag.Message {
	mv, ok := in.(dag.VarMoveDelta)
	if !ok {
		return dag.NoMessage{}
	}
	oldVal := e.elements[e.current]
	newIdx := int(mv.New.Int())
	newVal := e.elements[newIdx]
	if oldVal.Equal(newVal) {
		return dag.NoMessage{}
	}
	return dag.VarMoveDelta{VarIndex: e.out, Old: oldVal, New: newVal}
}

func (e *ElementInvariant) Commit(in dag.Message) {
	if mv, ok := in.(dag.VarMoveDelta); ok {
		e.current = int(mv.New.Int())
	}
}

var _ dag.Invariant = (*ElementInvariant)(nil)
