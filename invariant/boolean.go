package invariant

import "github.com/gitrdm/juls-core/dag"

// AndInvariant reifies b = AND(x_1..x_n) over a vector of boolean parents
// (§4.6). It tracks the count of currently-false inputs rather than every
// individual value, since only that count decides the output and a delta
// only ever reports the parents that actually flipped.
type AndInvariant struct {
	out     int
	nbFalse int
	current bool
}

func NewAnd(out int) *AndInvariant { return &AndInvariant{out: out} }

// Out returns the VarIndex this invariant tags its own output with.
func (a *AndInvariant) Out() int { return a.out }

func (a *AndInvariant) InputType() dag.InputType { return dag.InputVector }

func (a *AndInvariant) Init(in dag.Message) dag.Message {
	a.nbFalse = 0
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		if vm.Value.IsZero() {
			a.nbFalse++
		}
	}
	a.current = a.nbFalse == 0
	return dag.VarMessage{VarIndex: a.out, Value: dag.BoolValue(a.current)}
}

func (a *AndInvariant) EvalFull(in dag.Message) dag.Message {
	nbFalse := 0
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		if vm.Value.IsZero() {
			nbFalse++
		}
	}
	return dag.VarMessage{VarIndex: a.out, Value: dag.BoolValue(nbFalse == 0)}
}

func (a *AndInvariant) EvalDelta(in dag.Message) dag.Message {
	deltaFalse := flipDelta(in, true)
	newNbFalse := a.nbFalse + deltaFalse
	newCurrent := newNbFalse == 0
	if newCurrent == a.current {
		return dag.NoMessage{}
	}
	return dag.VarMoveDelta{VarIndex: a.out, Old: dag.BoolValue(a.current), New: dag.BoolValue(newCurrent)}
}

func (a *AndInvariant) Commit(in dag.Message) {
	a.nbFalse += flipDelta(in, true)
	a.current = a.nbFalse == 0
}

var _ dag.Invariant = (*AndInvariant)(nil)

// OrInvariant reifies b = OR(x_1..x_n), the mirror of AndInvariant: it
// tracks the count of currently-true inputs.
type OrInvariant struct {
	out     int
	nbTrue  int
	current bool
}

func NewOr(out int) *OrInvariant { return &OrInvariant{out: out} }

// Out returns the VarIndex this invariant tags its own output with, for the
// DAG->CP builder's OrInvariant translation row.
func (o *OrInvariant) Out() int { return o.out }

func (o *OrInvariant) InputType() dag.InputType { return dag.InputVector }

func (o *OrInvariant) Init(in dag.Message) dag.Message {
	o.nbTrue = 0
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		if !vm.Value.IsZero() {
			o.nbTrue++
		}
	}
	o.current = o.nbTrue > 0
	return dag.VarMessage{VarIndex: o.out, Value: dag.BoolValue(o.current)}
}

func (o *OrInvariant) EvalFull(in dag.Message) dag.Message {
	nbTrue := 0
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		if !vm.Value.IsZero() {
			nbTrue++
		}
	}
	return dag.VarMessage{VarIndex: o.out, Value: dag.BoolValue(nbTrue > 0)}
}

func (o *OrInvariant) EvalDelta(in dag.Message) dag.Message {
	deltaTrue := flipDelta(in, false)
	newNbTrue := o.nbTrue + deltaTrue
	newCurrent := newNbTrue > 0
	if newCurrent == o.current {
		return dag.NoMessage{}
	}
	return dag.VarMoveDelta{VarIndex: o.out, Old: dag.BoolValue(o.current), New: dag.BoolValue(newCurrent)}
}

func (o *OrInvariant) Commit(in dag.Message) {
	o.nbTrue += flipDelta(in, false)
	o.current = o.nbTrue > 0
}

var _ dag.Invariant = (*OrInvariant)(nil)

// flipDelta sums the net change in a boolean counter across a Vector of
// VarMoveDelta items. countFalse selects whether the counter tracks false
// (And) or true (Or) inputs.
func flipDelta(in dag.Message, countFalse bool) int {
	delta := 0
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		oldFlag := mv.Old.IsZero() == countFalse
		newFlag := mv.New.IsZero() == countFalse
		if oldFlag == newFlag {
			continue
		}
		if newFlag {
			delta++
		} else {
			delta--
		}
	}
	return delta
}

// NegationInvariant reifies b = !x over a single boolean parent (§4.6).
type NegationInvariant struct {
	out     int
	current bool
}

func NewNegation(out int) *NegationInvariant { return &NegationInvariant{out: out} }

// Out returns the VarIndex this invariant tags its own output with.
func (n *NegationInvariant) Out() int { return n.out }

func (n *NegationInvariant) InputType() dag.InputType { return dag.InputSingle }

func (n *NegationInvariant) Init(in dag.Message) dag.Message {
	if vm, ok := in.(dag.VarMessage); ok {
		n.current = !vm.Value.Bool()
	}
	return dag.VarMessage{VarIndex: n.out, Value: dag.BoolValue(n.current)}
}

func (n *NegationInvariant) EvalFull(in dag.Message) dag.Message {
	if vm, ok := in.(dag.VarMessage); ok {
		return dag.VarMessage{VarIndex: n.out, Value: dag.BoolValue(!vm.Value.Bool())}
	}
	return dag.VarMessage{VarIndex: n.out, Value: dag.BoolValue(n.current)}
}

func (n *NegationInvariant) EvalDelta(in dag.Message) dag.Message {
	mv, ok := in.(dag.VarMoveDelta)
	if !ok {
		return dag.NoMessage{}
	}
	newCurrent := !mv.New.Bool()
	if newCurrent == n.current {
		return dag.NoMessage{}
	}
	return dag.VarMoveDelta{VarIndex: n.out, Old: dag.BoolValue(n.current), New: dag.BoolValue(newCurrent)}
}

func (n *NegationInvariant) Commit(in dag.Message) {
	if mv, ok := in.(dag.VarMoveDelta); ok {
		n.current = !mv.New.Bool()
	}
}

var _ dag.Invariant = (*NegationInvariant)(nil)

// IsEqualInvariant reifies b = (x == y) over two named integer/boolean
// parents (§4.6). Unlike RelationalInvariant{==}, which retags the
// violation as a hard constraint leg, this produces a plain boolean value
// for further boolean composition (And/Or/Negation chains, reified
// counting).
type IsEqualInvariant struct {
	out       int
	xIdx, yIdx int
	x, y      dag.DecisionValue
	current   bool
}

func NewIsEqual(out, xIdx, yIdx int) *IsEqualInvariant {
	return &IsEqualInvariant{out: out, xIdx: xIdx, yIdx: yIdx}
}

// Out returns the VarIndex this invariant tags its own output with.
func (e *IsEqualInvariant) Out() int { return e.out }

func (e *IsEqualInvariant) InputType() dag.InputType { return dag.InputVector }

func (e *IsEqualInvariant) Init(in dag.Message) dag.Message {
	items := vectorItems(in)
	if v, ok := varValue(items, e.xIdx); ok {
		e.x = v
	}
	if v, ok := varValue(items, e.yIdx); ok {
		e.y = v
	}
	e.current = e.x.Equal(e.y)
	return dag.VarMessage{VarIndex: e.out, Value: dag.BoolValue(e.current)}
}

func (e *IsEqualInvariant) EvalFull(in dag.Message) dag.Message {
	x, y := e.x, e.y
	items := vectorItems(in)
	if v, ok := varValue(items, e.xIdx); ok {
		x = v
	}
	if v, ok := varValue(items, e.yIdx); ok {
		y = v
	}
	return dag.VarMessage{VarIndex: e.out, Value: dag.BoolValue(x.Equal(y))}
}

func (e *IsEqualInvariant) EvalDelta(in dag.Message) dag.Message {
	x, y := e.x, e.y
	items := vectorItems(in)
	if _, nv, ok := varMoveValue(items, e.xIdx); ok {
		x = nv
	}
	if _, nv, ok := varMoveValue(items, e.yIdx); ok {
		y = nv
	}
	newCurrent := x.Equal(y)
	if newCurrent == e.current {
		return dag.NoMessage{}
	}
	return dag.VarMoveDelta{VarIndex: e.out, Old: dag.BoolValue(e.current), New: dag.BoolValue(newCurrent)}
}

func (e *IsEqualInvariant) Commit(in dag.Message) {
	items := vectorItems(in)
	if _, nv, ok := varMoveValue(items, e.xIdx); ok {
		e.x = nv
	}
	if _, nv, ok := varMoveValue(items, e.yIdx); ok {
		e.y = nv
	}
	e.current = e.x.Equal(e.y)
}

var _ dag.Invariant = (*IsEqualInvariant)(nil)

// IsDifferentInvariant reifies b = (x != y), the negation of IsEqualInvariant.
type IsDifferentInvariant struct {
	inner *IsEqualInvariant
}

func NewIsDifferent(out, xIdx, yIdx int) *IsDifferentInvariant {
	return &IsDifferentInvariant{inner: NewIsEqual(out, xIdx, yIdx)}
}

// Out returns the VarIndex this invariant tags its own output with.
func (d *IsDifferentInvariant) Out() int { return d.inner.Out() }

func (d *IsDifferentInvariant) InputType() dag.InputType { return d.inner.InputType() }

func negate(m dag.Message) dag.Message {
	switch v := m.(type) {
	case dag.VarMessage:
		return dag.VarMessage{VarIndex: v.VarIndex, Value: dag.BoolValue(v.Value.IsZero())}
	case dag.VarMoveDelta:
		return dag.VarMoveDelta{VarIndex: v.VarIndex, Old: dag.BoolValue(v.Old.IsZero()), New: dag.BoolValue(v.New.IsZero())}
	}
	return m
}

func (d *IsDifferentInvariant) Init(in dag.Message) dag.Message { return negate(d.inner.Init(in)) }
func (d *IsDifferentInvariant) EvalFull(in dag.Message) dag.Message {
	return negate(d.inner.EvalFull(in))
}
func (d *IsDifferentInvariant) EvalDelta(in dag.Message) dag.Message {
	return negate(d.inner.EvalDelta(in))
}
func (d *IsDifferentInvariant) Commit(in dag.Message) { d.inner.Commit(in) }

var _ dag.Invariant = (*IsDifferentInvariant)(nil)
