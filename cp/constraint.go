package cp

import "github.com/gitrdm/juls-core/trail"

// PropCtx is the context a Constraint's Propagate receives: access to the
// shared trail (for trailed internal state) and the means to wake other
// watchers of a variable it just shrank. Constraints never push onto the
// worklist themselves; they enqueue watchers only through Wake, keeping
// propagation isolated to the contract in §4.3: shrink domains, wake the
// right watchers, update trailed state, report infeasibility as a bool.
type PropCtx struct {
	tr *trail.Trail
	wl *worklist
}

// Trail returns the shared trail, for constraints that keep their own
// trailed state (active flags, overlap sets, Among's low counter, ...).
func (p *PropCtx) Trail() *trail.Trail { return p.tr }

// Wake enqueues every watcher of v other than self. Call this once for every
// variable a propagate call actually shrinks.
func (p *PropCtx) Wake(v Var, self ConstraintID) {
	for _, w := range v.watchers() {
		if w != self {
			p.wl.push(w)
		}
	}
}

// Constraint is a CP propagator: a deterministic domain-reduction procedure
// plus the trailed bookkeeping it needs to run incrementally.
//
// Propagate attempts to shrink the domains of Variables() consistent with
// the constraint's semantics. It returns false iff it proves the constraint
// infeasible (some variable domain would become empty, or the semantics
// cannot be satisfied by any remaining assignment). A constraint MUST call
// ctx.Wake(v, self) for every variable it actually shrinks, and MUST set
// itself inactive via SetActive(false) once it can never fire again.
type Constraint interface {
	ID() ConstraintID
	Propagate(ctx *PropCtx) bool
	Variables() []Var
	Active(tr *trail.Trail) bool
	SetActive(tr *trail.Trail, active bool)
}

// activeFlag is the trailed active-bit every concrete constraint embeds.
type activeFlag struct {
	cell trail.CellID
}

func newActiveFlag(tr *trail.Trail) activeFlag {
	return activeFlag{cell: tr.NewCell(1)}
}

func (a *activeFlag) Active(tr *trail.Trail) bool { return tr.Get(a.cell) != 0 }

func (a *activeFlag) SetActive(tr *trail.Trail, active bool) {
	v := 0
	if active {
		v = 1
	}
	tr.Set(a.cell, v)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
