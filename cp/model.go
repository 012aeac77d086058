package cp

import (
	"github.com/gitrdm/juls-core/domain"
	"github.com/gitrdm/juls-core/trail"
)

// Model owns the CP variable arena, the posted constraints and their shared
// Trail. It runs an initial fix-point at construction (Init), then supports
// the move-enumeration filter (Eval) used by the outer neighborhood search
// to discard infeasible candidate moves before the DAG ever evaluates them
// (§4.4, §4.8).
type Model struct {
	tr          *trail.Trail
	vars        []Var
	constraints []Constraint
	stats       *Stats
}

// NewModel returns an empty Model with a fresh Trail.
func NewModel() *Model {
	return &Model{tr: trail.New()}
}

// Trail returns the Model's shared trail, for callers (the DAG->CP builder)
// that need to allocate further trailed cells of their own.
func (m *Model) Trail() *trail.Trail { return m.tr }

// SetStats installs an optional statistics collector; pass nil to disable.
func (m *Model) SetStats(s *Stats) { m.stats = s }

// NewIntVar allocates a fresh integer variable over [lo, hi].
func (m *Model) NewIntVar(lo, hi int) *IntVar {
	id := VarID(len(m.vars))
	v := &IntVar{id: id, dom: domain.New(m.tr, lo, hi)}
	m.vars = append(m.vars, v)
	return v
}

// NewBoolVar allocates a fresh boolean variable (an IntVar over {0,1}).
func (m *Model) NewBoolVar() *IntVar {
	id := VarID(len(m.vars))
	v := &IntVar{id: id, dom: domain.NewBool(m.tr)}
	m.vars = append(m.vars, v)
	return v
}

// NewOffsetView exposes base shifted by c, without owning storage (§3, §4.7
// "ScaleInvariant producing a view").
func (m *Model) NewOffsetView(base Var, c int) Var {
	id := VarID(len(m.vars))
	vv := &viewVar{id: id, base: base, v: domain.NewOffsetView(base, c)}
	m.vars = append(m.vars, vv)
	return vv
}

// NewMulView exposes base scaled by c (c must be > 0), without owning
// storage.
func (m *Model) NewMulView(base Var, c int) Var {
	id := VarID(len(m.vars))
	vv := &viewVar{id: id, base: base, v: domain.NewMulView(base, c)}
	m.vars = append(m.vars, vv)
	return vv
}

// NewOppositeView exposes -base, without owning storage.
func (m *Model) NewOppositeView(base Var) Var {
	id := VarID(len(m.vars))
	vv := &viewVar{id: id, base: base, v: domain.NewOppositeView(base)}
	m.vars = append(m.vars, vv)
	return vv
}

// Var returns the variable registered under id.
func (m *Model) Var(id VarID) Var { return m.vars[id] }

// idSetter is implemented by every concrete constraint; Post uses it to
// assign the constraint its arena index before registering watchers.
type idSetter interface {
	setID(ConstraintID)
}

// Post registers c: assigns it an id, records it in the constraint arena,
// and makes it a watcher of every one of its non-bound variables. Posting
// does not itself propagate; call Init to run the first fix-point.
func (m *Model) Post(c Constraint) ConstraintID {
	id := ConstraintID(len(m.constraints))
	if s, ok := c.(idSetter); ok {
		s.setID(id)
	}
	m.constraints = append(m.constraints, c)
	for _, v := range c.Variables() {
		if !v.IsBound() {
			v.addWatcher(id)
		}
	}
	return id
}

// Entailed returns the ids of constraints already inactive (entailed, can
// never fail or prune again) after the last Init/Eval run.
func (m *Model) Entailed() []ConstraintID {
	var out []ConstraintID
	for _, c := range m.constraints {
		if !c.Active(m.tr) {
			out = append(out, c.ID())
		}
	}
	return out
}

// runToFixpoint drains wl, running Propagate on every popped Active
// constraint until the worklist is empty or a constraint reports
// infeasibility. Every propagator only shrinks domains (monotonic), so the
// final state is confluent regardless of pop order (§4.3, §8 property 3).
func (m *Model) runToFixpoint(wl *worklist) bool {
	ctx := &PropCtx{tr: m.tr, wl: wl}
	for {
		id, ok := wl.pop()
		if !ok {
			return true
		}
		c := m.constraints[id]
		if !c.Active(m.tr) {
			continue
		}
		m.stats.recordFiring()
		if !c.Propagate(ctx) {
			return false
		}
	}
}

func (m *Model) seededWorklist() *worklist {
	wl := newWorklist(len(m.constraints))
	for i := range m.constraints {
		wl.push(ConstraintID(i))
	}
	return wl
}

// Init runs the fix-point once over every posted constraint. Because Init
// runs with no open Trail checkpoint, every domain write goes straight to
// the committed value (trail.Set only logs when a frame is open) — so a
// successful Init naturally leaves the propagated state as the new base,
// matching §4.4's "empties the trail so the committed state becomes the
// base" without any extra bookkeeping. Returns ErrInfeasible if the
// fix-point proves the problem has no solution.
func (m *Model) Init() error {
	if !m.runToFixpoint(m.seededWorklist()) {
		return ErrInfeasible
	}
	return nil
}

// Eval enumerates every feasible completion of the variables named by free,
// holding every other variable at its value in current, per §4.8. current
// supplies a value for every decision variable including those named by
// free (their value before the candidate move); the returned set's last
// entry is always that unchanged ("no-op") tuple. Order among the feasible
// tuples before the no-op entry is unspecified.
func (m *Model) Eval(current map[VarID]int, free []VarID) [][]int {
	m.tr.Checkpoint()
	defer m.tr.Restore()
	m.stats.recordDepth(m.tr.Depth())

	freeSet := make(map[VarID]bool, len(free))
	for _, id := range free {
		freeSet[id] = true
	}

	wl := newWorklist(len(m.constraints))
	ctx := &PropCtx{tr: m.tr, wl: wl}
	feasible := true
	for id, val := range current {
		if freeSet[id] {
			continue
		}
		v := m.vars[id]
		if !v.Assign(val) {
			feasible = false
			break
		}
		ctx.Wake(v, -1)
	}
	if feasible {
		feasible = m.runToFixpoint(wl)
	}

	var results [][]int
	if feasible {
		freeVars := make([]Var, len(free))
		for i, id := range free {
			freeVars[i] = m.vars[id]
		}
		tuple := make([]int, len(free))
		m.dfs(freeVars, 0, tuple, &results)
	}

	noop := make([]int, len(free))
	for i, id := range free {
		noop[i] = current[id]
	}
	results = append(results, noop)
	return results
}

// dfs enumerates the Cartesian product of freeVars' remaining domains,
// checkpointing/restoring the trail around each trial assignment and
// running the fix-point at every level so later variables only see domains
// already narrowed by earlier ones (§4.8 step 4).
func (m *Model) dfs(freeVars []Var, i int, tuple []int, out *[][]int) {
	if i == len(freeVars) {
		m.stats.recordLeaf()
		row := make([]int, len(tuple))
		copy(row, tuple)
		*out = append(*out, row)
		return
	}
	v := freeVars[i]
	for _, val := range snapshotValues(v) {
		m.tr.Checkpoint()
		wl := newWorklist(len(m.constraints))
		ctx := &PropCtx{tr: m.tr, wl: wl}
		ok := v.Assign(val)
		if ok {
			ctx.Wake(v, -1)
			ok = m.runToFixpoint(wl)
		}
		m.stats.recordDepth(m.tr.Depth())
		if ok {
			tuple[i] = val
			m.dfs(freeVars, i+1, tuple, out)
		}
		m.tr.Restore()
	}
}
