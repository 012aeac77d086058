package dag

import "math"

// nodeRec is a node as accumulated before Init: its invariant, declared
// name/using-cp flag, and the pre-init indices of its parents. Indices
// 0..nVars-1 always denote the hidden sentinel decision-variable invariants
// (§3); AddInvariant appends further nodes after them.
type nodeRec struct {
	inv     Invariant
	name    string
	usingCP bool
	parents []int
}

// DAG is the incremental evaluation graph: invariants as nodes, a fixed
// topological order computed once at Init, and the run-mode traversal that
// keeps every node's state consistent under local moves (§3, §4.5).
type DAG struct {
	nVars              int
	earlyStopThreshold float64

	nodes []nodeRec
	built bool

	invariants          []Invariant
	names               []string
	usingCP             []bool
	parentsOf           [][]int
	childrenOf          [][]int
	varToFirstInvariant []int
	sinkIndex           int
	slots               []*slot
}

// New returns a DAG with nVars hidden sentinel decision-variable invariants
// already seeded and no other nodes. earlyStopThreshold is the
// ConstraintDelta magnitude above which a DeltaRun short-circuits (§4.5).
func New(nVars int, earlyStopThreshold float64) *DAG {
	d := &DAG{nVars: nVars, earlyStopThreshold: earlyStopThreshold}
	d.nodes = make([]nodeRec, nVars)
	for i := 0; i < nVars; i++ {
		d.nodes[i] = nodeRec{inv: newSentinel(i, DecisionValue{})}
	}
	return d
}

// AddInvariant registers inv as a new node. parentsByInvariant names parent
// nodes by the id a previous AddInvariant call returned; parentsByVariable
// names parent sentinels by decision-variable index. Returns the node's
// pre-init id, stable for use as a parent reference in later AddInvariant
// calls but renumbered by Init.
func (d *DAG) AddInvariant(inv Invariant, parentsByInvariant, parentsByVariable []int, name string, usingCP bool) int {
	if d.built {
		panic("dag: AddInvariant called after Init")
	}
	parents := make([]int, 0, len(parentsByInvariant)+len(parentsByVariable))
	parents = append(parents, parentsByInvariant...)
	parents = append(parents, parentsByVariable...)
	id := len(d.nodes)
	d.nodes = append(d.nodes, nodeRec{inv: inv, name: name, usingCP: usingCP, parents: parents})
	return id
}

// UsingCP reports whether the node at the given (post-Init) rank was added
// with usingCP = true.
func (d *DAG) UsingCP(rank int) bool { return d.usingCP[rank] }

// Name returns the declared name of the node at the given (post-Init) rank.
func (d *DAG) Name(rank int) string { return d.names[rank] }

// ParentRanks returns the post-Init ranks of a node's parents.
func (d *DAG) ParentRanks(rank int) []int { return d.parentsOf[rank] }

// NumNodes returns the total node count after Init (sentinels + added
// invariants + the sink).
func (d *DAG) NumNodes() int { return len(d.invariants) }

// VarSentinelRank returns the post-Init rank of the sentinel for decision
// variable i.
func (d *DAG) VarSentinelRank(i int) int { return d.varToFirstInvariant[i] }

// NumVars returns the number of decision variables the DAG was built with.
func (d *DAG) NumVars() int { return d.nVars }

// Invariant returns the invariant at the given (post-Init) rank, for
// collaborators (the DAG->CP builder) that need to inspect a node's
// concrete type rather than just its declared name/using-cp flag.
func (d *DAG) Invariant(rank int) Invariant { return d.invariants[rank] }

// Init finalizes the graph: appends the unique ResultInvariant sink wired to
// every currently childless node, computes in-degrees, runs Kahn's
// algorithm, and renumbers every node/adjacency array by the resulting
// topological rank (§4.5, §9 design notes "topological renumber"). It then
// runs an InitRun over the whole graph from initialAssignment, seeding every
// invariant's internal state. Init must be called exactly once, before any
// Eval or Commit.
func (d *DAG) Init(initialAssignment []DecisionValue) error {
	if d.built {
		return ErrAlreadyInit
	}

	sinkPreID := len(d.nodes)
	d.nodes = append(d.nodes, nodeRec{inv: newResultInvariant(), name: "result"})
	total := len(d.nodes)

	childrenOf := make([][]int, total)
	for i, n := range d.nodes {
		for _, p := range n.parents {
			childrenOf[p] = append(childrenOf[p], i)
		}
	}
	for i := 0; i < sinkPreID; i++ {
		if len(childrenOf[i]) == 0 {
			d.nodes[sinkPreID].parents = append(d.nodes[sinkPreID].parents, i)
			childrenOf[i] = append(childrenOf[i], sinkPreID)
		}
	}

	for i := d.nVars; i < sinkPreID; i++ {
		if len(d.nodes[i].parents) == 0 {
			return ErrOrphanInvariant
		}
	}
	if len(d.nodes[sinkPreID].parents) == 0 {
		return ErrOrphanInvariant
	}

	indeg := make([]int, total)
	for i := 0; i < total; i++ {
		indeg[i] = len(d.nodes[i].parents)
	}

	order := make([]int, 0, total)
	queue := make([]int, 0, d.nVars)
	for i := 0; i < total; i++ {
		if indeg[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, c := range childrenOf[i] {
			indeg[c]--
			if indeg[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	if len(order) != total {
		return ErrCycle
	}

	rank := make([]int, total)
	for newIdx, oldIdx := range order {
		rank[oldIdx] = newIdx
	}

	d.invariants = make([]Invariant, total)
	d.names = make([]string, total)
	d.usingCP = make([]bool, total)
	d.parentsOf = make([][]int, total)
	d.childrenOf = make([][]int, total)
	for oldIdx, n := range d.nodes {
		newIdx := rank[oldIdx]
		d.invariants[newIdx] = n.inv
		d.names[newIdx] = n.name
		d.usingCP[newIdx] = n.usingCP
		ps := make([]int, len(n.parents))
		for k, p := range n.parents {
			ps[k] = rank[p]
		}
		d.parentsOf[newIdx] = ps
	}
	for newIdx := range d.invariants {
		for _, p := range d.parentsOf[newIdx] {
			d.childrenOf[p] = append(d.childrenOf[p], newIdx)
		}
	}

	d.varToFirstInvariant = make([]int, d.nVars)
	for i := 0; i < d.nVars; i++ {
		d.varToFirstInvariant[i] = rank[i]
	}
	d.sinkIndex = rank[sinkPreID]

	d.slots = make([]*slot, total)
	for i, inv := range d.invariants {
		d.slots[i] = newSlot(inv.InputType())
	}
	d.built = true

	for i := 0; i < d.nVars; i++ {
		d.slots[i].append(VarMessage{VarIndex: i, Value: initialAssignment[i]})
	}
	for i := 0; i < total; i++ {
		m := d.invariants[i].Init(d.slots[i].message())
		if !isNoMessage(m) {
			for _, c := range d.childrenOf[i] {
				d.slots[c].append(m)
			}
		}
	}
	for _, s := range d.slots {
		s.reset()
	}
	return nil
}

// isNoMessage reports whether m carries nothing worth propagating: the
// explicit NoMessage sentinel, or any Scalar message (delta or full value)
// of exactly zero (for a delta, no change happened, which is the same thing
// from a downstream node's perspective).
func isNoMessage(m Message) bool {
	if _, ok := m.(NoMessage); ok {
		return true
	}
	if s, ok := m.(Scalar); ok {
		return s.Float() == 0
	}
	return false
}

// FullRun evaluates the entire graph from scratch against assignment,
// without mutating any invariant's committed state (§4.5 FullRun). It
// returns the sink's full result.
func (d *DAG) FullRun(assignment []DecisionValue) ResultMessage {
	for _, s := range d.slots {
		s.reset()
	}
	for i := 0; i < d.nVars; i++ {
		d.slots[i].append(VarMessage{VarIndex: i, Value: assignment[i]})
	}
	var sinkMsg ResultMessage
	for i := 0; i < len(d.invariants); i++ {
		m := d.invariants[i].EvalFull(d.slots[i].message())
		if i == d.sinkIndex {
			sinkMsg, _ = m.(ResultMessage)
		}
		if !isNoMessage(m) {
			for _, c := range d.childrenOf[i] {
				d.slots[c].append(m)
			}
		}
	}
	return sinkMsg
}

// DeltaResult is the outcome of one DeltaRun: the sink's delta, whether the
// traversal early-stopped, and enough bookkeeping for Commit to replay the
// accepted deltas into every touched invariant's state.
type DeltaResult struct {
	Result       ResultDelta
	EarlyStopped bool

	touched []bool
	inputs  []Message
}

// Eval runs a DeltaRun for move: it seeds every sentinel named by the move
// plus the sink, then walks the topological order, propagating only to
// touched nodes, short-circuiting if any ConstraintDelta exceeds the DAG's
// early-stop threshold (§4.5).
func (d *DAG) Eval(move Move) *DeltaResult {
	n := len(d.invariants)
	for _, s := range d.slots {
		s.reset()
	}
	touched := make([]bool, n)
	inputs := make([]Message, n)

	touched[d.sinkIndex] = true
	for _, a := range move.Assignments {
		si := d.varToFirstInvariant[a.VarIndex]
		touched[si] = true
		sentinel := d.invariants[si].(*sentinelInvariant)
		d.slots[si].append(VarMoveDelta{VarIndex: a.VarIndex, Old: sentinel.current, New: a.Value})
	}

	var result ResultDelta
	for i := 0; i < n; i++ {
		if !touched[i] {
			continue
		}
		in := d.slots[i].message()
		m := d.invariants[i].EvalDelta(in)
		if cd, ok := m.(ConstraintDelta); ok && cd.Exceeds(d.earlyStopThreshold) {
			return &DeltaResult{
				Result:       ResultDelta{Objective: math.Inf(1), Feasible: false},
				EarlyStopped: true,
			}
		}
		inputs[i] = in
		if i == d.sinkIndex {
			result, _ = m.(ResultDelta)
		}
		if !isNoMessage(m) {
			for _, c := range d.childrenOf[i] {
				d.slots[c].append(m)
				touched[c] = true
			}
		}
	}
	return &DeltaResult{Result: result, touched: touched, inputs: inputs}
}

// Commit applies a previously evaluated DeltaRun to the DAG's state.
// Committing an early-stopped result is a programmer error (§4.5, §7): the
// traversal never evaluated anything downstream of the trigger, so there is
// nothing consistent to apply.
func (d *DAG) Commit(dr *DeltaResult) {
	if dr.EarlyStopped {
		panic("dag: commit called on an early-stopped evaluation")
	}
	for i, t := range dr.touched {
		if t && dr.inputs[i] != nil {
			d.invariants[i].Commit(dr.inputs[i])
		}
	}
}
