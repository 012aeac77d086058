package dag

// InputType declares how many parent messages an invariant accepts and how
// the engine should assemble them into its input slot (§3, §4.5).
type InputType int

const (
	// InputSingle: exactly one parent message, passed through unchanged.
	InputSingle InputType = iota
	// InputVector: a homogeneous slice of parent messages, all of the same
	// concrete MessageKind.
	InputVector
	// InputMulti: a heterogeneous bag of parent messages keyed by concrete
	// MessageKind.
	InputMulti
)

// Invariant is one node of the DAG: given input messages assembled
// according to its InputType, it computes a full value (Init/EvalFull) or a
// delta (EvalDelta), and updates its own state from an accepted delta
// (Commit). Stateless invariants make Commit a no-op.
type Invariant interface {
	// InputType declares how the engine should assemble this invariant's
	// input slot from its parents' emitted messages.
	InputType() InputType

	// Init seeds the invariant's internal state from the initial full
	// assignment and emits the corresponding full message downstream. Called
	// once per touched node during the DAG's InitRun.
	Init(in Message) Message

	// EvalFull computes a full value from in without mutating state. Used by
	// FullRun and OutputRun.
	EvalFull(in Message) Message

	// EvalDelta computes a delta from in, relative to the invariant's
	// current committed state, without mutating that state. Used by
	// DeltaRun.
	EvalDelta(in Message) Message

	// Commit applies the same assembled input slot that produced a delta
	// (not the delta itself) to the invariant's internal state — the
	// traversal calls it with slot[i] again once a move is accepted (§4.5).
	// Stateful invariants need the original per-parent contributions, not
	// just their own aggregated output, to update counters correctly
	// (AllDifferent's per-value counts, Multiply's per-index factors, ...).
	// Stateless invariants implement this as a no-op.
	Commit(in Message)
}

// HardConstraint is implemented by invariants that represent a hard
// constraint (ComparatorInvariant, StaticConstraintInvariant, ...). The
// output layer collects broken constraints by checking this tag (§4.6).
type HardConstraint interface {
	Invariant
	IsHardConstraint() bool
}

// slot is the per-node input buffer the traversal fills as parents emit
// messages, assembled according to the receiving invariant's InputType
// (§4.5 "message assembly").
type slot struct {
	it     InputType
	has    bool
	single Message
	vector []Message
	multi  [numKinds][]Message
}

func newSlot(it InputType) *slot {
	return &slot{it: it}
}

func (s *slot) reset() {
	s.has = false
	s.single = nil
	s.vector = s.vector[:0]
	for k := range s.multi {
		s.multi[k] = s.multi[k][:0]
	}
}

// append folds m into the slot per its InputType. For InputVector, every
// contribution in one run must share the same concrete MessageKind; this is
// a structural invariant of how the DAG was built (a Vector-typed invariant
// only ever has parents of one kind), so a mismatch is a programmer error.
func (s *slot) append(m Message) {
	switch s.it {
	case InputSingle:
		s.single = m
		s.has = true
	case InputVector:
		if len(s.vector) > 0 && s.vector[0].Kind() != m.Kind() {
			panic("dag: heterogeneous message delivered to a Vector-typed input")
		}
		s.vector = append(s.vector, m)
		s.has = true
	case InputMulti:
		s.multi[m.Kind()] = append(s.multi[m.Kind()], m)
		s.has = true
	}
}

// message returns the assembled Message to pass to the invariant's
// evaluate/init call this run.
func (s *slot) message() Message {
	switch s.it {
	case InputSingle:
		if !s.has {
			return NoMessage{}
		}
		return s.single
	case InputVector:
		if len(s.vector) == 0 {
			return NoMessage{}
		}
		return VectorMessage{Items: s.vector}
	case InputMulti:
		return MultiMessage{bag: &s.multi}
	}
	return NoMessage{}
}

// VectorMessage is the assembled input for an InputVector invariant: a
// homogeneous slice of same-kind messages from every touched parent.
type VectorMessage struct {
	Items []Message
}

func (VectorMessage) Kind() MessageKind { return KindNone }

// SumFloat sums the Float() projection of every Scalar item; items that are
// not Scalar (VarMessage, VarMoveDelta) are skipped.
func (v VectorMessage) SumFloat() float64 {
	var total float64
	for _, m := range v.Items {
		if s, ok := m.(Scalar); ok {
			total += s.Float()
		}
	}
	return total
}

// MultiMessage is the assembled input for an InputMulti invariant: a bag of
// messages keyed by concrete MessageKind, used by the DAG's built-in sink
// (and by invariant.Aggregator) to receive several legs, such as the
// ObjectiveDelta and ConstraintDelta legs, in one input.
type MultiMessage struct {
	bag *[numKinds][]Message
}

func (MultiMessage) Kind() MessageKind { return KindNone }

// Of returns every message of the given kind delivered this run.
func (m MultiMessage) Of(k MessageKind) []Message {
	if m.bag == nil {
		return nil
	}
	return m.bag[k]
}

// SumOf sums the Float() projection of every Scalar message of kind k.
func (m MultiMessage) SumOf(k MessageKind) float64 {
	var total float64
	for _, msg := range m.Of(k) {
		if s, ok := msg.(Scalar); ok {
			total += s.Float()
		}
	}
	return total
}
