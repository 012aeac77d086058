package invariant

import "github.com/gitrdm/juls-core/dag"

// SumInvariant computes y = sum(x_i) over a vector of scalar-valued parents
// (§4.6). Stateless: both full and delta evaluation are a straight sum of
// whatever the engine assembled into the slot this run, since the Vector
// input already carries only the touched parents' contributions.
type SumInvariant struct{}

func NewSum() *SumInvariant { return &SumInvariant{} }

func (s *SumInvariant) InputType() dag.InputType { return dag.InputVector }

func (s *SumInvariant) Init(in dag.Message) dag.Message {
	return dag.FloatFull(vectorFullSum(in))
}

func (s *SumInvariant) EvalFull(in dag.Message) dag.Message {
	return dag.FloatFull(vectorFullSum(in))
}

func (s *SumInvariant) EvalDelta(in dag.Message) dag.Message {
	delta := vectorDeltaSum(in)
	if delta == 0 {
		return dag.NoMessage{}
	}
	return dag.FloatDelta(delta)
}

func (s *SumInvariant) Commit(in dag.Message) {}

var _ dag.Invariant = (*SumInvariant)(nil)

// ScaleInvariant computes y = alpha*x for a single scalar or single-variable
// parent (§4.6). Stateless: full is alpha*value, delta is
// alpha*(new-current).
type ScaleInvariant struct {
	alpha float64
}

func NewScale(alpha float64) *ScaleInvariant { return &ScaleInvariant{alpha: alpha} }

// Alpha returns the configured scale factor, for the DAG->CP builder.
func (s *ScaleInvariant) Alpha() float64 { return s.alpha }

func (s *ScaleInvariant) InputType() dag.InputType { return dag.InputSingle }

func (s *ScaleInvariant) Init(in dag.Message) dag.Message { return s.EvalFull(in) }

func (s *ScaleInvariant) EvalFull(in dag.Message) dag.Message {
	switch m := in.(type) {
	case dag.VarMessage:
		return dag.FloatFull(s.alpha * m.Value.AsFloat())
	case dag.Scalar:
		return dag.FloatFull(s.alpha * m.Float())
	}
	return dag.FloatFull(0)
}

func (s *ScaleInvariant) EvalDelta(in dag.Message) dag.Message {
	switch m := in.(type) {
	case dag.VarMoveDelta:
		return dag.FloatDelta(s.alpha * (m.New.AsFloat() - m.Old.AsFloat()))
	case dag.Scalar:
		return dag.FloatDelta(s.alpha * m.Float())
	}
	return dag.FloatDelta(0)
}

func (s *ScaleInvariant) Commit(in dag.Message) {}

var _ dag.Invariant = (*ScaleInvariant)(nil)

// MultiplyInvariant computes y = product(x_i) over a vector of
// single-variable parents, each identified by VarIndex (§4.6, and the
// resolution of the flagged Open Question on its delta formula recorded in
// DESIGN.md: parents are assumed to emit VarMessage/VarMoveDelta, so the
// invariant can track per-index values directly rather than relying on an
// unordered scalar sum).
//
// State is a running nonzero product plus a count of zero-valued inputs;
// the full output is zero whenever any input is zero, otherwise the
// product. Delta evaluation simulates the same transition rules without
// mutating state; Commit replays them for real.
type MultiplyInvariant struct {
	out            int
	values         map[int]float64
	nonzeroProduct float64
	nbZeros        int
	currentOutput  float64
}

func NewMultiply(out int) *MultiplyInvariant {
	return &MultiplyInvariant{out: out, values: make(map[int]float64), nonzeroProduct: 1}
}

// Out returns the node's own identifying index (its output is a plain
// scalar, not a tagged VarMessage, so this is bookkeeping only).
func (m *MultiplyInvariant) Out() int { return m.out }

func (m *MultiplyInvariant) InputType() dag.InputType { return dag.InputVector }

func (m *MultiplyInvariant) Init(in dag.Message) dag.Message {
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		v := vm.Value.AsFloat()
		m.values[vm.VarIndex] = v
		if v == 0 {
			m.nbZeros++
		} else {
			m.nonzeroProduct *= v
		}
	}
	if m.nbZeros > 0 {
		m.currentOutput = 0
	} else {
		m.currentOutput = m.nonzeroProduct
	}
	return dag.FloatFull(m.currentOutput)
}

func (m *MultiplyInvariant) EvalFull(in dag.Message) dag.Message {
	nbZeros := 0
	product := 1.0
	values := make(map[int]float64, len(m.values))
	for idx, v := range m.values {
		values[idx] = v
	}
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		values[vm.VarIndex] = vm.Value.AsFloat()
	}
	for _, v := range values {
		if v == 0 {
			nbZeros++
		} else {
			product *= v
		}
	}
	if nbZeros > 0 {
		return dag.FloatFull(0)
	}
	return dag.FloatFull(product)
}

// simulate computes the simulated zero count and the multiplicative ratio
// the currently nonzero product must be scaled by, without mutating state.
func (m *MultiplyInvariant) simulate(in dag.Message) (nbZeros int, ratio float64) {
	nbZeros = m.nbZeros
	ratio = 1
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		oldV := mv.Old.AsFloat()
		newV := mv.New.AsFloat()
		wasZero := oldV == 0
		isZero := newV == 0
		switch {
		case wasZero && !isZero:
			nbZeros--
			ratio *= newV
		case !wasZero && isZero:
			nbZeros++
			ratio /= oldV
		case !wasZero && !isZero:
			ratio *= newV / oldV
		}
	}
	return nbZeros, ratio
}

func (m *MultiplyInvariant) EvalDelta(in dag.Message) dag.Message {
	nbZeros, ratio := m.simulate(in)
	var newOutput float64
	if nbZeros == 0 {
		newOutput = m.nonzeroProduct * ratio
	}
	delta := newOutput - m.currentOutput
	if delta == 0 {
		return dag.NoMessage{}
	}
	return dag.FloatDelta(delta)
}

func (m *MultiplyInvariant) Commit(in dag.Message) {
	nbZeros, ratio := m.simulate(in)
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		m.values[mv.VarIndex] = mv.New.AsFloat()
	}
	m.nonzeroProduct *= ratio
	m.nbZeros = nbZeros
	if m.nbZeros == 0 {
		m.currentOutput = m.nonzeroProduct
	} else {
		m.currentOutput = 0
	}
}

var _ dag.Invariant = (*MultiplyInvariant)(nil)

// ScalarProductInvariant computes y = sum(w_i * x_i) over binary x_i,
// identified by VarIndex (§4.6). Stateless: each input's contribution is
// independent, so a delta is just (new-old)*w[index] summed across the
// vector's touched entries.
type ScalarProductInvariant struct {
	weights map[int]float64
}

func NewScalarProduct(weights map[int]float64) *ScalarProductInvariant {
	w := make(map[int]float64, len(weights))
	for k, v := range weights {
		w[k] = v
	}
	return &ScalarProductInvariant{weights: w}
}

func (s *ScalarProductInvariant) InputType() dag.InputType { return dag.InputVector }

func (s *ScalarProductInvariant) Init(in dag.Message) dag.Message { return s.EvalFull(in) }

func (s *ScalarProductInvariant) EvalFull(in dag.Message) dag.Message {
	var total float64
	for _, item := range vectorItems(in) {
		vm, ok := item.(dag.VarMessage)
		if !ok {
			continue
		}
		total += s.weights[vm.VarIndex] * vm.Value.AsFloat()
	}
	return dag.FloatFull(total)
}

func (s *ScalarProductInvariant) EvalDelta(in dag.Message) dag.Message {
	var total float64
	for _, item := range vectorItems(in) {
		mv, ok := item.(dag.VarMoveDelta)
		if !ok {
			continue
		}
		total += s.weights[mv.VarIndex] * (mv.New.AsFloat() - mv.Old.AsFloat())
	}
	if total == 0 {
		return dag.NoMessage{}
	}
	return dag.FloatDelta(total)
}

func (s *ScalarProductInvariant) Commit(in dag.Message) {}

var _ dag.Invariant = (*ScalarProductInvariant)(nil)
