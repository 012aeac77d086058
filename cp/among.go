package cp

import "github.com/gitrdm/juls-core/trail"

// Among enforces y = |{i : xi in S}|, per §4.3. It keeps a trailed overlap
// set of indices still ambiguous with respect to S (neither surely-in nor
// surely-out) plus a trailed low counter; the implicit upper bound is
// low + overlap.Size(), so removing a surely-disjoint index from the
// overlap set shrinks the upper bound without separate bookkeeping.
type Among struct {
	id      ConstraintID
	xs      []Var
	inSet   membership
	y       Var
	overlap *overlapSet
	low     trail.CellID
	activeFlag
}

func NewAmong(tr *trail.Trail, xs []Var, inSet membership, y Var) *Among {
	return &Among{
		xs:         xs,
		inSet:      inSet,
		y:          y,
		overlap:    newOverlapSet(tr, len(xs)),
		low:        tr.NewCell(0),
		activeFlag: newActiveFlag(tr),
	}
}

func (c *Among) ID() ConstraintID { return c.id }
func (c *Among) Variables() []Var {
	vs := append([]Var(nil), c.xs...)
	return append(vs, c.y)
}
func (c *Among) setID(id ConstraintID)       { c.id = id }
func (c *Among) Active(tr *trail.Trail) bool { return c.activeFlag.Active(tr) }

func (c *Among) Propagate(ctx *PropCtx) bool {
	tr := ctx.tr
	for _, i := range c.overlap.Members(tr) {
		xi := c.xs[i]
		switch {
		case subsetOf(xi, c.inSet):
			tr.Set(c.low, tr.Get(c.low)+1)
			c.overlap.Remove(tr, i)
		case disjointFrom(xi, c.inSet):
			c.overlap.Remove(tr, i)
		}
	}

	low := tr.Get(c.low)
	up := low + c.overlap.Size(tr)
	shrunkY := false
	if c.y.RemoveBelow(low) {
		shrunkY = true
	}
	if c.y.RemoveAbove(up) {
		shrunkY = true
	}
	if c.y.Size() == 0 {
		return false
	}
	if shrunkY {
		ctx.Wake(c.y, c.id)
	}

	if c.y.IsBound() {
		target := c.y.SingletonValue()
		switch target {
		case up:
			for _, i := range c.overlap.Members(tr) {
				xi := c.xs[i]
				if !restrictToSet(xi, c.inSet) {
					return false
				}
				ctx.Wake(xi, c.id)
				tr.Set(c.low, tr.Get(c.low)+1)
				c.overlap.Remove(tr, i)
			}
		case low:
			for _, i := range c.overlap.Members(tr) {
				xi := c.xs[i]
				if !excludeSet(xi, c.inSet) {
					return false
				}
				ctx.Wake(xi, c.id)
				c.overlap.Remove(tr, i)
			}
		}
	}

	if c.overlap.Size(tr) == 0 {
		c.SetActive(tr, false)
	}
	return true
}

// AmongUp enforces |{i : xi in S}| <= C, an upper-bound-only specialization
// of Among with no output variable: once low reaches C, every remaining
// ambiguous xi has S excluded from its domain.
type AmongUp struct {
	id      ConstraintID
	xs      []Var
	inSet   membership
	c       int
	overlap *overlapSet
	low     trail.CellID
	activeFlag
}

func NewAmongUp(tr *trail.Trail, xs []Var, inSet membership, c int) *AmongUp {
	return &AmongUp{
		xs:         xs,
		inSet:      inSet,
		c:          c,
		overlap:    newOverlapSet(tr, len(xs)),
		low:        tr.NewCell(0),
		activeFlag: newActiveFlag(tr),
	}
}

func (a *AmongUp) ID() ConstraintID            { return a.id }
func (a *AmongUp) Variables() []Var            { return append([]Var(nil), a.xs...) }
func (a *AmongUp) setID(id ConstraintID)       { a.id = id }
func (a *AmongUp) Active(tr *trail.Trail) bool { return a.activeFlag.Active(tr) }

func (a *AmongUp) Propagate(ctx *PropCtx) bool {
	tr := ctx.tr
	for _, i := range a.overlap.Members(tr) {
		xi := a.xs[i]
		switch {
		case subsetOf(xi, a.inSet):
			tr.Set(a.low, tr.Get(a.low)+1)
			a.overlap.Remove(tr, i)
		case disjointFrom(xi, a.inSet):
			a.overlap.Remove(tr, i)
		}
	}

	low := tr.Get(a.low)
	if low > a.c {
		return false
	}
	if low == a.c {
		for _, i := range a.overlap.Members(tr) {
			xi := a.xs[i]
			if !excludeSet(xi, a.inSet) {
				return false
			}
			ctx.Wake(xi, a.id)
			a.overlap.Remove(tr, i)
		}
	}
	if a.overlap.Size(tr) == 0 {
		a.SetActive(tr, false)
	}
	return true
}

// AtMost enforces |{i : xi == v}| <= C, the singleton-set specialization of
// AmongUp (§4.3). The DAG->CP builder does not post it; it is available to
// callers that build a cp.Model directly.
type AtMost struct {
	id      ConstraintID
	xs      []Var
	v       int
	c       int
	overlap *overlapSet
	low     trail.CellID
	activeFlag
}

func NewAtMost(tr *trail.Trail, xs []Var, v, c int) *AtMost {
	return &AtMost{
		xs:         xs,
		v:          v,
		c:          c,
		overlap:    newOverlapSet(tr, len(xs)),
		low:        tr.NewCell(0),
		activeFlag: newActiveFlag(tr),
	}
}

func (a *AtMost) ID() ConstraintID            { return a.id }
func (a *AtMost) Variables() []Var            { return append([]Var(nil), a.xs...) }
func (a *AtMost) setID(id ConstraintID)       { a.id = id }
func (a *AtMost) Active(tr *trail.Trail) bool { return a.activeFlag.Active(tr) }

func (a *AtMost) Propagate(ctx *PropCtx) bool {
	tr := ctx.tr
	in := func(x int) bool { return x == a.v }
	for _, i := range a.overlap.Members(tr) {
		xi := a.xs[i]
		switch {
		case subsetOf(xi, in):
			tr.Set(a.low, tr.Get(a.low)+1)
			a.overlap.Remove(tr, i)
		case disjointFrom(xi, in):
			a.overlap.Remove(tr, i)
		}
	}

	low := tr.Get(a.low)
	if low > a.c {
		return false
	}
	if low == a.c {
		for _, i := range a.overlap.Members(tr) {
			xi := a.xs[i]
			if xi.Remove(a.v) {
				ctx.Wake(xi, a.id)
			}
			if xi.Size() == 0 {
				return false
			}
			a.overlap.Remove(tr, i)
		}
	}
	if a.overlap.Size(tr) == 0 {
		a.SetActive(tr, false)
	}
	return true
}
