package cp

import "github.com/gitrdm/juls-core/trail"

// SumLessThan enforces Σ xs <= U, per §4.3. It keeps a trailed overlapSet of
// still-free variables and a trailed running sum of the ones that have
// become bound; sum_of_min = sumFixed + Σ_free min(xj). If that exceeds U
// the constraint fails; otherwise every free xi is pruned to
// max(xi) := min(xi) + (U - sum_of_min).
type SumLessThan struct {
	id       ConstraintID
	xs       []Var
	u        int
	free     *overlapSet
	sumFixed trail.CellID
	activeFlag
}

func NewSumLessThan(tr *trail.Trail, xs []Var, u int) *SumLessThan {
	return &SumLessThan{
		xs:         xs,
		u:          u,
		free:       newOverlapSet(tr, len(xs)),
		sumFixed:   tr.NewCell(0),
		activeFlag: newActiveFlag(tr),
	}
}

func (c *SumLessThan) ID() ConstraintID            { return c.id }
func (c *SumLessThan) Variables() []Var            { return append([]Var(nil), c.xs...) }
func (c *SumLessThan) setID(id ConstraintID)       { c.id = id }
func (c *SumLessThan) Active(tr *trail.Trail) bool { return c.activeFlag.Active(tr) }

func (c *SumLessThan) Propagate(ctx *PropCtx) bool {
	tr := ctx.tr
	for _, i := range c.free.Members(tr) {
		if c.xs[i].IsBound() {
			tr.Set(c.sumFixed, tr.Get(c.sumFixed)+c.xs[i].SingletonValue())
			c.free.Remove(tr, i)
		}
	}

	sumOfMin := tr.Get(c.sumFixed)
	for _, i := range c.free.Members(tr) {
		sumOfMin += c.xs[i].Min()
	}
	if sumOfMin > c.u {
		return false
	}

	slack := c.u - sumOfMin
	for _, i := range c.free.Members(tr) {
		xi := c.xs[i]
		newMax := xi.Min() + slack
		if newMax < xi.Max() {
			if xi.RemoveAbove(newMax) {
				ctx.Wake(xi, c.id)
			}
			if xi.Size() == 0 {
				return false
			}
		}
	}

	if c.free.Size(tr) == 0 {
		c.SetActive(tr, false)
	}
	return true
}
