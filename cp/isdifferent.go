package cp

import "github.com/gitrdm/juls-core/trail"

// IsDifferent reifies b ⇔ (x != v) for a fixed constant v, per §4.3:
//   - v not in D(x)            => fix b := true
//   - x bound to v             => fix b := false
//   - b bound to true          => remove v from D(x)
//   - b bound to false         => assign x := v
type IsDifferent struct {
	id   ConstraintID
	x    Var
	v    int
	b    Var
	activeFlag
}

func NewIsDifferent(tr *trail.Trail, x Var, v int, b Var) *IsDifferent {
	return &IsDifferent{x: x, v: v, b: b, activeFlag: newActiveFlag(tr)}
}

func (c *IsDifferent) ID() ConstraintID            { return c.id }
func (c *IsDifferent) Variables() []Var            { return []Var{c.x, c.b} }
func (c *IsDifferent) setID(id ConstraintID)       { c.id = id }
func (c *IsDifferent) Active(tr *trail.Trail) bool { return c.activeFlag.Active(tr) }

func (c *IsDifferent) Propagate(ctx *PropCtx) bool {
	if !c.x.Contains(c.v) {
		if !c.b.Contains(1) {
			return false
		}
		if c.b.Assign(1) {
			ctx.Wake(c.b, c.id)
		}
		c.SetActive(ctx.tr, false)
		return c.b.Size() > 0
	}
	if c.x.IsBound() && c.x.SingletonValue() == c.v {
		if !c.b.Contains(0) {
			return false
		}
		if c.b.Assign(0) {
			ctx.Wake(c.b, c.id)
		}
		c.SetActive(ctx.tr, false)
		return c.b.Size() > 0
	}
	if c.b.IsBound() {
		switch c.b.SingletonValue() {
		case 1:
			if c.x.Remove(c.v) {
				ctx.Wake(c.x, c.id)
			}
			c.SetActive(ctx.tr, false)
			return c.x.Size() > 0
		case 0:
			if c.x.Assign(c.v) {
				ctx.Wake(c.x, c.id)
			}
			c.SetActive(ctx.tr, false)
			return c.x.Size() > 0
		}
	}
	return true
}
