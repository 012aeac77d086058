package cp

import "github.com/gitrdm/juls-core/trail"

// Or reifies b ⇔ ⋁ xs, over boolean variables, per §4.3. It keeps a trailed
// overlapSet of input positions not yet resolved one way or the other:
//
//   - any xi = true  => fix b := true, deactivate (a witness was found)
//   - all xi = false => fix b := false
//   - b = false      => fix every xi := false
//   - b = true and exactly one unresolved xi remains, the rest all false
//     => fix that xi := true
type Or struct {
	id  ConstraintID
	xs  []Var
	b   Var
	pos *overlapSet
	activeFlag
}

func NewOr(tr *trail.Trail, xs []Var, b Var) *Or {
	return &Or{xs: xs, b: b, pos: newOverlapSet(tr, len(xs)), activeFlag: newActiveFlag(tr)}
}

func (c *Or) ID() ConstraintID { return c.id }
func (c *Or) Variables() []Var {
	vs := make([]Var, 0, len(c.xs)+1)
	vs = append(vs, c.xs...)
	vs = append(vs, c.b)
	return vs
}
func (c *Or) setID(id ConstraintID)       { c.id = id }
func (c *Or) Active(tr *trail.Trail) bool { return c.activeFlag.Active(tr) }

func (c *Or) Propagate(ctx *PropCtx) bool {
	tr := ctx.tr
	for _, i := range c.pos.Members(tr) {
		xi := c.xs[i]
		if !xi.IsBound() {
			continue
		}
		if xi.SingletonValue() == 1 {
			if !c.b.Contains(1) {
				return false
			}
			if c.b.Assign(1) {
				ctx.Wake(c.b, c.id)
			}
			c.SetActive(tr, false)
			return true
		}
		c.pos.Remove(tr, i)
	}

	if c.pos.Size(tr) == 0 {
		if !c.b.Contains(0) {
			return false
		}
		if c.b.Assign(0) {
			ctx.Wake(c.b, c.id)
		}
		c.SetActive(tr, false)
		return true
	}

	if c.b.IsBound() && c.b.SingletonValue() == 0 {
		for _, i := range c.pos.Members(tr) {
			if !c.xs[i].Contains(0) {
				return false
			}
			if c.xs[i].Assign(0) {
				ctx.Wake(c.xs[i], c.id)
			}
			if c.xs[i].Size() == 0 {
				return false
			}
			c.pos.Remove(tr, i)
		}
		c.SetActive(tr, false)
		return true
	}

	if c.b.IsBound() && c.b.SingletonValue() == 1 && c.pos.Size(tr) == 1 {
		only := c.pos.Members(tr)[0]
		if !c.xs[only].Contains(1) {
			return false
		}
		if c.xs[only].Assign(1) {
			ctx.Wake(c.xs[only], c.id)
		}
		c.SetActive(tr, false)
		return true
	}

	return true
}
