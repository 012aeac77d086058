package cp

import "github.com/gitrdm/juls-core/trail"

// Equal enforces D(x) := D(x) ∩ D(y) and symmetrically, per §4.3. It is
// entailed once both domains are singletons and they agree (or, trivially,
// once both have size <= 1 and still intersect).
type Equal struct {
	id   ConstraintID
	x, y Var
	activeFlag
}

// NewEqual builds an Equal(x, y) propagator. Call Model.Post to register it.
func NewEqual(tr *trail.Trail, x, y Var) *Equal {
	return &Equal{x: x, y: y, activeFlag: newActiveFlag(tr)}
}

func (c *Equal) ID() ConstraintID        { return c.id }
func (c *Equal) Variables() []Var        { return []Var{c.x, c.y} }
func (c *Equal) setID(id ConstraintID)   { c.id = id }
func (c *Equal) Active(tr *trail.Trail) bool {
	return c.activeFlag.Active(tr)
}

func (c *Equal) Propagate(ctx *PropCtx) bool {
	shrunkX := false
	for _, v := range snapshotValues(c.x) {
		if !c.y.Contains(v) {
			c.x.Remove(v)
			shrunkX = true
		}
	}
	if c.x.Size() == 0 {
		return false
	}
	shrunkY := false
	for _, v := range snapshotValues(c.y) {
		if !c.x.Contains(v) {
			c.y.Remove(v)
			shrunkY = true
		}
	}
	if c.y.Size() == 0 {
		return false
	}
	if shrunkX {
		ctx.Wake(c.x, c.id)
	}
	if shrunkY {
		ctx.Wake(c.y, c.id)
	}
	if c.x.IsSingleton() && c.y.IsSingleton() {
		c.SetActive(ctx.tr, false)
	}
	return true
}
