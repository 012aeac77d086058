package cp

import "github.com/gitrdm/juls-core/trail"

// ElementDC enforces y = vec[x] with full domain consistency, per §4.3: for
// each i in D(x), vec[i] must be in D(y), else i is removed from D(x); for
// each v in D(y), some i in D(x) must have vec[i] == v, else v is removed
// from D(y).
type ElementDC struct {
	id   ConstraintID
	vec  []int
	x, y Var
	activeFlag
}

func NewElementDC(tr *trail.Trail, vec []int, x, y Var) *ElementDC {
	return &ElementDC{vec: vec, x: x, y: y, activeFlag: newActiveFlag(tr)}
}

func (c *ElementDC) ID() ConstraintID            { return c.id }
func (c *ElementDC) Variables() []Var            { return []Var{c.x, c.y} }
func (c *ElementDC) setID(id ConstraintID)       { c.id = id }
func (c *ElementDC) Active(tr *trail.Trail) bool { return c.activeFlag.Active(tr) }

func (c *ElementDC) Propagate(ctx *PropCtx) bool {
	shrunkX := false
	for _, i := range snapshotValues(c.x) {
		if i < 0 || i >= len(c.vec) || !c.y.Contains(c.vec[i]) {
			c.x.Remove(i)
			shrunkX = true
		}
	}
	if c.x.Size() == 0 {
		return false
	}

	shrunkY := false
	for _, v := range snapshotValues(c.y) {
		supported := false
		for _, i := range snapshotValues(c.x) {
			if c.vec[i] == v {
				supported = true
				break
			}
		}
		if !supported {
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
	if c.x.IsBound() {
		c.SetActive(ctx.tr, false)
	}
	return true
}

// ElementBC enforces y = vec[x] with bound consistency only: it prunes x by
// removing indices whose vec value falls outside [min D(y), max D(y)], and
// prunes D(y)'s bounds to the range of vec values still reachable through
// D(x). This is the weaker, cheaper cousin of ElementDC used when the
// translator does not need full consistency (§4.3, §4.7).
type ElementBC struct {
	id   ConstraintID
	vec  []int
	x, y Var
	activeFlag
}

func NewElementBC(tr *trail.Trail, vec []int, x, y Var) *ElementBC {
	return &ElementBC{vec: vec, x: x, y: y, activeFlag: newActiveFlag(tr)}
}

func (c *ElementBC) ID() ConstraintID            { return c.id }
func (c *ElementBC) Variables() []Var            { return []Var{c.x, c.y} }
func (c *ElementBC) setID(id ConstraintID)       { c.id = id }
func (c *ElementBC) Active(tr *trail.Trail) bool { return c.activeFlag.Active(tr) }

func (c *ElementBC) Propagate(ctx *PropCtx) bool {
	loY, hiY := c.y.Min(), c.y.Max()
	shrunkX := false
	for _, i := range snapshotValues(c.x) {
		if i < 0 || i >= len(c.vec) || c.vec[i] < loY || c.vec[i] > hiY {
			c.x.Remove(i)
			shrunkX = true
		}
	}
	if c.x.Size() == 0 {
		return false
	}

	minReach, maxReach := 1<<62, -(1 << 62)
	for _, i := range snapshotValues(c.x) {
		if c.vec[i] < minReach {
			minReach = c.vec[i]
		}
		if c.vec[i] > maxReach {
			maxReach = c.vec[i]
		}
	}
	shrunkY := false
	if c.y.RemoveBelow(minReach) {
		shrunkY = true
	}
	if c.y.RemoveAbove(maxReach) {
		shrunkY = true
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
	if c.x.IsBound() {
		c.SetActive(ctx.tr, false)
	}
	return true
}
