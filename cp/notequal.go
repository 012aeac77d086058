package cp

import "github.com/gitrdm/juls-core/trail"

// NotEqual enforces x != y: once either side is bound, its value is removed
// from the other's domain. Entailed as soon as either variable is bound
// (after that one shrink, the constraint can never act again: the bound
// side never changes, and the other side has already had its value
// removed).
type NotEqual struct {
	id   ConstraintID
	x, y Var
	activeFlag
}

func NewNotEqual(tr *trail.Trail, x, y Var) *NotEqual {
	return &NotEqual{x: x, y: y, activeFlag: newActiveFlag(tr)}
}

func (c *NotEqual) ID() ConstraintID            { return c.id }
func (c *NotEqual) Variables() []Var            { return []Var{c.x, c.y} }
func (c *NotEqual) setID(id ConstraintID)       { c.id = id }
func (c *NotEqual) Active(tr *trail.Trail) bool { return c.activeFlag.Active(tr) }

func (c *NotEqual) Propagate(ctx *PropCtx) bool {
	if c.x.IsBound() {
		if c.y.Remove(c.x.SingletonValue()) {
			ctx.Wake(c.y, c.id)
		}
		if c.y.Size() == 0 {
			return false
		}
		c.SetActive(ctx.tr, false)
		return true
	}
	if c.y.IsBound() {
		if c.x.Remove(c.y.SingletonValue()) {
			ctx.Wake(c.x, c.id)
		}
		if c.x.Size() == 0 {
			return false
		}
		c.SetActive(ctx.tr, false)
		return true
	}
	return true
}
