package domain

// View is the common read/mutate surface shared by IntDomain and the
// transformed views below. CP constraints are written against View so they
// apply identically whether a variable's domain is stored directly or
// exposed through an offset/scale/opposite transform, matching the spec's
// "views expose a transformed logical domain without storage; all ops
// delegate to the underlying domain" contract (§3, §4.2 notes).
type View interface {
	Size() int
	Min() int
	Max() int
	Contains(v int) bool
	Remove(v int) bool
	RemoveBelow(k int) bool
	RemoveAbove(k int) bool
	Assign(v int) bool
	Each(f func(v int))
	IsSingleton() bool
	SingletonValue() int
}

// compile-time assertion that IntDomain satisfies View.
var _ View = (*IntDomain)(nil)

// OffsetView exposes {v + c : v ∈ D(base)} without owning storage.
type OffsetView struct {
	base View
	c    int
}

// NewOffsetView wraps base, exposing base's domain shifted by c.
func NewOffsetView(base View, c int) *OffsetView {
	return &OffsetView{base: base, c: c}
}

func (v *OffsetView) Size() int              { return v.base.Size() }
func (v *OffsetView) Min() int               { return v.base.Min() + v.c }
func (v *OffsetView) Max() int               { return v.base.Max() + v.c }
func (v *OffsetView) Contains(x int) bool    { return v.base.Contains(x - v.c) }
func (v *OffsetView) Remove(x int) bool      { return v.base.Remove(x - v.c) }
func (v *OffsetView) RemoveBelow(k int) bool { return v.base.RemoveBelow(k - v.c) }
func (v *OffsetView) RemoveAbove(k int) bool { return v.base.RemoveAbove(k - v.c) }
func (v *OffsetView) Assign(x int) bool      { return v.base.Assign(x - v.c) }
func (v *OffsetView) IsSingleton() bool      { return v.base.IsSingleton() }
func (v *OffsetView) SingletonValue() int    { return v.base.SingletonValue() + v.c }
func (v *OffsetView) Each(f func(int)) {
	c := v.c
	v.base.Each(func(bv int) { f(bv + c) })
}

var _ View = (*OffsetView)(nil)

// MulView exposes {v * c : v ∈ D(base)} for a positive constant c, without
// owning storage. Values not divisible by c are simply absent.
type MulView struct {
	base View
	c    int
}

// NewMulView wraps base, exposing base's domain scaled by c. c must be > 0.
func NewMulView(base View, c int) *MulView {
	if c <= 0 {
		panic("domain: MulView requires a positive scale")
	}
	return &MulView{base: base, c: c}
}

func ceilDiv(a, b int) int {
	if a >= 0 {
		return (a + b - 1) / b
	}
	return -((-a) / b)
}

func floorDiv(a, b int) int {
	if a >= 0 {
		return a / b
	}
	return -ceilDiv(-a, b)
}

func (v *MulView) Size() int { return v.base.Size() }
func (v *MulView) Min() int  { return v.base.Min() * v.c }
func (v *MulView) Max() int  { return v.base.Max() * v.c }
func (v *MulView) Contains(x int) bool {
	if x%v.c != 0 {
		return false
	}
	return v.base.Contains(x / v.c)
}
func (v *MulView) Remove(x int) bool {
	if x%v.c != 0 {
		return false
	}
	return v.base.Remove(x / v.c)
}
func (v *MulView) RemoveBelow(k int) bool { return v.base.RemoveBelow(ceilDiv(k, v.c)) }
func (v *MulView) RemoveAbove(k int) bool { return v.base.RemoveAbove(floorDiv(k, v.c)) }
func (v *MulView) Assign(x int) bool {
	if x%v.c != 0 {
		return false
	}
	return v.base.Assign(x / v.c)
}
func (v *MulView) IsSingleton() bool   { return v.base.IsSingleton() }
func (v *MulView) SingletonValue() int { return v.base.SingletonValue() * v.c }
func (v *MulView) Each(f func(int)) {
	c := v.c
	v.base.Each(func(bv int) { f(bv * c) })
}

var _ View = (*MulView)(nil)

// OppositeView exposes {-v : v ∈ D(base)} without owning storage.
type OppositeView struct {
	base View
}

// NewOppositeView wraps base, exposing its domain negated.
func NewOppositeView(base View) *OppositeView {
	return &OppositeView{base: base}
}

func (v *OppositeView) Size() int              { return v.base.Size() }
func (v *OppositeView) Min() int               { return -v.base.Max() }
func (v *OppositeView) Max() int               { return -v.base.Min() }
func (v *OppositeView) Contains(x int) bool    { return v.base.Contains(-x) }
func (v *OppositeView) Remove(x int) bool      { return v.base.Remove(-x) }
func (v *OppositeView) RemoveBelow(k int) bool { return v.base.RemoveAbove(-k) }
func (v *OppositeView) RemoveAbove(k int) bool { return v.base.RemoveBelow(-k) }
func (v *OppositeView) Assign(x int) bool      { return v.base.Assign(-x) }
func (v *OppositeView) IsSingleton() bool      { return v.base.IsSingleton() }
func (v *OppositeView) SingletonValue() int    { return -v.base.SingletonValue() }
func (v *OppositeView) Each(f func(int)) {
	v.base.Each(func(bv int) { f(-bv) })
}

var _ View = (*OppositeView)(nil)
