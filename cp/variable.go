// Package cp implements the trailed constraint-propagation core: integer and
// boolean CP variables over domain.View, the ten propagators in §4.3 of the
// spec, a worklist fix-point engine, and the Model that ties them to a
// trail.Trail for init-time propagation and move-enumeration search.
//
// The shape mirrors gitrdm-gokando's fd.go FDStore/FDVariable split (a store
// owning an arena of variables plus a trail, variables carrying a domain and
// a list of watching constraints) but the domain representation underneath
// is the sparse-set from package domain rather than FDStore's bitset, per
// the spec's §4.2 contract.
package cp

import "github.com/gitrdm/juls-core/domain"

// VarID identifies a CP variable (or view) within a Model's arena.
type VarID int

// ConstraintID identifies a posted constraint within a Model.
type ConstraintID int

// Var is the common surface constraints program against: a domain.View plus
// identity and watcher-list bookkeeping. IntVar owns storage; view variables
// (offset/scale/opposite) carry their own VarID but forward domain ops and
// watcher bookkeeping to their base, since propagation always keys off the
// owning variable's watcher list.
type Var interface {
	domain.View
	ID() VarID
	IsBound() bool
	addWatcher(c ConstraintID)
	watchers() []ConstraintID
}

// IntVar is a CP variable that owns its domain storage.
type IntVar struct {
	id  VarID
	dom *domain.IntDomain
	wl  []ConstraintID
}

func (v *IntVar) ID() VarID                 { return v.id }
func (v *IntVar) Size() int                 { return v.dom.Size() }
func (v *IntVar) Min() int                  { return v.dom.Min() }
func (v *IntVar) Max() int                  { return v.dom.Max() }
func (v *IntVar) Contains(x int) bool       { return v.dom.Contains(x) }
func (v *IntVar) Remove(x int) bool         { return v.dom.Remove(x) }
func (v *IntVar) RemoveBelow(k int) bool    { return v.dom.RemoveBelow(k) }
func (v *IntVar) RemoveAbove(k int) bool    { return v.dom.RemoveAbove(k) }
func (v *IntVar) Assign(x int) bool         { return v.dom.Assign(x) }
func (v *IntVar) IsSingleton() bool         { return v.dom.IsSingleton() }
func (v *IntVar) SingletonValue() int       { return v.dom.SingletonValue() }
func (v *IntVar) IsBound() bool             { return v.dom.IsSingleton() }
func (v *IntVar) Each(f func(int))          { v.dom.Each(f) }
func (v *IntVar) addWatcher(c ConstraintID) { v.wl = append(v.wl, c) }
func (v *IntVar) watchers() []ConstraintID  { return v.wl }

var _ Var = (*IntVar)(nil)

// viewVar wraps a domain.View transform (offset/scale/opposite) over a base
// Var. It owns no domain storage of its own and has its own VarID: domain
// ops delegate to the wrapped domain.View and watcher bookkeeping delegates
// to base, so posting
// a constraint over a view registers the watcher on the variable that
// actually owns the mutable domain.
type viewVar struct {
	id   VarID
	base Var
	v    domain.View
}

func (v *viewVar) ID() VarID                 { return v.id }
func (v *viewVar) Size() int                 { return v.v.Size() }
func (v *viewVar) Min() int                  { return v.v.Min() }
func (v *viewVar) Max() int                  { return v.v.Max() }
func (v *viewVar) Contains(x int) bool       { return v.v.Contains(x) }
func (v *viewVar) Remove(x int) bool         { return v.v.Remove(x) }
func (v *viewVar) RemoveBelow(k int) bool    { return v.v.RemoveBelow(k) }
func (v *viewVar) RemoveAbove(k int) bool    { return v.v.RemoveAbove(k) }
func (v *viewVar) Assign(x int) bool         { return v.v.Assign(x) }
func (v *viewVar) IsSingleton() bool         { return v.v.IsSingleton() }
func (v *viewVar) SingletonValue() int       { return v.v.SingletonValue() }
func (v *viewVar) IsBound() bool             { return v.v.IsSingleton() }
func (v *viewVar) Each(f func(int))          { v.v.Each(f) }
func (v *viewVar) addWatcher(c ConstraintID) { v.base.addWatcher(c) }
func (v *viewVar) watchers() []ConstraintID  { return v.base.watchers() }

var _ Var = (*viewVar)(nil)
