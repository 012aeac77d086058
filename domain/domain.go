// Package domain implements reversible finite-domain representations for
// the constraint-propagation layer: a dense sparse-set integer domain with
// O(1) containment/removal/bound access, all mutation recorded on a
// trail.Trail, plus zero-storage views (offset, scale, opposite) over a
// domain or another view.
//
// The sparse-set layout (parallel values/indexes arrays, swap-to-remove,
// trailed size/min/max) is the classic reversible finite-domain
// representation; gitrdm-gokando's BitSetDomain (domain.go) and FDStore's
// clone-on-write BitSet (fd.go) both solve the same problem with an
// immutable bitset instead, trading O(1) mutation for O(words) copy-on-
// write. This package follows the spec's sparse-set contract (§3, §4.2)
// instead, since the engine needs true in-place reversible mutation
// against a shared trail rather than persistent structural sharing.
package domain

import "github.com/gitrdm/juls-core/trail"

// IntDomain is a trailed, dense sparse-set over a contiguous integer range
// [lo, hi]. The first Size() entries of values are the live members
// (shifted by offset); indexes[v-offset] is the position of value v within
// values. This layout gives O(1) Contains/Remove/Assign and O(1) amortized
// bound maintenance.
type IntDomain struct {
	tr      *trail.Trail
	values  []int
	indexes []int
	offset  int

	size trail.CellID
	min  trail.CellID
	max  trail.CellID
}

// New creates an IntDomain over the inclusive range [lo, hi], initially
// containing every value in that range. lo must be <= hi.
func New(tr *trail.Trail, lo, hi int) *IntDomain {
	if hi < lo {
		panic("domain: hi < lo")
	}
	n := hi - lo + 1
	values := make([]int, n)
	indexes := make([]int, n)
	for i := 0; i < n; i++ {
		values[i] = lo + i
		indexes[i] = i
	}
	return &IntDomain{
		tr:      tr,
		values:  values,
		indexes: indexes,
		offset:  lo,
		size:    tr.NewCell(n),
		min:     tr.NewCell(lo),
		max:     tr.NewCell(hi),
	}
}

// NewBool creates a BoolDomain: an IntDomain over {0,1}.
func NewBool(tr *trail.Trail) *IntDomain {
	return New(tr, 0, 1)
}

// Size returns the number of live values.
func (d *IntDomain) Size() int { return d.tr.Get(d.size) }

// Min returns the current minimum live value. Undefined if Size() == 0.
func (d *IntDomain) Min() int { return d.tr.Get(d.min) }

// Max returns the current maximum live value. Undefined if Size() == 0.
func (d *IntDomain) Max() int { return d.tr.Get(d.max) }

// IsSingleton reports whether exactly one value remains.
func (d *IntDomain) IsSingleton() bool { return d.Size() == 1 }

// SingletonValue returns the sole live value. Behavior is undefined if the
// domain is not a singleton: callers must check IsSingleton first.
func (d *IntDomain) SingletonValue() int { return d.values[0] }

func (d *IntDomain) inRange(v int) bool {
	return v >= d.offset && v < d.offset+len(d.values)
}

// Contains reports whether v is currently a live member. O(1).
func (d *IntDomain) Contains(v int) bool {
	if !d.inRange(v) {
		return false
	}
	return d.indexes[v-d.offset] < d.Size()
}

// Remove removes v from the domain if present. Returns true iff v was
// removed. O(1) plus the amortized cost of updating min/max when v was
// extremal.
func (d *IntDomain) Remove(v int) bool {
	if !d.Contains(v) {
		return false
	}
	size := d.Size()
	pos := d.indexes[v-d.offset]
	lastPos := size - 1
	lastVal := d.values[lastPos]

	d.values[pos], d.values[lastPos] = d.values[lastPos], d.values[pos]
	d.indexes[v-d.offset] = lastPos
	d.indexes[lastVal-d.offset] = pos

	newSize := lastPos
	d.tr.Set(d.size, newSize)

	if newSize == 0 {
		return true
	}
	if v == d.Min() {
		nv := v + 1
		for nv <= d.Max() && !d.Contains(nv) {
			nv++
		}
		d.tr.Set(d.min, nv)
	}
	if v == d.Max() {
		nv := v - 1
		for nv >= d.Min() && !d.Contains(nv) {
			nv--
		}
		d.tr.Set(d.max, nv)
	}
	return true
}

// Assign shrinks the domain to exactly {v}. Returns false without changing
// anything if v is not currently a member.
func (d *IntDomain) Assign(v int) bool {
	if !d.Contains(v) {
		return false
	}
	pos := d.indexes[v-d.offset]
	firstVal := d.values[0]
	d.values[0], d.values[pos] = v, firstVal
	d.indexes[v-d.offset] = 0
	d.indexes[firstVal-d.offset] = pos
	d.tr.Set(d.size, 1)
	d.tr.Set(d.min, v)
	d.tr.Set(d.max, v)
	return true
}

// RemoveBelow removes every live value strictly less than k.
func (d *IntDomain) RemoveBelow(k int) bool {
	changed := false
	for d.Size() > 0 && d.Min() < k {
		d.Remove(d.Min())
		changed = true
	}
	return changed
}

// RemoveAbove removes every live value strictly greater than k.
func (d *IntDomain) RemoveAbove(k int) bool {
	changed := false
	for d.Size() > 0 && d.Max() > k {
		d.Remove(d.Max())
		changed = true
	}
	return changed
}

// RemoveBetween removes every live value strictly between lo and hi; lo and
// hi themselves are never removed by this call.
func (d *IntDomain) RemoveBetween(lo, hi int) bool {
	changed := false
	for v := lo + 1; v < hi; v++ {
		if d.Remove(v) {
			changed = true
		}
	}
	return changed
}

// Each calls f for every live member, in unspecified order. f must not
// mutate the domain.
func (d *IntDomain) Each(f func(v int)) {
	size := d.Size()
	for i := 0; i < size; i++ {
		f(d.values[i])
	}
}
