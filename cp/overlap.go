package cp

import "github.com/gitrdm/juls-core/trail"

// overlapSet is a trailed sparse set of candidate indices, the same
// swap-to-remove-plus-trailed-size trick domain.IntDomain uses (§4.2 notes:
// "trail as arena of cells"). Among, AmongUp, AtMost and Or all need exactly
// this shape: a shrinking pool of "still undecided" input positions.
//
// Only size is trailed; idx/pos are mutated in place. That is sound because
// the set's content, not the order of idx[0:size], is the observable state:
// a trail Restore only ever needs size to revert to its earlier value for
// the first `size` slots to again be exactly the right set of members (the
// same argument domain.IntDomain.Remove relies on).
type overlapSet struct {
	idx  []int
	pos  []int
	size trail.CellID
}

func newOverlapSet(tr *trail.Trail, n int) *overlapSet {
	idx := make([]int, n)
	pos := make([]int, n)
	for i := range idx {
		idx[i] = i
		pos[i] = i
	}
	return &overlapSet{idx: idx, pos: pos, size: tr.NewCell(n)}
}

func (o *overlapSet) Size(tr *trail.Trail) int { return tr.Get(o.size) }

// Each visits every member. f must not mutate the set; collect first with
// Members if removal is needed mid-scan.
func (o *overlapSet) Each(tr *trail.Trail, f func(i int)) {
	n := o.Size(tr)
	for k := 0; k < n; k++ {
		f(o.idx[k])
	}
}

// Members returns a snapshot slice of the current members.
func (o *overlapSet) Members(tr *trail.Trail) []int {
	n := o.Size(tr)
	out := make([]int, n)
	copy(out, o.idx[:n])
	return out
}

// Remove drops i from the set if present. No-op if i was already removed.
func (o *overlapSet) Remove(tr *trail.Trail, i int) {
	size := o.Size(tr)
	p := o.pos[i]
	if p >= size {
		return
	}
	last := size - 1
	lv := o.idx[last]
	o.idx[p], o.idx[last] = o.idx[last], o.idx[p]
	o.pos[i] = last
	o.pos[lv] = p
	tr.Set(o.size, last)
}
