package cp

// snapshotValues collects a Var's live domain values into a slice so callers
// can mutate the domain afterward; domain.View.Each forbids mutation during
// iteration (see domain.IntDomain.Each), so every propagator that both scans
// and shrinks the same variable goes through this helper first.
func snapshotValues(v Var) []int {
	vals := make([]int, 0, v.Size())
	v.Each(func(x int) { vals = append(vals, x) })
	return vals
}

// membership is a predicate over int values, used by the set/count family
// (Among, AmongUp, AtMost) to express "value is in S" without requiring a
// concrete set representation; AtMost's S = {v} is just func(x) bool { return
// x == v }.
type membership func(v int) bool

// subsetOf reports whether every live value of x satisfies in.
func subsetOf(x Var, in membership) bool {
	subset := true
	x.Each(func(v int) {
		if !in(v) {
			subset = false
		}
	})
	return subset
}

// disjointFrom reports whether no live value of x satisfies in.
func disjointFrom(x Var, in membership) bool {
	disjoint := true
	x.Each(func(v int) {
		if in(v) {
			disjoint = false
		}
	})
	return disjoint
}

// restrictToSet removes every live value of x not satisfying in. Returns
// false if x becomes empty.
func restrictToSet(x Var, in membership) bool {
	for _, v := range snapshotValues(x) {
		if !in(v) {
			x.Remove(v)
		}
	}
	return x.Size() > 0
}

// excludeSet removes every live value of x satisfying in. Returns false if x
// becomes empty.
func excludeSet(x Var, in membership) bool {
	for _, v := range snapshotValues(x) {
		if in(v) {
			x.Remove(v)
		}
	}
	return x.Size() > 0
}
