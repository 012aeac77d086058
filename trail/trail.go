// Package trail provides a reversible state store for constraint propagation
// and backtracking search: a flat array of trailed cells plus a stack of
// checkpoint frames. Writes made after a checkpoint are logged; restoring
// the checkpoint rewrites every logged cell back to its prior value.
//
// The design mirrors the undo log gitrdm-gokando's fd.go keeps for
// FDStore.trail (append an (id, old-value) pair before every mutation, pop
// back to a saved length to undo), generalized with a per-cell write-stamp
// so at most one prior value is recorded per cell per frame, as required by
// callers that mutate the same cell many times inside one propagation pass.
package trail

// CellID identifies a single trailed memory cell owned by a Trail.
type CellID int

type entry struct {
	cell CellID
	old  int
}

// Trail is a single-threaded reversible store of integer-valued cells.
// All mutation is funneled through Set; Checkpoint/Restore bracket a region
// of writes that can be undone in O(k) where k is the number of distinct
// (cell, frame) writes recorded in that region.
type Trail struct {
	values  []int
	stamp   []int // stamp[cell] == generation of the frame that last logged it
	log     []entry
	frames  []int // log index marking the start of each open frame
	gens    []int // generation id of each open frame, parallel to frames
	nextGen int    // monotonic counter; never reused, unlike frame depth
}

// New returns an empty Trail with no cells and no open frames.
func New() *Trail {
	return &Trail{}
}

// NewCell allocates a new trailed cell with the given initial value and
// returns its handle. Cells are never freed individually; a Trail is
// destroyed as a whole with its owning model.
func (t *Trail) NewCell(initial int) CellID {
	id := CellID(len(t.values))
	t.values = append(t.values, initial)
	t.stamp = append(t.stamp, -1)
	return id
}

// Get reads the committed value of a cell.
func (t *Trail) Get(c CellID) int {
	return t.values[c]
}

// Set writes v to cell c. If a checkpoint is open and c has not yet been
// written since that checkpoint, the prior value is recorded in the current
// frame so Restore can undo this write; subsequent writes to the same cell
// within the same frame do not add further log entries (only the value as
// of the checkpoint must be recoverable).
//
// Cells are stamped with the frame's generation id, not its stack depth:
// depth is reused across sibling Checkpoint/Restore pairs (the same depth
// reopens once a frame is popped), so comparing against depth would make a
// cell already stamped by an earlier, now-restored frame at the same depth
// look "already logged this frame" and silently skip recording its prior
// value. The generation counter only ever increases, so no two frames
// (nested or sibling) ever compare equal.
func (t *Trail) Set(c CellID, v int) {
	if t.values[c] == v {
		return
	}
	if depth := len(t.frames); depth > 0 {
		gen := t.gens[depth-1]
		if t.stamp[c] != gen {
			t.log = append(t.log, entry{cell: c, old: t.values[c]})
			t.stamp[c] = gen
		}
	}
	t.values[c] = v
}

// Depth returns the number of currently open frames.
func (t *Trail) Depth() int {
	return len(t.frames)
}

// Checkpoint pushes a new frame and returns its depth (1-based), which a
// caller may use purely for diagnostics; Restore always pops the most
// recently pushed frame.
func (t *Trail) Checkpoint() int {
	t.frames = append(t.frames, len(t.log))
	t.gens = append(t.gens, t.nextGen)
	t.nextGen++
	return len(t.frames)
}

// Restore pops the top frame and rewrites every cell it recorded to its
// value as of the matching Checkpoint, in LIFO order. Restoring an empty
// stack is a programmer error and panics, matching the trail's contract
// that checkpoint/restore calls are balanced by the caller.
func (t *Trail) Restore() {
	if len(t.frames) == 0 {
		panic("trail: restore called with no open checkpoint")
	}
	start := t.frames[len(t.frames)-1]
	for i := len(t.log) - 1; i >= start; i-- {
		e := t.log[i]
		t.values[e.cell] = e.old
	}
	t.log = t.log[:start]
	t.frames = t.frames[:len(t.frames)-1]
	t.gens = t.gens[:len(t.gens)-1]
}
