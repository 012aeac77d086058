// Package cpbuilder translates a built dag.DAG into a cp.Model, per the
// DAG->CP node-by-node translation table (§4.7). It walks the DAG's
// topological ranks once, type-switching each CP-eligible invariant into
// the CP variable or constraint it corresponds to, and leaves every other
// node untranslated (the table's implicit "NoMessage" row) — those nodes
// still run during ordinary DAG evaluation, they simply have no role in the
// move-enumeration filter this package builds.
//
// The teacher has no direct analogue of a DAG-to-solver compiler; this
// package is grounded on the shape of fd.go's own model-construction
// sequence (allocate variables, then post constraints, then Init to a
// fix-point) applied one rank at a time instead of all at once by hand.
package cpbuilder

import (
	"fmt"
	"math"

	"github.com/gitrdm/juls-core/cp"
	"github.com/gitrdm/juls-core/dag"
	"github.com/gitrdm/juls-core/invariant"
)

// VarSpec gives the external domain bounds for one decision variable. The
// DAG itself only carries the variable's move-enumeration domain (a
// []DecisionValue slice, §3), not the contiguous integer bounds a CP
// IntDomain needs, so the builder's caller supplies them directly.
type VarSpec struct {
	Lo, Hi int
	IsBool bool
}

// Result is what Build hands back: the populated CP model plus the mapping
// from DAG rank to the CP variable that rank produced, for a caller that
// wants to read off assignments or post further hand-built constraints over
// the same variables.
type Result struct {
	Model   *cp.Model
	RankVar map[int]cp.Var
}

// outTagger is implemented by every invariant that tags its own
// VarMessage/VarMoveDelta output with a stable index, the same mechanism
// support.go's varValue/varMoveValue scan for (§4.6 "named parent"
// addressing). The builder uses it to resolve a RelationalInvariant's
// xIdx/yIdx — which may name a real decision variable or a synthetic
// invariant output — back to the DAG rank that produced it.
type outTagger interface {
	Out() int
}

// Build walks d in topological (post-Init rank) order and translates every
// node the table (§4.7) names into model. Nodes with UsingCP false, or
// whose concrete type the table does not cover, are left untranslated.
//
// Translated so far:
//   - sentinel            -> a plain CP variable (IntVar or BoolVar per spec)
//   - ScaleInvariant(a)    -> a MulView over its parent's CP variable
//   - ElementInvariant     -> ElementBC over a free index parent, or a
//     singleton IntVar when the index parent produced no CP variable
//     (it is "bound": fixed for the CP model's purposes)
//   - OrInvariant          -> a fresh BoolVar plus a posted Or constraint
//   - RelationalInvariant{!=} -> a posted NotEqual constraint
//   - standalone ComparatorInvariant -> a posted SumLessThan constraint
//     over its own parents
//   - Composite(AmongInvariant, ComparatorInvariant) -> a posted AmongUp
//     constraint, only when len(parents) > C (otherwise the count can never
//     exceed C and the constraint is vacuous, per the table)
//
// Build calls model.Init() before returning, running every posted
// constraint to its first fix-point.
func Build(d *dag.DAG, specs []VarSpec) (*Result, error) {
	if len(specs) != d.NumVars() {
		return nil, fmt.Errorf("cpbuilder: got %d var specs for %d decision variables", len(specs), d.NumVars())
	}

	model := cp.NewModel()
	rankVar := make(map[int]cp.Var, d.NumNodes())
	outIndexToRank := make(map[int]int, d.NumNodes())

	for i, spec := range specs {
		var v cp.Var
		if spec.IsBool {
			v = model.NewBoolVar()
		} else {
			v = model.NewIntVar(spec.Lo, spec.Hi)
		}
		rank := d.VarSentinelRank(i)
		rankVar[rank] = v
		outIndexToRank[i] = rank
	}

	for rank := d.NumVars(); rank < d.NumNodes(); rank++ {
		inv := d.Invariant(rank)
		if ot, ok := inv.(outTagger); ok {
			outIndexToRank[ot.Out()] = rank
		}
		if !d.UsingCP(rank) {
			continue
		}
		parents := d.ParentRanks(rank)

		switch node := inv.(type) {
		case *invariant.ScaleInvariant:
			if len(parents) != 1 {
				return nil, fmt.Errorf("cpbuilder: rank %d (%s): ScaleInvariant needs exactly one parent, got %d", rank, d.Name(rank), len(parents))
			}
			parentVar, ok := rankVar[parents[0]]
			if !ok {
				return nil, fmt.Errorf("cpbuilder: rank %d (%s): ScaleInvariant's parent produced no CP variable", rank, d.Name(rank))
			}
			rankVar[rank] = model.NewMulView(parentVar, int(math.Floor(node.Alpha())))

		case *invariant.ElementInvariant:
			if len(parents) != 1 {
				return nil, fmt.Errorf("cpbuilder: rank %d (%s): ElementInvariant needs exactly one parent, got %d", rank, d.Name(rank), len(parents))
			}
			elems := node.Elements()
			vec := make([]int, len(elems))
			for i, e := range elems {
				vec[i] = int(e.Int())
			}
			if idxVar, ok := rankVar[parents[0]]; ok {
				lo, hi := vecBounds(vec)
				y := model.NewIntVar(lo, hi)
				model.Post(cp.NewElementBC(model.Trail(), vec, idxVar, y))
				rankVar[rank] = y
			} else {
				fixed := vec[node.CurrentIndex()]
				rankVar[rank] = model.NewIntVar(fixed, fixed)
			}

		case *invariant.OrInvariant:
			xs, err := lookupParents(rankVar, parents, rank, d, "OrInvariant")
			if err != nil {
				return nil, err
			}
			b := model.NewBoolVar()
			model.Post(cp.NewOr(model.Trail(), xs, b))
			rankVar[rank] = b

		case *invariant.RelationalInvariant:
			if node.Op() != invariant.OpNotEqual {
				continue
			}
			xRank, ok := outIndexToRank[node.XIndex()]
			if !ok {
				return nil, fmt.Errorf("cpbuilder: rank %d (%s): x parent (index %d) never produced a DAG node", rank, d.Name(rank), node.XIndex())
			}
			yRank, ok := outIndexToRank[node.YIndex()]
			if !ok {
				return nil, fmt.Errorf("cpbuilder: rank %d (%s): y parent (index %d) never produced a DAG node", rank, d.Name(rank), node.YIndex())
			}
			x, ok := rankVar[xRank]
			if !ok {
				return nil, fmt.Errorf("cpbuilder: rank %d (%s): x parent produced no CP variable", rank, d.Name(rank))
			}
			y, ok := rankVar[yRank]
			if !ok {
				return nil, fmt.Errorf("cpbuilder: rank %d (%s): y parent produced no CP variable", rank, d.Name(rank))
			}
			model.Post(cp.NewNotEqual(model.Trail(), x, y))

		case *invariant.ComparatorInvariant:
			xs, err := lookupParents(rankVar, parents, rank, d, "ComparatorInvariant")
			if err != nil {
				return nil, err
			}
			model.Post(cp.NewSumLessThan(model.Trail(), xs, int(math.Floor(node.C()))))

		case *invariant.CompositeInvariant:
			stages := node.Stages()
			if len(stages) != 2 {
				continue
			}
			among, ok1 := stages[0].(*invariant.AmongInvariant)
			comp, ok2 := stages[1].(*invariant.ComparatorInvariant)
			if !ok1 || !ok2 {
				continue
			}
			c := int(math.Floor(comp.C()))
			if len(parents) <= c {
				// the count can never exceed C: vacuously satisfied, nothing to post.
				continue
			}
			xs, err := lookupParents(rankVar, parents, rank, d, "Composite(Among,Comparator)")
			if err != nil {
				return nil, err
			}
			inSet := among.Contains
			model.Post(cp.NewAmongUp(model.Trail(), xs, func(v int) bool {
				return inSet(dag.IntValue(int64(v)))
			}, c))

		default:
			// not named by the translation table: no CP representation.
		}
	}

	if err := model.Init(); err != nil {
		return nil, err
	}
	return &Result{Model: model, RankVar: rankVar}, nil
}

// lookupParents resolves every parent rank of a node to its CP variable,
// failing if any parent never produced one (the translation table only
// applies to a node whose parents all produced CP variables).
func lookupParents(rankVar map[int]cp.Var, parents []int, rank int, d *dag.DAG, what string) ([]cp.Var, error) {
	xs := make([]cp.Var, 0, len(parents))
	for _, p := range parents {
		v, ok := rankVar[p]
		if !ok {
			return nil, fmt.Errorf("cpbuilder: rank %d (%s): %s's parent rank %d produced no CP variable", rank, d.Name(rank), what, p)
		}
		xs = append(xs, v)
	}
	return xs, nil
}

func vecBounds(vec []int) (lo, hi int) {
	lo, hi = vec[0], vec[0]
	for _, v := range vec[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
