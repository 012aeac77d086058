package cpbuilder

import (
	"testing"

	"github.com/gitrdm/juls-core/cp"
	"github.com/gitrdm/juls-core/dag"
	"github.com/gitrdm/juls-core/invariant"
)

func TestBuildRejectsMismatchedSpecCount(t *testing.T) {
	d := dag.New(2, 1000)
	d.AddInvariant(invariant.NewSum(), nil, []int{0, 1}, "sum", false)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(0), dag.IntValue(0)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}
	if _, err := Build(d, []VarSpec{{Lo: 0, Hi: 1}}); err == nil {
		t.Fatal("expected an error: 1 spec for 2 decision variables")
	}
}

func TestBuildTranslatesScaleIntoAMulView(t *testing.T) {
	d := dag.New(1, 1000)
	d.AddInvariant(invariant.NewScale(3), nil, []int{0}, "scaled", true)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(2)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	res, err := Build(d, []VarSpec{{Lo: 0, Hi: 5}})
	if err != nil {
		t.Fatalf("unexpected Build error: %v", err)
	}

	found := false
	for _, v := range res.RankVar {
		if v.Min() == 0 && v.Max() == 15 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a CP variable bounded [0,15] (the *3 view over [0,5])")
	}
}

func TestBuildTranslatesFreeElementIntoElementBC(t *testing.T) {
	d := dag.New(1, 1000)
	elements := []dag.DecisionValue{dag.IntValue(10), dag.IntValue(20), dag.IntValue(30)}
	d.AddInvariant(invariant.NewElement(10, elements), nil, []int{0}, "elem", true)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(1)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	res, err := Build(d, []VarSpec{{Lo: 0, Hi: 2}})
	if err != nil {
		t.Fatalf("unexpected Build error: %v", err)
	}

	found := false
	for _, v := range res.RankVar {
		if v.Min() == 10 && v.Max() == 30 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a fresh CP variable bounded by the element table [10,30]")
	}
}

func TestBuildTranslatesBoundElementIntoASingleton(t *testing.T) {
	d := dag.New(1, 1000)
	andID := d.AddInvariant(invariant.NewAnd(99), nil, []int{0}, "and_gate", false)
	elements := []dag.DecisionValue{dag.IntValue(10), dag.IntValue(20), dag.IntValue(30)}
	d.AddInvariant(invariant.NewElement(7, elements), []int{andID}, nil, "elem", true)
	if err := d.Init([]dag.DecisionValue{dag.BoolValue(false)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	res, err := Build(d, []VarSpec{{IsBool: true}})
	if err != nil {
		t.Fatalf("unexpected Build error: %v", err)
	}

	found := false
	for _, v := range res.RankVar {
		if v.IsBound() && v.SingletonValue() == 10 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a singleton CP variable fixed at elements[0]=10, since AndInvariant produced no CP variable")
	}
}

func TestBuildTranslatesOrIntoABoolVarAndConstraint(t *testing.T) {
	d := dag.New(2, 1000)
	d.AddInvariant(invariant.NewOr(99), nil, []int{0, 1}, "or_gate", true)
	if err := d.Init([]dag.DecisionValue{dag.BoolValue(false), dag.BoolValue(false)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	res, err := Build(d, []VarSpec{{IsBool: true}, {IsBool: true}})
	if err != nil {
		t.Fatalf("unexpected Build error: %v", err)
	}

	if len(res.RankVar) < 3 {
		t.Fatalf("expected at least 3 CP variables (2 inputs + the Or's own output), got %d", len(res.RankVar))
	}
}

func TestBuildTranslatesNotEqualRelationalIntoAConstraint(t *testing.T) {
	d := dag.New(2, 1000)
	d.AddInvariant(invariant.NewNotEqualInvariant(0, 1), nil, []int{0, 1}, "rel", true)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(1), dag.IntValue(1)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	res, err := Build(d, []VarSpec{{Lo: 1, Hi: 1}, {Lo: 1, Hi: 3}})
	if err != nil {
		t.Fatalf("unexpected Build error: %v", err)
	}

	y := res.RankVar[d.VarSentinelRank(1)]
	if y.Contains(1) {
		t.Fatal("expected 1 excluded from y: x is fixed to 1 and the constraint is x != y")
	}
}

func TestBuildTranslatesStandaloneComparatorIntoSumLessThan(t *testing.T) {
	d := dag.New(2, 1000)
	d.AddInvariant(invariant.NewComparator(5), nil, []int{0, 1}, "capacity", true)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(0), dag.IntValue(0)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	res, err := Build(d, []VarSpec{{Lo: 0, Hi: 10}, {Lo: 0, Hi: 10}})
	if err != nil {
		t.Fatalf("unexpected Build error: %v", err)
	}

	x := res.RankVar[d.VarSentinelRank(0)]
	y := res.RankVar[d.VarSentinelRank(1)]
	rows := res.Model.Eval(map[cp.VarID]int{x.ID(): 4, y.ID(): 0}, []cp.VarID{y.ID()})
	for _, row := range rows {
		if row[0]+4 > 5 {
			t.Fatalf("infeasible row %v leaked through: x=4 fixed, sum must stay <=5", row)
		}
	}
}

func TestBuildTranslatesCompositeAmongComparatorIntoAmongUp(t *testing.T) {
	inSet := invariant.IntSet(1)
	comp := invariant.NewComposite(invariant.NewAmongInvariant(inSet), invariant.NewComparator(1))
	d := dag.New(3, 1000)
	d.AddInvariant(comp, nil, []int{0, 1, 2}, "composite", true)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(1), dag.IntValue(1), dag.IntValue(2)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	_, err := Build(d, []VarSpec{{Lo: 1, Hi: 1}, {Lo: 1, Hi: 1}, {Lo: 1, Hi: 3}})
	if err == nil {
		t.Fatal("expected ErrInfeasible: two variables fixed in S already exceed the cap of 1")
	}
}

func TestBuildLeavesVacuousCompositeUnposted(t *testing.T) {
	inSet := invariant.IntSet(1)
	comp := invariant.NewComposite(invariant.NewAmongInvariant(inSet), invariant.NewComparator(5))
	d := dag.New(3, 1000)
	d.AddInvariant(comp, nil, []int{0, 1, 2}, "composite", true)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(1), dag.IntValue(1), dag.IntValue(1)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	if _, err := Build(d, []VarSpec{{Lo: 1, Hi: 1}, {Lo: 1, Hi: 1}, {Lo: 1, Hi: 1}}); err != nil {
		t.Fatalf("expected the vacuous (len(parents) <= C) case to build without posting anything, got: %v", err)
	}
}
