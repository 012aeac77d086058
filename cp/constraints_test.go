package cp

import "testing"

func TestEqualIntersectsDomains(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(1, 5)
	y := m.NewIntVar(3, 8)
	m.Post(NewEqual(m.Trail(), x, y))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if x.Min() != 3 || x.Max() != 5 {
		t.Fatalf("expected x narrowed to [3,5], got [%d,%d]", x.Min(), x.Max())
	}
	if y.Min() != 3 || y.Max() != 5 {
		t.Fatalf("expected y narrowed to [3,5], got [%d,%d]", y.Min(), y.Max())
	}
}

func TestNotEqualRemovesBoundValue(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(1, 1)
	y := m.NewIntVar(1, 3)
	m.Post(NewNotEqual(m.Trail(), x, y))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if y.Contains(1) {
		t.Fatal("expected 1 removed from y's domain")
	}
}

func TestOrFixesFalseWhenAllInputsFalse(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	out := m.NewBoolVar()
	m.Post(NewOr(m.Trail(), []Var{a, b}, out))
	a.Assign(0)
	b.Assign(0)
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if !out.IsBound() || out.SingletonValue() != 0 {
		t.Fatal("expected out fixed to false")
	}
}

func TestOrFixesTrueWhenOneInputTrue(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	out := m.NewBoolVar()
	m.Post(NewOr(m.Trail(), []Var{a, b}, out))
	a.Assign(1)
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if !out.IsBound() || out.SingletonValue() != 1 {
		t.Fatal("expected out fixed to true")
	}
}

func TestOrDetectsInfeasibleWhenForcedTrueButBFixedFalse(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	out := m.NewBoolVar()
	m.Post(NewOr(m.Trail(), []Var{a, b}, out))
	out.Assign(0)
	a.Assign(1)
	if err := m.Init(); err == nil {
		t.Fatal("expected infeasible: out is fixed false but a forces it true")
	}
}

func TestOrDetectsInfeasibleWhenForcedFalseButBFixedTrue(t *testing.T) {
	m := NewModel()
	a := m.NewBoolVar()
	b := m.NewBoolVar()
	out := m.NewBoolVar()
	m.Post(NewOr(m.Trail(), []Var{a, b}, out))
	out.Assign(1)
	a.Assign(0)
	b.Assign(0)
	if err := m.Init(); err == nil {
		t.Fatal("expected infeasible: out is fixed true but all inputs forced false")
	}
}

func TestIsDifferentReifiesAgainstConstant(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(1, 1)
	b := m.NewBoolVar()
	m.Post(NewIsDifferent(m.Trail(), x, 1, b))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if !b.IsBound() || b.SingletonValue() != 0 {
		t.Fatal("expected b fixed to false since x is bound to the constant")
	}
}

func TestSumLessThanPrunesUpperBound(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(0, 10)
	y := m.NewIntVar(0, 10)
	m.Post(NewSumLessThan(m.Trail(), []Var{x, y}, 10))
	x.Assign(7)
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if y.Max() != 3 {
		t.Fatalf("expected y pruned to max 3, got %d", y.Max())
	}
}

func TestSumLessThanInfeasibleWhenFixedSumExceedsBound(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(5, 5)
	y := m.NewIntVar(5, 5)
	m.Post(NewSumLessThan(m.Trail(), []Var{x, y}, 9))
	if err := m.Init(); err == nil {
		t.Fatal("expected infeasible: 5+5 > 9")
	}
}

func TestAmongCountsSetMembership(t *testing.T) {
	m := NewModel()
	xs := []Var{m.NewIntVar(1, 3), m.NewIntVar(1, 3), m.NewIntVar(1, 3)}
	inSet := func(v int) bool { return v == 1 }
	y := m.NewIntVar(0, 3)
	for _, x := range xs {
		x.Assign(1)
	}
	m.Post(NewAmong(m.Trail(), xs, inSet, y))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if !y.IsBound() || y.SingletonValue() != 3 {
		t.Fatalf("expected y fixed to 3, got size=%d", y.Size())
	}
}

func TestAmongUpExcludesSetOnceCapReached(t *testing.T) {
	m := NewModel()
	xs := []Var{m.NewIntVar(1, 3), m.NewIntVar(1, 3), m.NewIntVar(1, 3)}
	inSet := func(v int) bool { return v == 1 }
	xs[0].Assign(1)
	m.Post(NewAmongUp(m.Trail(), xs, inSet, 1))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if xs[1].Contains(1) || xs[2].Contains(1) {
		t.Fatal("expected value 1 excluded from the remaining ambiguous variables")
	}
}

func TestAtMostExcludesValueOnceCapReached(t *testing.T) {
	m := NewModel()
	xs := []Var{m.NewIntVar(1, 3), m.NewIntVar(1, 3)}
	xs[0].Assign(2)
	m.Post(NewAtMost(m.Trail(), xs, 2, 1))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if xs[1].Contains(2) {
		t.Fatal("expected value 2 excluded from xs[1]")
	}
}

func TestElementBCPrunesIndexAndResult(t *testing.T) {
	m := NewModel()
	vec := []int{10, 20, 30}
	x := m.NewIntVar(0, 2)
	y := m.NewIntVar(25, 35)
	m.Post(NewElementBC(m.Trail(), vec, x, y))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if x.Contains(0) || x.Contains(1) {
		t.Fatal("expected indices whose vec value falls outside [25,35] removed")
	}
	if !x.IsBound() || x.SingletonValue() != 2 {
		t.Fatal("expected x fixed to the only remaining index")
	}
}

func TestElementDCIsFullyConsistent(t *testing.T) {
	m := NewModel()
	vec := []int{1, 1, 2}
	x := m.NewIntVar(0, 2)
	y := m.NewIntVar(1, 2)
	y.Remove(1)
	m.Post(NewElementDC(m.Trail(), vec, x, y))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if x.Contains(0) || x.Contains(1) {
		t.Fatal("expected indices 0 and 1 (vec value 1, excluded from y) removed")
	}
	if !x.IsBound() || x.SingletonValue() != 2 {
		t.Fatal("expected x fixed to 2")
	}
}
