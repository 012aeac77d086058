package cp

import "testing"

func TestModelEvalEnumeratesFeasibleCompletions(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(0, 2)
	y := m.NewIntVar(0, 2)
	m.Post(NewSumLessThan(m.Trail(), []Var{x, y}, 2))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}

	current := map[VarID]int{x.ID(): 0, y.ID(): 0}
	rows := m.Eval(current, []VarID{y.ID()})

	sawNoop := false
	for _, row := range rows {
		if row[0] == 0 {
			sawNoop = true
		}
		if row[0]+current[x.ID()] > 2 {
			t.Fatalf("infeasible row %v leaked into results (sum would exceed 2)", row)
		}
	}
	if !sawNoop {
		t.Fatal("expected the no-op (unchanged) tuple as the final result")
	}
	if rows[len(rows)-1][0] != 0 {
		t.Fatal("expected the no-op tuple to be the last entry")
	}
}

func TestModelEvalRestoresStateAfterReturning(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(0, 5)
	y := m.NewIntVar(0, 5)
	m.Post(NewSumLessThan(m.Trail(), []Var{x, y}, 5))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}

	beforeMax := y.Max()
	m.Eval(map[VarID]int{x.ID(): 5, y.ID(): 0}, []VarID{y.ID()})
	if y.Max() != beforeMax {
		t.Fatalf("expected Eval to leave the committed domain untouched, max changed from %d to %d", beforeMax, y.Max())
	}
}

func TestModelInitReturnsErrInfeasible(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(3, 3)
	y := m.NewIntVar(3, 3)
	m.Post(NewNotEqual(m.Trail(), x, y))
	if err := m.Init(); err != ErrInfeasible {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}
}

func TestEntailedListsInactiveConstraints(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(1, 1)
	y := m.NewIntVar(2, 2)
	id := m.Post(NewNotEqual(m.Trail(), x, y))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	entailed := m.Entailed()
	found := false
	for _, e := range entailed {
		if e == id {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the NotEqual constraint to be entailed once both sides are bound")
	}
}

func TestViewVariablesPropagateThroughBase(t *testing.T) {
	m := NewModel()
	x := m.NewIntVar(1, 5)
	scaled := m.NewMulView(x, 2)
	y := m.NewIntVar(0, 20)
	m.Post(NewEqual(m.Trail(), scaled, y))
	if err := m.Init(); err != nil {
		t.Fatalf("unexpected infeasible: %v", err)
	}
	if y.Min() != 2 || y.Max() != 10 {
		t.Fatalf("expected y narrowed to [2,10] through the *2 view, got [%d,%d]", y.Min(), y.Max())
	}
}
