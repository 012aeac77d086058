package dag_test

import (
	"testing"

	"github.com/gitrdm/juls-core/dag"
	"github.com/gitrdm/juls-core/invariant"
)

// buildKnapsack wires a 3-item 0/1 knapsack: objective = sum(value_i * x_i),
// constraint = max(0, sum(weight_i * x_i) - capacity).
func buildKnapsack(t *testing.T, capacity float64) (*dag.DAG, []dag.DecisionValue) {
	t.Helper()
	values := []float64{10, 20, 15}
	weights := []float64{2, 4, 3}

	d := dag.New(3, 1000)
	objW := map[int]float64{0: values[0], 1: values[1], 2: values[2]}
	weightW := map[int]float64{0: weights[0], 1: weights[1], 2: weights[2]}

	objID := d.AddInvariant(invariant.NewScalarProduct(objW), nil, []int{0, 1, 2}, "objective_terms", false)
	d.AddInvariant(invariant.NewObjective(), []int{objID}, nil, "objective", false)

	weightID := d.AddInvariant(invariant.NewScalarProduct(weightW), nil, []int{0, 1, 2}, "weight_terms", false)
	d.AddInvariant(invariant.NewComparator(capacity), []int{weightID}, nil, "capacity", false)

	initial := []dag.DecisionValue{dag.BoolValue(false), dag.BoolValue(false), dag.BoolValue(false)}
	if err := d.Init(initial); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}
	return d, initial
}

func TestFullRunComputesObjectiveAndFeasibility(t *testing.T) {
	d, _ := buildKnapsack(t, 5)
	res := d.FullRun([]dag.DecisionValue{dag.BoolValue(true), dag.BoolValue(false), dag.BoolValue(true)})
	if res.Objective != 25 {
		t.Fatalf("expected objective 25 (10+15), got %v", res.Objective)
	}
	if !res.Feasible {
		t.Fatal("expected feasible: weight 2+3=5 <= capacity 5")
	}
}

func TestFullRunReportsInfeasibleOverCapacity(t *testing.T) {
	d, _ := buildKnapsack(t, 5)
	res := d.FullRun([]dag.DecisionValue{dag.BoolValue(true), dag.BoolValue(true), dag.BoolValue(true)})
	if res.Feasible {
		t.Fatal("expected infeasible: weight 2+4+3=9 > capacity 5")
	}
}

func TestEvalAndCommitMatchFullRun(t *testing.T) {
	d, _ := buildKnapsack(t, 10)

	move := dag.Move{Assignments: []dag.MoveAssignment{{VarIndex: 0, Value: dag.BoolValue(true)}}}
	dr := d.Eval(move)
	if dr.EarlyStopped {
		t.Fatal("did not expect an early stop")
	}
	if dr.Result.Objective != 10 {
		t.Fatalf("expected delta objective 10, got %v", dr.Result.Objective)
	}
	d.Commit(dr)

	full := d.FullRun([]dag.DecisionValue{dag.BoolValue(true), dag.BoolValue(false), dag.BoolValue(false)})
	if full.Objective != 10 || !full.Feasible {
		t.Fatalf("expected committed state to match a fresh FullRun, got objective=%v feasible=%v", full.Objective, full.Feasible)
	}

	move2 := dag.Move{Assignments: []dag.MoveAssignment{{VarIndex: 1, Value: dag.BoolValue(true)}}}
	dr2 := d.Eval(move2)
	if dr2.Result.Objective != 20 {
		t.Fatalf("expected the second delta's objective contribution to be 20, got %v", dr2.Result.Objective)
	}
	d.Commit(dr2)
	full2 := d.FullRun([]dag.DecisionValue{dag.BoolValue(true), dag.BoolValue(true), dag.BoolValue(false)})
	if full2.Objective != 30 {
		t.Fatalf("expected cumulative objective 30 after both commits, got %v", full2.Objective)
	}
}

func TestEvalEarlyStopsOnLargeConstraintViolation(t *testing.T) {
	d := dag.New(1, 5)
	d.AddInvariant(invariant.NewComparator(0), nil, []int{0}, "capacity", false)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(0)}); err != nil {
		t.Fatalf("unexpected Init error: %v", err)
	}

	move := dag.Move{Assignments: []dag.MoveAssignment{{VarIndex: 0, Value: dag.IntValue(100)}}}
	dr := d.Eval(move)
	if !dr.EarlyStopped {
		t.Fatal("expected the traversal to early-stop: violation 100 exceeds threshold 5")
	}
	if dr.Result.Feasible {
		t.Fatal("an early-stopped result must report infeasible")
	}
}

func TestOrphanInvariantFailsInit(t *testing.T) {
	d := dag.New(1, 1000)
	d.AddInvariant(invariant.NewObjective(), nil, nil, "dangling", false)
	if err := d.Init([]dag.DecisionValue{dag.IntValue(0)}); err != dag.ErrOrphanInvariant {
		t.Fatalf("expected ErrOrphanInvariant, got %v", err)
	}
}
