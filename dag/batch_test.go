package dag_test

import (
	"testing"

	"github.com/gitrdm/juls-core/dag"
	"github.com/gitrdm/juls-core/internal/parallel"
)

func TestEvaluateBatchMatchesPerMoveEval(t *testing.T) {
	moves := []dag.Move{
		{Assignments: []dag.MoveAssignment{{VarIndex: 0, Value: dag.BoolValue(true)}}},
		{Assignments: []dag.MoveAssignment{{VarIndex: 1, Value: dag.BoolValue(true)}}},
		{Assignments: []dag.MoveAssignment{{VarIndex: 2, Value: dag.BoolValue(true)}}},
		{Assignments: []dag.MoveAssignment{
			{VarIndex: 0, Value: dag.BoolValue(true)},
			{VarIndex: 1, Value: dag.BoolValue(true)},
			{VarIndex: 2, Value: dag.BoolValue(true)},
		}},
	}

	newDAG := func() *dag.DAG {
		d, _ := buildKnapsack(t, 5)
		return d
	}

	stats := parallel.NewExecutionStats()
	cfg := dag.BatchConfig{BatchSize: 2, Workers: 2}
	results := dag.EvaluateBatch(cfg, newDAG, moves, stats)

	if len(results) != len(moves) {
		t.Fatalf("expected %d results, got %d", len(moves), len(results))
	}
	for i, mv := range moves {
		if results[i].Move.Assignments[0] != mv.Assignments[0] {
			t.Fatalf("result %d not aligned with its input move", i)
		}
		fresh, _ := buildKnapsack(t, 5)
		want := fresh.Eval(mv)
		if results[i].Result != want.Result || results[i].EarlyStopped != want.EarlyStopped {
			t.Fatalf("result %d = %+v (early stop %v), want %+v (early stop %v) from a direct Eval",
				i, results[i].Result, results[i].EarlyStopped, want.Result, want.EarlyStopped)
		}
	}

	gotStats := stats.GetStats()
	if gotStats.TasksSubmitted != int64(len(moves)) || gotStats.TasksCompleted != int64(len(moves)) {
		t.Fatalf("expected stats to track every move, got %+v", gotStats)
	}
}

func TestEvaluateBatchAcceptsNilStats(t *testing.T) {
	moves := []dag.Move{
		{Assignments: []dag.MoveAssignment{{VarIndex: 0, Value: dag.BoolValue(true)}}},
	}
	newDAG := func() *dag.DAG {
		d, _ := buildKnapsack(t, 5)
		return d
	}
	results := dag.EvaluateBatch(dag.DefaultBatchConfig(), newDAG, moves, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
