package dag

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/gitrdm/juls-core/internal/parallel"
)

// BatchConfig configures the outer loop's parallel move evaluation (§5):
// moves are evaluated in fixed-size batches, each move on its own DAG copy,
// with results gathered deterministically by input order regardless of
// goroutine completion order. Mirrors the SolverConfig/StrategyConfig
// plain-struct-plus-Default-constructor shape the teacher uses throughout
// fd.go and strategy.go.
type BatchConfig struct {
	// BatchSize is the number of moves evaluated before the next batch
	// starts. Defaults to 64 per §5.
	BatchSize int
	// Workers bounds how many moves within a batch run concurrently.
	// Defaults to runtime.NumCPU().
	Workers int
}

// DefaultBatchConfig returns the §5-mandated defaults: batch size 64,
// worker count equal to the number of logical CPUs.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{BatchSize: 64, Workers: runtime.NumCPU()}
}

func (c BatchConfig) normalized() BatchConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = 64
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return c
}

// MoveResult pairs a candidate move with the outcome of evaluating it.
type MoveResult struct {
	Move         Move
	Result       ResultDelta
	EarlyStopped bool
}

// EvaluateBatch evaluates every move in moves, batched per cfg, gathering
// results deterministically into a slice aligned with moves regardless of
// which goroutine finishes first. newDAG must return an independent DAG
// already Init'd to the same state (a fresh copy per call); the core
// guarantees only that each concurrent evaluation runs against its own DAG
// instance (§5), not how that instance is produced — cloning/pooling
// strategy is the caller's concern.
//
// Concurrency within a batch is bounded by an internal/parallel
// StaticWorkerPool sized to cfg.Workers, one pool per batch so a later
// batch never contends with a stuck task from an earlier one. Stats is
// optional and may be nil; when supplied it is populated with the timing
// of every move evaluated across every batch.
func EvaluateBatch(cfg BatchConfig, newDAG func() *DAG, moves []Move, stats *parallel.ExecutionStats) []MoveResult {
	cfg = cfg.normalized()
	results := make([]MoveResult, len(moves))
	ctx := context.Background()

	for start := 0; start < len(moves); start += cfg.BatchSize {
		end := start + cfg.BatchSize
		if end > len(moves) {
			end = len(moves)
		}
		pool := parallel.NewStaticWorkerPool(cfg.Workers)
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			idx, mv := i, moves[i]
			if stats != nil {
				stats.RecordTaskSubmitted()
			}
			_ = pool.Submit(ctx, func() {
				defer wg.Done()
				t0 := time.Now()
				d := newDAG()
				dr := d.Eval(mv)
				results[idx] = MoveResult{Move: mv, Result: dr.Result, EarlyStopped: dr.EarlyStopped}
				if stats != nil {
					stats.RecordTaskCompleted(time.Since(t0))
				}
			})
		}
		wg.Wait()
		pool.Shutdown()
	}
	if stats != nil {
		stats.Finalize()
	}
	return results
}
