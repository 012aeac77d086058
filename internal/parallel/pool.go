// Package parallel provides the fixed-size worker pool the outer
// neighborhood search uses to evaluate a batch of candidate moves
// concurrently (§5), plus the execution statistics that go with it.
package parallel

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPoolShutdown is returned when trying to submit tasks to a shutdown pool.
var ErrPoolShutdown = fmt.Errorf("worker pool has been shutdown")

// StaticWorkerPool is a fixed-size pool of goroutines draining a shared task
// channel. It has no dynamic scaling, no work stealing, and no rate
// limiting — the outer search evaluates each move's DAG copy independently
// and order-insensitively (§5), so a pool that just bounds concurrency and
// reports back when done is all that shape needs.
type StaticWorkerPool struct {
	maxWorkers   int
	taskChan     chan func()
	workerWg     sync.WaitGroup
	shutdownChan chan struct{}
	once         sync.Once
}

// NewStaticWorkerPool creates a new static worker pool with fixed size.
// A non-positive maxWorkers falls back to runtime.NumCPU().
func NewStaticWorkerPool(maxWorkers int) *StaticWorkerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	pool := &StaticWorkerPool{
		maxWorkers:   maxWorkers,
		taskChan:     make(chan func(), maxWorkers*2),
		shutdownChan: make(chan struct{}),
	}

	for i := 0; i < maxWorkers; i++ {
		pool.workerWg.Add(1)
		go pool.worker()
	}

	return pool
}

func (swp *StaticWorkerPool) worker() {
	defer swp.workerWg.Done()

	for {
		select {
		case task := <-swp.taskChan:
			if task != nil {
				task()
			}
		case <-swp.shutdownChan:
			return
		}
	}
}

// Submit queues task for execution by the next free worker, blocking if the
// queue is full until a slot opens, ctx is cancelled, or the pool is shut
// down.
func (swp *StaticWorkerPool) Submit(ctx context.Context, task func()) error {
	select {
	case <-swp.shutdownChan:
		return ErrPoolShutdown
	default:
	}
	select {
	case swp.taskChan <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-swp.shutdownChan:
		return ErrPoolShutdown
	}
}

// Shutdown stops every worker and waits for in-flight tasks to finish.
// Submit after Shutdown returns ErrPoolShutdown. Safe to call more than
// once.
func (swp *StaticWorkerPool) Shutdown() {
	swp.once.Do(func() {
		close(swp.shutdownChan)
		swp.workerWg.Wait()
	})
}

// GetWorkerCount returns the pool's fixed worker count.
func (swp *StaticWorkerPool) GetWorkerCount() int { return swp.maxWorkers }

// GetQueueDepth returns the number of tasks currently queued.
func (swp *StaticWorkerPool) GetQueueDepth() int { return len(swp.taskChan) }

// ExecutionStats accumulates timing and throughput counters across one
// batch of submitted tasks. Every Record* method is safe for concurrent use
// by the pool's workers; Finalize and GetStats are for the caller once the
// batch has drained.
type ExecutionStats struct {
	mu sync.RWMutex

	StartTime          time.Time
	EndTime            time.Time
	TotalExecutionTime time.Duration

	TasksSubmitted int64
	TasksCompleted int64
	TasksFailed    int64

	TasksPerSecond      float64
	AverageTaskDuration time.Duration

	LastError  error
	ErrorCount int64

	taskDurationHistory []time.Duration
}

// NewExecutionStats creates a new execution statistics collector, starting
// its clock immediately.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{
		StartTime:           time.Now(),
		taskDurationHistory: make([]time.Duration, 0, 64),
	}
}

// RecordTaskSubmitted records that a task was submitted for execution.
func (es *ExecutionStats) RecordTaskSubmitted() {
	atomic.AddInt64(&es.TasksSubmitted, 1)
}

// RecordTaskCompleted records that a task completed successfully.
func (es *ExecutionStats) RecordTaskCompleted(duration time.Duration) {
	atomic.AddInt64(&es.TasksCompleted, 1)
	es.mu.Lock()
	es.taskDurationHistory = append(es.taskDurationHistory, duration)
	es.mu.Unlock()
}

// RecordTaskFailed records that a task failed with an error.
func (es *ExecutionStats) RecordTaskFailed(err error) {
	atomic.AddInt64(&es.TasksFailed, 1)
	atomic.AddInt64(&es.ErrorCount, 1)
	es.mu.Lock()
	es.LastError = err
	es.mu.Unlock()
}

// Finalize computes final aggregate statistics once a batch has drained.
func (es *ExecutionStats) Finalize() {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.EndTime = time.Now()
	es.TotalExecutionTime = es.EndTime.Sub(es.StartTime)

	if len(es.taskDurationHistory) > 0 {
		var total time.Duration
		for _, d := range es.taskDurationHistory {
			total += d
		}
		es.AverageTaskDuration = total / time.Duration(len(es.taskDurationHistory))
	}

	if es.TotalExecutionTime > 0 {
		es.TasksPerSecond = float64(es.TasksCompleted) / es.TotalExecutionTime.Seconds()
	}
}

// GetStats returns a copy of the current statistics.
func (es *ExecutionStats) GetStats() ExecutionStats {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return ExecutionStats{
		StartTime:           es.StartTime,
		EndTime:             es.EndTime,
		TotalExecutionTime:  es.TotalExecutionTime,
		TasksSubmitted:      atomic.LoadInt64(&es.TasksSubmitted),
		TasksCompleted:      atomic.LoadInt64(&es.TasksCompleted),
		TasksFailed:         atomic.LoadInt64(&es.TasksFailed),
		TasksPerSecond:      es.TasksPerSecond,
		AverageTaskDuration: es.AverageTaskDuration,
		LastError:           es.LastError,
		ErrorCount:          atomic.LoadInt64(&es.ErrorCount),
	}
}

// String renders a one-line human-readable summary, for diagnostic logging.
func (es *ExecutionStats) String() string {
	s := es.GetStats()
	return fmt.Sprintf("tasks=%d completed=%d failed=%d avg=%s rate=%.1f/s",
		s.TasksSubmitted, s.TasksCompleted, s.TasksFailed, s.AverageTaskDuration, s.TasksPerSecond)
}
