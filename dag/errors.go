package dag

import "errors"

// Structural errors, detected only during Init and fatal to the DAG under
// construction (§6, §7): the graph is malformed and cannot be recovered by
// the engine.
var (
	ErrCycle            = errors.New("dag: graph contains a cycle")
	ErrOrphanInvariant   = errors.New("dag: a non-sentinel invariant has no parents")
	ErrAlreadyInit       = errors.New("dag: Init already called")
)
