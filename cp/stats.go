package cp

// Stats is an optional propagation-statistics counter, grounded in
// gitrdm-gokando's fd_monitor.go SolverMonitor/FDSolverStats pattern: a
// nil *Stats disables collection entirely, exactly as a nil *SolverMonitor
// does there. Stats are purely observational and never change propagation
// semantics.
type Stats struct {
	// Firings counts Propagate calls actually executed (Active constraints
	// popped off the worklist).
	Firings int
	// PeakTrailDepth is the highest Trail.Depth observed during Init or Eval.
	PeakTrailDepth int
	// EnumerationLeaves counts the feasible Cartesian-product leaves Eval
	// reaches; branches pruned by propagation are not counted.
	EnumerationLeaves int
}

func (s *Stats) recordFiring() {
	if s == nil {
		return
	}
	s.Firings++
}

func (s *Stats) recordDepth(d int) {
	if s == nil {
		return
	}
	if d > s.PeakTrailDepth {
		s.PeakTrailDepth = d
	}
}

func (s *Stats) recordLeaf() {
	if s == nil {
		return
	}
	s.EnumerationLeaves++
}
