package satbackend

import "time"

// propagationBudget approximates internal/logic's dimensionless
// propagation-count limit as a wall-clock budget for gini.Gini.Try, since
// gini (unlike pycosat's prop_limit) exposes no direct propagation
// counter. One unit is treated as one microsecond of solving time; this is
// a coarse stand-in and callers relying on exact propagation-count
// semantics should prefer the naive backend, whose limit is an actual
// propagation counter.
func propagationBudget(limit int) time.Duration {
	return time.Duration(limit) * time.Microsecond
}
