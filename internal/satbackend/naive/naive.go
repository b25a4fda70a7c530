// Package naive provides a dependency-free DPLL SAT backend for
// internal/logic, registered under the name "naive". It exists for two
// reasons spec.md calls out explicitly: deterministic, allocation-light
// unit testing of internal/logic without pulling in gini, and an honest
// propagation-count limit (unlike the gini adapter's wall-clock
// approximation) for callers that depend on that semantic.
package naive

import (
	"github.com/pkgsolve/pkgsolve/internal/logic"
)

func init() {
	logic.RegisterBackend("naive", func() (logic.Backend, error) {
		return &backend{}, nil
	})
}

type backend struct{}

// Solve runs a textbook DPLL search: unit propagation to a fixpoint,
// then branch on the first unassigned variable, trying true before false.
// propagations, when limit is nonzero, caps the number of unit-propagation
// steps taken across the whole search; exceeding it is reported as
// unsatisfiable, matching the Backend contract that a limit overrun and
// genuine unsatisfiability are indistinguishable to the caller.
func (backend) Solve(clauses []logic.Clause, numVars int, limit int) (logic.Model, bool, error) {
	s := &search{
		clauses:    clauses,
		numVars:    numVars,
		assignment: make([]int8, numVars+1), // 0 unassigned, 1 true, -1 false
		propLimit:  limit,
	}
	ok := s.solve()
	if !ok {
		return nil, false, nil
	}
	model := make(logic.Model, numVars)
	for v := 1; v <= numVars; v++ {
		if s.assignment[v] >= 0 {
			model[v-1] = logic.Lit(v)
		} else {
			model[v-1] = logic.Lit(-v)
		}
	}
	return model, true, nil
}

type search struct {
	clauses    []logic.Clause
	numVars    int
	assignment []int8
	propCount  int
	propLimit  int
}

// solve is the DPLL entry point: propagate to a fixpoint or conflict,
// then branch.
func (s *search) solve() bool {
	trail, ok := s.propagate()
	if !ok {
		s.undo(trail)
		return false
	}
	v := s.firstUnassigned()
	if v == 0 {
		return true // every variable assigned, no conflict: satisfying
	}
	for _, val := range [2]int8{1, -1} {
		s.assignment[v] = val
		if s.solve() {
			return true
		}
		s.assignment[v] = 0
	}
	s.undo(trail)
	return false
}

// propagate repeatedly finds a clause with exactly one unassigned literal
// and all others false, and assigns that literal true, until no such
// clause remains (returns ok=true) or a clause is found with every
// literal false (a conflict, returns ok=false) or the propagation budget
// is exhausted (treated as a conflict). trail records every variable this
// call assigned, for undo on backtrack.
func (s *search) propagate() (trail []int, ok bool) {
	for {
		changed := false
		for _, c := range s.clauses {
			unassignedCount := 0
			var unit logic.Lit
			satisfied := false
			for _, l := range c {
				val := s.valueOf(l)
				switch val {
				case 1:
					satisfied = true
				case 0:
					unassignedCount++
					unit = l
				}
				if satisfied {
					break
				}
			}
			if satisfied {
				continue
			}
			if unassignedCount == 0 {
				return trail, false
			}
			if unassignedCount == 1 {
				if s.propLimit > 0 && s.propCount >= s.propLimit {
					return trail, false
				}
				s.propCount++
				v := varOf(unit)
				if unit > 0 {
					s.assignment[v] = 1
				} else {
					s.assignment[v] = -1
				}
				trail = append(trail, v)
				changed = true
			}
		}
		if !changed {
			return trail, true
		}
	}
}

func (s *search) undo(trail []int) {
	for _, v := range trail {
		s.assignment[v] = 0
	}
}

// valueOf reports the current truth value of literal l: 1 true, -1 false,
// 0 unassigned.
func (s *search) valueOf(l logic.Lit) int8 {
	a := s.assignment[varOf(l)]
	if a == 0 {
		return 0
	}
	if l > 0 {
		return a
	}
	return -a
}

// varOf returns the variable number (always positive) that literal l
// refers to.
func varOf(l logic.Lit) int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

func (s *search) firstUnassigned() int {
	for v := 1; v <= s.numVars; v++ {
		if s.assignment[v] == 0 {
			return v
		}
	}
	return 0
}
