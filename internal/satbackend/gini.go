// Package satbackend provides internal/logic.Backend implementations and
// self-registers them with internal/logic.RegisterBackend, keeping the
// core engine free of any direct SAT solver dependency (the same
// separation the teacher draws between pkg/controller/registry/resolver
// and its vendored solver internals, just inverted: here the adapter
// lives outside the engine instead of the engine depending directly on
// gini's inter.S).
package satbackend

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/pkgsolve/pkgsolve/internal/logic"
)

func init() {
	logic.RegisterBackend("gini", func() (logic.Backend, error) {
		return &giniBackend{}, nil
	})
}

// giniBackend adapts github.com/go-air/gini's incremental solver to the
// one-shot batch Backend interface: a fresh gini.Gini instance is built
// per Solve call from the full clause list handed in, since internal/logic
// owns the canonical clause store and gini need only ever see a snapshot
// of it.
type giniBackend struct{}

func (giniBackend) Solve(clauses []logic.Clause, numVars int, limit int) (logic.Model, bool, error) {
	g := gini.NewV(numVars)
	for _, c := range clauses {
		for _, l := range c {
			g.Add(dimacsToZ(l))
		}
		g.Add(z.LitNull)
	}

	var outcome int
	if limit > 0 {
		outcome = g.Try(propagationBudget(limit))
	} else {
		outcome = g.Solve()
	}
	if outcome != 1 {
		return nil, false, nil
	}

	model := make(logic.Model, 0, numVars)
	for v := 1; v <= numVars; v++ {
		lit := z.Dimacs2Lit(v)
		if g.Value(lit) {
			model = append(model, logic.Lit(v))
		} else {
			model = append(model, logic.Lit(-v))
		}
	}
	return model, true, nil
}

// dimacsToZ converts a logic.Lit, which uses dimacs sign convention
// (positive/negative integers, never zero except as a clause terminator),
// into gini's z.Lit encoding.
func dimacsToZ(l logic.Lit) z.Lit {
	return z.Dimacs2Lit(int(l))
}
