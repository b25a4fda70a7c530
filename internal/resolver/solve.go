package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/pkgsolve/pkgsolve/internal/logic"
	"github.com/pkgsolve/pkgsolve/internal/pkgmetrics"
)

// Incomplete is returned when ctx is already cancelled as Solve starts;
// cancellation after that point is not observed.
var Incomplete = errors.New("cancelled before a solution could be found")

// NotSatisfiable reports that no solution exists. Unlike the teacher's
// gini-backed solver, internal/logic's Backend interface (see
// logic.Backend) reports only sat/unsat, not a minimal unsatisfiable
// core via incremental assumption failure (gini's Why()); internal/logic
// was built against a one-shot batch backend interface instead, per
// spec.md §4.2, so NotSatisfiable here carries only the anchor
// Identifiers that seeded the problem, not a minimized conflict set.
type NotSatisfiable []Identifier

func (e NotSatisfiable) Error() string {
	const msg = "constraints not satisfiable"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, id := range e {
		s[i] = string(id)
	}
	return fmt.Sprintf("%s: anchors %s", msg, strings.Join(s, ", "))
}

// Option configures a Solve call.
type Option func(*solveConfig)

type solveConfig struct {
	backend string
	limit   int
	tracer  Tracer
	weigh   Weigher
}

// WithBackend selects the named internal/logic backend ("gini" or
// "naive"). Defaults to "gini".
func WithBackend(name string) Option {
	return func(c *solveConfig) { c.backend = name }
}

// WithLimit bounds the SAT backend's effort per probe, as in
// logic.Driver.Solve.
func WithLimit(limit int) Option {
	return func(c *solveConfig) { c.limit = limit }
}

// WithTracer supplies a Tracer observing the final search outcome.
func WithTracer(t Tracer) Option {
	return func(c *solveConfig) { c.tracer = t }
}

// WithWeigher supplies the objective coefficient function passed to
// Minimize. Variables with no assigned weight (Weigher returning 0, or a
// nil Weigher) are free: selecting them costs nothing.
func WithWeigher(w Weigher) Option {
	return func(c *solveConfig) { c.weigh = w }
}

// Solve compiles variables into internal/logic clauses, finds a
// satisfying assignment minimizing the objective built from opts'
// Weigher (defaulting to an unweighted search — any satisfying
// assignment), and returns the selected Variables in input order.
func Solve(ctx context.Context, variables []Variable, opts ...Option) ([]Variable, error) {
	cfg := solveConfig{backend: "gini", tracer: DefaultTracer{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := ctx.Err(); err != nil {
		return nil, Incomplete
	}

	d, err := logic.NewDriver(cfg.backend, 0)
	if err != nil {
		return nil, err
	}

	m, err := compile(d, variables)
	if err != nil {
		return nil, err
	}
	if err := m.Error(); err != nil {
		return nil, err
	}
	pkgmetrics.ClauseCount.Set(float64(d.ClauseCount()))

	if d.Unsat() {
		cfg.tracer.Trace(searchPosition{conflicts: conflictList(m)})
		return nil, NotSatisfiable(m.AnchorIdentifiers())
	}

	log.WithField("variables", len(variables)).Debug("resolver: compiled constraints, invoking minimizer")

	objective := buildObjective(m, cfg.weigh)
	result, err := d.Minimize(objective, nil, false, cfg.limit)
	if err != nil {
		return nil, err
	}
	if result.Model == nil {
		cfg.tracer.Trace(searchPosition{conflicts: conflictList(m)})
		return nil, NotSatisfiable(m.AnchorIdentifiers())
	}

	selected := m.Selected(result.Model)
	cfg.tracer.Trace(searchPosition{variables: selected})
	return selected, nil
}

func buildObjective(m *mapping, weigh Weigher) []logic.Term {
	if weigh == nil {
		return nil
	}
	var terms []logic.Term
	for _, v := range m.inorder {
		if w := weigh(v.Identifier()); w != 0 {
			terms = append(terms, logic.Term{Coeff: w, Lit: m.LitOf(v.Identifier())})
		}
	}
	return terms
}

func conflictList(m *mapping) []AppliedConstraint {
	out := make([]AppliedConstraint, 0, len(m.constraints))
	for _, a := range m.constraints {
		out = append(out, a)
	}
	return out
}
