package resolver

import (
	log "github.com/sirupsen/logrus"
)

// SearchPosition reports the state Solve had reached at the point a
// Tracer is invoked: which Variables it selected, and, when no solution
// exists, every AppliedConstraint that was compiled (no smaller
// conflicting subset is isolated).
type SearchPosition interface {
	Variables() []Variable
	Conflicts() []AppliedConstraint
}

// Tracer observes Solve's internal search, primarily for debugging and
// test assertions; DefaultTracer discards everything.
type Tracer interface {
	Trace(p SearchPosition)
}

// DefaultTracer implements Tracer by doing nothing.
type DefaultTracer struct{}

func (DefaultTracer) Trace(SearchPosition) {}

// LoggingTracer logs each search position Solve reports at DebugLevel,
// via a structured Entry rather than the teacher's raw io.Writer dump, so
// trace output composes with whatever logrus formatter/hook the rest of
// pkgsolve is configured with.
type LoggingTracer struct {
	Logger *log.Logger
}

func (t LoggingTracer) Trace(p SearchPosition) {
	entry := log.WithField("component", "resolver")
	if t.Logger != nil {
		entry = log.NewEntry(t.Logger).WithField("component", "resolver")
	}

	assumptions := make([]string, 0, len(p.Variables()))
	for _, v := range p.Variables() {
		assumptions = append(assumptions, string(v.Identifier()))
	}
	conflicts := make([]string, 0, len(p.Conflicts()))
	for _, a := range p.Conflicts() {
		conflicts = append(conflicts, a.String())
	}

	entry.WithFields(log.Fields{
		"assumptions": assumptions,
		"conflicts":   conflicts,
	}).Debug("resolver: search position")
}

// searchPosition is the concrete SearchPosition Solve reports to its
// Tracer once it finishes: the selected Variables on success, or all
// compiled constraints when the problem is unsatisfiable.
type searchPosition struct {
	variables []Variable
	conflicts []AppliedConstraint
}

func (p searchPosition) Variables() []Variable            { return p.variables }
func (p searchPosition) Conflicts() []AppliedConstraint { return p.conflicts }
