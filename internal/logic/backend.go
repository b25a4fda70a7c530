package logic

// Model is the list of literals true in a satisfying assignment.
type Model []Lit

// Backend is the uniform interface over a pluggable DPLL/CDCL SAT solver.
// Given a clause store's contents and the number of variables in play, it
// returns a satisfying model or reports unsatisfiability. limit, if
// nonzero, caps the backend's propagation effort; exceeding it is reported
// as "no solution" (ok == false), the same as genuine unsatisfiability, per
// spec.md §4.2. Implementations must not mutate the caller's clauses.
type Backend interface {
	Solve(clauses []Clause, numVars int, limit int) (model Model, ok bool, err error)
}

// BackendFactory constructs a Backend by name. Recognized names are
// configuration-dependent; NewDriver fails with a *ConfigurationError if name is
// unrecognized or construction fails.
type BackendFactory func() (Backend, error)

var backendRegistry = map[string]BackendFactory{}

// RegisterBackend makes a named backend available to NewDriver. It is
// intended to be called from package init in backend implementation
// packages (see internal/satbackend), keeping internal/logic itself free
// of any concrete SAT solver dependency.
func RegisterBackend(name string, factory BackendFactory) {
	backendRegistry[name] = factory
}
