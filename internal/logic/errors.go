package logic

import "errors"

// ConfigurationError is returned from NewDriver when the requested backend
// is unavailable or unknown. It is a fatal configuration error surfaced
// before any clauses are built.
type ConfigurationError struct {
	Backend string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return "logic: cannot construct backend " + e.Backend + ": " + e.Reason
}

// BackendFailure wraps a runtime error returned by the SAT backend itself
// (out-of-memory, internal timeout) as distinct from ordinary
// unsatisfiability. The Driver's state is left unchanged when this is
// returned from Solve.
type BackendFailure struct {
	Err error
}

func (e *BackendFailure) Error() string {
	return "logic: backend failure: " + e.Err.Error()
}

func (e *BackendFailure) Unwrap() error {
	return e.Err
}

// ErrBisectionInvariant is returned by Minimize if the sum bound that
// bisection found feasible by probe turns out unsatisfiable once it is
// committed to the clause store. Per spec.md's open question,
// this is surfaced as a distinct internal-invariant failure rather than
// silently treated as ordinary infeasibility; it should not occur in
// practice and indicates a bug in the caller's constraints or in the
// optimizer itself.
var ErrBisectionInvariant = errors.New("logic: bisection bounds crossed (lo > hi); this should not happen")

// ErrStaleToken is the value RestoreState panics with, when debug assertions are
// enabled (see Driver.debugAssertions), if the token no longer identifies a
// reachable point in the clause store's history because a more recent
// restore has already passed it.
var ErrStaleToken = errors.New("logic: restore to a stale save/restore token")
