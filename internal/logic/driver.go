package logic

import (
	log "github.com/sirupsen/logrus"
)

// Driver bundles a clause store, a variable counter, a sticky unsat flag,
// and a SAT backend. It is the entry point described in spec.md §4.6/§6:
// new_var, the combinator functions, require/prevent, solve, save/restore.
type Driver struct {
	store   ClauseStore
	backend Backend
	m       int
	unsat   bool

	// debugAssertions enables the LogicError-class checks from spec.md §7
	// (stale restore tokens, mismatched save/restore nesting). Off by
	// default; set via WithDebugAssertions.
	debugAssertions bool
	states          []State // save/restore nesting stack, only tracked when debugAssertions is set
}

// Option configures a Driver at construction time.
type Option func(*Driver) error

// WithArrayStore selects the flat-array clause store representation
// instead of the default list-of-clauses representation.
func WithArrayStore() Option {
	return func(d *Driver) error {
		d.store = newClauseArray()
		return nil
	}
}

// WithDebugAssertions turns on the LogicError-class checks described in
// spec.md §7, which are otherwise skipped for performance.
func WithDebugAssertions() Option {
	return func(d *Driver) error {
		d.debugAssertions = true
		return nil
	}
}

// NewDriver constructs a Driver bound to the named SAT backend, with an
// optional initial variable count. An unrecognized or unconstructable
// backend is a fatal *ConfigurationError, surfaced here before any clauses
// are built, per spec.md §4.2/§7.
func NewDriver(backendName string, initialVarCount int, opts ...Option) (*Driver, error) {
	factory, ok := backendRegistry[backendName]
	if !ok {
		return nil, &ConfigurationError{Backend: backendName, Reason: "unknown backend"}
	}
	backend, err := factory()
	if err != nil {
		return nil, &ConfigurationError{Backend: backendName, Reason: err.Error()}
	}

	d := &Driver{
		store:   newClauseList(),
		backend: backend,
		m:       initialVarCount,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// NewVar allocates and returns a fresh variable. The variable counter never
// decreases; save/restore of the clause store does not revert it, so
// callers that roll back clauses are responsible for discarding references
// to variables allocated after the save point.
func (d *Driver) NewVar() Lit {
	d.m++
	return Lit(d.m)
}

// NumVars returns the number of variables allocated so far.
func (d *Driver) NumVars() int {
	return d.m
}

// AddClause appends a single clause with no deduplication or tautology
// check.
func (d *Driver) AddClause(c Clause) {
	d.store.Append(c)
}

// AddClauses appends a batch of clauses.
func (d *Driver) AddClauses(cs []Clause) {
	d.store.Extend(cs)
}

// ClauseCount returns the number of stored clauses. May be O(n) depending
// on the clause store representation in use.
func (d *Driver) ClauseCount() int {
	return d.store.ClauseCount()
}

// SaveState returns an opaque token identifying the current end of the
// clause store, for later RestoreState.
func (d *Driver) SaveState() State {
	s := d.store.SaveState()
	if d.debugAssertions {
		d.states = append(d.states, s)
	}
	return s
}

// RestoreState truncates the clause store back to the point marked by
// token, discarding everything appended since. It does not revert the
// variable counter. With debug assertions enabled, restoring to a token
// whose position has already been passed by a more recent restore panics
// with ErrStaleToken.
func (d *Driver) RestoreState(token State) {
	if d.debugAssertions {
		for len(d.states) > 0 && d.states[len(d.states)-1] > token {
			d.states = d.states[:len(d.states)-1]
		}
		if len(d.states) == 0 || d.states[len(d.states)-1] != token {
			panic(ErrStaleToken)
		}
	}
	d.store.RestoreState(token)
}

// Assign materializes a deferred combinator Value into a literal
// equivalent to it under both polarities, allocating a fresh Tseitin
// variable if necessary. A Value that is already a literal passes through
// unchanged. See spec.md §4.4.
func (d *Driver) Assign(v Value) Lit {
	if v.isLit {
		return v.lit
	}
	x := d.NewVar()
	for _, c := range v.pos {
		d.AddClause(prepend(x.Not(), c))
	}
	for _, c := range v.neg {
		d.AddClause(prepend(x, c))
	}
	return x
}

func prepend(l Lit, c Clause) Clause {
	out := make(Clause, 0, len(c)+1)
	out = append(out, l)
	out = append(out, c...)
	return out
}

// CombinatorFunc is a combinator evaluated under a caller-supplied
// polarity, the Go analog of spec.md's "func(args…, polarity)" shape
// passed to Require/Prevent.
type CombinatorFunc func(polarity Polarity) Value

// eval is the shared implementation of Require and Prevent (_logic.py's
// Eval): it calls f under the given definite polarity and either commits
// its clauses directly (no Tseitin variable is needed, since the polarity
// is already fixed) or, if f short-circuited to a constant inconsistent
// with the requested polarity, marks the driver permanently unsat.
func (d *Driver) eval(f CombinatorFunc, polarity Polarity) {
	saved := d.SaveState()
	val := f(polarity)
	switch {
	case !val.isLit:
		d.AddClauses(val.pos)
		d.AddClauses(val.neg)
	case val.lit != TRUE && val.lit != FALSE:
		lit := val.lit
		if polarity == PolarityFalse {
			lit = lit.Not()
		}
		d.AddClause(Clause{lit})
	default:
		d.RestoreState(saved)
		wantTrue := polarity == PolarityTrue
		isTrue := val.lit == TRUE
		if isTrue != wantTrue {
			d.unsat = true
		}
	}
}

// Require appends clauses forcing f's result to be true, or marks the
// driver unsat if f short-circuits to FALSE.
func (d *Driver) Require(f CombinatorFunc) {
	d.eval(f, PolarityTrue)
}

// Prevent appends clauses forcing f's result to be false, or marks the
// driver unsat if f short-circuits to TRUE.
func (d *Driver) Prevent(f CombinatorFunc) {
	d.eval(f, PolarityFalse)
}

// Unsat reports whether a prior Require/Prevent call has already made the
// driver's constraints permanently unsatisfiable.
func (d *Driver) Unsat() bool {
	return d.unsat
}

// Solve computes a SAT solution for the current clause set. additional, if
// non-nil, is a batch of extra clauses probed for this call only: when
// includeIf is false, or when the probe is unsatisfiable, the clause store
// is restored to its pre-call state before returning, giving callers both
// probe-only and commit semantics from a single call. The combination of
// includeIf=true with additional=nil is a no-op: there is nothing to
// commit or discard either way.
func (d *Driver) Solve(additional []Clause, includeIf bool, limit int) (Model, error) {
	if d.unsat {
		return nil, nil
	}
	if d.m == 0 {
		return Model{}, nil
	}

	var preprocessed []Clause
	if len(additional) > 0 {
		var immediateUnsat bool
		preprocessed, immediateUnsat = preprocessAdditional(additional)
		if immediateUnsat {
			return nil, nil
		}
	}

	saved := d.SaveState()
	if len(preprocessed) > 0 {
		d.AddClauses(preprocessed)
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.WithField("clauses", d.ClauseCount()).Debug("logic: invoking SAT backend")
	}
	model, ok, err := d.backend.Solve(d.store.AsList(), d.m, limit)
	if err != nil {
		d.RestoreState(saved)
		return nil, &BackendFailure{Err: err}
	}

	if len(additional) > 0 && (!ok || !includeIf) {
		d.RestoreState(saved)
	}
	if !ok {
		return nil, nil
	}
	return model, nil
}

// preprocessAdditional drops FALSE literals from additional clauses,
// recognizes a clause short-circuited true by an embedded TRUE literal
// (dropping the whole clause), and recognizes an empty resulting clause as
// immediate unsatisfiability, mirroring _logic.py's sat() preprocessing of
// its `additional` argument.
func preprocessAdditional(clauses []Clause) (out []Clause, immediateUnsat bool) {
	for _, c := range clauses {
		var kept Clause
		shortCircuited := false
		for _, l := range c {
			if l == FALSE {
				continue
			}
			kept = append(kept, l)
			if l == TRUE {
				shortCircuited = true
				break
			}
		}
		if shortCircuited {
			continue
		}
		if len(kept) == 0 {
			return nil, true
		}
		out = append(out, kept)
	}
	return out, false
}
