// Package logic implements the boolean/pseudo-boolean constraint engine at
// the core of pkgsolve: a CNF clause builder with save/restore, a Tseitin
// combinator layer, a memoized BDD encoder for pseudo-boolean bounds, and a
// bisection-based multi-objective minimizer.
//
// The algorithms here are a direct port of conda's common/_logic.py; see
// DESIGN.md for the file-by-file grounding.
package logic

import "math"

// Lit is a nonzero signed integer literal. Positive values denote
// variables; negative values denote their negation.
type Lit int32

// TRUE and FALSE are reserved sentinel literals chosen so that they can
// never collide with an ordinary variable number.
const (
	TRUE  Lit = math.MaxInt32
	FALSE Lit = -TRUE
)

// Not returns the negation of l. TRUE and FALSE negate to each other.
func (l Lit) Not() Lit {
	return -l
}

// Polarity indicates which direction of a Tseitin encoding a caller needs:
// only the clauses required when the result must be true, only those
// required when it must be false, or both (to fully materialize an
// equivalence with a fresh variable).
type Polarity int

const (
	// PolarityTrue requests only the clauses needed when the combinator
	// result is asserted true.
	PolarityTrue Polarity = iota
	// PolarityFalse requests only the clauses needed when the combinator
	// result is asserted false.
	PolarityFalse
	// PolarityBoth requests both directions, for use when a literal
	// must stand in for the combinator value under either polarity.
	PolarityBoth
)

func (p Polarity) wantsPos() bool { return p == PolarityTrue || p == PolarityBoth }
func (p Polarity) wantsNeg() bool { return p == PolarityFalse || p == PolarityBoth }
