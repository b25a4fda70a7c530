package logic

// This file implements the pure logical constructors over literals
// described in spec.md §4.3: Not, And, Or, Xor, Ite, All, Any, and the
// cardinality convenience wrappers built on them. Each mirrors the
// short-circuit and canonicalization rules of _logic.py's Clauses.{And,Or,
// Xor,ITE,All,Any} exactly.

// Not returns the negation of x. It never emits clauses.
func (d *Driver) Not(x Lit) Lit {
	return x.Not()
}

// And returns a Value equivalent to f ∧ g. addNewClauses, when true,
// allocates a fresh Tseitin variable and emits its defining clauses
// immediately instead of deferring them — used by the BDD encoder, where
// eager emission is a measured performance win over generic Assign.
func (d *Driver) And(f, g Lit, polarity Polarity, addNewClauses bool) Value {
	switch {
	case f == FALSE || g == FALSE:
		return litValue(FALSE)
	case f == TRUE:
		return litValue(g)
	case g == TRUE:
		return litValue(f)
	case f == g:
		return litValue(f)
	case f == -g:
		return litValue(FALSE)
	}
	if g < f {
		f, g = g, f
	}
	if addNewClauses {
		x := d.NewVar()
		if polarity.wantsPos() {
			d.AddClauses([]Clause{{x.Not(), f}, {x.Not(), g}})
		}
		if polarity.wantsNeg() {
			d.AddClause(Clause{x, f.Not(), g.Not()})
		}
		return litValue(x)
	}
	var pos, neg []Clause
	if polarity.wantsPos() {
		pos = []Clause{{f}, {g}}
	}
	if polarity.wantsNeg() {
		neg = []Clause{{f.Not(), g.Not()}}
	}
	return deferredValue(pos, neg)
}

// Or returns a Value equivalent to f ∨ g, dual to And.
func (d *Driver) Or(f, g Lit, polarity Polarity, addNewClauses bool) Value {
	switch {
	case f == TRUE || g == TRUE:
		return litValue(TRUE)
	case f == FALSE:
		return litValue(g)
	case g == FALSE:
		return litValue(f)
	case f == g:
		return litValue(f)
	case f == -g:
		return litValue(TRUE)
	}
	if g < f {
		f, g = g, f
	}
	if addNewClauses {
		x := d.NewVar()
		if polarity.wantsPos() {
			d.AddClause(Clause{x.Not(), f, g})
		}
		if polarity.wantsNeg() {
			d.AddClauses([]Clause{{x, f.Not()}, {x, g.Not()}})
		}
		return litValue(x)
	}
	var pos, neg []Clause
	if polarity.wantsPos() {
		pos = []Clause{{f, g}}
	}
	if polarity.wantsNeg() {
		neg = []Clause{{f.Not()}, {g.Not()}}
	}
	return deferredValue(pos, neg)
}

// Xor returns a Value equivalent to f ⊕ g.
func (d *Driver) Xor(f, g Lit, polarity Polarity, addNewClauses bool) Value {
	switch {
	case f == FALSE:
		return litValue(g)
	case f == TRUE:
		return d.notValue(g, polarity, addNewClauses)
	case g == FALSE:
		return litValue(f)
	case g == TRUE:
		return litValue(f.Not())
	case f == g:
		return litValue(FALSE)
	case f == -g:
		return litValue(TRUE)
	}
	if g < f {
		f, g = g, f
	}
	if addNewClauses {
		x := d.NewVar()
		if polarity.wantsPos() {
			d.AddClauses([]Clause{{x.Not(), f, g}, {x.Not(), f.Not(), g.Not()}})
		}
		if polarity.wantsNeg() {
			d.AddClauses([]Clause{{x, f.Not(), g}, {x, f, g.Not()}})
		}
		return litValue(x)
	}
	var pos, neg []Clause
	if polarity.wantsPos() {
		pos = []Clause{{f, g}, {f.Not(), g.Not()}}
	}
	if polarity.wantsNeg() {
		neg = []Clause{{f.Not(), g}, {f, g.Not()}}
	}
	return deferredValue(pos, neg)
}

// notValue mirrors _logic.py's Not(g, polarity, add_new_clauses) call
// inside Xor: Not itself never emits clauses, so this always just wraps
// the negated literal, but keeps the same call shape as the other
// combinators for readability at call sites.
func (d *Driver) notValue(g Lit, _ Polarity, _ bool) Value {
	return litValue(g.Not())
}

// Ite returns a Value equivalent to "c ? t : f" (equivalently (c∧t)∨(¬c∧f)).
// The third clause emitted in each polarity's set is logically redundant
// but materially aids unit propagation and must always be emitted.
func (d *Driver) Ite(c, t, f Lit, polarity Polarity, addNewClauses bool) Value {
	switch {
	case c == TRUE:
		return litValue(t)
	case c == FALSE:
		return litValue(f)
	case t == TRUE:
		return d.Or(c, f, polarity, addNewClauses)
	case t == FALSE:
		return d.And(c.Not(), f, polarity, addNewClauses)
	case f == FALSE:
		return d.And(c, t, polarity, addNewClauses)
	case f == TRUE:
		return d.Or(t, c.Not(), polarity, addNewClauses)
	case t == c:
		return d.Or(c, f, polarity, addNewClauses)
	case t == -c:
		return d.And(c.Not(), f, polarity, addNewClauses)
	case f == c:
		return d.And(c, t, polarity, addNewClauses)
	case f == -c:
		return d.Or(t, c.Not(), polarity, addNewClauses)
	case t == f:
		return litValue(t)
	case t == -f:
		return d.Xor(c, f, polarity, addNewClauses)
	}
	if t < f {
		t, f, c = f, t, c.Not()
	}
	if addNewClauses {
		x := d.NewVar()
		if polarity.wantsPos() {
			d.AddClauses([]Clause{
				{x.Not(), c.Not(), t},
				{x.Not(), c, f},
				{x.Not(), t, f},
			})
		}
		if polarity.wantsNeg() {
			d.AddClauses([]Clause{
				{x, c.Not(), t.Not()},
				{x, c, f.Not()},
				{x, t.Not(), f.Not()},
			})
		}
		return litValue(x)
	}
	var pos, neg []Clause
	if polarity.wantsPos() {
		pos = []Clause{{c.Not(), t}, {c, f}, {t, f}}
	}
	if polarity.wantsNeg() {
		neg = []Clause{{c.Not(), t.Not()}, {c, f.Not()}, {t.Not(), f.Not()}}
	}
	return deferredValue(pos, neg)
}

// All returns a Value equivalent to the conjunction of every literal in
// lits, deduplicated, short-circuiting to FALSE on a contradictory pair
// {v, ¬v}.
func (d *Driver) All(lits []Lit, polarity Polarity) Value {
	return d.all(lits, polarity)
}

func (d *Driver) all(lits []Lit, polarity Polarity) Value {
	seen := make(map[Lit]bool, len(lits))
	var vals []Lit
	for _, v := range lits {
		if v == TRUE {
			continue
		}
		if v == FALSE || seen[-v] {
			return litValue(FALSE)
		}
		if !seen[v] {
			seen[v] = true
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return litValue(TRUE)
	}
	if len(vals) == 1 {
		return litValue(vals[0])
	}
	var pos, neg []Clause
	if polarity.wantsPos() {
		for _, v := range vals {
			pos = append(pos, Clause{v})
		}
	}
	if polarity.wantsNeg() {
		negClause := make(Clause, len(vals))
		for i, v := range vals {
			negClause[i] = v.Not()
		}
		neg = []Clause{negClause}
	}
	return deferredValue(pos, neg)
}

// Any returns a Value equivalent to the disjunction of every literal in
// lits, dual to All.
func (d *Driver) Any(lits []Lit, polarity Polarity) Value {
	return d.any(lits, polarity)
}

func (d *Driver) any(lits []Lit, polarity Polarity) Value {
	seen := make(map[Lit]bool, len(lits))
	var vals []Lit
	for _, v := range lits {
		if v == FALSE {
			continue
		}
		if v == TRUE || seen[-v] {
			return litValue(TRUE)
		}
		if !seen[v] {
			seen[v] = true
			vals = append(vals, v)
		}
	}
	if len(vals) == 0 {
		return litValue(FALSE)
	}
	if len(vals) == 1 {
		return litValue(vals[0])
	}
	var pos, neg []Clause
	if polarity.wantsPos() {
		clause := make(Clause, len(vals))
		copy(clause, vals)
		pos = []Clause{clause}
	}
	if polarity.wantsNeg() {
		for _, v := range vals {
			neg = append(neg, Clause{v.Not()})
		}
	}
	return deferredValue(pos, neg)
}

// CombinatorFunc constructors, used with Require/Prevent.

// AndFunc returns a CombinatorFunc for And(f, g).
func (d *Driver) AndFunc(f, g Lit) CombinatorFunc {
	return func(polarity Polarity) Value { return d.And(f, g, polarity, false) }
}

// OrFunc returns a CombinatorFunc for Or(f, g).
func (d *Driver) OrFunc(f, g Lit) CombinatorFunc {
	return func(polarity Polarity) Value { return d.Or(f, g, polarity, false) }
}

// XorFunc returns a CombinatorFunc for Xor(f, g).
func (d *Driver) XorFunc(f, g Lit) CombinatorFunc {
	return func(polarity Polarity) Value { return d.Xor(f, g, polarity, false) }
}

// IteFunc returns a CombinatorFunc for Ite(c, t, f).
func (d *Driver) IteFunc(c, t, f Lit) CombinatorFunc {
	return func(polarity Polarity) Value { return d.Ite(c, t, f, polarity, false) }
}

// AllFunc returns a CombinatorFunc for All(lits).
func (d *Driver) AllFunc(lits []Lit) CombinatorFunc {
	return func(polarity Polarity) Value { return d.all(lits, polarity) }
}

// AnyFunc returns a CombinatorFunc for Any(lits).
func (d *Driver) AnyFunc(lits []Lit) CombinatorFunc {
	return func(polarity Polarity) Value { return d.any(lits, polarity) }
}

// AtMostOneNSQ returns a Value true iff at most one literal in vals is
// true, encoded as the pairwise conjunction of OR-of-complements over all
// C(n,2) pairs. Suitable for small n; for larger n prefer AtMostOneBDD.
func (d *Driver) AtMostOneNSQ(vals []Lit, polarity Polarity) Value {
	var combos []Value
	for i := 0; i < len(vals); i++ {
		for j := i + 1; j < len(vals); j++ {
			combos = append(combos, d.Or(vals[i].Not(), vals[j].Not(), polarity, false))
		}
	}
	return d.Combine(combos, polarity)
}

// AtMostOneBDD returns a Value true iff at most one literal in vals is
// true, via the pseudo-boolean encoder (LinearBound(vals, 1s, 0, 1, ...)).
// Preferred over AtMostOneNSQ for larger vals.
func (d *Driver) AtMostOneBDD(vals []Lit, polarity Polarity) Value {
	coeffs := onesLike(vals)
	return d.LinearBoundValue(vals, coeffs, 0, 1, true, polarity)
}

// ExactlyOneNSQ returns a Value true iff exactly one literal in vals is
// true, via the pairwise encoding.
func (d *Driver) ExactlyOneNSQ(vals []Lit, polarity Polarity) Value {
	v1 := d.AtMostOneNSQ(vals, polarity)
	v2 := d.any(vals, polarity)
	return d.Combine([]Value{v1, v2}, polarity)
}

// ExactlyOneBDD returns a Value true iff exactly one literal in vals is
// true, via the pseudo-boolean encoder.
func (d *Driver) ExactlyOneBDD(vals []Lit, polarity Polarity) Value {
	coeffs := onesLike(vals)
	return d.LinearBoundValue(vals, coeffs, 1, 1, true, polarity)
}

func onesLike(vals []Lit) []int {
	coeffs := make([]int, len(vals))
	for i := range coeffs {
		coeffs[i] = 1
	}
	return coeffs
}
