package logic

// Value is the result of a combinator call: either a literal (a constant
// or an existing literal result of a short-circuit), or a deferred pair of
// clause sets whose materialization is controlled by polarity. pos is the
// set of clauses to emit when the result is required true; neg is the set
// to emit when it is required false.
type Value struct {
	isLit bool
	lit   Lit
	pos   []Clause
	neg   []Clause
}

// litValue wraps a literal (including TRUE/FALSE) as a Value.
func litValue(l Lit) Value {
	return Value{isLit: true, lit: l}
}

// LitValue wraps an already-computed literal as a Value suitable for
// Require/Prevent, for callers outside this package that built the
// literal via a combinator call of their own (internal/resolver's
// constraint compiler, which eagerly materializes each constraint before
// requiring it).
func LitValue(l Lit) Value {
	return litValue(l)
}

// deferredValue wraps a (pos, neg) Tseitin clause pair as a Value.
func deferredValue(pos, neg []Clause) Value {
	return Value{pos: pos, neg: neg}
}

// IsLit reports whether the Value is already a literal (no pending
// clauses).
func (v Value) IsLit() bool { return v.isLit }

// Lit returns the wrapped literal. Only meaningful if IsLit is true.
func (v Value) Lit() Lit { return v.lit }

// Combine conjoins a list of combinator results under the given polarity,
// the way AtMostOne+Any are conjoined into ExactlyOne, or a BDD result is
// conjoined with a pruned-terms conjunct. Mirrors _logic.py's Combine.
func (d *Driver) Combine(vals []Value, polarity Polarity) Value {
	for _, v := range vals {
		if v.isLit && v.lit == FALSE {
			return litValue(FALSE)
		}
	}
	kept := vals[:0:0]
	for _, v := range vals {
		if v.isLit && v.lit == TRUE {
			continue
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return litValue(TRUE)
	}
	if len(kept) == 1 {
		return kept[0]
	}

	allDeferred := true
	for _, v := range kept {
		if v.isLit {
			allDeferred = false
			break
		}
	}
	if allDeferred {
		var pos, neg []Clause
		for _, v := range kept {
			pos = append(pos, v.pos...)
			neg = append(neg, v.neg...)
		}
		return deferredValue(pos, neg)
	}

	lits := make([]Lit, len(kept))
	for i, v := range kept {
		lits[i] = d.Assign(v)
	}
	return d.all(lits, polarity)
}
