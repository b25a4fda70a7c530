package logic

import "sort"

// This file implements the pseudo-boolean bound encoder described in
// spec.md §4.5: LinearBound reduces `lo <= Σ cᵢxᵢ <= hi` to a small set of
// Tseitin-style clauses via a memoized binary decision diagram, mirroring
// _logic.py's LB_Preprocess/BDD/LinearBound. Unlike the Python original's
// recursive BDD, node construction here runs over an explicit work stack so
// that term counts in the thousands never risk a deep Go call stack.

// term pairs a coefficient with the literal it multiplies.
type term struct {
	coeff int
	lit   Lit
}

// LB_Preprocess drops zero-coefficient terms, flips negative-coefficient
// terms to their complementary literal with a positive coefficient
// (for c < 0, c·x = c + (-c)·(1-x): a constant c plus a positive term on
// ¬x, so the constant is moved out of the sum by raising lo and hi by -c),
// and sorts the remaining terms by decreasing coefficient, exactly as
// _logic.py's LB_Preprocess. It returns the adjusted terms and the lo/hi
// bounds shifted by the accumulated constant.
func LB_Preprocess(coeffs []int, lits []Lit, lo, hi int) (terms []term, newLo, newHi int) {
	newLo, newHi = lo, hi
	for i, c := range coeffs {
		switch {
		case c == 0:
			continue
		case c < 0:
			newLo -= c
			newHi -= c
			terms = append(terms, term{coeff: -c, lit: lits[i].Not()})
		default:
			terms = append(terms, term{coeff: c, lit: lits[i]})
		}
	}
	sort.SliceStable(terms, func(i, j int) bool { return terms[i].coeff > terms[j].coeff })
	return terms, newLo, newHi
}

// bddKey memoizes a node by the index of the first unconsumed term and the
// bounds remaining against the suffix sum at that point.
type bddKey struct {
	index int
	lo    int
	hi    int
}

// bddBuilder holds the state threaded through one LinearBound call: the
// sorted terms, their suffix-sum table (for the trivial-TRUE/FALSE cutoffs),
// and the memo table mapping a (index, lo, hi) key to the literal
// representing that sub-BDD's root.
type bddBuilder struct {
	d       *Driver
	terms   []term
	suffix  []int // suffix[i] = sum of coeff for terms[i:]
	memo    map[bddKey]Lit
	stack   []bddKey // explicit work stack, replacing recursion
	visited map[bddKey]bool
}

// LinearBoundValue builds the BDD for `lo <= Σ cᵢxᵢ <= hi` over vals with
// coefficients coeffs and returns it as a Value under the requested
// polarity. When preprocess is true, LB_Preprocess is applied first;
// callers that have already normalized their terms (e.g. AtMostOneBDD,
// whose coefficients are already all 1) may pass false to skip the no-op
// work.
func (d *Driver) LinearBoundValue(vals []Lit, coeffs []int, lo, hi int, preprocess bool, polarity Polarity) Value {
	terms := make([]term, len(vals))
	for i, v := range vals {
		terms[i] = term{coeff: coeffs[i], lit: v}
	}
	if preprocess {
		terms, lo, hi = LB_Preprocess(coeffs, vals, lo, hi)
	}
	lit := d.LinearBound(terms, lo, hi)
	return litValue(lit)
}

// LinearBound is the literal-returning core of the encoder: given
// already-preprocessed terms (positive coefficients, decreasing order) and
// bounds, it returns a single literal equivalent to the constraint,
// allocating Tseitin variables and emitting their defining clauses via Ite
// as needed. A constraint trivially satisfied or violated before any
// variable is consulted returns TRUE or FALSE directly without allocating.
//
// Terms sort decreasing, so any leading run whose coefficient alone
// exceeds hi can never appear in a valid assignment; LinearBound prunes
// that run before building the BDD (shrinking the node count the BDD has
// to consider) and forces each pruned literal false via a separate
// conjunct, mirroring _logic.py's LinearBound nprune/prune handling.
func (d *Driver) LinearBound(terms []term, lo, hi int) Lit {
	var pruned []term
	for len(terms) > 0 && terms[0].coeff > hi {
		pruned = append(pruned, terms[0])
		terms = terms[1:]
	}

	total := 0
	for _, t := range terms {
		total += t.coeff
	}

	var res Lit
	switch {
	case lo <= 0 && hi >= total:
		res = TRUE
	case hi < 0 || lo > total:
		res = FALSE
	default:
		b := &bddBuilder{
			d:       d,
			terms:   terms,
			suffix:  make([]int, len(terms)+1),
			memo:    make(map[bddKey]Lit),
			visited: make(map[bddKey]bool),
		}
		for i := len(terms) - 1; i >= 0; i-- {
			b.suffix[i] = b.suffix[i+1] + terms[i].coeff
		}
		res = b.build(bddKey{index: 0, lo: lo, hi: hi})
	}

	if len(pruned) == 0 {
		return res
	}
	forced := make([]Lit, len(pruned))
	for i, t := range pruned {
		forced[i] = t.lit.Not()
	}
	combined := d.Combine([]Value{litValue(res), d.all(forced, PolarityBoth)}, PolarityBoth)
	return d.Assign(combined)
}

// trivial reports whether the node at key is decidable without consulting
// any more terms, given the achievable sum range of the remaining suffix.
func (b *bddBuilder) trivial(key bddKey) (Lit, bool) {
	remaining := b.suffix[key.index]
	if key.lo <= 0 && key.hi >= remaining {
		return TRUE, true
	}
	if key.hi < 0 || key.lo > remaining {
		return FALSE, true
	}
	return 0, false
}

// build constructs (or fetches from memo) the literal for key, using an
// explicit stack to process a node's two children (term included / term
// excluded) before the node itself, avoiding recursion depth proportional
// to term count.
func (b *bddBuilder) build(root bddKey) Lit {
	b.stack = append(b.stack, root)
	for len(b.stack) > 0 {
		key := b.stack[len(b.stack)-1]

		if _, ok := b.memo[key]; ok {
			b.stack = b.stack[:len(b.stack)-1]
			continue
		}
		if lit, ok := b.trivial(key); ok {
			b.memo[key] = lit
			b.stack = b.stack[:len(b.stack)-1]
			continue
		}

		t := b.terms[key.index]
		includeKey := bddKey{index: key.index + 1, lo: key.lo - t.coeff, hi: key.hi - t.coeff}
		excludeKey := bddKey{index: key.index + 1, lo: key.lo, hi: key.hi}

		includeLit, haveInclude := b.resolve(includeKey)
		excludeLit, haveExclude := b.resolve(excludeKey)
		if !haveInclude {
			b.stack = append(b.stack, includeKey)
			continue
		}
		if !haveExclude {
			b.stack = append(b.stack, excludeKey)
			continue
		}

		val := b.d.Ite(t.lit, includeLit, excludeLit, PolarityBoth, true)
		b.memo[key] = val.Lit()
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b.memo[root]
}

// resolve returns a child's literal if already decided (trivially or via
// memo), without pushing it onto the work stack.
func (b *bddBuilder) resolve(key bddKey) (Lit, bool) {
	if lit, ok := b.memo[key]; ok {
		return lit, true
	}
	if lit, ok := b.trivial(key); ok {
		b.memo[key] = lit
		return lit, true
	}
	return 0, false
}
