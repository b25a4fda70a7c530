package logic

import "sort"

// This file implements the multi-objective bisection minimizer described
// in spec.md §4.7: given an objective of (coefficient, literal) pairs,
// Minimize first drives down the objective's peak (its largest active
// coefficient) and then, holding that peak fixed, drives down its sum —
// mirroring _logic.py's minimize() two-phase bisection and its try0/tryMax
// shortcuts that skip bisection entirely when the best or worst case is
// already decisive.

// Term pairs an objective coefficient with the literal it is charged
// against. Negative coefficients are accepted and normalized by
// LB_Preprocess internally, exactly as for LinearBound.
type Term struct {
	Coeff int
	Lit   Lit
}

// Result reports the outcome of a Minimize call: the final model, and the
// peak and sum the objective settled at. Peak and Sum are zero and Model
// is nil when the underlying clause set is unsatisfiable at any objective
// value whatsoever.
type Result struct {
	Model Model
	Peak  int
	Sum   int
}

// Minimize searches for a satisfying assignment minimizing objective
// lexicographically by (peak, sum): first the largest coefficient among
// literals assigned true, then the total of all such coefficients. This
// two-phase order matches the teacher's version-preference objective,
// where avoiding any one severely out-of-date package outweighs the
// cumulative staleness of many mildly out-of-date ones.
//
// initial, if non-nil, is a model already known to satisfy the current
// clause set — typically a previous Minimize or Solve result — used to
// seed the search the way _logic.py's minimize(lits, coeffs, bestsol,
// trymax) takes bestsol: its own peak bounds how high the peak-phase
// bisection ever needs to search, since a feasible peak is already in
// hand. Minimize trusts initial rather than re-verifying it, exactly as
// _logic.py trusts bestsol: an initial too short for the current
// variable count is discarded and Minimize falls back to probing for a
// witness itself, but an initial that does not actually satisfy the
// clause set is not detected. A nil initial
// costs one extra SAT probe to establish that some model exists at all
// before bisecting.
//
// tryMax, when true, has the sum phase try the largest feasible sum
// (total-1) as its very first probe before falling back to ordinary
// bisection, mirroring _logic.py's trymax=True: a shortcut for callers
// whose objective is expected to land at or near its ceiling, where
// bisecting down from the top costs one probe instead of O(log total).
//
// limit bounds each internal SAT probe's effort exactly as in Solve; a
// probe that hits the limit is treated as infeasible at that bound, which
// biases the search toward looser (larger) peak/sum values but never
// toward an incorrect model.
func (d *Driver) Minimize(objective []Term, initial Model, tryMax bool, limit int) (Result, error) {
	if len(initial) < d.m {
		initial = nil
	}

	if len(objective) == 0 {
		if initial != nil {
			return Result{Model: initial}, nil
		}
		model, err := d.Solve(nil, false, limit)
		return Result{Model: model}, err
	}

	coeffs := make([]int, len(objective))
	lits := make([]Lit, len(objective))
	for i, t := range objective {
		coeffs[i] = t.Coeff
		lits[i] = t.Lit
	}
	terms, _, _ := LB_Preprocess(coeffs, lits, 0, 0)
	if len(terms) == 0 {
		if initial != nil {
			return Result{Model: initial}, nil
		}
		model, err := d.Solve(nil, false, limit)
		return Result{Model: model}, err
	}

	dict := make(map[Lit]int, len(terms))
	for _, t := range terms {
		dict[t.lit] = t.coeff
	}

	levels := distinctAscending(terms)
	upper := len(levels) - 1
	if initial != nil {
		maxPeak := objVal(initial, dict, true)
		for upper > 0 && levels[upper] > maxPeak {
			upper--
		}
	} else {
		// No initial model: confirm the clause set is satisfiable at all
		// before spending any bisection steps, by placing no bound on the
		// peak or sum.
		if ok, err := d.probeBound(nil, 0, 0, limit); err != nil {
			return Result{}, err
		} else if !ok {
			return Result{}, nil
		}
	}

	// try0: the cheap, common case where no objective term need be active
	// at all (peak == 0, every literal forced false).
	if ok, err := d.probePeak(terms, 0, limit); err != nil {
		return Result{}, err
	} else if ok {
		d.commitPeak(terms, 0)
		return d.minimizeSum(terms, 0, tryMax, limit)
	}

	peakIdx, err := bisectMin(0, upper, func(i int) (bool, error) {
		return d.probePeak(terms, levels[i], limit)
	})
	if err != nil {
		return Result{}, err
	}
	peak := levels[peakIdx]
	d.commitPeak(terms, peak)
	return d.minimizeSum(terms, peak, tryMax, limit)
}

// objVal evaluates the objective's peak (largest active coefficient) or
// sum (total of active coefficients) against model, via dict mapping
// each objective term's literal to its coefficient.
func objVal(model Model, dict map[Lit]int, peak bool) int {
	if peak {
		max := 0
		for _, l := range model {
			if c := dict[l]; c > max {
				max = c
			}
		}
		return max
	}
	sum := 0
	for _, l := range model {
		sum += dict[l]
	}
	return sum
}

// minimizeSum runs the sum phase of Minimize, holding peak fixed (already
// committed to the clause store by the caller), and commits the minimal
// feasible sum bound before solving the final model.
func (d *Driver) minimizeSum(terms []term, peak int, tryMax bool, limit int) (Result, error) {
	active := activeTerms(terms, peak)
	total := 0
	for _, t := range active {
		total += t.coeff
	}

	hi := total
	if tryMax && total > 0 {
		ok, err := d.probeBound(active, 0, total-1, limit)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return d.finalizeSum(active, peak, total, limit)
		}
		hi = total - 1
	}

	sum, err := bisectMin(0, hi, func(candidate int) (bool, error) {
		return d.probeBound(active, 0, candidate, limit)
	})
	if err != nil {
		return Result{}, err
	}
	return d.finalizeSum(active, peak, sum, limit)
}

// finalizeSum commits `Σ(active) <= sum` permanently and solves for the
// final model, having already established via probeBound that sum is the
// minimal feasible bound.
func (d *Driver) finalizeSum(active []term, peak, sum, limit int) (Result, error) {
	saved := d.SaveState()
	lit := d.LinearBound(active, 0, sum)
	if lit != TRUE {
		d.AddClause(Clause{lit})
	}
	model, ok, err := d.solveStore(limit)
	if err != nil {
		d.RestoreState(saved)
		return Result{}, err
	}
	if !ok {
		// bisectMin found `sum` feasible by probe, yet the same bound
		// disagrees once actually committed: the bisection's monotonicity
		// assumption has been violated, which should not happen.
		d.RestoreState(saved)
		return Result{}, ErrBisectionInvariant
	}
	return Result{Model: model, Peak: peak, Sum: sum}, nil
}

// probePeak checks whether the clause set remains satisfiable once every
// term whose coefficient exceeds peak is forced false, without committing
// that restriction.
func (d *Driver) probePeak(terms []term, peak, limit int) (bool, error) {
	var forced []Clause
	for _, t := range terms {
		if t.coeff > peak {
			forced = append(forced, Clause{t.lit.Not()})
		}
	}
	if len(forced) == 0 {
		model, err := d.Solve(nil, false, limit)
		return model != nil, err
	}
	model, err := d.Solve(forced, false, limit)
	return model != nil, err
}

// commitPeak permanently forces every term whose coefficient exceeds peak
// to false.
func (d *Driver) commitPeak(terms []term, peak int) {
	for _, t := range terms {
		if t.coeff > peak {
			d.Require(func(Polarity) Value { return litValue(t.lit.Not()) })
		}
	}
}

// probeBound checks satisfiability of the current clause set together
// with lo <= Σ(terms) <= hi, without committing the BDD built to check it.
// A nil terms slice with lo == hi == 0 is the degenerate "no bound at all"
// probe used by Minimize when it has no initial model.
func (d *Driver) probeBound(terms []term, lo, hi, limit int) (bool, error) {
	if terms == nil {
		model, err := d.Solve(nil, false, limit)
		return model != nil, err
	}
	saved := d.SaveState()
	lit := d.LinearBound(terms, lo, hi)
	if lit != TRUE {
		d.AddClause(Clause{lit})
	}
	model, ok, err := d.solveStore(limit)
	d.RestoreState(saved)
	if err != nil {
		return false, err
	}
	return ok && model != nil, nil
}

// solveStore invokes the backend directly against the current store
// contents, bypassing Solve's additional-clause save/restore machinery
// (the caller manages its own save point around a BDD it built).
func (d *Driver) solveStore(limit int) (Model, bool, error) {
	if d.unsat {
		return nil, false, nil
	}
	return d.backend.Solve(d.store.AsList(), d.m, limit)
}

// activeTerms returns the subset of terms whose coefficient does not
// exceed peak — the terms still free to vary once the peak phase has
// pinned every larger-coefficient term to false.
func activeTerms(terms []term, peak int) []term {
	var out []term
	for _, t := range terms {
		if t.coeff <= peak {
			out = append(out, t)
		}
	}
	return out
}

// distinctAscending returns the distinct coefficients present in terms,
// sorted ascending, as candidate peak values for bisection (0 is always
// implicitly the lowest candidate and is checked separately by the try0
// shortcut).
func distinctAscending(terms []term) []int {
	seen := make(map[int]bool, len(terms))
	var out []int
	for _, t := range terms {
		if !seen[t.coeff] {
			seen[t.coeff] = true
			out = append(out, t.coeff)
		}
	}
	sort.Ints(out)
	return out
}

// bisectMin finds the smallest index i in [lo, hi] for which feasible(i)
// is true, assuming feasible is monotonically non-decreasing over the
// range (as it is for both the peak and sum phases: relaxing a bound
// never turns a satisfiable instance unsatisfiable) and that feasible(hi)
// is true.
func bisectMin(lo, hi int, feasible func(int) (bool, error)) (int, error) {
	for lo < hi {
		mid := lo + (hi-lo)/2
		ok, err := feasible(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, nil
}
