package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/pkgsolve/pkgsolve/internal/satbackend/naive"
)

func TestMinimizeEmptyObjective(t *testing.T) {
	d := newTestDriver(t)
	d.NewVar()
	result, err := d.Minimize(nil, nil, false, 0)
	require.NoError(t, err)
	assert.NotNil(t, result.Model)
}

func TestMinimizePrefersLowerPeakOverLowerSum(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar() // weight 10
	b := d.NewVar() // weight 1
	c := d.NewVar() // weight 1

	// Exactly one of {a, b, c} must be chosen.
	v := d.ExactlyOneBDD([]Lit{a, b, c}, PolarityTrue)
	d.Require(func(Polarity) Value { return v })

	result, err := d.Minimize([]Term{{Coeff: 10, Lit: a}, {Coeff: 1, Lit: b}, {Coeff: 1, Lit: c}}, nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, result.Model)

	assert.Equal(t, 1, result.Peak)
	assert.Equal(t, 1, result.Sum)

	aTrue := false
	for _, l := range result.Model {
		if l == a {
			aTrue = true
		}
	}
	assert.False(t, aTrue, "the high-weight term should not be selected when a lower-peak option exists")
}

func TestMinimizeUnsatisfiableReturnsNilModel(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	d.Require(func(Polarity) Value { return litValue(a) })
	d.Prevent(func(Polarity) Value { return litValue(a) })

	result, err := d.Minimize([]Term{{Coeff: 1, Lit: a}}, nil, false, 0)
	require.NoError(t, err)
	assert.Nil(t, result.Model)
}

func TestMinimizeMinimizesSumAtEqualPeak(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()

	result, err := d.Minimize([]Term{{Coeff: 1, Lit: a}, {Coeff: 1, Lit: b}}, nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, result.Model)
	assert.Equal(t, 0, result.Peak)
	assert.Equal(t, 0, result.Sum)

	for _, l := range result.Model {
		assert.NotEqual(t, a, l, "objective terms should be false when nothing forces them true")
		assert.NotEqual(t, b, l)
	}
}

// TestMinimizeSeededByInitialSolution exercises Minimize's initial/tryMax
// parameters: given a known-satisfying "all four active" starting model
// and a requirement that at least two of the four literals be selected
// (without which the true brute-force optimum is the degenerate
// everything-false assignment), Minimize must still bisect down from that
// seed to the genuine optimum of peak 1, sum 2 — not merely return the
// seed's own (worse) peak/sum of 5/12.
func TestMinimizeSeededByInitialSolution(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar() // weight 1
	b := d.NewVar() // weight 1
	c := d.NewVar() // weight 5
	e := d.NewVar() // weight 5

	atLeastTwo := d.LinearBoundValue([]Lit{a, b, c, e}, []int{1, 1, 1, 1}, 2, 4, true, PolarityTrue)
	d.Require(func(Polarity) Value { return atLeastTwo })

	initial, err := d.Solve([]Clause{{a}, {b}, {c}, {e}}, false, 0) // all four active
	require.NoError(t, err)
	require.NotNil(t, initial)
	objective := []Term{
		{Coeff: 1, Lit: a},
		{Coeff: 1, Lit: b},
		{Coeff: 5, Lit: c},
		{Coeff: 5, Lit: e},
	}

	result, err := d.Minimize(objective, initial, true, 0)
	require.NoError(t, err)
	require.NotNil(t, result.Model)

	assert.Equal(t, 1, result.Peak, "the at-least-two requirement forces a nonzero peak")
	assert.Equal(t, 2, result.Sum, "the cheapest way to satisfy at-least-two is both weight-1 literals")

	for _, l := range result.Model {
		assert.NotEqual(t, c, l, "a weight-5 literal should not be selected when a and b alone suffice")
		assert.NotEqual(t, e, l)
	}
}

// TestMinimizeMatchesBruteForceOptimum is spec.md §8 property 6: for small
// instances, Minimize's (peak, sum) must equal the true brute-force
// optimum over |lits| <= 10. Each case requires at least two of its
// literals selected, so the optimum is the smallest nontrivial one rather
// than the always-available all-false assignment.
func TestMinimizeMatchesBruteForceOptimum(t *testing.T) {
	cases := []struct {
		name   string
		coeffs []int
	}{
		{"ascending", []int{1, 2, 3, 4, 5, 6}},
		{"plateaued", []int{5, 5, 1, 1, 3, 3}},
		{"singleHeavy", []int{10, 1, 1, 1, 1, 1, 1}},
		{"allEqual", []int{4, 4, 4, 4}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := newTestDriver(t)
			n := len(c.coeffs)
			lits := make([]Lit, n)
			for i := range lits {
				lits[i] = d.NewVar()
			}

			atLeastTwo := d.LinearBoundValue(lits, onesLike(lits), 2, n, true, PolarityTrue)
			d.Require(func(Polarity) Value { return atLeastTwo })

			objective := make([]Term, n)
			for i, coeff := range c.coeffs {
				objective[i] = Term{Coeff: coeff, Lit: lits[i]}
			}

			wantPeak, wantSum := bruteForceOptimum(c.coeffs, 2)

			result, err := d.Minimize(objective, nil, false, 0)
			require.NoError(t, err)
			require.NotNil(t, result.Model)
			assert.Equal(t, wantPeak, result.Peak)
			assert.Equal(t, wantSum, result.Sum)
		})
	}
}

// bruteForceOptimum enumerates every subset of coeffs with at least
// atLeast members selected and returns the lexicographically smallest
// (peak, sum) pair, where peak is the largest coefficient among selected
// items and sum is their total.
func bruteForceOptimum(coeffs []int, atLeast int) (peak, sum int) {
	n := len(coeffs)
	bestPeak, bestSum := -1, -1
	for mask := 0; mask < (1 << n); mask++ {
		count, p, s := 0, 0, 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				count++
				s += coeffs[i]
				if coeffs[i] > p {
					p = coeffs[i]
				}
			}
		}
		if count < atLeast {
			continue
		}
		if bestPeak == -1 || p < bestPeak || (p == bestPeak && s < bestSum) {
			bestPeak, bestSum = p, s
		}
	}
	return bestPeak, bestSum
}
