package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/pkgsolve/pkgsolve/internal/satbackend/naive"
)

// solveAndCheck asserts that d, with extra unit clauses fixing each
// variable named in want to the given boolean, is satisfiable.
func solveAndCheck(t *testing.T, d *Driver, want map[Lit]bool) {
	t.Helper()
	var extra []Clause
	for l, b := range want {
		if b {
			extra = append(extra, Clause{l})
		} else {
			extra = append(extra, Clause{l.Not()})
		}
	}
	model, err := d.Solve(extra, false, 0)
	require.NoError(t, err)
	assert.NotNil(t, model, "expected assignment %v to be satisfiable", want)
}

func TestAndShortCircuits(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	assert.Equal(t, litValue(FALSE), d.And(a, FALSE, PolarityBoth, false))
	assert.Equal(t, litValue(a), d.And(a, TRUE, PolarityBoth, false))
	assert.Equal(t, litValue(a), d.And(a, a, PolarityBoth, false))
	assert.Equal(t, litValue(FALSE), d.And(a, a.Not(), PolarityBoth, false))
}

func TestOrShortCircuits(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	assert.Equal(t, litValue(TRUE), d.Or(a, TRUE, PolarityBoth, false))
	assert.Equal(t, litValue(a), d.Or(a, FALSE, PolarityBoth, false))
	assert.Equal(t, litValue(a), d.Or(a, a, PolarityBoth, false))
	assert.Equal(t, litValue(TRUE), d.Or(a, a.Not(), PolarityBoth, false))
}

func TestAndEnforcesBothOperands(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()
	v := d.And(a, b, PolarityTrue, false)
	d.Require(func(Polarity) Value { return v })

	model, err := d.Solve(nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, model)

	var aTrue, bTrue bool
	for _, l := range model {
		if l == a {
			aTrue = true
		}
		if l == b {
			bTrue = true
		}
	}
	assert.True(t, aTrue)
	assert.True(t, bTrue)
}

func TestXorIsExclusive(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()
	v := d.Xor(a, b, PolarityTrue, false)
	d.Require(func(Polarity) Value { return v })

	model, err := d.Solve(nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, model)

	aTrue, bTrue := false, false
	for _, l := range model {
		if l == a {
			aTrue = true
		}
		if l == b {
			bTrue = true
		}
	}
	assert.NotEqual(t, aTrue, bTrue)
}

func TestIteSelectsBranch(t *testing.T) {
	d := newTestDriver(t)
	c := d.NewVar()
	thn := d.NewVar()
	els := d.NewVar()
	v := d.Ite(c, thn, els, PolarityBoth, true)
	x := d.Assign(v)

	d.Require(func(Polarity) Value { return litValue(c) })
	d.Require(func(Polarity) Value { return litValue(thn) })
	d.Prevent(func(Polarity) Value { return litValue(els) })

	model, err := d.Solve(nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, model)

	xTrue := false
	for _, l := range model {
		if l == x {
			xTrue = true
		}
	}
	assert.True(t, xTrue)
}

func TestAllDetectsContradiction(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	v := d.All([]Lit{a, a.Not()}, PolarityBoth)
	assert.Equal(t, litValue(FALSE), v)
}

func TestAnyShortCircuitsOnTrue(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	v := d.Any([]Lit{a, a, TRUE}, PolarityBoth)
	assert.Equal(t, litValue(TRUE), v)
}

func TestAtMostOneNSQRejectsTwoTrue(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()
	c := d.NewVar()
	v := d.AtMostOneNSQ([]Lit{a, b, c}, PolarityTrue)
	d.Require(func(Polarity) Value { return v })

	model, err := d.Solve([]Clause{{a}, {b}}, false, 0)
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestExactlyOneBDDPicksOne(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()
	c := d.NewVar()
	v := d.ExactlyOneBDD([]Lit{a, b, c}, PolarityTrue)
	d.Require(func(Polarity) Value { return v })

	model, err := d.Solve(nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, model)

	trueCount := 0
	for _, l := range model {
		if (l == a || l == b || l == c) && l > 0 {
			trueCount++
		}
	}
	assert.Equal(t, 1, trueCount)

	// Zero true should now be unsatisfiable.
	model, err = d.Solve([]Clause{{a.Not()}, {b.Not()}, {c.Not()}}, false, 0)
	require.NoError(t, err)
	assert.Nil(t, model)
}

// TestCombinatorsMatchTruthTableByEnumeration is spec.md §8 property 2:
// for each combinator, assigning its result and forcing that assignment
// true (resp. false) must be satisfiable exactly for the input
// combinations the combinator's truth table says are true (resp. false).
// Checked by full enumeration over every combinator's inputs, up to the
// n ≤ 4 variables the property names.
func TestCombinatorsMatchTruthTableByEnumeration(t *testing.T) {
	type combinator struct {
		name     string
		arity    int
		value    func(d *Driver, lits []Lit) Value
		expected func(bits []bool) bool
	}
	combinators := []combinator{
		{"And", 2, func(d *Driver, l []Lit) Value { return d.And(l[0], l[1], PolarityBoth, false) },
			func(b []bool) bool { return b[0] && b[1] }},
		{"Or", 2, func(d *Driver, l []Lit) Value { return d.Or(l[0], l[1], PolarityBoth, false) },
			func(b []bool) bool { return b[0] || b[1] }},
		{"Xor", 2, func(d *Driver, l []Lit) Value { return d.Xor(l[0], l[1], PolarityBoth, false) },
			func(b []bool) bool { return b[0] != b[1] }},
		{"Ite", 3, func(d *Driver, l []Lit) Value { return d.Ite(l[0], l[1], l[2], PolarityBoth, true) },
			func(b []bool) bool {
				if b[0] {
					return b[1]
				}
				return b[2]
			}},
		{"All", 4, func(d *Driver, l []Lit) Value { return d.All(l, PolarityBoth) },
			func(b []bool) bool { return b[0] && b[1] && b[2] && b[3] }},
		{"Any", 4, func(d *Driver, l []Lit) Value { return d.Any(l, PolarityBoth) },
			func(b []bool) bool { return b[0] || b[1] || b[2] || b[3] }},
	}

	for _, c := range combinators {
		t.Run(c.name, func(t *testing.T) {
			for mask := 0; mask < (1 << c.arity); mask++ {
				d := newTestDriver(t)
				lits := make([]Lit, c.arity)
				bits := make([]bool, c.arity)
				for i := range lits {
					lits[i] = d.NewVar()
					bits[i] = mask&(1<<i) != 0
				}
				x := d.Assign(c.value(d, lits))

				forced := make([]Clause, c.arity)
				for i, l := range lits {
					if bits[i] {
						forced[i] = Clause{l}
					} else {
						forced[i] = Clause{l.Not()}
					}
				}
				want := c.expected(bits)

				posModel, err := d.Solve(append(append([]Clause{}, forced...), Clause{x}), false, 0)
				require.NoError(t, err)
				assert.Equalf(t, want, posModel != nil, "%s bits=%v: x forced true", c.name, bits)

				negModel, err := d.Solve(append(append([]Clause{}, forced...), Clause{x.Not()}), false, 0)
				require.NoError(t, err)
				assert.Equalf(t, !want, negModel != nil, "%s bits=%v: x forced false", c.name, bits)
			}
		})
	}
}
