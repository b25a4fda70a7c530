package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/pkgsolve/pkgsolve/internal/satbackend/naive"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := NewDriver("naive", 0, WithDebugAssertions())
	require.NoError(t, err)
	return d
}

func TestNewVarMonotonic(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, d.NumVars())
}

func TestSaveRestoreDiscardsClauses(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	saved := d.SaveState()
	d.AddClause(Clause{a})
	assert.Equal(t, 1, d.ClauseCount())
	d.RestoreState(saved)
	assert.Equal(t, 0, d.ClauseCount())
}

func TestRestoreStalePanics(t *testing.T) {
	d := newTestDriver(t)
	_ = d.NewVar()
	outer := d.SaveState()
	d.AddClause(Clause{1})
	inner := d.SaveState()
	d.AddClause(Clause{-1})
	d.RestoreState(outer)
	assert.Panics(t, func() { d.RestoreState(inner) })
}

func TestRequireUnsatisfiableSetsUnsat(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	d.Require(func(p Polarity) Value { return litValue(a) })
	d.Require(func(p Polarity) Value { return litValue(a.Not()) })
	assert.True(t, d.Unsat())

	model, err := d.Solve(nil, false, 0)
	require.NoError(t, err)
	assert.Nil(t, model)
}

func TestSolveSatisfiable(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()
	d.AddClause(Clause{a, b})
	model, err := d.Solve(nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, model)

	sat := false
	for _, l := range model {
		if l == a || l == b {
			sat = true
		}
	}
	assert.True(t, sat)
}

func TestSolveAdditionalProbeDoesNotCommit(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	d.AddClause(Clause{a})

	before := d.ClauseCount()
	model, err := d.Solve([]Clause{{a.Not()}}, false, 0)
	require.NoError(t, err)
	assert.Nil(t, model) // a and !a together is unsat

	assert.Equal(t, before, d.ClauseCount())
	// the underlying constraint (a must be true) still holds on its own
	model, err = d.Solve(nil, false, 0)
	require.NoError(t, err)
	require.NotNil(t, model)
}

func TestSolveAdditionalIncludeIfCommits(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	before := d.ClauseCount()
	model, err := d.Solve([]Clause{{a}}, true, 0)
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Greater(t, d.ClauseCount(), before)
}

// countingBackend is a mock Backend that records how many times Solve is
// invoked, for TestUnsatSkipsBackendAfterRequireFalse (spec.md §8
// property 8).
type countingBackend struct {
	calls int
}

func (b *countingBackend) Solve([]Clause, int, int) (Model, bool, error) {
	b.calls++
	return nil, false, nil
}

func TestUnsatSkipsBackendAfterRequireFalse(t *testing.T) {
	backend := &countingBackend{}
	d := &Driver{store: newClauseList(), backend: backend, debugAssertions: true}
	d.NewVar()

	d.Require(func(Polarity) Value { return litValue(FALSE) })
	require.True(t, d.Unsat())

	for i := 0; i < 3; i++ {
		model, err := d.Solve(nil, false, 0)
		require.NoError(t, err)
		assert.Nil(t, model)
	}
	assert.Equal(t, 0, backend.calls, "a sticky-unsat driver must never invoke the backend")
}

func TestAssignMaterializesDeferredValue(t *testing.T) {
	d := newTestDriver(t)
	a := d.NewVar()
	b := d.NewVar()
	v := d.And(a, b, PolarityBoth, false)
	require.False(t, v.IsLit())
	x := d.Assign(v)

	d.Require(func(p Polarity) Value { return litValue(a) })
	d.Require(func(p Polarity) Value { return litValue(b) })
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
