package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClauseListSaveRestore(t *testing.T) {
	s := newClauseList()
	s.Append(Clause{1, 2})
	saved := s.SaveState()
	s.Extend([]Clause{{3}, {4, -5}})
	assert.Equal(t, 3, s.ClauseCount())
	s.RestoreState(saved)
	assert.Equal(t, 1, s.ClauseCount())
	assert.Equal(t, []Clause{{1, 2}}, s.AsList())
}

func TestClauseArrayMatchesListSemantics(t *testing.T) {
	s := newClauseArray()
	s.Append(Clause{1, 2})
	saved := s.SaveState()
	s.Extend([]Clause{{3}, {4, -5}})
	assert.Equal(t, 3, s.ClauseCount())
	s.RestoreState(saved)
	assert.Equal(t, 1, s.ClauseCount())
	assert.Equal(t, []Clause{{1, 2}}, s.AsList())
}

func TestClauseArrayFlatRoundTrips(t *testing.T) {
	s := newClauseArray()
	s.Append(Clause{1, -2})
	s.Append(Clause{3})
	assert.Equal(t, []int32{1, -2, 0, 3, 0}, s.AsFlatArray())
}
