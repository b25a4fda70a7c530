package logic

// Clause is a non-empty disjunction of literals.
type Clause []Lit

// State is an opaque token identifying a point in a ClauseStore's history,
// returned by SaveState and consumed by RestoreState.
type State int

// ClauseStore is an append-only store of CNF clauses supporting O(1)
// amortized append and state-stack rollback. Two representations are
// provided: clauseList (list of clause slices, easy to inspect) and
// clauseArray (flat zero-terminated int slice, cache-friendly for bulk
// handoff to a backend). Both satisfy this interface identically.
type ClauseStore interface {
	Append(c Clause)
	Extend(cs []Clause)
	ClauseCount() int
	SaveState() State
	RestoreState(s State)
	AsList() []Clause
	AsFlatArray() []int32
}

// clauseList stores clauses as an ordered slice of clause slices. Append
// and rollback are both O(1) amortized/O(k); ClauseCount is O(1).
type clauseList struct {
	clauses []Clause
}

func newClauseList() *clauseList {
	return &clauseList{}
}

func (s *clauseList) Append(c Clause) {
	s.clauses = append(s.clauses, c)
}

func (s *clauseList) Extend(cs []Clause) {
	for _, c := range cs {
		s.Append(c)
	}
}

func (s *clauseList) ClauseCount() int {
	return len(s.clauses)
}

func (s *clauseList) SaveState() State {
	return State(len(s.clauses))
}

func (s *clauseList) RestoreState(saved State) {
	s.clauses = s.clauses[:int(saved)]
}

func (s *clauseList) AsList() []Clause {
	return s.clauses
}

func (s *clauseList) AsFlatArray() []int32 {
	out := make([]int32, 0, len(s.clauses)*3)
	for _, c := range s.clauses {
		for _, l := range c {
			out = append(out, int32(l))
		}
		out = append(out, 0)
	}
	return out
}

// clauseArray stores clauses as a flat sequence of ints, each clause
// terminated by a 0. Append is O(1) amortized; ClauseCount is O(n) since
// the clause count isn't tracked separately, so it should be used
// sparingly on this representation.
type clauseArray struct {
	flat []int32
}

func newClauseArray() *clauseArray {
	return &clauseArray{}
}

func (s *clauseArray) Append(c Clause) {
	for _, l := range c {
		s.flat = append(s.flat, int32(l))
	}
	s.flat = append(s.flat, 0)
}

func (s *clauseArray) Extend(cs []Clause) {
	for _, c := range cs {
		s.Append(c)
	}
}

func (s *clauseArray) ClauseCount() int {
	n := 0
	for _, v := range s.flat {
		if v == 0 {
			n++
		}
	}
	return n
}

func (s *clauseArray) SaveState() State {
	return State(len(s.flat))
}

func (s *clauseArray) RestoreState(saved State) {
	s.flat = s.flat[:int(saved)]
}

func (s *clauseArray) AsList() []Clause {
	var out []Clause
	var cur Clause
	for _, v := range s.flat {
		if v == 0 {
			out = append(out, cur)
			cur = nil
			continue
		}
		cur = append(cur, Lit(v))
	}
	return out
}

func (s *clauseArray) AsFlatArray() []int32 {
	return s.flat
}
