package resolver

import (
	"fmt"
	"strings"

	"github.com/pkgsolve/pkgsolve/internal/logic"
)

// Constraint implementations limit the circumstances under which a
// particular Variable can appear in a solution. apply compiles the
// constraint into a logic.Lit that is true exactly when the constraint is
// satisfied, eagerly materializing any Tseitin variable it needs (mirrors
// the teacher's Constraint.apply(*gini/logic.C, ...) but against
// internal/logic.Driver instead of gini's circuit compiler).
type Constraint interface {
	String(subject Identifier) string
	apply(d *logic.Driver, m *mapping, subject Identifier) logic.Lit
	order() []Identifier
	anchor() bool
}

// zeroConstraint is returned by lookups that find no matching constraint.
type zeroConstraint struct{}

var _ Constraint = zeroConstraint{}

func (zeroConstraint) String(Identifier) string                             { return "" }
func (zeroConstraint) apply(*logic.Driver, *mapping, Identifier) logic.Lit { return 0 }
func (zeroConstraint) order() []Identifier                                  { return nil }
func (zeroConstraint) anchor() bool                                         { return false }

// AppliedConstraint composes a single Constraint with the Variable it
// applies to, for reporting.
type AppliedConstraint struct {
	Variable   Variable
	Constraint Constraint
}

func (a AppliedConstraint) String() string {
	return a.Constraint.String(a.Variable.Identifier())
}

type mandatory struct{}

func (mandatory) String(subject Identifier) string { return fmt.Sprintf("%s is mandatory", subject) }
func (mandatory) apply(_ *logic.Driver, m *mapping, subject Identifier) logic.Lit {
	return m.LitOf(subject)
}
func (mandatory) order() []Identifier { return nil }
func (mandatory) anchor() bool        { return true }

// Mandatory returns a Constraint permitting only solutions that contain a
// particular Variable.
func Mandatory() Constraint { return mandatory{} }

type prohibited struct{}

func (prohibited) String(subject Identifier) string {
	return fmt.Sprintf("%s is prohibited", subject)
}
func (prohibited) apply(_ *logic.Driver, m *mapping, subject Identifier) logic.Lit {
	return m.LitOf(subject).Not()
}
func (prohibited) order() []Identifier { return nil }
func (prohibited) anchor() bool        { return false }

// Prohibited returns a Constraint rejecting any solution that contains a
// particular Variable.
func Prohibited() Constraint { return prohibited{} }

type dependency []Identifier

func (constraint dependency) String(subject Identifier) string {
	if len(constraint) == 0 {
		return fmt.Sprintf("%s has a dependency without any candidates to satisfy it", subject)
	}
	s := make([]string, len(constraint))
	for i, each := range constraint {
		s[i] = string(each)
	}
	return fmt.Sprintf("%s requires at least one of %s", subject, strings.Join(s, ", "))
}

func (constraint dependency) apply(d *logic.Driver, m *mapping, subject Identifier) logic.Lit {
	lits := make([]logic.Lit, 0, len(constraint)+1)
	lits = append(lits, m.LitOf(subject).Not())
	for _, each := range constraint {
		lits = append(lits, m.LitOf(each))
	}
	return d.Assign(d.Any(lits, logic.PolarityBoth))
}

func (constraint dependency) order() []Identifier { return constraint }
func (dependency) anchor() bool                    { return false }

// Dependency returns a Constraint that only permits solutions containing
// subject on the condition that at least one of ids also appears in the
// solution. Solve expresses no preference among the ids.
func Dependency(ids ...Identifier) Constraint { return dependency(ids) }

type conflict Identifier

func (constraint conflict) String(subject Identifier) string {
	return fmt.Sprintf("%s conflicts with %s", subject, Identifier(constraint))
}
func (constraint conflict) apply(d *logic.Driver, m *mapping, subject Identifier) logic.Lit {
	return d.Assign(d.Or(m.LitOf(subject).Not(), m.LitOf(Identifier(constraint)).Not(), logic.PolarityBoth, false))
}
func (conflict) order() []Identifier { return nil }
func (conflict) anchor() bool        { return false }

// Conflict returns a Constraint permitting solutions containing either
// subject, id, or neither, but not both.
func Conflict(id Identifier) Constraint { return conflict(id) }

type atMost struct {
	ids []Identifier
	n   int
}

func (constraint atMost) String(subject Identifier) string {
	s := make([]string, len(constraint.ids))
	for i, each := range constraint.ids {
		s[i] = string(each)
	}
	return fmt.Sprintf("%s permits at most %d of %s", subject, constraint.n, strings.Join(s, ", "))
}

func (constraint atMost) apply(d *logic.Driver, m *mapping, _ Identifier) logic.Lit {
	lits := make([]logic.Lit, len(constraint.ids))
	coeffs := make([]int, len(constraint.ids))
	for i, each := range constraint.ids {
		lits[i] = m.LitOf(each)
		coeffs[i] = 1
	}
	return d.Assign(d.LinearBoundValue(lits, coeffs, 0, constraint.n, false, logic.PolarityBoth))
}

func (atMost) order() []Identifier { return nil }
func (atMost) anchor() bool        { return false }

// AtMost returns a Constraint forbidding solutions that contain more than
// n of the Variables identified by ids, encoded via the pseudo-boolean
// BDD rather than the teacher's pairwise sorting network.
func AtMost(n int, ids ...Identifier) Constraint {
	return atMost{ids: ids, n: n}
}
