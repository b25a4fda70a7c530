// Package resolver compiles a package dependency problem — a set of
// candidate package Variables, each carrying Constraints against other
// Identifiers — into internal/logic clauses, and reports back which
// Variables a satisfying, objective-minimal assignment selects. It plays
// the role the teacher's pkg/controller/registry/resolver/solver package
// plays for Kubernetes operator bundles, adapted to package releases
// instead.
package resolver

// Identifier uniquely names a Variable within a single Solve call — a
// package@version candidate, in practice.
type Identifier string

func (id Identifier) String() string { return string(id) }

// Variable is the unit of the problem given to Solve: a candidate that
// may or may not be selected, together with the Constraints that bind its
// selection to others.
type Variable interface {
	Identifier() Identifier
	Constraints() []Constraint
}

// zeroVariable is returned by mapping.VariableOf for an unknown literal instead of nil, so
// callers can call Identifier()/Constraints() without a nil check.
type zeroVariable struct{}

var _ Variable = zeroVariable{}

func (zeroVariable) Identifier() Identifier    { return "" }
func (zeroVariable) Constraints() []Constraint { return nil }
