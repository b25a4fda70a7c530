package resolver

import (
	"fmt"
	"strings"

	"github.com/pkgsolve/pkgsolve/internal/logic"
)

// DuplicateIdentifier is returned by compile when two Variables in the
// input share an Identifier.
type DuplicateIdentifier Identifier

func (e DuplicateIdentifier) Error() string {
	return fmt.Sprintf("duplicate identifier %q in input", Identifier(e))
}

type inconsistentMapping []error

func (inconsistentMapping) Error() string { return "internal resolver failure" }

// mapping performs translation between Variables/Constraints and the
// logic.Lit values of the driver compiling them, the resolver package's
// analog of the teacher's litMapping/dict.
type mapping struct {
	inorder     []Variable
	variables   map[logic.Lit]Variable
	lits        map[Identifier]logic.Lit
	constraints map[logic.Lit]AppliedConstraint
	errs        inconsistentMapping
}

// compile allocates one driver variable per input Variable, then applies
// every Constraint as a permanent requirement on the driver. Constraints
// whose apply reduces to a constant true are dropped (trivially
// satisfied); a constant false immediately marks the driver unsat.
func compile(d *logic.Driver, variables []Variable) (*mapping, error) {
	m := &mapping{
		inorder:     variables,
		variables:   make(map[logic.Lit]Variable, len(variables)),
		lits:        make(map[Identifier]logic.Lit, len(variables)),
		constraints: make(map[logic.Lit]AppliedConstraint),
	}

	for _, v := range variables {
		if _, ok := m.lits[v.Identifier()]; ok {
			return nil, DuplicateIdentifier(v.Identifier())
		}
		lit := d.NewVar()
		m.lits[v.Identifier()] = lit
		m.variables[lit] = v
	}

	for _, v := range variables {
		for _, c := range v.Constraints() {
			lit := c.apply(d, m, v.Identifier())
			if lit == 0 {
				continue
			}
			m.constraints[lit] = AppliedConstraint{Variable: v, Constraint: c}
			d.Require(func(logic.Polarity) logic.Value { return logic.LitValue(lit) })
		}
	}

	return m, nil
}

// LitOf returns the literal corresponding to id, recording an internal
// error and returning 0 if id was never compiled.
func (m *mapping) LitOf(id Identifier) logic.Lit {
	if lit, ok := m.lits[id]; ok {
		return lit
	}
	m.errs = append(m.errs, fmt.Errorf("variable %q referenced but not provided", id))
	return 0
}

// VariableOf returns the Variable corresponding to lit, or zeroVariable.
func (m *mapping) VariableOf(lit logic.Lit) Variable {
	if v, ok := m.variables[lit]; ok {
		return v
	}
	return zeroVariable{}
}

// AnchorIdentifiers returns the Identifiers of every Variable with at
// least one anchor constraint, in input order.
func (m *mapping) AnchorIdentifiers() []Identifier {
	var ids []Identifier
	for _, v := range m.inorder {
		for _, c := range v.Constraints() {
			if c.anchor() {
				ids = append(ids, v.Identifier())
				break
			}
		}
	}
	return ids
}

// Selected returns, in input order, every Variable whose literal is true
// in model.
func (m *mapping) Selected(model logic.Model) []Variable {
	true_ := make(map[logic.Lit]bool, len(model))
	for _, l := range model {
		if l > 0 {
			true_[l] = true
		}
	}
	var result []Variable
	for _, v := range m.inorder {
		if true_[m.lits[v.Identifier()]] {
			result = append(result, v)
		}
	}
	return result
}

func (m *mapping) Error() error {
	if len(m.errs) == 0 {
		return nil
	}
	s := make([]string, len(m.errs))
	for i, err := range m.errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}
