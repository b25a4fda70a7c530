package repodata

import (
	"fmt"

	"github.com/pkgsolve/pkgsolve/internal/resolver"
)

// variable adapts a Record into a resolver.Variable: one candidate
// release a solve may or may not select. Grounded on
// cache.NewOperatorFromBundle in
// pkg/controller/registry/resolver/cache/operators.go, which performs
// the analogous translation from a registry Bundle into the teacher's
// Operator/Variable type.
type variable struct {
	record      Record
	constraints []resolver.Constraint
}

func (v variable) Identifier() resolver.Identifier { return resolver.Identifier(v.record.Identifier()) }
func (v variable) Constraints() []resolver.Constraint { return v.constraints }

// Variables builds one resolver.Variable per candidate Record a
// requirement could resolve to, wiring each candidate's Depends into a
// resolver.Dependency on the matching candidates in all, and its
// Constrains into a resolver.Conflict with each candidate outside the
// allowed range.
//
// requested identifies the top-level package names the solve must
// include at least one release of; each requested name gets one extra
// synthetic anchor Variable ("@want:" plus the name), Mandatory and
// carrying a Dependency requiring one of that name's releases (the
// "anchor" edge the teacher's
// resolver.Dependency(subject, ...) plays for a Subscription's desired
// package), so Solve has something to require in order to pull the
// rest of the graph in.
func Variables(all []Record, requested []string) ([]resolver.Variable, error) {
	byName := make(map[string][]Record)
	for _, r := range all {
		byName[r.Name] = append(byName[r.Name], r)
	}

	vars := make([]resolver.Variable, 0, len(all))
	for _, r := range all {
		constraints, err := buildConstraints(r, byName)
		if err != nil {
			return nil, err
		}
		vars = append(vars, variable{record: r, constraints: constraints})
	}

	for _, name := range requested {
		releases, ok := byName[name]
		if !ok || len(releases) == 0 {
			return nil, fmt.Errorf("repodata: no candidate releases for requested package %q", name)
		}
		ids := make([]resolver.Identifier, len(releases))
		for i, r := range releases {
			ids[i] = resolver.Identifier(r.Identifier())
		}
		vars = append(vars, variable{
			record:      Record{Name: "@want:" + name},
			constraints: []resolver.Constraint{resolver.Mandatory(), resolver.Dependency(ids...)},
		})
	}

	return vars, nil
}

func buildConstraints(r Record, byName map[string][]Record) ([]resolver.Constraint, error) {
	var constraints []resolver.Constraint

	for _, dep := range r.Depends {
		candidates, err := Satisfying(byName[dep.Name], dep)
		if err != nil {
			return nil, fmt.Errorf("repodata: %s depends on %s: %w", r, dep, err)
		}
		if len(candidates) == 0 {
			return nil, fmt.Errorf("repodata: %s depends on %s, which no known release satisfies", r, dep)
		}
		ids := make([]resolver.Identifier, len(candidates))
		for i, c := range candidates {
			ids[i] = resolver.Identifier(c.Identifier())
		}
		constraints = append(constraints, resolver.Dependency(ids...))
	}

	for _, c := range r.Constrains {
		allowed, err := Satisfying(byName[c.Name], c)
		if err != nil {
			return nil, fmt.Errorf("repodata: %s constrains %s: %w", r, c, err)
		}
		allowedSet := make(map[string]bool, len(allowed))
		for _, ok := range allowed {
			allowedSet[ok.Identifier()] = true
		}
		for _, candidate := range byName[c.Name] {
			if !allowedSet[candidate.Identifier()] {
				constraints = append(constraints, resolver.Conflict(resolver.Identifier(candidate.Identifier())))
			}
		}
	}

	return constraints, nil
}
