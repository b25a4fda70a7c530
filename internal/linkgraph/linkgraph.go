// Package linkgraph orders a resolved set of releases into an install
// (link) and uninstall (unlink) sequence, so a parent is always
// installed before its dependents and removed only after them.
//
// Grounded on PrefixGraph in conda/models/prefix_graph.py: a graph
// keyed by record, whose edges point from a record to the records
// matching its depends field ("parent" in that file's terminology —
// this package calls the same relation Dependencies, the more common
// Go name for an edge pointing at a prerequisite). _toposort there
// walks Kahn's algorithm and raises CyclicalDependencyError on a
// leftover cycle; LinkOrder below does the same walk using a FIFO
// queue of zero-remaining-dependency nodes, returning ErrCycle
// instead.
package linkgraph

import (
	"errors"
	"fmt"
)

// ErrCycle is returned when the dependency graph contains a cycle, so
// no valid link order exists.
var ErrCycle = errors.New("linkgraph: dependency cycle detected")

// Node is a single installable unit: an Identifier plus the
// Identifiers of the other Nodes it depends on. Depends entries not
// present in the Graph's own Node set are ignored, since they name
// something outside the set being ordered (already installed, or not
// part of this solve).
type Node struct {
	Identifier string
	Depends    []string
}

// Graph is a dependency graph over a fixed set of Nodes.
type Graph struct {
	nodes map[string]Node
	order []string // insertion order, for deterministic iteration
}

// New builds a Graph from nodes. Duplicate Identifiers are an error:
// the caller's resolved set should already be deduplicated by
// resolver.Solve, so a duplicate here indicates a caller bug.
func New(nodes []Node) (*Graph, error) {
	g := &Graph{nodes: make(map[string]Node, len(nodes)), order: make([]string, 0, len(nodes))}
	for _, n := range nodes {
		if _, exists := g.nodes[n.Identifier]; exists {
			return nil, fmt.Errorf("linkgraph: duplicate node %q", n.Identifier)
		}
		g.nodes[n.Identifier] = n
		g.order = append(g.order, n.Identifier)
	}
	return g, nil
}

// LinkOrder returns Identifiers ordered so that every Node appears
// after all the Nodes it Depends on — the order in which releases
// should be installed. The output is deterministic: a FIFO queue is
// seeded with dependency-free Nodes in insertion order, and every other
// Node is queued as soon as its last in-graph dependency is emitted, so
// Nodes with no dependency relationship between them do not necessarily
// appear in insertion order.
func (g *Graph) LinkOrder() ([]string, error) {
	return g.toposort(func(n Node) []string { return n.Depends })
}

// UnlinkOrder returns Identifiers ordered so that every Node appears
// before all the Nodes it Depends on — the reverse of LinkOrder,
// removing dependents before their dependencies.
func (g *Graph) UnlinkOrder() ([]string, error) {
	order, err := g.LinkOrder()
	if err != nil {
		return nil, err
	}
	reversed := make([]string, len(order))
	for i, id := range order {
		reversed[len(order)-1-i] = id
	}
	return reversed, nil
}

// toposort runs Kahn's algorithm over edges(node) -> prerequisite
// identifiers, emitting a node only once every prerequisite present in
// the graph has already been emitted.
func (g *Graph) toposort(edges func(Node) []string) ([]string, error) {
	remaining := make(map[string]map[string]bool, len(g.nodes))
	dependents := make(map[string][]string, len(g.nodes))

	for _, id := range g.order {
		deps := make(map[string]bool)
		for _, dep := range edges(g.nodes[id]) {
			if _, ok := g.nodes[dep]; !ok {
				continue
			}
			deps[dep] = true
			dependents[dep] = append(dependents[dep], id)
		}
		remaining[id] = deps
	}

	var queue []string
	for _, id := range g.order {
		if len(remaining[id]) == 0 {
			queue = append(queue, id)
		}
	}

	out := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)

		for _, child := range dependents[id] {
			delete(remaining[child], id)
			if len(remaining[child]) == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(out) != len(g.nodes) {
		return nil, ErrCycle
	}
	return out, nil
}
