package resolver

import (
	"github.com/blang/semver/v4"
)

// Weigher assigns an objective coefficient to a Variable's Identifier:
// the cost Minimize charges against a solution for selecting it. Lower
// is preferred. The teacher's Priorities struct played this role for a
// single dimension (catalog source). SourcePriority and VersionRecency
// below compute per-source and per-version costs, but nothing in
// pkgsolve combines them into a Weigher: the solve command passes no
// Weigher to Solve, so its solves are unweighted.
type Weigher func(id Identifier) int

// SourcePriority assigns a base coefficient by the repository a release
// came from, mirroring the teacher's catalog-source priority tiers:
// earlier-listed sources are preferred, expressed as strictly increasing
// cost the further down the list a source appears.
type SourcePriority struct {
	order map[string]int
}

// NewSourcePriority builds a SourcePriority from sources in decreasing
// preference order (sources[0] is the most preferred).
func NewSourcePriority(sources []string) SourcePriority {
	order := make(map[string]int, len(sources))
	for i, s := range sources {
		order[s] = i * sourceWeightStep
	}
	return SourcePriority{order: order}
}

// sourceWeightStep is the coefficient gap between adjacent source
// preference tiers; chosen large enough that no plausible version-count
// difference between two sources' releases could ever outweigh a source
// preference (see VersionRecency below, whose per-version-behind cost is
// 1), so peak-then-sum bisection settles source choice before version
// choice.
const sourceWeightStep = 1 << 20

// Weight returns source's coefficient, or a cost one tier worse than the
// least-preferred configured source if source is unrecognized.
func (p SourcePriority) Weight(source string) int {
	if w, ok := p.order[source]; ok {
		return w
	}
	return len(p.order) * sourceWeightStep
}

// VersionRecency counts, for a sorted candidate list of a single
// package's releases, how many newer releases exist above each one — the
// per-package analog of conda's update-distance objective term. index 0
// is assumed to be the oldest release.
func VersionRecency(versions []semver.Version) []int {
	weights := make([]int, len(versions))
	for i := range versions {
		weights[i] = len(versions) - 1 - i
	}
	return weights
}
