// Package e2e exercises the "pkgsolve solve" command end-to-end
// against an in-process HTTP index, the way test/e2e/e2e_ginkgo
// exercises OLM's CLI surface against a live cluster: a Ginkgo suite
// bootstrapped with RunSpecs/RegisterFailHandler, rather than plain
// *testing.T table tests, since this is the one place in pkgsolve that
// drives the assembled binary's command tree rather than a single
// package in isolation.
package e2e

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPkgsolveE2E(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pkgsolve CLI Suite")
}
