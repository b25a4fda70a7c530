package e2e

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pkgsolve/pkgsolve/cmd/pkgsolve/solve"
	_ "github.com/pkgsolve/pkgsolve/internal/satbackend/naive"
)

var _ = Describe("pkgsolve solve", func() {
	var (
		srv      *httptest.Server
		dir      string
		lockPath string
	)

	BeforeEach(func() {
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[
				{"name":"app","version":"1.0.0","depends":[{"name":"lib","range":">=1.0.0"}]},
				{"name":"lib","version":"1.0.0"},
				{"name":"lib","version":"2.0.0"}
			]`))
		}))
		dir = GinkgoT().TempDir()
		lockPath = filepath.Join(dir, "pkgsolve.lock")
	})

	AfterEach(func() {
		srv.Close()
	})

	It("resolves a requested package and writes a lockfile", func() {
		opts := &solve.Options{
			Sources:    []solve.Source{{Name: "main", URL: srv.URL}},
			CacheTTL:   time.Minute,
			RatePerSec: 1000,
			Burst:      10,
		}
		cmd := solve.NewCmd(opts)
		cmd.SetArgs([]string{"app", "--lockfile", lockPath, "--backend", "naive"})

		Expect(cmd.Execute()).To(Succeed())

		data, err := os.ReadFile(lockPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring("name: app"))
		Expect(string(data)).To(ContainSubstring("name: lib"))
	})

	It("fails when the requested package has no candidates", func() {
		opts := &solve.Options{
			Sources:    []solve.Source{{Name: "main", URL: srv.URL}},
			CacheTTL:   time.Minute,
			RatePerSec: 1000,
			Burst:      10,
		}
		cmd := solve.NewCmd(opts)
		cmd.SetArgs([]string{"does-not-exist", "--lockfile", lockPath, "--backend", "naive"})

		Expect(cmd.Execute()).To(HaveOccurred())
	})
})
