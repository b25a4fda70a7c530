// Package pkgmetrics declares pkgsolve's prometheus metrics and
// registers them with the default registry.
//
// Grounded on pkg/metrics/metrics.go's var-block-of-collectors plus
// explicit Register() pattern: every metric is a package-level
// prometheus.NewX value, and Register() (called once from
// cmd/pkgsolve) performs the MustRegister calls, rather than using
// prometheus/client_golang's promauto package (the teacher doesn't use
// promauto either).
package pkgmetrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SolveDuration observes wall-clock time of one run of the solve
	// command (index fetch, resolver.Solve and lockfile write), by
	// outcome ("sat", "unsat", "error").
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pkgsolve_solve_duration_seconds",
			Help:    "Time spent resolving a dependency set, by outcome",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	// ClauseCount reports the number of CNF clauses the driver held
	// at the moment Solve finished compiling constraints, a proxy for
	// how large a problem the minimizer had to search.
	ClauseCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pkgsolve_clause_count",
			Help: "Number of CNF clauses in the most recently compiled constraint set",
		},
	)

	// FetchCount counts completed internal/fetch downloads, by
	// outcome ("ok", "checksum_mismatch", "error").
	FetchCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pkgsolve_fetch_total",
			Help: "Completed downloads, by outcome",
		},
		[]string{"outcome"},
	)
)

// Register registers pkgsolve's metrics with the default prometheus
// registry. Call once from cmd/pkgsolve's root command setup.
func Register() {
	prometheus.MustRegister(SolveDuration)
	prometheus.MustRegister(ClauseCount)
	prometheus.MustRegister(FetchCount)
}
