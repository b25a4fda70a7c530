// Package solve implements pkgsolve's "solve" subcommand: fetch each
// configured source's index, resolve the requested packages against
// them, and write the result as a lockfile.
//
// Grounded on cmd/operator-cli/bundle's subcommand shape (NewCmd
// returning a *cobra.Command tree, package-level flag variables bound
// via Flags().StringVarP, a RunE doing the actual work) applied to
// pkgsolve's own domain.
package solve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkgsolve/pkgsolve/internal/fetch"
	"github.com/pkgsolve/pkgsolve/internal/lockfile"
	"github.com/pkgsolve/pkgsolve/internal/pkgmetrics"
	"github.com/pkgsolve/pkgsolve/internal/repodata"
	"github.com/pkgsolve/pkgsolve/internal/resolver"
)

// Source names one upstream repository index to fetch candidates from.
type Source struct {
	Name string
	URL  string
}

// Options configures NewCmd's resulting command without requiring
// callers to reach into package-level flag state — cmd/pkgsolve's root
// command owns config loading and passes the result in here.
type Options struct {
	Sources    []Source
	CacheTTL   time.Duration
	RatePerSec float64
	Burst      int
}

var (
	lockPathFlag string
	backendFlag  string
	limitFlag    int
)

// NewCmd returns the "solve" subcommand. opts is read at RunE time, not
// NewCmd time, so a config reload picked up by cmd/pkgsolve's watcher
// between process start and the user actually running "solve" is
// honored without rebuilding the command tree.
func NewCmd(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [packages...]",
		Short: "Resolve a set of packages against configured sources",
		Long: `solve fetches each configured source's repository index, compiles
the requested packages and their transitive dependencies into pseudo-boolean
constraints, and writes the chosen release set to a lockfile.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), *opts, args)
		},
	}

	cmd.Flags().StringVarP(&lockPathFlag, "lockfile", "o", "pkgsolve.lock", "Path to write the resolved lockfile to.")
	cmd.Flags().StringVarP(&backendFlag, "backend", "b", "gini", "SAT backend to solve with: one of [gini, naive].")
	cmd.Flags().IntVarP(&limitFlag, "limit", "l", 0, "Backend effort limit per probe (0 for unlimited).")

	return cmd
}

func run(ctx context.Context, opts Options, requested []string) error {
	start := time.Now()
	outcome := "error"
	defer func() {
		pkgmetrics.SolveDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	if len(opts.Sources) == 0 {
		return fmt.Errorf("solve: no sources configured")
	}

	client := fetch.NewClient(http.DefaultClient, opts.RatePerSec, opts.Burst)
	fetchers := make(map[string]repodata.Fetcher, len(opts.Sources))
	for _, s := range opts.Sources {
		fetchers[s.Name] = fetch.IndexFetcher{HTTP: client.HTTP, URL: s.URL, Name: s.Name}
	}
	index := repodata.NewIndex(fetchers, opts.CacheTTL)

	all, err := index.All(ctx)
	if err != nil {
		return fmt.Errorf("solve: fetching indices: %w", err)
	}
	log.WithField("records", len(all)).Info("solve: fetched candidate releases")

	vars, err := repodata.Variables(all, requested)
	if err != nil {
		return fmt.Errorf("solve: building constraints: %w", err)
	}

	selected, err := resolver.Solve(ctx, vars,
		resolver.WithBackend(backendFlag),
		resolver.WithLimit(limitFlag),
	)
	if err != nil {
		var notSatisfiable resolver.NotSatisfiable
		if errors.As(err, &notSatisfiable) {
			outcome = "unsat"
		}
		return fmt.Errorf("solve: %w", err)
	}
	outcome = "sat"

	byID := make(map[string]repodata.Record, len(all))
	for _, r := range all {
		byID[r.Identifier()] = r
	}
	var records []repodata.Record
	for _, v := range selected {
		if r, ok := byID[string(v.Identifier())]; ok {
			records = append(records, r)
		}
	}

	lf := lockfile.FromRecords(records)
	if err := lockfile.Write(lockPathFlag, lf); err != nil {
		return fmt.Errorf("solve: writing lockfile: %w", err)
	}

	log.WithFields(log.Fields{"packages": len(records), "lockfile": lockPathFlag}).Info("solve: wrote lockfile")
	return nil
}
