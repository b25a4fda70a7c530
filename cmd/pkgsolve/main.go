package main

import (
	"context"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pkgsolve/pkgsolve/cmd/pkgsolve/solve"
	"github.com/pkgsolve/pkgsolve/internal/pkgmetrics"
)

var (
	configPathFlag  string
	metricsAddrFlag string
	cfg             *config
)

func main() {
	solveOpts := &solve.Options{}

	rootCmd := &cobra.Command{
		Use:   "pkgsolve",
		Short: "pkgsolve",
		Long:  `A CLI tool to resolve and lock package dependency sets.`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}

			loaded, err := loadConfig(configPathFlag)
			if err != nil {
				return err
			}
			cfg = loaded
			applyConfig(solveOpts, cfg)

			pkgmetrics.Register()
			if metricsAddrFlag != "" {
				serveMetrics(metricsAddrFlag)
			}

			if err := watchConfig(context.Background(), configPathFlag, func(reloaded *config) {
				log.Info("pkgsolve: reloaded config")
				cfg = reloaded
				applyConfig(solveOpts, cfg)
			}); err != nil {
				log.Warnf("pkgsolve: could not watch config file: %s", err)
			}

			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "pkgsolve.yaml", "Path to pkgsolve's config file.")
	rootCmd.PersistentFlags().StringVar(&metricsAddrFlag, "metrics-addr", "", "Address to serve Prometheus metrics on (empty disables it).")

	rootCmd.AddCommand(solve.NewCmd(solveOpts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// applyConfig copies a freshly (re)loaded config's fields into opts in
// place, so solve.NewCmd's already-registered RunE closure observes
// config reloads without the command tree being rebuilt.
func applyConfig(opts *solve.Options, cfg *config) {
	sources := make([]solve.Source, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = solve.Source{Name: s.Name, URL: s.URL}
	}
	opts.Sources = sources
	opts.CacheTTL = cfg.CacheTTL
	opts.RatePerSec = cfg.RatePerSec
	opts.Burst = cfg.Burst
}

// serveMetrics starts the Prometheus /metrics endpoint in the
// background, mirroring cmd/catalog/main.go's bare
// "go http.ListenAndServe(":8080", nil)" health-check pattern.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warnf("pkgsolve: metrics server stopped: %s", err)
		}
	}()
}
