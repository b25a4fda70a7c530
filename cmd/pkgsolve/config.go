package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// sourceConfig names one upstream repository to pull candidate releases
// from.
type sourceConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// file is the on-disk shape of pkgsolve's config file: a top-level key
// scoping the real Config, the same structure config.File plays around
// config.Config in config/config.go (so the config file has room for
// other tools' sections alongside pkgsolve's own, without a collision).
type file struct {
	Pkgsolve config `yaml:"pkgsolve"`
}

type config struct {
	Sources []sourceConfig `yaml:"sources"`
	// CacheTTL, like config.Config's Interval field in config/config.go,
	// accepts either a duration string such as "5m" (gopkg.in/yaml.v2
	// parses those into a time.Duration) or an integer count of
	// nanoseconds.
	CacheTTL   time.Duration `yaml:"cacheTTL"`
	RatePerSec float64       `yaml:"ratePerSecond"`
	Burst      int           `yaml:"burst"`
}

func loadConfig(path string) (*config, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("pkgsolve: opening config %s: %w", path, err)
	}
	defer f.Close()

	data, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("pkgsolve: reading config %s: %w", path, err)
	}

	var cfgFile file
	if err := yaml.Unmarshal(data, &cfgFile); err != nil {
		return nil, fmt.Errorf("pkgsolve: parsing config %s: %w", path, err)
	}

	cfg := &cfgFile.Pkgsolve
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	return cfg, nil
}
