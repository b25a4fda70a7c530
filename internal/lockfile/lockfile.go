// Package lockfile persists the outcome of a resolver.Solve call as a
// YAML document: the exact set of releases chosen, so a later install
// reproduces the same solve without re-running the constraint engine.
//
// Grounded on config.LoadConfig in config/config.go for the
// gopkg.in/yaml.v2 read/write idiom (os.Open, ioutil.ReadAll,
// yaml.Unmarshal into a tagged struct), and on the lockfile conda_env's
// specs package ultimately produces from a solved environment (a
// recorded dependency list plus the solver's version pins) — simplified
// here to what pkgsolve's resolver.Solve actually returns, since
// pkgsolve has no channel/platform dimension to also record.
package lockfile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/pkgsolve/pkgsolve/internal/diskio"
	"github.com/pkgsolve/pkgsolve/internal/repodata"
)

// apiVersion guards against reading a lockfile written by an
// incompatible future format.
const apiVersion = 1

// Entry records one resolved release.
type Entry struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Build   string `yaml:"build,omitempty"`
	Source  string `yaml:"source"`
}

// Lockfile is the full on-disk shape.
type Lockfile struct {
	APIVersion int     `yaml:"apiVersion"`
	Packages   []Entry `yaml:"packages"`
}

// FromRecords builds a Lockfile from a resolved set of Records, sorted
// by name for a stable, diffable file.
func FromRecords(records []repodata.Record) Lockfile {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{
			Name:    r.Name,
			Version: r.Version.String(),
			Build:   r.Build,
			Source:  r.Source,
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return Lockfile{APIVersion: apiVersion, Packages: entries}
}

// Write renders lf as YAML and writes it to path atomically.
func Write(path string, lf Lockfile) error {
	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("lockfile: marshaling: %w", err)
	}
	if err := diskio.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("lockfile: writing %s: %w", path, err)
	}
	return nil
}

// Read loads a Lockfile from path.
func Read(path string) (Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Lockfile{}, fmt.Errorf("lockfile: reading %s: %w", path, err)
	}
	var lf Lockfile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return Lockfile{}, fmt.Errorf("lockfile: parsing %s: %w", path, err)
	}
	if lf.APIVersion != apiVersion {
		return Lockfile{}, fmt.Errorf("lockfile: %s has apiVersion %d, want %d", path, lf.APIVersion, apiVersion)
	}
	return lf, nil
}
