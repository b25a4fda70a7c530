// Package repodata models package release metadata: the name, version,
// build string and dependency/constraint requirements of a single
// release, and a per-source index of releases keyed by package name.
//
// The record shape is grounded on conda's PackageRecord
// (conda/models/records.py) — name, version, build, depends, constrains
// — simplified to what the resolver needs: this package doesn't carry
// conda's channel/subdir/noarch/timestamp fields, since pkgsolve has no
// platform-specific build matrix. The per-source cache around it is
// grounded on the teacher's OperatorCache/CatalogSnapshot
// (pkg/controller/registry/resolver/cache/cache.go): a TTL'd snapshot
// per upstream source, repopulated lazily on a cache miss.
package repodata

import (
	"encoding/json"
	"fmt"

	"github.com/blang/semver/v4"
)

// Requirement names a dependency or conflict target: a package name plus
// a semver range its release must satisfy. An empty Range matches any
// version, mirroring an unconstrained conda MatchSpec.
type Requirement struct {
	Name  string `json:"name"`
	Range string `json:"range,omitempty"`
}

// Matches reports whether version satisfies r, per semver.ParseRange
// syntax (">=1.2.0 <2.0.0" etc). An empty Range always matches.
func (r Requirement) Matches(version semver.Version) (bool, error) {
	if r.Range == "" {
		return true, nil
	}
	rng, err := semver.ParseRange(r.Range)
	if err != nil {
		return false, fmt.Errorf("repodata: parsing range %q for %s: %w", r.Range, r.Name, err)
	}
	return rng(version), nil
}

func (r Requirement) String() string {
	if r.Range == "" {
		return r.Name
	}
	return fmt.Sprintf("%s %s", r.Name, r.Range)
}

// Record is a single resolvable release of a package from one source.
type Record struct {
	Name       string        `json:"name"`
	Version    semver.Version `json:"version"`
	Build      string        `json:"build,omitempty"`
	Source     string        `json:"source"`
	Depends    []Requirement `json:"depends,omitempty"`
	Constrains []Requirement `json:"constrains,omitempty"`
}

// Identifier is the string pkgsolve uses to name this release as a
// resolver.Identifier: "name-version" ("name-version-build" when a
// build string disambiguates releases of the same version), paralleling
// conda's dist-string convention ("name-version-build").
func (r Record) Identifier() string {
	if r.Build == "" {
		return fmt.Sprintf("%s-%s", r.Name, r.Version)
	}
	return fmt.Sprintf("%s-%s-%s", r.Name, r.Version, r.Build)
}

func (r Record) String() string {
	return fmt.Sprintf("%s (from %s)", r.Identifier(), r.Source)
}

// record is Record's on-the-wire shape: semver.Version round-trips
// through (Un)MarshalJSON as a quoted string via its own
// MarshalJSON/UnmarshalJSON, so Record's JSON methods only need to
// exist to give json.Marshal/Unmarshal a named type to dispatch on in
// embedders that can't rely on the field tag alone.
type record Record

// MarshalJSON satisfies json.Marshaler explicitly rather than relying
// on the default struct encoder, so embedders of Record get a stable
// shape even if unexported helper fields are added later.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(record(r))
}

// UnmarshalJSON satisfies json.Unmarshaler, mirroring MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*r = Record(rec)
	return nil
}
