package repodata

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Fetcher retrieves the current set of Records a source publishes.
// Implementations live in internal/fetch; Index only needs the
// contract, mirroring how the teacher's CatalogSnapshot.populate takes
// a client.Interface rather than constructing one itself.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// snapshot is a single source's cached records, along with the time at
// which the cache entry expires. Grounded on CatalogSnapshot in
// pkg/controller/registry/resolver/cache/cache.go, minus the
// goroutine-cancellation plumbing OLM needs for its background
// Kubernetes informer wiring, which pkgsolve has no analog for.
type snapshot struct {
	m       sync.RWMutex
	records []Record
	expiry  time.Time
	err     error
}

func (s *snapshot) expired(now time.Time) bool {
	return !now.Before(s.expiry)
}

// Index is a TTL'd cache of Records grouped by source, refreshed lazily
// from a Fetcher on a cache miss. Safe for concurrent use.
type Index struct {
	ttl       time.Duration
	fetchers  map[string]Fetcher
	mu        sync.RWMutex
	snapshots map[string]*snapshot
}

// NewIndex builds an Index over the given named Fetchers, caching each
// source's records for ttl before refetching.
func NewIndex(fetchers map[string]Fetcher, ttl time.Duration) *Index {
	return &Index{
		ttl:       ttl,
		fetchers:  fetchers,
		snapshots: make(map[string]*snapshot),
	}
}

// Expire invalidates the cached snapshot for source, forcing the next
// All/Releases call to refetch it.
func (idx *Index) Expire(source string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if s, ok := idx.snapshots[source]; ok {
		s.m.Lock()
		s.expiry = time.Unix(0, 0)
		s.m.Unlock()
	}
}

// All returns every Record currently cached or fetchable across all
// configured sources, refreshing any source whose snapshot has expired.
func (idx *Index) All(ctx context.Context) ([]Record, error) {
	var out []Record
	for source := range idx.fetchers {
		records, err := idx.source(ctx, source)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}
	return out, nil
}

func (idx *Index) source(ctx context.Context, source string) ([]Record, error) {
	now := time.Now()

	idx.mu.RLock()
	s, ok := idx.snapshots[source]
	idx.mu.RUnlock()

	if ok {
		s.m.RLock()
		fresh := !s.expired(now) && s.err == nil
		records := s.records
		s.m.RUnlock()
		if fresh {
			return records, nil
		}
	}

	idx.mu.Lock()
	s, ok = idx.snapshots[source]
	if !ok {
		s = &snapshot{}
		idx.snapshots[source] = s
	}
	idx.mu.Unlock()

	s.m.Lock()
	defer s.m.Unlock()
	if !s.expired(now) && s.err == nil {
		return s.records, nil
	}

	fetcher := idx.fetchers[source]
	records, err := fetcher.Fetch(ctx)
	if err != nil {
		s.err = err
		s.expiry = time.Time{}
		return nil, err
	}
	s.records = records
	s.err = nil
	s.expiry = now.Add(idx.ttl)
	return records, nil
}

// Releases returns every Record for name across all sources, ordered
// oldest-to-newest version (ties broken by build string), refreshing
// expired snapshots as needed.
func (idx *Index) Releases(ctx context.Context, name string) ([]Record, error) {
	all, err := idx.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, r := range all {
		if r.Name == name {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Version.Compare(out[j].Version); c != 0 {
			return c < 0
		}
		return out[i].Build < out[j].Build
	})
	return out, nil
}

// Satisfying returns the subset of candidates matching req, preserving
// candidates' order.
func Satisfying(candidates []Record, req Requirement) ([]Record, error) {
	var out []Record
	for _, r := range candidates {
		ok, err := req.Matches(r.Version)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
