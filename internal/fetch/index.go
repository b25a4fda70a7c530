package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkgsolve/pkgsolve/internal/repodata"
)

// IndexFetcher implements repodata.Fetcher by downloading a source's
// JSON repository index over HTTP — the Go analog of conda's per-channel
// repodata.json, fetched by CondaSession.get rather than download()'s
// checksummed-archive path, since an index has no separately published
// checksum to verify against.
type IndexFetcher struct {
	HTTP *http.Client
	URL  string
	Name string
}

func (f IndexFetcher) Fetch(ctx context.Context) ([]repodata.Record, error) {
	client := f.HTTP
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: building index request for %s: %w", f.URL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: requesting index %s: %w", f.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: index %s returned status %s", f.URL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: reading index %s: %w", f.URL, err)
	}

	var records []repodata.Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("fetch: parsing index %s: %w", f.URL, err)
	}
	for i := range records {
		if records[i].Source == "" {
			records[i].Source = f.Name
		}
	}
	return records, nil
}

var _ repodata.Fetcher = IndexFetcher{}
