package cache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// indexFileName is the on-disk name of the cache's CBOR-encoded index,
// stored alongside the per-version payload files.
const indexFileName = "index.cbor"

// indexEntry records when a version's payload was fetched and the
// upstream commit it was fetched from, so that repeated invocations for
// the same version never touch the network.
type indexEntry struct {
	Version   string    `cbor:"version"`
	CommitSHA string    `cbor:"commit_sha"`
	FetchedAt time.Time `cbor:"fetched_at"`
}

// index is the in-memory form of index.cbor: version string to entry.
type index struct {
	Entries map[string]indexEntry `cbor:"entries"`
}

func loadIndex(dir string) (*index, error) {
	path := filepath.Join(dir, indexFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &index{Entries: map[string]indexEntry{}}, nil
	}
	if err != nil {
		return nil, &WriteFailureError{Path: path, Err: err}
	}

	var idx index
	if err := cbor.Unmarshal(data, &idx); err != nil {
		return nil, &WriteFailureError{Path: path, Err: err}
	}
	if idx.Entries == nil {
		idx.Entries = map[string]indexEntry{}
	}
	return &idx, nil
}

func (idx *index) save(dir string) error {
	path := filepath.Join(dir, indexFileName)
	data, err := cbor.Marshal(idx)
	if err != nil {
		return &WriteFailureError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteFailureError{Path: path, Err: err}
	}
	return nil
}

// knownVersions returns the cached version strings, most recent
// (semver-wise) first. Versions that do not parse as semver sort after
// all that do, in lexical order, so that informal tags (e.g. upstream
// snapshot labels) never panic a comparison.
func (idx *index) knownVersions() []string {
	versions := make([]string, 0, len(idx.Entries))
	for v := range idx.Entries {
		versions = append(versions, v)
	}
	sortVersionsDescending(versions)
	return versions
}
