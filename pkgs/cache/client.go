// Package cache fetches and persists the Brigadier command-tree payload
// published by the upstream data mirror, keyed by Minecraft version.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/mod/semver"
)

const (
	commitsURL = "https://api.github.com/repos/misode/mcmeta/commits"
	rawURLBase = "https://raw.githubusercontent.com/misode/mcmeta"
	mirrorRef  = "summary"
	payloadDoc = "commands/data.json"

	// LatestVersion is the literal accepted in place of a concrete
	// version string; it always resolves against the mirror's current
	// branch head rather than a cached entry.
	LatestVersion = "latest"

	maxCommitPages = 10
	perPage        = 100
)

// Client resolves a requested Minecraft version to the matching
// Brigadier payload, preferring an on-disk cache over the network.
type Client struct {
	Dir        string
	HTTPClient *http.Client
}

// NewClient returns a Client backed by dir, creating it if necessary.
func NewClient(dir string) (*Client, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteFailureError{Path: dir, Err: err}
	}
	return &Client{Dir: dir, HTTPClient: http.DefaultClient}, nil
}

// Get returns the raw JSON payload for version, fetching and caching it
// from the upstream mirror on a miss. The literal LatestVersion always
// consults the network: its mapping to a commit SHA changes over time,
// so a cached copy would eventually go stale.
func (c *Client) Get(ctx context.Context, version string) ([]byte, error) {
	idx, err := loadIndex(c.Dir)
	if err != nil {
		return nil, err
	}

	if version == LatestVersion {
		return c.fetchLatest(ctx, idx)
	}

	if entry, ok := idx.Entries[version]; ok {
		data, err := os.ReadFile(payloadPath(c.Dir, version))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, &WriteFailureError{Path: payloadPath(c.Dir, version), Err: err}
		}
		_ = entry // stale index entry with a missing payload file; refetch below
	}

	sha, err := c.findCommit(ctx, version, idx)
	if err != nil {
		return nil, err
	}
	return c.fetchAndStore(ctx, idx, version, sha)
}

func (c *Client) fetchLatest(ctx context.Context, idx *index) ([]byte, error) {
	sha, err := c.headCommit(ctx)
	if err != nil {
		return nil, err
	}
	return c.fetchAndStore(ctx, idx, LatestVersion, sha)
}

func (c *Client) fetchAndStore(ctx context.Context, idx *index, version, sha string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", rawURLBase, sha, payloadDoc)
	data, err := c.getBytes(ctx, url)
	if err != nil {
		return nil, err
	}

	path := payloadPath(c.Dir, version)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, &WriteFailureError{Path: path, Err: err}
	}
	idx.Entries[version] = indexEntry{Version: version, CommitSHA: sha, FetchedAt: time.Now()}
	if err := idx.save(c.Dir); err != nil {
		return nil, err
	}
	return data, nil
}

// commitListEntry mirrors the subset of GitHub's commit API response
// this client reads.
type commitListEntry struct {
	SHA    string `json:"sha"`
	Commit struct {
		Message string `json:"message"`
	} `json:"commit"`
}

func (c *Client) headCommit(ctx context.Context) (string, error) {
	commits, err := c.listCommits(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(commits) == 0 {
		return "", &VersionNotFoundError{Version: LatestVersion}
	}
	return commits[0].SHA, nil
}

// findCommit walks the mirror branch's commit history, oldest page
// first is not required: GitHub returns commits newest-first, and the
// first commit message containing version wins, per the mirror's
// convention of naming each data-update commit after the game version
// it captures.
func (c *Client) findCommit(ctx context.Context, version string, idx *index) (string, error) {
	for page := 1; page <= maxCommitPages; page++ {
		commits, err := c.listCommits(ctx, page)
		if err != nil {
			return "", err
		}
		if len(commits) == 0 {
			break
		}
		for _, commit := range commits {
			if strings.Contains(commit.Commit.Message, version) {
				return commit.SHA, nil
			}
		}
	}
	return "", &VersionNotFoundError{Version: version, Suggestion: suggest(version, idx.knownVersions())}
}

func (c *Client) listCommits(ctx context.Context, page int) ([]commitListEntry, error) {
	url := fmt.Sprintf("%s?sha=%s&per_page=%d&page=%d", commitsURL, mirrorRef, perPage, page)
	data, err := c.getBytes(ctx, url)
	if err != nil {
		return nil, err
	}
	var commits []commitListEntry
	if err := json.Unmarshal(data, &commits); err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	return commits, nil
}

func (c *Client) getBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	return data, nil
}

func payloadPath(dir, version string) string {
	return filepath.Join(dir, fmt.Sprintf("%s.json", version))
}

// suggest fuzzy-matches version against the already-cached versions and
// returns the closest one that contains every character of version in
// order, so an abbreviated request ("1211") points the caller at
// "1.21.1". A request with a character that no cached version contains
// (a substituted typo such as "1.2O.1") gets no suggestion.
func suggest(version string, known []string) string {
	best := fuzzy.RankFind(version, known)
	sort.Sort(best)
	if len(best) == 0 {
		return ""
	}
	return best[0].Target
}

// sortVersionsDescending orders versions newest-first using semver
// comparison, falling back to a stable lexical ordering (after all
// semver-parseable entries) for strings semver.IsValid rejects, such as
// upstream snapshot labels.
func sortVersionsDescending(versions []string) {
	sort.SliceStable(versions, func(i, j int) bool {
		vi, vj := canonicalSemver(versions[i]), canonicalSemver(versions[j])
		iValid, jValid := semver.IsValid(vi), semver.IsValid(vj)
		switch {
		case iValid && jValid:
			return semver.Compare(vi, vj) > 0
		case iValid != jValid:
			return iValid
		default:
			return versions[i] < versions[j]
		}
	})
}

func canonicalSemver(version string) string {
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
