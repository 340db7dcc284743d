package pypi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	masterminds "github.com/Masterminds/semver/v3"
)

// DefaultURL is the public index's JSON API root.
const DefaultURL = "https://pypi.org/pypi"

// Client queries the package index. No authentication; the JSON API is
// a bearer-less GET.
type Client struct {
	base  string
	http  *http.Client
	cache *Cache
}

// NewClient creates a client with the given timeout in seconds. A nil
// cache disables caching.
func NewClient(baseURL string, timeoutSecs int, cache *Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if timeoutSecs <= 0 {
		timeoutSecs = 10
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: time.Duration(timeoutSecs) * time.Second},
		cache: cache,
	}
}

// indexResponse matches the PyPI JSON API response.
type indexResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
}

// Release is a package's current version on the index.
type Release struct {
	Package    string
	Version    string
	Prerelease bool
}

// Latest resolves the package's current release.
func (c *Client) Latest(ctx context.Context, pkg string) (Release, error) {
	url := fmt.Sprintf("%s/%s/json", c.base, pkg)
	body, err := c.fetch(ctx, url)
	if err != nil {
		return Release{}, err
	}
	var resp indexResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Release{}, fmt.Errorf("pypi: decode %s: %w", url, err)
	}
	if resp.Info.Version == "" {
		return Release{}, fmt.Errorf("pypi: %s: no version in response", pkg)
	}
	return newRelease(pkg, resp.Info.Version), nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	key := cacheKey(url)
	if body, ok := c.cache.Get(key); ok {
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("pypi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pypi: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pypi: GET %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pypi: read %s: %w", url, err)
	}
	_ = c.cache.Put(key, body) // next run refetches on failure
	return body, nil
}

// newRelease parses the version to mark pre-releases. Index versions are
// not always semver; unparseable ones pass through unmarked.
func newRelease(pkg, version string) Release {
	rel := Release{Package: pkg, Version: version}
	if v, err := masterminds.NewVersion(strings.TrimPrefix(version, "v")); err == nil {
		rel.Prerelease = v.Prerelease() != ""
	}
	return rel
}
