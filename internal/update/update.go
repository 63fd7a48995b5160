// Package update checks GitHub releases for a newer guardscan and replaces
// the running binary on request.
package update

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	semver3 "github.com/blang/semver"
	"github.com/blang/semver/v4"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Slug is the GitHub repository releases are published to.
const Slug = "redactyl/guardscan"

const (
	latestURL     = "https://api.github.com/repos/" + Slug + "/releases/latest"
	cacheFileName = "update.json"
	cacheTTL      = 24 * time.Hour
)

type cache struct {
	LastChecked time.Time `json:"last_checked"`
	Latest      string    `json:"latest"`
}

// Checker looks up the latest release, remembering the answer for a day.
type Checker struct {
	URL      string
	Client   *http.Client
	CacheDir string
}

// NewChecker returns a checker against the public releases API with its
// cache under the user config dir.
func NewChecker() *Checker {
	return &Checker{
		URL:      latestURL,
		Client:   &http.Client{Timeout: 2 * time.Second},
		CacheDir: configDir(),
	}
}

func configDir() string {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, "guardscan")
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "guardscan")
}

func (c *Checker) loadCache() (cache, error) {
	var cc cache
	if c.CacheDir == "" {
		return cc, errors.New("no config dir")
	}
	b, err := os.ReadFile(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return cc, err
	}
	err = json.Unmarshal(b, &cc)
	return cc, err
}

func (c *Checker) saveCache(cc cache) {
	if c.CacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
		return
	}
	b, _ := json.MarshalIndent(cc, "", "  ")
	_ = os.WriteFile(filepath.Join(c.CacheDir, cacheFileName), b, 0o644)
}

func (c *Checker) latestOnline() (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.URL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "guardscan-updater")
	resp, err := c.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases api: %s", resp.Status)
	}
	var obj struct {
		TagName string `json:"tag_name"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&obj); err != nil {
		return "", err
	}
	if obj.TagName != "" {
		return obj.TagName, nil
	}
	return obj.Name, nil
}

// Check returns the latest known version and whether it is newer than
// current. It is a no-op when CI is set. Lookup failures are not errors;
// they leave latest empty.
func (c *Checker) Check(current string) (string, bool, error) {
	if os.Getenv("CI") != "" {
		return "", false, nil
	}
	cur, err := semver.ParseTolerant(current)
	if err != nil {
		return "", false, fmt.Errorf("current version %q: %w", current, err)
	}
	cc, _ := c.loadCache()
	latest := cc.Latest
	if latest == "" || time.Since(cc.LastChecked) > cacheTTL {
		if v, err := c.latestOnline(); err == nil {
			latest = strings.TrimPrefix(strings.TrimSpace(v), "v")
			c.saveCache(cache{LastChecked: time.Now(), Latest: latest})
		}
	}
	if latest == "" {
		return "", false, nil
	}
	lv, err := semver.ParseTolerant(latest)
	if err != nil {
		return latest, false, nil
	}
	return latest, lv.GT(cur), nil
}

// Apply replaces the running binary with the latest release and returns the
// installed version. current may carry a leading "v" or be a bare commit
// hash; unparsable versions are treated as 0.0.0 so any release wins.
func Apply(current string) (string, error) {
	ver, err := semver.ParseTolerant(current)
	if err != nil {
		ver = semver.MustParse("0.0.0")
	}
	// go-github-selfupdate still speaks the pre-module semver API.
	rel, err := selfupdate.UpdateSelf(semver3.MustParse(ver.String()), Slug)
	if err != nil {
		return "", err
	}
	return rel.Version.String(), nil
}
