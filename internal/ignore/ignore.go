// Package ignore reads .guardscanignore files. Patterns follow a small
// subset of gitignore: comments, blank lines, directory patterns ending in
// "/", "!" negation and doublestar globs.
package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileName is looked up at the scan root.
const FileName = ".guardscanignore"

type rule struct {
	pattern string
	dir     bool
	negate  bool
	rooted  bool
}

// Matcher decides whether a slash-separated relative path is ignored.
type Matcher struct {
	rules []rule
}

// Load parses the ignore file at p. A missing file yields an empty matcher
// and the os.ErrNotExist error so callers can tell the two apart.
func Load(p string) (Matcher, error) {
	f, err := os.Open(p)
	if err != nil {
		return Matcher{}, err
	}
	defer f.Close()
	return Parse(bufio.NewScanner(f))
}

// Parse builds a matcher from scanned lines.
func Parse(sc *bufio.Scanner) (Matcher, error) {
	var m Matcher
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var r rule
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dir = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.HasPrefix(line, "/") {
			r.rooted = true
			line = strings.TrimPrefix(line, "/")
		}
		if strings.Contains(line, "/") {
			r.rooted = true
		}
		if !doublestar.ValidatePattern(line) {
			continue
		}
		r.pattern = line
		m.rules = append(m.rules, r)
	}
	return m, sc.Err()
}

// Match reports whether rel is ignored. The last matching rule wins.
func (m Matcher) Match(rel string) bool {
	rel = strings.TrimPrefix(path.Clean(strings.ReplaceAll(rel, "\\", "/")), "./")
	ignored := false
	for _, r := range m.rules {
		if r.matches(rel) {
			ignored = !r.negate
		}
	}
	return ignored
}

// Empty reports whether the matcher has no rules.
func (m Matcher) Empty() bool { return len(m.rules) == 0 }

func (r rule) matches(rel string) bool {
	segs := strings.Split(rel, "/")
	// A directory rule matches any path below a matching parent; a file rule
	// may also match the last segment.
	limit := len(segs)
	if r.dir {
		limit = len(segs) - 1
	}
	for i := 1; i <= limit; i++ {
		prefix := strings.Join(segs[:i], "/")
		if r.rooted {
			if ok, _ := doublestar.Match(r.pattern, prefix); ok {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(r.pattern, segs[i-1]); ok {
			return true
		}
	}
	return false
}
