package engine

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/redactyl/guardscan/internal/ignore"
)

func loadIgnore(root string, log zerolog.Logger) ignore.Matcher {
	ign, err := ignore.Load(filepath.Join(root, ignore.FileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Debug().Err(err).Msg("ignore file not loaded")
	}
	return ign
}

// Walk visits every regular file under cfg.Root that survives the default
// excludes, globs, ignore file and size limit. handle receives the
// slash-separated path relative to the root and the absolute path. A non-nil
// error from handle stops the walk and is returned. Unreadable directories
// are skipped.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(rel, abs string) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != cfg.Root && cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(cfg.Root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !allowedByGlobs(rel, cfg) || ign.Match(rel) {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if info, err := d.Info(); err == nil && info.Size() > cfg.MaxBytes {
				return nil
			}
		}
		return handle(rel, p)
	})
}

// CountTargets returns how many files Walk would hand to the scanner. It does
// not read file contents, so binary and ignore-file skips are not subtracted.
func CountTargets(cfg Config) (int, error) {
	ign := loadIgnore(cfg.Root, zerolog.Nop())
	n := 0
	err := Walk(context.Background(), cfg, ign, func(string, string) error {
		n++
		return nil
	})
	return n, err
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME skips media and archives by extension or magic number.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	if len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4 {
		return true
	}
	return false
}

// allowedByGlobs applies comma-separated include globs as a positive filter,
// then subtracts exclude globs. Globs also match against the base name.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	if includes := parseGlobsList(cfg.IncludeGlobs); len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if excludes := parseGlobsList(cfg.ExcludeGlobs); len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
			if t := trimGlobPrefix(p); t != p {
				out = append(out, t)
			}
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	base := pathToMatch
	if i := strings.LastIndexByte(pathToMatch, '/'); i >= 0 {
		base = pathToMatch[i+1:]
	}
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, base); ok {
			return true
		}
	}
	return false
}

// trimGlobPrefix drops a leading "**/" or "./" so "**/*.go" also matches
// top-level files.
func trimGlobPrefix(g string) string {
	g = strings.TrimPrefix(g, "./")
	return strings.TrimPrefix(g, "**/")
}
