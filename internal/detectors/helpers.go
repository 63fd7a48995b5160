package detectors

import (
	"bytes"
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
)

var (
	directive          = []byte("guardscan:ignore")
	directiveStart     = []byte("guardscan:ignore-start")
	directiveEnd       = []byte("guardscan:ignore-end")
	directiveNextLine  = []byte("guardscan:ignore-next-line")
	directiveSpaced    = []byte("guardscan: ignore")
	directiveFileLevel = []byte("guardscan:ignore-file")
)

// IgnoresFile reports whether data carries a file-level ignore directive.
func IgnoresFile(data []byte) bool {
	return bytes.Contains(data, directiveFileLevel)
}

// eachLine calls fn with the 1-based number and contents of every line in
// data. line aliases data and must not be retained.
func eachLine(data []byte, fn func(n int, line []byte)) {
	n := 0
	for len(data) > 0 {
		n++
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			fn(n, bytes.TrimSuffix(data, []byte{'\r'}))
			return
		}
		fn(n, bytes.TrimSuffix(data[:i], []byte{'\r'}))
		data = data[i+1:]
	}
}

// suppressor tracks inline ignore directives across lines.
type suppressor struct {
	region   bool
	skipNext bool
}

// skip consumes line and reports whether detector id must ignore it.
// A bare "guardscan:ignore" only silences the line when it also names the
// detector's provider (the part of id before the first underscore).
func (s *suppressor) skip(line []byte, id string) bool {
	switch {
	case bytes.Contains(line, directiveStart):
		s.region = true
		return true
	case bytes.Contains(line, directiveEnd):
		s.region = false
		return true
	case s.region:
		return true
	case bytes.Contains(line, directiveNextLine):
		s.skipNext = true
		return true
	case s.skipNext:
		s.skipNext = false
		return true
	}
	if bytes.Contains(line, directive) || bytes.Contains(line, directiveSpaced) {
		provider, _, _ := bytes.Cut([]byte(id), []byte{'_'})
		return bytes.Contains(bytes.ToLower(line), provider)
	}
	return false
}

// findSimple emits a finding for the first match of re on every line.
func findSimple(path string, data []byte, re *regexp.Regexp, id string, sev types.Severity, conf float64) []types.Finding {
	return findChecked(path, data, re, id, sev, conf, nil)
}

// findChecked is findSimple with a post-match check; a nil check accepts
// every match.
func findChecked(path string, data []byte, re *regexp.Regexp, id string, sev types.Severity, conf float64, check func(string) bool) []types.Finding {
	var out []types.Finding
	var sup suppressor
	eachLine(data, func(n int, line []byte) {
		if sup.skip(line, id) {
			return
		}
		m := re.Find(line)
		if m == nil {
			return
		}
		match := string(m)
		if check != nil && !check(match) {
			return
		}
		out = append(out, types.Finding{Path: path, Line: n, Match: match, Detector: id, Severity: sev, Confidence: conf})
	})
	return out
}

// findWithContext only reports a value match on lines that ctxRe also
// matches, which keeps generic key shapes quiet.
func findWithContext(path string, data []byte, ctxRe, valueRe *regexp.Regexp, id string, sev types.Severity, conf float64) []types.Finding {
	var out []types.Finding
	var sup suppressor
	eachLine(data, func(n int, line []byte) {
		if sup.skip(line, id) || !ctxRe.Match(line) {
			return
		}
		if m := valueRe.Find(line); m != nil {
			out = append(out, types.Finding{Path: path, Line: n, Match: string(m), Detector: id, Severity: sev, Confidence: conf})
		}
	})
	return out
}
