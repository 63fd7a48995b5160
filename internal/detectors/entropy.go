package detectors

import (
	"math"
	"regexp"

	"github.com/redactyl/guardscan/internal/types"
)

var (
	reMaybeSecret = regexp.MustCompile(`[A-Za-z0-9+/=_-]{20,}`)
	reSecretHint  = regexp.MustCompile(`(?i)(secret|token|password|api[_-]?key|authorization|bearer|aws)`)
)

const (
	minEntropy     = 4.0
	maxEntropySpan = 200
)

// EntropyNearbySecrets flags high-entropy tokens on lines that mention a
// credential.
func EntropyNearbySecrets(path string, data []byte) []types.Finding {
	var out []types.Finding
	var sup suppressor
	eachLine(data, func(n int, line []byte) {
		if sup.skip(line, "entropy_context") || !reSecretHint.Match(line) {
			return
		}
		for _, m := range reMaybeSecret.FindAll(line, -1) {
			if len(m) <= maxEntropySpan && entropy(m) >= minEntropy {
				out = append(out, types.Finding{Path: path, Line: n, Match: string(m), Detector: "entropy_context", Severity: types.SevMed, Confidence: 0.6})
			}
		}
	})
	return out
}

// entropy returns the Shannon entropy of b in bits per byte.
func entropy(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	var count [256]int
	for _, c := range b {
		count[c]++
	}
	h := 0.0
	n := float64(len(b))
	for _, c := range count {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
